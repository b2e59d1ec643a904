package config

import (
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

// decimalDecodeHook lets viper unmarshal numeric and string config values
// straight into decimal.Decimal fields, alongside the usual duration and
// RFC3339 timestamp conversions
func decimalDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		func(_, to reflect.Type, data any) (any, error) {
			if to != reflect.TypeOf(decimal.Decimal{}) {
				return data, nil
			}
			switch v := data.(type) {
			case float64:
				return decimal.NewFromFloat(v), nil
			case int:
				return decimal.NewFromInt(int64(v)), nil
			case int64:
				return decimal.NewFromInt(v), nil
			case string:
				return decimal.NewFromString(v)
			default:
				return data, nil
			}
		},
	)
}
