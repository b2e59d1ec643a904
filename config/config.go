package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Validate confirms the settings can drive a run. It fails fast before any
// event is processed; a run is never started on a partially valid config
func (s *Settings) Validate() error {
	if s.Symbol == "" {
		return ErrEmptySymbol
	}
	if s.Interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, s.Interval)
	}
	if !s.Start.IsZero() || !s.End.IsZero() {
		if !s.End.After(s.Start) {
			return fmt.Errorf("%w: start %v end %v", ErrEmptyDateRange, s.Start, s.End)
		}
	}
	if s.FeeRate.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: %v", ErrInvalidFeeRate, s.FeeRate)
	}
	if s.Slippage.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: %v", ErrInvalidSlippage, s.Slippage)
	}
	if s.ContractSize.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %v", ErrInvalidContractSize, s.ContractSize)
	}
	if s.PriceTick.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %v", ErrInvalidPriceTick, s.PriceTick)
	}
	if s.Capital.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %v", ErrInvalidCapital, s.Capital)
	}
	return nil
}

// InBacktestRange reports whether a timestamp falls within [Start, End).
// A zero range accepts everything
func (s *Settings) InBacktestRange(t time.Time) bool {
	if s.Start.IsZero() && s.End.IsZero() {
		return true
	}
	return !t.Before(s.Start) && t.Before(s.End)
}

// ReadConfigFromFile loads and validates settings from the file at path.
// Supports the formats viper does; values absent from the file keep the
// defaults set on the receiver
func ReadConfigFromFile(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	s := &Settings{
		ContractSize:        decimal.NewFromInt(1),
		PriceTick:           decimal.NewFromFloat(0.01),
		Capital:             decimal.NewFromInt(1000000),
		AnnualizationFactor: 240,
	}
	if err := v.Unmarshal(s, viper.DecodeHook(decimalDecodeHook())); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
