package config

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptySymbol is returned when no symbol is configured
	ErrEmptySymbol = errors.New("symbol unset")
	// ErrInvalidInterval is returned for a non-positive bar interval
	ErrInvalidInterval = errors.New("interval must be positive")
	// ErrEmptyDateRange is returned when the backtest range is empty or inverted
	ErrEmptyDateRange = errors.New("empty date range")
	// ErrInvalidFeeRate is returned for a negative fee rate
	ErrInvalidFeeRate = errors.New("fee rate cannot be negative")
	// ErrInvalidSlippage is returned for a negative slippage setting
	ErrInvalidSlippage = errors.New("slippage cannot be negative")
	// ErrInvalidContractSize is returned for a non-positive contract multiplier
	ErrInvalidContractSize = errors.New("contract size must be positive")
	// ErrInvalidPriceTick is returned for a non-positive minimum price increment
	ErrInvalidPriceTick = errors.New("price tick must be positive")
	// ErrInvalidCapital is returned for non-positive starting capital
	ErrInvalidCapital = errors.New("starting capital must be positive")
)

// Settings holds everything immutable for the duration of one run
type Settings struct {
	Symbol       string          `mapstructure:"symbol"`
	Exchange     string          `mapstructure:"exchange"`
	Interval     time.Duration   `mapstructure:"interval"`
	Start        time.Time       `mapstructure:"start"`
	End          time.Time       `mapstructure:"end"`
	FeeRate      decimal.Decimal `mapstructure:"fee-rate"`
	Slippage     decimal.Decimal `mapstructure:"slippage"`
	ContractSize decimal.Decimal `mapstructure:"contract-size"`
	PriceTick    decimal.Decimal `mapstructure:"price-tick"`
	Capital      decimal.Decimal `mapstructure:"capital"`

	// AnnualizationFactor scales the per-bar Sharpe ratio, e.g. 240 trading
	// days for daily bars on CFFEX futures
	AnnualizationFactor float64 `mapstructure:"annualization-factor"`

	// StrategyName selects a registered strategy when running from the CLI
	StrategyName string `mapstructure:"strategy"`
	// StrategySettings overrides declared strategy parameter defaults
	StrategySettings map[string]any `mapstructure:"strategy-settings"`
	// DataPath points at a CSV bar file when running from the CLI
	DataPath string `mapstructure:"data-path"`
}
