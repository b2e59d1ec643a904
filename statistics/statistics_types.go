package statistics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantarc/gocta/portfolio"
)

var (
	// ErrInvalidCapital is returned when statistics are set up without
	// positive starting capital
	ErrInvalidCapital = errors.New("starting capital must be positive")
	// ErrNoSamples is returned when results are calculated before any bar
	// was processed
	ErrNoSamples = errors.New("no equity samples collected")
)

// EquitySample is one equity curve point, appended once per processed bar
// and never mutated afterwards
type EquitySample struct {
	Time       time.Time
	Realized   decimal.Decimal
	Unrealized decimal.Decimal
	Equity     decimal.Decimal
}

// Results is the structured summary of a finished or prematurely stopped
// run, consumable by any external reporting collaborator
type Results struct {
	StartTime      time.Time
	EndTime        time.Time
	Bars           int
	InitialCapital decimal.Decimal
	FinalEquity    decimal.Decimal
	TotalReturn    decimal.Decimal
	MaxDrawdown    decimal.Decimal
	SharpeRatio    float64
	TotalTrades    int
	WinningTrades  int
	LosingTrades   int
	WinRate        decimal.Decimal
	AverageWin     decimal.Decimal
	AverageLoss    decimal.Decimal
	EquityCurve    []EquitySample
	ClosedTrades   []portfolio.ClosedTrade
}

// Statistic accumulates per-bar equity samples and closed trades for one run
type Statistic struct {
	capital       decimal.Decimal
	annualization float64
	equity        []EquitySample
	closed        []portfolio.ClosedTrade
}
