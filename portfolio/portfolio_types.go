package portfolio

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantarc/gocta/order"
)

var (
	// ErrNilTrade is returned when a nil trade is applied
	ErrNilTrade = errors.New("nil trade received")
	// ErrNegativeCost is returned when a fill is applied with a negative
	// fee/slippage charge
	ErrNegativeCost = errors.New("fill cost cannot be negative")
)

// Position is a symbol's signed net holding. AvgEntry is only valid while
// the position is open; flattening exactly to zero resets it so a stale
// entry price can never be read against a zero position
type Position struct {
	Symbol   string
	Volume   decimal.Decimal
	AvgEntry decimal.NullDecimal
}

// ClosedTrade records one completed round trip, produced whenever a fill
// offsets existing exposure
type ClosedTrade struct {
	Symbol     string
	Direction  order.Direction
	Volume     decimal.Decimal
	EntryPrice decimal.Decimal
	ExitPrice  decimal.Decimal
	PnL        decimal.Decimal
	Time       time.Time
}

// Ledger tracks net positions and realized profit per symbol from applied
// trades. It is the single mutator of Position state
type Ledger struct {
	contractSize decimal.Decimal
	positions    map[string]*Position
	realized     decimal.Decimal
	closed       []ClosedTrade
}
