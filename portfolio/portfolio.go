package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantarc/gocta/config"
	"github.com/quantarc/gocta/order"
)

// NewLedger creates a position ledger. The contract size multiplies all
// profit calculations, matching futures point-value accounting
func NewLedger(contractSize decimal.Decimal) (*Ledger, error) {
	if contractSize.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidContractSize, contractSize)
	}
	return &Ledger{
		contractSize: contractSize,
		positions:    make(map[string]*Position),
	}, nil
}

// Reset returns the ledger to its initial state
func (l *Ledger) Reset() {
	l.positions = make(map[string]*Position)
	l.realized = decimal.Zero
	l.closed = nil
}

// Apply updates the trade symbol's position. A fill extending the current
// position recomputes the volume-weighted average entry; a fill opposing it
// offsets first, realizing profit on the closed volume, and any residual
// opens a fresh position in the new direction at the fill price. The cost
// argument is the engine's fee/slippage charge for this fill and is
// deducted from realized profit
func (l *Ledger) Apply(t *order.Trade, cost decimal.Decimal) error {
	if t == nil {
		return ErrNilTrade
	}
	if cost.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: %v", ErrNegativeCost, cost)
	}
	l.realized = l.realized.Sub(cost)

	pos, ok := l.positions[t.Symbol]
	if !ok {
		pos = &Position{Symbol: t.Symbol}
		l.positions[t.Symbol] = pos
	}

	signedVol := t.Volume.Mul(t.Direction.PositionSign())
	switch {
	case pos.Volume.IsZero():
		pos.Volume = signedVol
		pos.AvgEntry = decimal.NewNullDecimal(t.Price)
	case pos.Volume.Sign() == signedVol.Sign():
		l.extend(pos, t)
	default:
		l.offset(pos, t, signedVol, cost)
	}
	return nil
}

func (l *Ledger) extend(pos *Position, t *order.Trade) {
	held := pos.Volume.Abs()
	total := held.Add(t.Volume)
	pos.AvgEntry = decimal.NewNullDecimal(
		pos.AvgEntry.Decimal.Mul(held).Add(t.Price.Mul(t.Volume)).Div(total))
	pos.Volume = pos.Volume.Add(t.Volume.Mul(decimal.NewFromInt(int64(pos.Volume.Sign()))))
}

func (l *Ledger) offset(pos *Position, t *order.Trade, signedVol, cost decimal.Decimal) {
	closeVol := decimal.Min(pos.Volume.Abs(), t.Volume)
	posSign := decimal.NewFromInt(int64(pos.Volume.Sign()))
	pnl := t.Price.Sub(pos.AvgEntry.Decimal).Mul(closeVol).Mul(posSign).Mul(l.contractSize)
	l.realized = l.realized.Add(pnl)
	l.closed = append(l.closed, ClosedTrade{
		Symbol:     t.Symbol,
		Direction:  t.Direction,
		Volume:     closeVol,
		EntryPrice: pos.AvgEntry.Decimal,
		ExitPrice:  t.Price,
		PnL:        pnl.Sub(cost),
		Time:       t.Time,
	})

	pos.Volume = pos.Volume.Add(signedVol)
	switch {
	case pos.Volume.IsZero():
		pos.AvgEntry = decimal.NullDecimal{}
	case pos.Volume.Sign() != posSign.Sign():
		// residual beyond full offset opens in the new direction
		pos.AvgEntry = decimal.NewNullDecimal(t.Price)
	}
}

// NetPosition returns a copy of the symbol's position, zero-valued when the
// symbol has never traded
func (l *Ledger) NetPosition(symbol string) Position {
	if pos, ok := l.positions[symbol]; ok {
		return *pos
	}
	return Position{Symbol: symbol}
}

// Realized returns accumulated realized profit net of all applied costs
func (l *Ledger) Realized() decimal.Decimal {
	return l.realized
}

// Unrealized marks the symbol's open position against the provided price
func (l *Ledger) Unrealized(symbol string, price decimal.Decimal) decimal.Decimal {
	pos, ok := l.positions[symbol]
	if !ok || pos.Volume.IsZero() {
		return decimal.Zero
	}
	return price.Sub(pos.AvgEntry.Decimal).Mul(pos.Volume).Mul(l.contractSize)
}

// ClosedTrades returns the completed round trips in close order
func (l *Ledger) ClosedTrades() []ClosedTrade {
	out := make([]ClosedTrade, len(l.closed))
	copy(out, l.closed)
	return out
}
