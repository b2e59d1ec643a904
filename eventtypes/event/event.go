package event

import (
	"time"
)

// Base is the underlying event across all processes
type Base struct {
	Offset   int64
	Exchange string
	Symbol   string
	Time     time.Time
	Interval time.Duration
}

// GetOffset returns the offset
func (b *Base) GetOffset() int64 {
	return b.Offset
}

// SetOffset sets the offset
func (b *Base) SetOffset(o int64) {
	b.Offset = o
}

// GetExchange returns the exchange
func (b *Base) GetExchange() string {
	return b.Exchange
}

// GetSymbol returns the symbol
func (b *Base) GetSymbol() string {
	return b.Symbol
}

// GetTime returns the time
func (b *Base) GetTime() time.Time {
	return b.Time
}

// GetInterval returns the interval
func (b *Base) GetInterval() time.Duration {
	return b.Interval
}
