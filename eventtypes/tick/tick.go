package tick

import (
	"github.com/shopspring/decimal"

	"github.com/quantarc/gocta/eventtypes/event"
)

// Tick holds a single observed price update. Volume is cumulative
// since session open, matching what futures gateways push
type Tick struct {
	event.Base
	LastPrice decimal.Decimal
	Volume    decimal.Decimal
}

// GetLastPrice returns the traded price of the tick
func (t *Tick) GetLastPrice() decimal.Decimal {
	return t.LastPrice
}

// GetVolume returns the cumulative session volume at the tick
func (t *Tick) GetVolume() decimal.Decimal {
	return t.Volume
}
