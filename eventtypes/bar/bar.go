package bar

import (
	"github.com/shopspring/decimal"

	"github.com/quantarc/gocta/eventtypes/event"
)

// Bar holds OHLCV data for one completed interval and is processed as a
// common.DataEventHandler type. Time marks the interval close
type Bar struct {
	event.Base
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// GetOpenPrice returns the open price of the bar
func (b *Bar) GetOpenPrice() decimal.Decimal {
	return b.Open
}

// GetHighPrice returns the high price of the bar
func (b *Bar) GetHighPrice() decimal.Decimal {
	return b.High
}

// GetLowPrice returns the low price of the bar
func (b *Bar) GetLowPrice() decimal.Decimal {
	return b.Low
}

// GetClosePrice returns the closing price of the bar
func (b *Bar) GetClosePrice() decimal.Decimal {
	return b.Close
}

// GetVolume returns the volume of the bar
func (b *Bar) GetVolume() decimal.Decimal {
	return b.Volume
}
