package series

import (
	"github.com/quantarc/gocta/common"
	"github.com/quantarc/gocta/eventtypes/bar"
)

// BarSeries bundles one RollingSeries per OHLCV field so strategies can
// update all of their indicator state from a single bar push
type BarSeries struct {
	open   *RollingSeries
	high   *RollingSeries
	low    *RollingSeries
	close  *RollingSeries
	volume *RollingSeries
}

// NewBarSeries creates a BarSeries where every per-field series shares the
// same capacity and declared windows
func NewBarSeries(capacity int, windows ...int) (*BarSeries, error) {
	b := &BarSeries{}
	for _, target := range []**RollingSeries{&b.open, &b.high, &b.low, &b.close, &b.volume} {
		s, err := New(capacity, windows...)
		if err != nil {
			return nil, err
		}
		*target = s
	}
	return b, nil
}

// UpdateBar pushes one completed bar into every per-field series
func (b *BarSeries) UpdateBar(bd *bar.Bar) error {
	if bd == nil {
		return common.ErrNilEvent
	}
	b.open.Push(bd.Open.InexactFloat64())
	b.high.Push(bd.High.InexactFloat64())
	b.low.Push(bd.Low.InexactFloat64())
	b.close.Push(bd.Close.InexactFloat64())
	b.volume.Push(bd.Volume.InexactFloat64())
	return nil
}

// Ready returns whether enough bars have been pushed for the declared windows
func (b *BarSeries) Ready() bool {
	return b.close.Ready()
}

// Open returns the open price series
func (b *BarSeries) Open() *RollingSeries {
	return b.open
}

// High returns the high price series
func (b *BarSeries) High() *RollingSeries {
	return b.high
}

// Low returns the low price series
func (b *BarSeries) Low() *RollingSeries {
	return b.low
}

// Close returns the close price series
func (b *BarSeries) Close() *RollingSeries {
	return b.close
}

// Volume returns the volume series
func (b *BarSeries) Volume() *RollingSeries {
	return b.volume
}
