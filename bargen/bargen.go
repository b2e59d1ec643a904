package bargen

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantarc/gocta/common"
	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/eventtypes/event"
	"github.com/quantarc/gocta/eventtypes/tick"
	"github.com/quantarc/gocta/order"
)

// New creates a bar Generator for a single symbol and interval
func New(exchange, symbol string, interval time.Duration, onBar Callback) (*Generator, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	if onBar == nil {
		return nil, ErrNilCallback
	}
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", common.ErrNilArguments)
	}
	return &Generator{
		exchange: exchange,
		symbol:   symbol,
		interval: interval,
		onBar:    onBar,
	}, nil
}

// OnTick accumulates a tick into the in-progress bar. Crossing into a new
// interval bucket finalises and emits the previous bar before the tick
// starts the next one. A tick older than the current bucket is an ordering
// violation and is refused, never silently reordered
func (g *Generator) OnTick(t *tick.Tick) error {
	if t == nil {
		return common.ErrNilEvent
	}
	if t.Symbol != g.symbol {
		return fmt.Errorf("%w: %v", order.ErrSymbolIsUnknown, t.Symbol)
	}

	bucket := t.Time.UnixNano() / int64(g.interval)
	if g.haveBar && bucket < g.bucket {
		return fmt.Errorf("%w: tick at %v precedes bucket starting %v",
			common.ErrOutOfOrder, t.Time, time.Unix(0, g.bucket*int64(g.interval)))
	}

	if g.haveBar && bucket > g.bucket {
		if err := g.emit(); err != nil {
			return err
		}
	}

	volume := g.volumeDelta(t)
	if !g.haveBar {
		g.bucket = bucket
		g.current = &bar.Bar{
			Base: event.Base{
				Exchange: g.exchange,
				Symbol:   g.symbol,
				Time:     time.Unix(0, bucket*int64(g.interval)).Add(g.interval).UTC(),
				Interval: g.interval,
			},
			Open:   t.LastPrice,
			High:   t.LastPrice,
			Low:    t.LastPrice,
			Close:  t.LastPrice,
			Volume: volume,
		}
		g.haveBar = true
		return nil
	}

	if t.LastPrice.GreaterThan(g.current.High) {
		g.current.High = t.LastPrice
	}
	if t.LastPrice.LessThan(g.current.Low) {
		g.current.Low = t.LastPrice
	}
	g.current.Close = t.LastPrice
	g.current.Volume = g.current.Volume.Add(volume)
	return nil
}

// Flush finalises and emits the in-progress bar, if any. Used when a live
// feed ends mid-interval; backtests over bar data never need it
func (g *Generator) Flush() error {
	if !g.haveBar {
		return nil
	}
	return g.emit()
}

// BarsEmitted returns how many completed bars have been emitted
func (g *Generator) BarsEmitted() int64 {
	return g.barsEmitted
}

func (g *Generator) emit() error {
	completed := g.current
	g.current = nil
	g.haveBar = false
	g.barsEmitted++
	return g.onBar(completed)
}

// volumeDelta converts the tick's cumulative session volume into the
// increment since the previous tick. A shrinking cumulative volume marks a
// new session and contributes nothing
func (g *Generator) volumeDelta(t *tick.Tick) decimal.Decimal {
	defer func() {
		g.lastCum = t.Volume
		g.haveCum = true
	}()
	if !g.haveCum {
		return decimal.Zero
	}
	delta := t.Volume.Sub(g.lastCum)
	if delta.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return delta
}
