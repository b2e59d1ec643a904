package macdcross

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/series"
	"github.com/quantarc/gocta/strategy"
	"github.com/quantarc/gocta/strategy/base"
)

const (
	// Name is the strategy name
	Name            = "macdcross"
	fastPeriodKey   = "fast-period"
	slowPeriodKey   = "slow-period"
	signalPeriodKey = "signal-period"
	fixedSizeKey    = "fixed-size"
	priceOffsetKey  = "price-offset"
	description     = `Trades the MACD histogram flipping sign: a cross above the signal line ` +
		`opens or reverses into a long, a cross below into a short`

	seriesSize = 120
)

// Strategy is an implementation of the strategy.Handler interface
type Strategy struct {
	base.Strategy
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
	fixedSize    decimal.Decimal
	priceOffset  decimal.Decimal

	bars     *series.BarSeries
	prevHist float64
	havePrev bool
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides an overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// SetDefaults sets parameter defaults and declares the schema
func (s *Strategy) SetDefaults() {
	s.fastPeriod = 12
	s.slowPeriod = 26
	s.signalPeriod = 9
	s.fixedSize = decimal.NewFromInt(1)
	s.priceOffset = decimal.NewFromInt(5)
	s.declare()
}

func (s *Strategy) declare() {
	s.Declare(
		[]strategy.Field{
			{Name: fastPeriodKey, Value: s.fastPeriod},
			{Name: slowPeriodKey, Value: s.slowPeriod},
			{Name: signalPeriodKey, Value: s.signalPeriod},
			{Name: fixedSizeKey, Value: s.fixedSize},
			{Name: priceOffsetKey, Value: s.priceOffset},
		},
		[]strategy.Field{
			{Name: "macd", Value: 0.0},
			{Name: "signal", Value: 0.0},
			{Name: "histogram", Value: 0.0},
		})
}

// SetCustomSettings overrides declared parameter defaults
func (s *Strategy) SetCustomSettings(settings map[string]any) error {
	for k, v := range settings {
		f, ok := v.(float64)
		if !ok || f <= 0 {
			return fmt.Errorf("%w: %v value %v", strategy.ErrInvalidCustomSettings, k, v)
		}
		switch k {
		case fastPeriodKey:
			s.fastPeriod = int(f)
		case slowPeriodKey:
			s.slowPeriod = int(f)
		case signalPeriodKey:
			s.signalPeriod = int(f)
		case fixedSizeKey:
			s.fixedSize = decimal.NewFromFloat(f)
		case priceOffsetKey:
			s.priceOffset = decimal.NewFromFloat(f)
		default:
			return fmt.Errorf("%w: unrecognised key %v", strategy.ErrInvalidCustomSettings, k)
		}
	}
	if s.fastPeriod >= s.slowPeriod {
		return fmt.Errorf("%w: fast period %v must be below slow period %v",
			strategy.ErrInvalidCustomSettings, s.fastPeriod, s.slowPeriod)
	}
	s.declare()
	return nil
}

// OnInit builds the close series and requests warm-up long enough for the
// slow and signal EMAs to stabilise
func (s *Strategy) OnInit(ctx *strategy.Context) error {
	var err error
	s.bars, err = series.NewBarSeries(seriesSize, s.slowPeriod+s.signalPeriod)
	if err != nil {
		return err
	}
	ctx.WriteLog("macd strategy initialized")
	return ctx.LoadBars(s.slowPeriod + s.signalPeriod)
}

// OnBar feeds the close snapshot to the MACD calculation and trades
// histogram sign flips
func (s *Strategy) OnBar(ctx *strategy.Context, b *bar.Bar) error {
	if err := s.bars.UpdateBar(b); err != nil {
		return err
	}
	if !s.bars.Ready() {
		return nil
	}
	closes := s.bars.Close().Values()
	if len(closes) < s.slowPeriod+s.signalPeriod-2 {
		return nil
	}
	macd, signalVals, hist := indicators.MACD(closes, s.fastPeriod, s.slowPeriod, s.signalPeriod)
	if len(hist) == 0 {
		return nil
	}
	latest := hist[len(hist)-1]
	s.SetVariable("macd", macd[len(macd)-1])
	s.SetVariable("signal", signalVals[len(signalVals)-1])
	s.SetVariable("histogram", latest)

	if !s.havePrev {
		s.prevHist = latest
		s.havePrev = true
		return nil
	}
	crossedUp := s.prevHist <= 0 && latest > 0
	crossedDown := s.prevHist >= 0 && latest < 0
	s.prevHist = latest

	pos := ctx.Position()
	switch {
	case crossedUp:
		price := b.Close.Add(s.priceOffset)
		if pos.Sign() < 0 {
			if _, err := ctx.Cover(price, pos.Abs()); err != nil {
				return err
			}
		}
		if pos.Sign() <= 0 {
			if _, err := ctx.Buy(price, s.fixedSize); err != nil {
				return err
			}
		}
	case crossedDown:
		price := b.Close.Sub(s.priceOffset)
		if pos.Sign() > 0 {
			if _, err := ctx.Sell(price, pos.Abs()); err != nil {
				return err
			}
		}
		if pos.Sign() >= 0 {
			if _, err := ctx.Short(price, s.fixedSize); err != nil {
				return err
			}
		}
	}
	return nil
}
