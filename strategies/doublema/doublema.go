package doublema

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/series"
	"github.com/quantarc/gocta/strategy"
	"github.com/quantarc/gocta/strategy/base"
)

const (
	// Name is the strategy name
	Name           = "doublema"
	fastWindowKey  = "fast-window"
	slowWindowKey  = "slow-window"
	rsiWindowKey   = "rsi-window"
	fixedSizeKey   = "fixed-size"
	priceOffsetKey = "price-offset"
	description    = `A fast/slow moving-average crossover with an RSI filter: a golden cross ` +
		`opens or reverses into a long, a death cross opens or reverses into a short, and ` +
		`overbought/oversold RSI readings veto new entries`

	rsiOverbought = 70.0
	rsiOversold   = 30.0
	seriesSize    = 100
)

// Strategy is an implementation of the strategy.Handler interface
type Strategy struct {
	base.Strategy
	fastWindow  int
	slowWindow  int
	rsiWindow   int
	fixedSize   decimal.Decimal
	priceOffset decimal.Decimal

	bars               *series.BarSeries
	prevFast, prevSlow float64
	havePrev           bool
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
	s.fastWindow = 10
	s.slowWindow = 20
	s.rsiWindow = 14
	s.fixedSize = decimal.NewFromInt(1)
	// limit orders are priced a few points through the close so signals
	// actually cross on the next bar
	s.priceOffset = decimal.NewFromInt(5)
	s.declare()
}

func (s *Strategy) declare() {
	s.Declare(
		[]strategy.Field{
			{Name: fastWindowKey, Value: s.fastWindow},
			{Name: slowWindowKey, Value: s.slowWindow},
			{Name: rsiWindowKey, Value: s.rsiWindow},
			{Name: fixedSizeKey, Value: s.fixedSize},
			{Name: priceOffsetKey, Value: s.priceOffset},
		},
		[]strategy.Field{
			{Name: "fast-ma", Value: 0.0},
			{Name: "slow-ma", Value: 0.0},
			{Name: "rsi-value", Value: 0.0},
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
		case fastWindowKey:
			s.fastWindow = int(f)
		case slowWindowKey:
			s.slowWindow = int(f)
		case rsiWindowKey:
			s.rsiWindow = int(f)
		case fixedSizeKey:
			s.fixedSize = decimal.NewFromFloat(f)
		case priceOffsetKey:
			s.priceOffset = decimal.NewFromFloat(f)
		default:
			return fmt.Errorf("%w: unrecognised key %v", strategy.ErrInvalidCustomSettings, k)
		}
	}
	s.declare()
	return nil
}

// OnInit builds the indicator series from the final parameter values and
// requests enough warm-up history to have both averages ready at the first
// live bar
func (s *Strategy) OnInit(ctx *strategy.Context) error {
	var err error
	s.bars, err = series.NewBarSeries(seriesSize, s.fastWindow, s.slowWindow, s.rsiWindow)
	if err != nil {
		return err
	}
	ctx.WriteLog("strategy initialized")
	return ctx.LoadBars(s.slowWindow + s.rsiWindow)
}

// OnStart logs the transition to live dispatch
func (s *Strategy) OnStart(ctx *strategy.Context) error {
	ctx.WriteLog("strategy started")
	return nil
}

// OnStop logs the stop transition
func (s *Strategy) OnStop(ctx *strategy.Context) error {
	ctx.WriteLog("strategy stopped")
	return nil
}

// OnBar updates indicator state, then trades moving-average crossovers. A
// signal opposing the held position closes it fully and opens the new side
// as two intents submitted in the same call
func (s *Strategy) OnBar(ctx *strategy.Context, b *bar.Bar) error {
	if err := s.bars.UpdateBar(b); err != nil {
		return err
	}
	if !s.bars.Ready() {
		return nil
	}

	fast, err := s.bars.Close().SMA(s.fastWindow)
	if err != nil {
		return err
	}
	slow, err := s.bars.Close().SMA(s.slowWindow)
	if err != nil {
		return err
	}
	rsi, err := s.bars.Close().RSI(s.rsiWindow)
	if err != nil {
		return err
	}
	s.SetVariable("fast-ma", fast)
	s.SetVariable("slow-ma", slow)
	s.SetVariable("rsi-value", rsi)

	if !s.havePrev {
		s.prevFast, s.prevSlow = fast, slow
		s.havePrev = true
		return nil
	}
	crossOver := base.CrossOver(fast, s.prevFast, slow, s.prevSlow)
	crossUnder := base.CrossUnder(fast, s.prevFast, slow, s.prevSlow)
	s.prevFast, s.prevSlow = fast, slow

	pos := ctx.Position()
	switch {
	case crossOver && rsi < rsiOverbought:
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
	case crossUnder && rsi > rsiOversold:
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
