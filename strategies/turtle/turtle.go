package turtle

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
	Name           = "turtle"
	entryWindowKey = "entry-window"
	exitWindowKey  = "exit-window"
	fixedSizeKey   = "fixed-size"
	priceOffsetKey = "price-offset"
	description    = `A simplified turtle system-one: enter on a Donchian channel breakout of ` +
		`the entry window, exit on a breakout of the shorter exit window against the position`

	seriesSize = 100
)

// Strategy is an implementation of the strategy.Handler interface
type Strategy struct {
	base.Strategy
	entryWindow int
	exitWindow  int
	fixedSize   decimal.Decimal
	priceOffset decimal.Decimal

	bars *series.BarSeries
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
	s.entryWindow = 20
	s.exitWindow = 10
	s.fixedSize = decimal.NewFromInt(1)
	s.priceOffset = decimal.NewFromInt(5)
	s.declare()
}

func (s *Strategy) declare() {
	s.Declare(
		[]strategy.Field{
			{Name: entryWindowKey, Value: s.entryWindow},
			{Name: exitWindowKey, Value: s.exitWindow},
			{Name: fixedSizeKey, Value: s.fixedSize},
			{Name: priceOffsetKey, Value: s.priceOffset},
		},
		[]strategy.Field{
			{Name: "entry-up", Value: 0.0},
			{Name: "entry-down", Value: 0.0},
			{Name: "exit-up", Value: 0.0},
			{Name: "exit-down", Value: 0.0},
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
		case entryWindowKey:
			s.entryWindow = int(f)
		case exitWindowKey:
			s.exitWindow = int(f)
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

// OnInit builds the channel series and requests warm-up covering the entry
// window
func (s *Strategy) OnInit(ctx *strategy.Context) error {
	var err error
	s.bars, err = series.NewBarSeries(seriesSize, s.entryWindow, s.exitWindow)
	if err != nil {
		return err
	}
	ctx.WriteLog("turtle strategy initialized")
	return ctx.LoadBars(s.entryWindow + 1)
}

// OnStart logs the transition to live dispatch
func (s *Strategy) OnStart(ctx *strategy.Context) error {
	ctx.WriteLog("turtle strategy started")
	return nil
}

// OnStop logs the stop transition
func (s *Strategy) OnStop(ctx *strategy.Context) error {
	ctx.WriteLog("turtle strategy stopped")
	return nil
}

// OnBar recomputes the Donchian channels and trades breakouts. Channels
// exclude the current bar so a fresh extreme cannot trigger against itself
func (s *Strategy) OnBar(ctx *strategy.Context, b *bar.Bar) error {
	if err := s.bars.UpdateBar(b); err != nil {
		return err
	}
	if !s.bars.Ready() {
		return nil
	}

	entryUp, err := s.bars.High().DonchianHigh(s.entryWindow, true)
	if err != nil {
		return err
	}
	entryDown, err := s.bars.Low().DonchianLow(s.entryWindow, true)
	if err != nil {
		return err
	}
	exitUp, err := s.bars.High().DonchianHigh(s.exitWindow, true)
	if err != nil {
		return err
	}
	exitDown, err := s.bars.Low().DonchianLow(s.exitWindow, true)
	if err != nil {
		return err
	}
	s.SetVariable("entry-up", entryUp)
	s.SetVariable("entry-down", entryDown)
	s.SetVariable("exit-up", exitUp)
	s.SetVariable("exit-down", exitDown)

	price := b.Close.InexactFloat64()
	pos := ctx.Position()
	switch {
	case pos.IsZero():
		if price > entryUp {
			_, err = ctx.Buy(b.Close.Add(s.priceOffset), s.fixedSize)
		} else if price < entryDown {
			_, err = ctx.Short(b.Close.Sub(s.priceOffset), s.fixedSize)
		}
	case pos.Sign() > 0:
		if price < exitDown {
			_, err = ctx.Sell(b.Close.Sub(s.priceOffset), pos.Abs())
		}
	default:
		if price > exitUp {
			_, err = ctx.Cover(b.Close.Add(s.priceOffset), pos.Abs())
		}
	}
	return err
}
