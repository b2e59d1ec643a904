package base

import (
	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/eventtypes/tick"
	"github.com/quantarc/gocta/order"
	"github.com/quantarc/gocta/strategy"
)

// Strategy is the base implementation of the strategy.Handler interface.
// It stores the declared parameter/variable schema and supplies no-op
// lifecycle callbacks so concrete strategies only override what they use
type Strategy struct {
	schema strategy.Schema
}

// Declare registers the strategy's parameter and variable schema. Called
// once from SetDefaults; the declared order is the observable order
func (s *Strategy) Declare(parameters, variables []strategy.Field) {
	s.schema = strategy.Schema{
		Parameters: append([]strategy.Field(nil), parameters...),
		Variables:  append([]strategy.Field(nil), variables...),
	}
}

// Schema returns the declared schema with current values
func (s *Strategy) Schema() *strategy.Schema {
	return &s.schema
}

// SetParameter updates a declared parameter value, reporting whether the
// name was declared
func (s *Strategy) SetParameter(name string, value any) bool {
	for i := range s.schema.Parameters {
		if s.schema.Parameters[i].Name == name {
			s.schema.Parameters[i].Value = value
			return true
		}
	}
	return false
}

// SetVariable updates a declared observable variable value
func (s *Strategy) SetVariable(name string, value any) bool {
	for i := range s.schema.Variables {
		if s.schema.Variables[i].Name == name {
			s.schema.Variables[i].Value = value
			return true
		}
	}
	return false
}

// OnInit is a no-op default
func (s *Strategy) OnInit(*strategy.Context) error { return nil }

// OnStart is a no-op default
func (s *Strategy) OnStart(*strategy.Context) error { return nil }

// OnStop is a no-op default
func (s *Strategy) OnStop(*strategy.Context) error { return nil }

// OnTick is a no-op default; bar-driven strategies aggregate ticks upstream
func (s *Strategy) OnTick(*strategy.Context, *tick.Tick) error { return nil }

// OnBar is a no-op default
func (s *Strategy) OnBar(*strategy.Context, *bar.Bar) error { return nil }

// OnOrder is a no-op default
func (s *Strategy) OnOrder(*strategy.Context, *order.Order) error { return nil }

// OnTrade is a no-op default
func (s *Strategy) OnTrade(*strategy.Context, *order.Trade) error { return nil }

// OnStopOrder is a no-op default
func (s *Strategy) OnStopOrder(*strategy.Context, *order.Order) error { return nil }

// CrossOver reports whether the fast series crossed from at-or-below to
// above the slow series between the previous and current samples
func CrossOver(currFast, prevFast, currSlow, prevSlow float64) bool {
	return currFast > currSlow && prevFast <= prevSlow
}

// CrossUnder reports whether the fast series crossed from at-or-above to
// below the slow series between the previous and current samples
func CrossUnder(currFast, prevFast, currSlow, prevSlow float64) bool {
	return currFast < currSlow && prevFast >= prevSlow
}
