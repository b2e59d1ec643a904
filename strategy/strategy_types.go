package strategy

import (
	"errors"

	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/eventtypes/tick"
	"github.com/quantarc/gocta/order"
)

var (
	// ErrNilHandler is returned when a context is created without a strategy
	ErrNilHandler = errors.New("strategy handler is nil")
	// ErrInvalidTransition is returned when a lifecycle call does not apply
	// to the current state
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	// ErrNotInitializing is returned when warm-up data is requested outside
	// of OnInit
	ErrNotInitializing = errors.New("warm-up may only be requested during initialization")
	// ErrStrategyNotFound is returned when a strategy name has not been
	// registered
	ErrStrategyNotFound = errors.New("strategy not found")
	// ErrInvalidCustomSettings is returned when strategy parameter overrides
	// cannot be applied
	ErrInvalidCustomSettings = errors.New("invalid custom settings")
)

// State enumerates the lifecycle states of a strategy context
type State uint8

// Lifecycle states. Transitions are driven by explicit calls, never implicit
const (
	Created State = iota
	Initializing
	Running
	Stopped
)

// String implements the stringer interface
func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Handler defines all functionality a strategy must implement for the
// engine to drive it. The engine only ever holds this interface, never a
// concrete strategy type
type Handler interface {
	Name() string
	Description() string
	Schema() *Schema
	SetDefaults()
	SetCustomSettings(map[string]any) error
	OnInit(*Context) error
	OnStart(*Context) error
	OnStop(*Context) error
	OnTick(*Context, *tick.Tick) error
	OnBar(*Context, *bar.Bar) error
	OnOrder(*Context, *order.Order) error
	OnTrade(*Context, *order.Trade) error
	OnStopOrder(*Context, *order.Order) error
}

// Field is one named parameter or variable entry of a strategy schema
type Field struct {
	Name  string
	Value any
}

// Schema is the static declaration of a strategy's parameters and
// observable variables, replacing runtime attribute discovery. Parameters
// are fixed once a run starts; variables refresh every bar
type Schema struct {
	Parameters []Field
	Variables  []Field
}

// Submitter is how a context hands accepted order intents to the matching
// layer. CancelAll removes every pending order and returns them in
// submission order
type Submitter interface {
	Submit(*order.Order) error
	CancelAll() []*order.Order
}
