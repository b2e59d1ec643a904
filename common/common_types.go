package common

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNilArguments is returned when a constructor or handler receives nil
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is returned when an event handler receives a nil event
	ErrNilEvent = errors.New("nil event received")
	// ErrInsufficientHistory is returned when an indicator is queried before
	// its window has accumulated the required number of samples
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrOutOfOrder is returned when an event's timestamp precedes data that
	// has already been processed
	ErrOutOfOrder = errors.New("timestamp ordering violation")
	// ErrNoData is returned when a calculation is requested over an empty set
	ErrNoData = errors.New("no data")
)

// Event interface implemented by all event types processed by the engine
type Event interface {
	GetOffset() int64
	SetOffset(int64)
	GetExchange() string
	GetSymbol() string
	GetTime() time.Time
	GetInterval() time.Duration
}

// DataEventHandler interface used for loading and interacting with price data
type DataEventHandler interface {
	Event
	GetOpenPrice() decimal.Decimal
	GetHighPrice() decimal.Decimal
	GetLowPrice() decimal.Decimal
	GetClosePrice() decimal.Decimal
	GetVolume() decimal.Decimal
}
