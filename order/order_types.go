package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrSubmissionIsNil is returned when an empty order submission is received
	ErrSubmissionIsNil = errors.New("order submission is nil")
	// ErrVolumeIsInvalid is returned when an order is submitted with a
	// volume at or below zero
	ErrVolumeIsInvalid = errors.New("order volume must be positive")
	// ErrSymbolIsUnknown is returned when an order's symbol does not match
	// the instrument the engine was configured for
	ErrSymbolIsUnknown = errors.New("order symbol not recognised")
	// ErrContextNotRunning is returned when an order is submitted outside of
	// a running strategy context
	ErrContextNotRunning = errors.New("strategy context not running")
	// ErrOrderNotFound is returned when an order id lookup fails
	ErrOrderNotFound = errors.New("order not found")
)

// Direction enumerates the four order intents a strategy can express
type Direction string

// Supported order directions
const (
	Buy   Direction = "BUY"   // open long
	Sell  Direction = "SELL"  // close long
	Short Direction = "SHORT" // open short
	Cover Direction = "COVER" // close short
)

// Status defines order lifecycle states. An order transitions from
// Submitted to exactly one terminal state
type Status string

// Supported order statuses
const (
	Submitted Status = "SUBMITTED"
	Filled    Status = "FILLED"
	Cancelled Status = "CANCELLED"
	Rejected  Status = "REJECTED"
)

// Order contains all details for an order event. Price is a limit price
type Order struct {
	ID         string
	Sequence   int64
	Exchange   string
	Symbol     string
	Direction  Direction
	Price      decimal.Decimal
	Volume     decimal.Decimal
	Status     Status
	Reason     string
	SubmitTime time.Time
}

// Trade is the result of crossing an order, immutable and append-only
type Trade struct {
	ID        string
	OrderID   string
	Sequence  int64
	Exchange  string
	Symbol    string
	Direction Direction
	Price     decimal.Decimal
	Volume    decimal.Decimal
	Time      time.Time
}
