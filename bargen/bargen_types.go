package bargen

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantarc/gocta/eventtypes/bar"
)

var (
	// ErrInvalidInterval is returned when a generator is constructed with a
	// non-positive interval
	ErrInvalidInterval = errors.New("bar interval must be positive")
	// ErrNilCallback is returned when no bar callback is supplied
	ErrNilCallback = errors.New("bar callback is nil")
)

// Callback receives each completed bar strictly in timestamp order
type Callback func(*bar.Bar) error

// Generator consumes a time-ordered tick stream for one symbol and emits a
// completed bar whenever an interval boundary is crossed. Intervals within
// which no tick occurred produce no bar
type Generator struct {
	exchange string
	symbol   string
	interval time.Duration
	onBar    Callback

	current     *bar.Bar
	bucket      int64
	lastCum     decimal.Decimal
	haveCum     bool
	haveBar     bool
	barsEmitted int64
}
