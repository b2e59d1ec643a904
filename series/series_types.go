package series

import "errors"

var (
	// ErrInvalidCapacity is returned when a series is constructed with a
	// capacity at or below zero
	ErrInvalidCapacity = errors.New("series capacity must be positive")
	// ErrInvalidWindow is returned when a declared window is at or below zero
	ErrInvalidWindow = errors.New("window must be positive")
	// ErrWindowExceedsCapacity is returned when a requested window cannot
	// ever be satisfied by the series capacity
	ErrWindowExceedsCapacity = errors.New("window exceeds series capacity")
	// ErrLatestOutOfRange is returned when Latest is asked for more history
	// than has been pushed
	ErrLatestOutOfRange = errors.New("latest index out of range")
)

// RollingSeries is a fixed-capacity insertion-ordered ring buffer of float64
// samples with derived rolling statistics. It never reallocates after
// construction. Not safe for concurrent use; a backtest run owns its series
// exclusively
type RollingSeries struct {
	values   []float64
	head     int
	count    int
	capacity int
	required int
}
