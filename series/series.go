package series

import (
	"fmt"

	"github.com/quantarc/gocta/common"
)

// New creates a RollingSeries with a fixed capacity. Each window that will
// later be requested from the series must be declared up front; a window
// larger than the capacity is a configuration fault and is rejected here
// rather than at query time. With no windows declared the series only
// becomes ready once completely full
func New(capacity int, windows ...int) (*RollingSeries, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCapacity, capacity)
	}
	required := capacity
	for i := range windows {
		if windows[i] <= 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, windows[i])
		}
		// a window needs one extra sample so delta-based and
		// exclude-current statistics stay in range
		if windows[i] >= capacity {
			return nil, fmt.Errorf("%w: window %v capacity %v", ErrWindowExceedsCapacity, windows[i], capacity)
		}
		if i == 0 || windows[i]+1 > required {
			required = windows[i] + 1
		}
	}
	return &RollingSeries{
		values:   make([]float64, capacity),
		capacity: capacity,
		required: required,
	}, nil
}

// Push appends one value, evicting the oldest once capacity is exceeded
func (s *RollingSeries) Push(v float64) {
	s.values[s.head] = v
	s.head = (s.head + 1) % s.capacity
	if s.count < s.capacity {
		s.count++
	}
}

// Len returns the number of samples currently held
func (s *RollingSeries) Len() int {
	return s.count
}

// Cap returns the fixed capacity
func (s *RollingSeries) Cap() int {
	return s.capacity
}

// Ready returns true once enough samples have been pushed to satisfy every
// declared window including its delta and exclude-current variants. Each
// statistic additionally answers on its own as soon as it holds the samples
// it consumes
func (s *RollingSeries) Ready() bool {
	return s.count >= s.required
}

// Latest returns the i-th most recent value, Latest(0) being the newest push
func (s *RollingSeries) Latest(i int) (float64, error) {
	if i < 0 || i >= s.count {
		return 0, fmt.Errorf("%w: index %v with %v held", ErrLatestOutOfRange, i, s.count)
	}
	return s.values[(s.head-1-i+s.capacity*2)%s.capacity], nil
}

// Values returns the held samples in insertion order, oldest first. The
// returned slice is a copy and safe to hand to indicator libraries
func (s *RollingSeries) Values() []float64 {
	out := make([]float64, s.count)
	for i := 0; i < s.count; i++ {
		out[s.count-1-i], _ = s.Latest(i)
	}
	return out
}

// checkWindow validates a queried window against the capacity and against
// how many samples the statistic actually consumes: window for plain
// aggregates, window+1 for delta-based or exclude-current ones
func (s *RollingSeries) checkWindow(window, needed int) error {
	if window <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, window)
	}
	if window >= s.capacity {
		return fmt.Errorf("%w: window %v capacity %v", ErrWindowExceedsCapacity, window, s.capacity)
	}
	if needed > s.count {
		return fmt.Errorf("%w: window %v with %v held", common.ErrInsufficientHistory, window, s.count)
	}
	return nil
}

// SMA returns the arithmetic mean of the last window values, the newest
// push included. Answerable as soon as window samples are held
func (s *RollingSeries) SMA(window int) (float64, error) {
	if err := s.checkWindow(window, window); err != nil {
		return 0, err
	}
	var sum float64
	for i := 0; i < window; i++ {
		v, err := s.Latest(i)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(window), nil
}

// RSI returns the Wilder-style relative strength over the last window
// value-to-value deltas, gains and losses averaged separately. The result
// is always within [0, 100]; a flat feed with no variance is defined as 50
func (s *RollingSeries) RSI(window int) (float64, error) {
	// window deltas consume window+1 samples
	if err := s.checkWindow(window, window+1); err != nil {
		return 0, err
	}
	var gain, loss float64
	for i := 0; i < window; i++ {
		newer, err := s.Latest(i)
		if err != nil {
			return 0, err
		}
		older, err := s.Latest(i + 1)
		if err != nil {
			return 0, err
		}
		delta := newer - older
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	if gain == 0 && loss == 0 {
		return 50, nil
	}
	if loss == 0 {
		return 100, nil
	}
	rs := (gain / float64(window)) / (loss / float64(window))
	return 100 - 100/(1+rs), nil
}

// DonchianHigh returns the maximum over the last window values. Breakout
// entries pass excludeCurrent to keep a bar's own extreme out of the channel
// so a fresh high cannot signal against itself
func (s *RollingSeries) DonchianHigh(window int, excludeCurrent bool) (float64, error) {
	return s.extreme(window, excludeCurrent, true)
}

// DonchianLow returns the minimum over the last window values, optionally
// excluding the most recent push
func (s *RollingSeries) DonchianLow(window int, excludeCurrent bool) (float64, error) {
	return s.extreme(window, excludeCurrent, false)
}

func (s *RollingSeries) extreme(window int, excludeCurrent, high bool) (float64, error) {
	offset := 0
	if excludeCurrent {
		offset = 1
	}
	if err := s.checkWindow(window, window+offset); err != nil {
		return 0, err
	}
	result, err := s.Latest(offset)
	if err != nil {
		return 0, err
	}
	for i := 1; i < window; i++ {
		v, err := s.Latest(i + offset)
		if err != nil {
			return 0, err
		}
		if (high && v > result) || (!high && v < result) {
			result = v
		}
	}
	return result, nil
}
