package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantarc/gocta/common"
)

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = New(10, 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = New(10, 10)
	assert.ErrorIs(t, err, ErrWindowExceedsCapacity)

	s, err := New(10, 5)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Cap())
	assert.Zero(t, s.Len())
}

func TestPushRingSemantics(t *testing.T) {
	t.Parallel()
	s, err := New(5, 3)
	require.NoError(t, err)
	for i := 1; i <= 12; i++ {
		s.Push(float64(i))
	}
	assert.Equal(t, 5, s.Len())
	// only the last five values survive, in insertion order
	assert.Equal(t, []float64{8, 9, 10, 11, 12}, s.Values())
}

func TestLatest(t *testing.T) {
	t.Parallel()
	s, err := New(4, 2)
	require.NoError(t, err)
	_, err = s.Latest(0)
	assert.ErrorIs(t, err, ErrLatestOutOfRange)

	s.Push(1)
	s.Push(2)
	s.Push(3)
	v, err := s.Latest(0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	v, err = s.Latest(2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	_, err = s.Latest(3)
	assert.ErrorIs(t, err, ErrLatestOutOfRange)
}

func TestReadyGating(t *testing.T) {
	t.Parallel()
	s, err := New(10, 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.False(t, s.Ready())
		s.Push(float64(i))
	}
	// the declared 3-window needs a fourth sample for its delta and
	// exclude-current forms
	assert.False(t, s.Ready())
	s.Push(3)
	assert.True(t, s.Ready())
}

func TestStatisticSampleRequirements(t *testing.T) {
	t.Parallel()
	s, err := New(10, 3)
	require.NoError(t, err)
	s.Push(42)
	s.Push(42)
	_, err = s.SMA(3)
	assert.ErrorIs(t, err, common.ErrInsufficientHistory)

	// a plain aggregate answers the moment it holds window samples
	s.Push(42)
	v, err := s.SMA(3)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
	v, err = s.DonchianHigh(3, false)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	// delta-based and exclude-current statistics need one more
	_, err = s.RSI(3)
	assert.ErrorIs(t, err, common.ErrInsufficientHistory)
	_, err = s.DonchianLow(3, true)
	assert.ErrorIs(t, err, common.ErrInsufficientHistory)

	s.Push(42)
	_, err = s.RSI(3)
	assert.NoError(t, err)
	_, err = s.DonchianLow(3, true)
	assert.NoError(t, err)
}

func TestSMA(t *testing.T) {
	t.Parallel()
	s, err := New(10, 4)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		s.Push(42)
	}
	v, err := s.SMA(4)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	s2, err := New(10, 3)
	require.NoError(t, err)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		s2.Push(v)
	}
	got, err := s2.SMA(3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)
}

func TestRSI(t *testing.T) {
	t.Parallel()
	s, err := New(20, 5)
	require.NoError(t, err)
	// strictly increasing feed pins RSI to 100
	for i := 1; i <= 6; i++ {
		s.Push(float64(i * 10))
	}
	v, err := s.RSI(5)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	// flat feed has no variance and is defined as 50
	flat, err := New(20, 5)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		flat.Push(7)
	}
	v, err = flat.RSI(5)
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)

	// mixed feed stays within bounds
	mixed, err := New(20, 5)
	require.NoError(t, err)
	for _, p := range []float64{10, 12, 11, 15, 9, 13} {
		mixed.Push(p)
	}
	v, err = mixed.RSI(5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 100.0)

	// strictly decreasing feed pins RSI to 0
	down, err := New(20, 5)
	require.NoError(t, err)
	for i := 6; i >= 1; i-- {
		down.Push(float64(i * 10))
	}
	v, err = down.RSI(5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestDonchian(t *testing.T) {
	t.Parallel()
	s, err := New(10, 4)
	require.NoError(t, err)
	for _, v := range []float64{5, 9, 7, 8, 20} {
		s.Push(v)
	}
	// including the newest push the channel top is the fresh extreme
	hi, err := s.DonchianHigh(4, false)
	require.NoError(t, err)
	assert.Equal(t, 20.0, hi)
	// excluding it keeps the bar's own extreme out of the channel
	hi, err = s.DonchianHigh(4, true)
	require.NoError(t, err)
	assert.Equal(t, 9.0, hi)

	lo, err := s.DonchianLow(4, true)
	require.NoError(t, err)
	assert.Equal(t, 5.0, lo)
	lo, err = s.DonchianLow(4, false)
	require.NoError(t, err)
	assert.Equal(t, 7.0, lo)
}

func TestQueryWindowValidation(t *testing.T) {
	t.Parallel()
	s, err := New(5, 3)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		s.Push(float64(i))
	}
	_, err = s.SMA(0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
	_, err = s.SMA(5)
	assert.ErrorIs(t, err, ErrWindowExceedsCapacity)
}
