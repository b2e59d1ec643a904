package bargen

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantarc/gocta/common"
	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/eventtypes/event"
	"github.com/quantarc/gocta/eventtypes/tick"
	"github.com/quantarc/gocta/order"
)

const (
	testExchange = "CFFEX"
	testSymbol   = "IF888"
)

func testTick(t time.Time, price, cumVolume float64) *tick.Tick {
	return &tick.Tick{
		Base: event.Base{
			Exchange: testExchange,
			Symbol:   testSymbol,
			Time:     t,
		},
		LastPrice: decimal.NewFromFloat(price),
		Volume:    decimal.NewFromFloat(cumVolume),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New(testExchange, testSymbol, 0, func(*bar.Bar) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = New(testExchange, testSymbol, time.Minute, nil)
	assert.ErrorIs(t, err, ErrNilCallback)

	_, err = New(testExchange, "", time.Minute, func(*bar.Bar) error { return nil })
	assert.ErrorIs(t, err, common.ErrNilArguments)
}

func TestOnTickAggregation(t *testing.T) {
	t.Parallel()
	var emitted []*bar.Bar
	g, err := New(testExchange, testSymbol, time.Minute, func(b *bar.Bar) error {
		emitted = append(emitted, b)
		return nil
	})
	require.NoError(t, err)

	open := time.Date(2019, 1, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, g.OnTick(testTick(open.Add(5*time.Second), 10, 100)))
	require.NoError(t, g.OnTick(testTick(open.Add(55*time.Second), 12, 130)))
	// nothing completes until the bucket rolls over
	assert.Empty(t, emitted)

	require.NoError(t, g.OnTick(testTick(open.Add(70*time.Second), 11, 150)))
	require.Len(t, emitted, 1)
	b := emitted[0]
	assert.True(t, b.Open.Equal(decimal.NewFromInt(10)), "open %v", b.Open)
	assert.True(t, b.High.Equal(decimal.NewFromInt(12)), "high %v", b.High)
	assert.True(t, b.Low.Equal(decimal.NewFromInt(10)), "low %v", b.Low)
	assert.True(t, b.Close.Equal(decimal.NewFromInt(12)), "close %v", b.Close)
	// first tick anchors the session, so only the second tick's increment counts
	assert.True(t, b.Volume.Equal(decimal.NewFromInt(30)), "volume %v", b.Volume)
	assert.Equal(t, open.Add(time.Minute), b.Time)
	assert.Equal(t, int64(1), g.BarsEmitted())
}

func TestOnTickOutOfOrder(t *testing.T) {
	t.Parallel()
	g, err := New(testExchange, testSymbol, time.Minute, func(*bar.Bar) error { return nil })
	require.NoError(t, err)

	open := time.Date(2019, 1, 2, 9, 31, 0, 0, time.UTC)
	require.NoError(t, g.OnTick(testTick(open, 10, 1)))
	err = g.OnTick(testTick(open.Add(-time.Minute), 9, 2))
	assert.ErrorIs(t, err, common.ErrOutOfOrder)
}

func TestOnTickWrongSymbol(t *testing.T) {
	t.Parallel()
	g, err := New(testExchange, testSymbol, time.Minute, func(*bar.Bar) error { return nil })
	require.NoError(t, err)
	tk := testTick(time.Date(2019, 1, 2, 9, 31, 0, 0, time.UTC), 10, 1)
	tk.Symbol = "RB888"
	assert.ErrorIs(t, g.OnTick(tk), order.ErrSymbolIsUnknown)
	assert.ErrorIs(t, g.OnTick(nil), common.ErrNilEvent)
}

func TestGapsEmitNoBars(t *testing.T) {
	t.Parallel()
	var emitted []*bar.Bar
	g, err := New(testExchange, testSymbol, time.Minute, func(b *bar.Bar) error {
		emitted = append(emitted, b)
		return nil
	})
	require.NoError(t, err)

	open := time.Date(2019, 1, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, g.OnTick(testTick(open.Add(time.Second), 10, 1)))
	// five empty intervals later a tick arrives: exactly one bar completes
	require.NoError(t, g.OnTick(testTick(open.Add(5*time.Minute+time.Second), 11, 2)))
	require.Len(t, emitted, 1)
	assert.Equal(t, open.Add(time.Minute), emitted[0].Time)
}

func TestFlush(t *testing.T) {
	t.Parallel()
	var emitted []*bar.Bar
	g, err := New(testExchange, testSymbol, time.Minute, func(b *bar.Bar) error {
		emitted = append(emitted, b)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, g.Flush())
	assert.Empty(t, emitted)

	require.NoError(t, g.OnTick(testTick(time.Date(2019, 1, 2, 9, 30, 1, 0, time.UTC), 10, 1)))
	require.NoError(t, g.Flush())
	require.Len(t, emitted, 1)
	assert.True(t, emitted[0].Close.Equal(decimal.NewFromInt(10)))
}

func TestVolumeSessionReset(t *testing.T) {
	t.Parallel()
	var emitted []*bar.Bar
	g, err := New(testExchange, testSymbol, time.Minute, func(b *bar.Bar) error {
		emitted = append(emitted, b)
		return nil
	})
	require.NoError(t, err)

	open := time.Date(2019, 1, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, g.OnTick(testTick(open.Add(time.Second), 10, 500)))
	// cumulative volume shrinking marks a new session; no negative delta
	require.NoError(t, g.OnTick(testTick(open.Add(2*time.Second), 10, 20)))
	require.NoError(t, g.Flush())
	require.Len(t, emitted, 1)
	assert.True(t, emitted[0].Volume.Equal(decimal.Zero), "volume %v", emitted[0].Volume)
}
