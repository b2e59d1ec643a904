package strategy

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/eventtypes/event"
	"github.com/quantarc/gocta/eventtypes/tick"
	"github.com/quantarc/gocta/order"
)

const (
	testExchange = "CFFEX"
	testSymbol   = "IF888"
)

// fakeSubmitter queues accepted orders, standing in for the matching layer
type fakeSubmitter struct {
	accepted  []*order.Order
	submitErr error
}

func (f *fakeSubmitter) Submit(o *order.Order) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.accepted = append(f.accepted, o)
	return nil
}

func (f *fakeSubmitter) CancelAll() []*order.Order {
	cancelled := f.accepted
	f.accepted = nil
	for i := range cancelled {
		cancelled[i].Status = order.Cancelled
	}
	return cancelled
}

// recordingStrategy records every callback in arrival order
type recordingStrategy struct {
	warmup   int
	events   []string
	bars     []*bar.Bar
	orders   []*order.Order
	trades   []*order.Trade
	settings map[string]interface{}
}

func (s *recordingStrategy) Name() string        { return "recording" }
func (s *recordingStrategy) Description() string { return "records callbacks for tests" }
func (s *recordingStrategy) Schema() *Schema     { return &Schema{} }
func (s *recordingStrategy) SetDefaults()        {}
func (s *recordingStrategy) SetCustomSettings(m map[string]interface{}) error {
	s.settings = m
	return nil
}

func (s *recordingStrategy) OnInit(c *Context) error {
	s.events = append(s.events, "init")
	return c.LoadBars(s.warmup)
}

func (s *recordingStrategy) OnStart(*Context) error {
	s.events = append(s.events, "start")
	return nil
}

func (s *recordingStrategy) OnStop(*Context) error {
	s.events = append(s.events, "stop")
	return nil
}

func (s *recordingStrategy) OnTick(_ *Context, t *tick.Tick) error {
	s.events = append(s.events, "tick")
	return nil
}

func (s *recordingStrategy) OnBar(_ *Context, b *bar.Bar) error {
	s.events = append(s.events, "bar")
	s.bars = append(s.bars, b)
	return nil
}

func (s *recordingStrategy) OnOrder(_ *Context, o *order.Order) error {
	s.events = append(s.events, "order:"+string(o.Status))
	s.orders = append(s.orders, o)
	return nil
}

func (s *recordingStrategy) OnTrade(_ *Context, t *order.Trade) error {
	s.events = append(s.events, "trade")
	s.trades = append(s.trades, t)
	return nil
}

func (s *recordingStrategy) OnStopOrder(*Context, *order.Order) error { return nil }

func testContext(t *testing.T) (*Context, *recordingStrategy, *fakeSubmitter) {
	t.Helper()
	s := &recordingStrategy{}
	f := &fakeSubmitter{}
	c, err := NewContext("test-run", testExchange, testSymbol, s, f, zap.NewNop())
	require.NoError(t, err)
	return c, s, f
}

func testBar(ts time.Time) *bar.Bar {
	return &bar.Bar{
		Base: event.Base{
			Exchange: testExchange,
			Symbol:   testSymbol,
			Time:     ts,
			Interval: time.Minute,
		},
		Open:  decimal.NewFromInt(100),
		High:  decimal.NewFromInt(101),
		Low:   decimal.NewFromInt(99),
		Close: decimal.NewFromInt(100),
	}
}

func TestNewContext(t *testing.T) {
	t.Parallel()
	_, err := NewContext("r", testExchange, testSymbol, nil, &fakeSubmitter{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNilHandler)
	_, err = NewContext("r", testExchange, testSymbol, &recordingStrategy{}, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrNilHandler)
	_, err = NewContext("r", testExchange, testSymbol, &recordingStrategy{}, &fakeSubmitter{}, nil)
	assert.ErrorIs(t, err, ErrNilHandler)
}

func TestLifecycle(t *testing.T) {
	t.Parallel()
	c, s, _ := testContext(t)
	assert.Equal(t, Created, c.State())
	assert.ErrorIs(t, c.Start(), ErrInvalidTransition)
	assert.ErrorIs(t, c.Stop(), ErrInvalidTransition)

	require.NoError(t, c.Initialize())
	assert.Equal(t, Initializing, c.State())
	assert.ErrorIs(t, c.Initialize(), ErrInvalidTransition)

	require.NoError(t, c.Start())
	assert.Equal(t, Running, c.State())
	assert.ErrorIs(t, c.Start(), ErrInvalidTransition)

	require.NoError(t, c.Stop())
	assert.Equal(t, Stopped, c.State())
	assert.Equal(t, []string{"init", "start", "stop"}, s.events)

	// a stopped context may restart
	require.NoError(t, c.Start())
	assert.Equal(t, Running, c.State())
}

func TestLoadBarsOnlyDuringInit(t *testing.T) {
	t.Parallel()
	c, s, _ := testContext(t)
	s.warmup = 30
	assert.ErrorIs(t, c.LoadBars(10), ErrNotInitializing)

	require.NoError(t, c.Initialize())
	assert.Equal(t, 30, c.WarmupBars())

	require.NoError(t, c.Start())
	assert.ErrorIs(t, c.LoadBars(10), ErrNotInitializing)
}

func TestDispatchGating(t *testing.T) {
	t.Parallel()
	c, s, _ := testContext(t)
	ts := time.Date(2019, 1, 2, 9, 31, 0, 0, time.UTC)

	// created: nothing is dispatched
	require.NoError(t, c.DispatchBar(testBar(ts)))
	require.NoError(t, c.DispatchTick(&tick.Tick{Base: event.Base{Symbol: testSymbol, Time: ts}}))
	assert.Empty(t, s.bars)

	// initializing: bars flow for warm-up, ticks do not
	require.NoError(t, c.Initialize())
	require.NoError(t, c.DispatchBar(testBar(ts)))
	require.NoError(t, c.DispatchTick(&tick.Tick{Base: event.Base{Symbol: testSymbol, Time: ts}}))
	assert.Len(t, s.bars, 1)
	assert.NotContains(t, s.events, "tick")

	require.NoError(t, c.Start())
	require.NoError(t, c.DispatchTick(&tick.Tick{Base: event.Base{Symbol: testSymbol, Time: ts}}))
	assert.Contains(t, s.events, "tick")
}

func TestSubmitRejectsUnlessRunning(t *testing.T) {
	t.Parallel()
	c, s, f := testContext(t)
	require.NoError(t, c.Initialize())

	o, err := c.Buy(decimal.NewFromInt(100), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, order.ErrContextNotRunning)
	require.NotNil(t, o)
	assert.Equal(t, order.Rejected, o.Status)
	assert.Empty(t, f.accepted)
	// the rejection is still reported through OnOrder
	assert.Contains(t, s.events, "order:"+string(order.Rejected))
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()
	c, _, f := testContext(t)
	require.NoError(t, c.Initialize())
	require.NoError(t, c.Start())

	o, err := c.Sell(decimal.NewFromInt(100), decimal.Zero)
	assert.ErrorIs(t, err, order.ErrVolumeIsInvalid)
	assert.Equal(t, order.Rejected, o.Status)
	assert.Empty(t, f.accepted)
}

func TestSubmitAccepted(t *testing.T) {
	t.Parallel()
	c, s, f := testContext(t)
	require.NoError(t, c.Initialize())
	require.NoError(t, c.Start())

	o, err := c.Short(decimal.NewFromInt(100), decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, order.Submitted, o.Status)
	assert.Equal(t, order.Short, o.Direction)
	assert.Equal(t, int64(1), o.Sequence)
	require.Len(t, f.accepted, 1)
	assert.Len(t, c.Pending(), 1)
	assert.Contains(t, s.events, "order:"+string(order.Submitted))
}

func TestDeterministicOrderIDs(t *testing.T) {
	t.Parallel()
	run := func() string {
		c, _, _ := testContext(t)
		require.NoError(t, c.Initialize())
		require.NoError(t, c.Start())
		o, err := c.Buy(decimal.NewFromInt(100), decimal.NewFromInt(1))
		require.NoError(t, err)
		return o.ID
	}
	assert.Equal(t, run(), run())
}

func TestStopCancelsPending(t *testing.T) {
	t.Parallel()
	c, s, _ := testContext(t)
	require.NoError(t, c.Initialize())
	require.NoError(t, c.Start())

	_, err := c.Buy(decimal.NewFromInt(100), decimal.NewFromInt(1))
	require.NoError(t, err)
	require.Len(t, c.Pending(), 1)

	require.NoError(t, c.Stop())
	assert.Empty(t, c.Pending())
	assert.Contains(t, s.events, "order:"+string(order.Cancelled))
	// cancellations are reported before OnStop
	assert.Equal(t, "stop", s.events[len(s.events)-1])
}

func TestNotifyFill(t *testing.T) {
	t.Parallel()
	c, s, _ := testContext(t)
	require.NoError(t, c.Initialize())
	require.NoError(t, c.Start())

	o, err := c.Buy(decimal.NewFromInt(100), decimal.NewFromInt(2))
	require.NoError(t, err)
	o.Status = order.Filled

	require.NoError(t, c.NotifyFill(&order.Trade{
		ID:        "t1",
		OrderID:   o.ID,
		Symbol:    testSymbol,
		Direction: order.Buy,
		Price:     decimal.NewFromInt(100),
		Volume:    decimal.NewFromInt(2),
	}))
	assert.Empty(t, c.Pending())
	assert.True(t, c.Position().Equal(decimal.NewFromInt(2)))

	// the order callback precedes the trade callback
	tail := s.events[len(s.events)-2:]
	assert.Equal(t, []string{"order:" + string(order.Filled), "trade"}, tail)

	require.NoError(t, c.NotifyTrade(&order.Trade{
		Symbol:    testSymbol,
		Direction: order.Sell,
		Volume:    decimal.NewFromInt(3),
	}))
	assert.True(t, c.Position().Equal(decimal.NewFromInt(-1)))
}
