package strategy

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/eventtypes/tick"
	"github.com/quantarc/gocta/order"
)

// Context holds one strategy instance's runtime state: lifecycle, net
// position, pending orders and the submission channel to the matching
// layer. A context is owned by exactly one run and is never shared
type Context struct {
	runID     string
	exchange  string
	symbol    string
	handler   Handler
	submitter Submitter
	log       *zap.Logger

	state       State
	pos         decimal.Decimal
	pending     map[string]*order.Order
	warmupBars  int
	sequence    int64
	currentTime time.Time
}

// NewContext wires a strategy handler to its submission channel. The runID
// seeds deterministic order identity so that replaying an identical feed
// produces identical ids
func NewContext(runID, exchange, symbol string, h Handler, s Submitter, log *zap.Logger) (*Context, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if s == nil || log == nil {
		return nil, fmt.Errorf("%w: submitter or logger", ErrNilHandler)
	}
	return &Context{
		runID:     runID,
		exchange:  exchange,
		symbol:    symbol,
		handler:   h,
		submitter: s,
		log:       log.With(zap.String("strategy", h.Name()), zap.String("symbol", symbol)),
		state:     Created,
		pending:   make(map[string]*order.Order),
	}, nil
}

// State returns the current lifecycle state
func (c *Context) State() State {
	return c.state
}

// Position returns the strategy's signed net position, positive long
func (c *Context) Position() decimal.Decimal {
	return c.pos
}

// Symbol returns the instrument the context trades
func (c *Context) Symbol() string {
	return c.symbol
}

// WarmupBars returns how many warm-up bars OnInit requested
func (c *Context) WarmupBars() int {
	return c.warmupBars
}

// WriteLog emits a strategy-authored log line through the run's logger
func (c *Context) WriteLog(msg string) {
	c.log.Info(msg)
}

// Initialize transitions created -> initializing and runs the strategy's
// OnInit, during which it may request warm-up history via LoadBars
func (c *Context) Initialize() error {
	if c.state != Created {
		return fmt.Errorf("%w: initialize from %v", ErrInvalidTransition, c.state)
	}
	c.state = Initializing
	return c.handler.OnInit(c)
}

// Start transitions initializing/stopped -> running and begins dispatch
func (c *Context) Start() error {
	if c.state != Initializing && c.state != Stopped {
		return fmt.Errorf("%w: start from %v", ErrInvalidTransition, c.state)
	}
	c.state = Running
	return c.handler.OnStart(c)
}

// Stop transitions running -> stopped. Pending orders are cancelled
// atomically with the transition: the state flips first so nothing can
// fill once stop is observed, then every pending order is cancelled and
// reported
func (c *Context) Stop() error {
	if c.state != Running {
		return fmt.Errorf("%w: stop from %v", ErrInvalidTransition, c.state)
	}
	c.state = Stopped
	cancelled := c.submitter.CancelAll()
	for i := range cancelled {
		delete(c.pending, cancelled[i].ID)
		if err := c.handler.OnOrder(c, cancelled[i]); err != nil {
			return err
		}
	}
	return c.handler.OnStop(c)
}

// LoadBars requests count bars of warm-up history to pre-fill indicator
// series before the context goes live. Valid only inside OnInit
func (c *Context) LoadBars(count int) error {
	if c.state != Initializing {
		return fmt.Errorf("%w: in state %v", ErrNotInitializing, c.state)
	}
	if count < 0 {
		count = 0
	}
	c.warmupBars = count
	return nil
}

// DispatchTick forwards a tick to the strategy while running
func (c *Context) DispatchTick(t *tick.Tick) error {
	if c.state != Running {
		return nil
	}
	c.currentTime = t.Time
	return c.handler.OnTick(c, t)
}

// DispatchBar forwards a completed bar to the strategy. Warm-up bars are
// dispatched while initializing so indicator series fill; order primitives
// reject until running, so warm-up can never trade
func (c *Context) DispatchBar(b *bar.Bar) error {
	if c.state != Running && c.state != Initializing {
		return nil
	}
	c.currentTime = b.Time
	return c.handler.OnBar(c, b)
}

// NotifyOrder reports an order status change to the strategy
func (c *Context) NotifyOrder(o *order.Order) error {
	if o.Status.IsTerminal() {
		delete(c.pending, o.ID)
	}
	return c.handler.OnOrder(c, o)
}

// NotifyFill resolves a pending order against its trade, reporting the
// order's terminal status before the trade itself, mirroring the gateway
// callback order strategies expect
func (c *Context) NotifyFill(t *order.Trade) error {
	if o, ok := c.pending[t.OrderID]; ok {
		delete(c.pending, t.OrderID)
		if err := c.handler.OnOrder(c, o); err != nil {
			return err
		}
	}
	return c.NotifyTrade(t)
}

// NotifyTrade applies a fill to the context's net position and reports it.
// Trades arrive in submission order, which is what keeps the two-legged
// position reversal ending at the intended net size
func (c *Context) NotifyTrade(t *order.Trade) error {
	c.pos = c.pos.Add(t.Volume.Mul(t.Direction.PositionSign()))
	return c.handler.OnTrade(c, t)
}

// Pending returns the ids of orders awaiting resolution
func (c *Context) Pending() []string {
	ids := make([]string, 0, len(c.pending))
	for id := range c.pending {
		ids = append(ids, id)
	}
	return ids
}

// Buy enqueues a long-open limit order intent
func (c *Context) Buy(price, volume decimal.Decimal) (*order.Order, error) {
	return c.submit(order.Buy, price, volume)
}

// Sell enqueues a long-close limit order intent
func (c *Context) Sell(price, volume decimal.Decimal) (*order.Order, error) {
	return c.submit(order.Sell, price, volume)
}

// Short enqueues a short-open limit order intent
func (c *Context) Short(price, volume decimal.Decimal) (*order.Order, error) {
	return c.submit(order.Short, price, volume)
}

// Cover enqueues a short-close limit order intent
func (c *Context) Cover(price, volume decimal.Decimal) (*order.Order, error) {
	return c.submit(order.Cover, price, volume)
}

// submit creates the order, rejecting synchronously on invalid volume or an
// inactive context. Acceptance only means the intent is queued; fills are
// reported later through OnTrade, never within the submitting callback
func (c *Context) submit(d order.Direction, price, volume decimal.Decimal) (*order.Order, error) {
	c.sequence++
	o := &order.Order{
		ID:         c.nextID("order"),
		Sequence:   c.sequence,
		Exchange:   c.exchange,
		Symbol:     c.symbol,
		Direction:  d,
		Price:      price,
		Volume:     volume,
		Status:     order.Submitted,
		SubmitTime: c.currentTime,
	}
	if c.state != Running {
		return c.reject(o, order.ErrContextNotRunning)
	}
	if err := o.Validate(c.symbol); err != nil {
		return c.reject(o, err)
	}
	if err := c.submitter.Submit(o); err != nil {
		return c.reject(o, err)
	}
	c.pending[o.ID] = o
	if err := c.handler.OnOrder(c, o); err != nil {
		return o, err
	}
	return o, nil
}

func (c *Context) reject(o *order.Order, reason error) (*order.Order, error) {
	o.Status = order.Rejected
	o.Reason = reason.Error()
	if err := c.handler.OnOrder(c, o); err != nil {
		return o, err
	}
	return o, reason
}

// nextID derives a deterministic v5 uuid from the run id and submission
// sequence. Random v4 ids would break byte-identical replay
func (c *Context) nextID(kind string) string {
	return uuid.NewV5(uuid.NamespaceOID, fmt.Sprintf("%s/%s/%d", c.runID, kind, c.sequence)).String()
}
