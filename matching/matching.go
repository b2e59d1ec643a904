package matching

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantarc/gocta/common"
	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/order"
)

// New creates a matching engine for one instrument
func New(runID, exchange, symbol string, log *zap.Logger) (*Engine, error) {
	if symbol == "" || log == nil {
		return nil, common.ErrNilArguments
	}
	return &Engine{
		runID:    runID,
		exchange: exchange,
		symbol:   symbol,
		log:      log.With(zap.String("symbol", symbol)),
	}, nil
}

// Submit queues a submitted order for crossing against subsequent bars
func (e *Engine) Submit(o *order.Order) error {
	if o == nil {
		return order.ErrSubmissionIsNil
	}
	if err := o.Validate(e.symbol); err != nil {
		return err
	}
	e.pending = append(e.pending, o)
	return nil
}

// PendingCount returns how many orders await resolution
func (e *Engine) PendingCount() int {
	return len(e.pending)
}

// Cancel removes a single pending order by id, marking it cancelled
func (e *Engine) Cancel(id string) (*order.Order, error) {
	for i := range e.pending {
		if e.pending[i].ID != id {
			continue
		}
		o := e.pending[i]
		o.Status = order.Cancelled
		e.pending = append(e.pending[:i], e.pending[i+1:]...)
		return o, nil
	}
	return nil, fmt.Errorf("%w: %v", order.ErrOrderNotFound, id)
}

// CancelAll cancels every pending order and returns them in submission
// order. Used when a run stops or the feed is exhausted
func (e *Engine) CancelAll() []*order.Order {
	cancelled := e.pending
	e.pending = nil
	for i := range cancelled {
		cancelled[i].Status = order.Cancelled
	}
	return cancelled
}

// MatchBar evaluates every pending order against the bar's price range and
// returns the resulting trades in submission order. A buy-side limit at P
// crosses when P >= bar low and fills at min(P, bar open); a sell-side
// limit crosses when P <= bar high and fills at max(P, bar open). Capping
// at the open stops a resting order from claiming a better price than the
// market ever offered it. Orders that do not cross remain pending
func (e *Engine) MatchBar(b *bar.Bar) ([]*order.Trade, error) {
	if b == nil {
		return nil, common.ErrNilEvent
	}
	var trades []*order.Trade
	remaining := e.pending[:0]
	for _, o := range e.pending {
		fillPrice, crossed := crossPrice(o, b)
		if !crossed {
			remaining = append(remaining, o)
			continue
		}
		o.Status = order.Filled
		e.tradeSeq++
		t := &order.Trade{
			ID:        e.nextID(),
			OrderID:   o.ID,
			Sequence:  o.Sequence,
			Exchange:  e.exchange,
			Symbol:    e.symbol,
			Direction: o.Direction,
			Price:     fillPrice,
			Volume:    o.Volume,
			Time:      b.Time,
		}
		trades = append(trades, t)
		e.log.Debug("order crossed",
			zap.String("order", o.ID),
			zap.String("direction", string(o.Direction)),
			zap.String("price", fillPrice.String()))
	}
	e.pending = remaining
	return trades, nil
}

func crossPrice(o *order.Order, b *bar.Bar) (decimal.Decimal, bool) {
	if o.Direction.IsBuySide() {
		if o.Price.GreaterThanOrEqual(b.Low) {
			return decimal.Min(o.Price, b.Open), true
		}
		return decimal.Zero, false
	}
	if o.Price.LessThanOrEqual(b.High) {
		return decimal.Max(o.Price, b.Open), true
	}
	return decimal.Zero, false
}

func (e *Engine) nextID() string {
	return uuid.NewV5(uuid.NamespaceOID, fmt.Sprintf("%s/trade/%d", e.runID, e.tradeSeq)).String()
}
