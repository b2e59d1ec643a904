package matching

import (
	"go.uber.org/zap"

	"github.com/quantarc/gocta/order"
)

// Engine holds unresolved limit orders and decides fills against the price
// range of each bar that follows submission. Orders are kept and crossed
// strictly in submission order so multi-leg intents settle the way the
// strategy expressed them
type Engine struct {
	runID    string
	exchange string
	symbol   string
	log      *zap.Logger

	pending  []*order.Order
	tradeSeq int64
}
