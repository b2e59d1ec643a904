package data

import (
	"errors"

	"github.com/quantarc/gocta/common"
)

// ErrEndOfData is returned by loaders when a feed holds no usable records
var ErrEndOfData = errors.New("no data loaded")

// Handler is the feed contract the engine consumes: a lazy, time-ordered,
// restartable sequence of tick or bar events for one symbol. Err reports
// why a stream ended early, if it did; the engine treats that as a clean
// stop with partial results
type Handler interface {
	Next() (common.Event, bool)
	Latest() common.Event
	History() []common.Event
	Offset() int
	Err() error
	Reset()
}

// Data wraps an in-memory event stream and implements Handler
type Data struct {
	latest common.Event
	stream []common.Event
	offset int
}
