package engine

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/quantarc/gocta/bargen"
	"github.com/quantarc/gocta/config"
	"github.com/quantarc/gocta/data"
	"github.com/quantarc/gocta/matching"
	"github.com/quantarc/gocta/portfolio"
	"github.com/quantarc/gocta/statistics"
	"github.com/quantarc/gocta/strategy"
)

var (
	// ErrAlreadyRun is returned when Run is called twice on one BackTest.
	// Deterministic replay requires a fresh instance per run
	ErrAlreadyRun = errors.New("backtest has already run")
	// ErrUnknownEventType is returned when the feed yields something other
	// than a tick or bar
	ErrUnknownEventType = errors.New("unknown event type in feed")
)

// BackTest orchestrates one deterministic run: it pulls events from the
// feed in strict timestamp order and advances aggregation, strategy
// dispatch, matching, the ledger and statistics in a fixed pipeline order.
// Everything here is single-threaded; parallelism only exists across
// independent runs
type BackTest struct {
	cfg        *config.Settings
	log        *zap.Logger
	feed       data.Handler
	ctx        *strategy.Context
	match      *matching.Engine
	ledger     *portfolio.Ledger
	stats      *statistics.Statistic
	gen        *bargen.Generator
	lastBar    time.Time
	warmupSeen int
	hasRun     bool
}

// RunSpec describes one independent run inside a batch
type RunSpec struct {
	Settings *config.Settings
	Strategy strategy.Handler
	Feed     data.Handler
}

// BatchResult pairs a batch run's outcome with its spec index
type BatchResult struct {
	Index   int
	Results *statistics.Results
	Err     error
}
