package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantarc/gocta/bargen"
	"github.com/quantarc/gocta/common"
	"github.com/quantarc/gocta/config"
	"github.com/quantarc/gocta/data"
	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/eventtypes/tick"
	"github.com/quantarc/gocta/matching"
	"github.com/quantarc/gocta/portfolio"
	"github.com/quantarc/gocta/statistics"
	"github.com/quantarc/gocta/strategy"
)

// New wires a backtest from validated settings, a strategy handler and a
// feed. Construction applies strategy defaults and any configured
// parameter overrides; all configuration faults surface here, before any
// event is processed
func New(cfg *config.Settings, h strategy.Handler, feed data.Handler, log *zap.Logger) (*BackTest, error) {
	if cfg == nil || h == nil || feed == nil || log == nil {
		return nil, common.ErrNilArguments
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h.SetDefaults()
	if len(cfg.StrategySettings) > 0 {
		if err := h.SetCustomSettings(cfg.StrategySettings); err != nil {
			return nil, err
		}
	}

	runID := fmt.Sprintf("%s-%s-%s", cfg.Exchange, cfg.Symbol, h.Name())
	match, err := matching.New(runID, cfg.Exchange, cfg.Symbol, log)
	if err != nil {
		return nil, err
	}
	ctx, err := strategy.NewContext(runID, cfg.Exchange, cfg.Symbol, h, match, log)
	if err != nil {
		return nil, err
	}
	ledger, err := portfolio.NewLedger(cfg.ContractSize)
	if err != nil {
		return nil, err
	}
	stats, err := statistics.New(cfg.Capital, cfg.AnnualizationFactor)
	if err != nil {
		return nil, err
	}

	bt := &BackTest{
		cfg:    cfg,
		log:    log.With(zap.String("run", runID)),
		feed:   feed,
		ctx:    ctx,
		match:  match,
		ledger: ledger,
		stats:  stats,
	}
	bt.gen, err = bargen.New(cfg.Exchange, cfg.Symbol, cfg.Interval, bt.processBar)
	if err != nil {
		return nil, err
	}
	return bt, nil
}

// Run executes the backtest to feed exhaustion and returns the summary. A
// feed that fails mid-run stops the run cleanly; whatever statistics were
// accumulated remain valid and are returned alongside the feed error
func (bt *BackTest) Run() (*statistics.Results, error) {
	if bt.hasRun {
		return nil, ErrAlreadyRun
	}
	bt.hasRun = true

	if err := bt.ctx.Initialize(); err != nil {
		return nil, err
	}
	if bt.ctx.WarmupBars() == 0 {
		if err := bt.ctx.Start(); err != nil {
			return nil, err
		}
	}

	for {
		ev, ok := bt.feed.Next()
		if !ok {
			break
		}
		if !bt.cfg.InBacktestRange(ev.GetTime()) {
			continue
		}
		switch e := ev.(type) {
		case *tick.Tick:
			if err := bt.gen.OnTick(e); err != nil {
				return nil, err
			}
			if err := bt.ctx.DispatchTick(e); err != nil {
				return nil, err
			}
		case *bar.Bar:
			if err := bt.processBar(e); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnknownEventType, ev)
		}
	}

	if bt.ctx.State() == strategy.Initializing {
		return nil, fmt.Errorf("%w: feed exhausted after %v of %v warm-up bars",
			common.ErrInsufficientHistory, bt.warmupSeen, bt.ctx.WarmupBars())
	}
	if err := bt.stop(); err != nil {
		return nil, err
	}
	bt.stats.AddClosedTrades(bt.ledger.ClosedTrades()...)
	results, err := bt.stats.CalculateResults()
	if err != nil {
		return nil, err
	}
	if feedErr := bt.feed.Err(); feedErr != nil {
		bt.log.Warn("feed terminated early", zap.Error(feedErr))
		return results, fmt.Errorf("feed failure: %w", feedErr)
	}
	return results, nil
}

// processBar advances the per-bar pipeline. Pending orders are crossed
// against the incoming bar before the strategy sees it, so an intent
// submitted during one callback can only ever fill on a later bar's range
func (bt *BackTest) processBar(b *bar.Bar) error {
	if !bt.lastBar.IsZero() && !b.Time.After(bt.lastBar) {
		return fmt.Errorf("%w: bar at %v after %v", common.ErrOutOfOrder, b.Time, bt.lastBar)
	}
	bt.lastBar = b.Time

	if bt.ctx.State() == strategy.Initializing {
		return bt.warmup(b)
	}

	trades, err := bt.match.MatchBar(b)
	if err != nil {
		return err
	}
	for i := range trades {
		if err := bt.ledger.Apply(trades[i], bt.fillCost(trades[i].Price, trades[i].Volume)); err != nil {
			return err
		}
		if err := bt.ctx.NotifyFill(trades[i]); err != nil {
			return err
		}
	}

	if err := bt.ctx.DispatchBar(b); err != nil {
		return err
	}

	bt.stats.AddSample(b.Time,
		bt.ledger.Realized(),
		bt.ledger.Unrealized(bt.cfg.Symbol, b.Close))
	return nil
}

// warmup feeds a historical bar through the strategy while initializing so
// its indicator series pre-fill; orders are rejected until running, so a
// warm-up bar can never trade or move equity
func (bt *BackTest) warmup(b *bar.Bar) error {
	if err := bt.ctx.DispatchBar(b); err != nil {
		return err
	}
	bt.warmupSeen++
	if bt.warmupSeen >= bt.ctx.WarmupBars() {
		return bt.ctx.Start()
	}
	return nil
}

// fillCost is the engine-boundary execution cost model: proportional fee on
// traded value plus a fixed per-unit slippage charge. Matching itself stays
// pure limit-price logic
func (bt *BackTest) fillCost(price, volume decimal.Decimal) decimal.Decimal {
	value := price.Mul(volume).Mul(bt.cfg.ContractSize)
	fee := value.Mul(bt.cfg.FeeRate)
	slip := bt.cfg.Slippage.Mul(volume).Mul(bt.cfg.ContractSize)
	return fee.Add(slip)
}

// Position returns the run's current net position for its instrument
func (bt *BackTest) Position() portfolio.Position {
	return bt.ledger.NetPosition(bt.cfg.Symbol)
}

func (bt *BackTest) stop() error {
	if bt.ctx.State() != strategy.Running {
		return nil
	}
	return bt.ctx.Stop()
}
