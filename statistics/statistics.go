package statistics

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantarc/gocta/common"
	"github.com/quantarc/gocta/portfolio"
)

// New creates a statistics collector. The annualization factor scales the
// per-bar Sharpe ratio; zero disables annualization
func New(capital decimal.Decimal, annualization float64) (*Statistic, error) {
	if capital.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCapital, capital)
	}
	if annualization <= 0 {
		annualization = 1
	}
	return &Statistic{
		capital:       capital,
		annualization: annualization,
	}, nil
}

// Reset returns the collector to defaults, keeping its configuration
func (s *Statistic) Reset() {
	s.equity = nil
	s.closed = nil
}

// AddSample appends one equity curve point for a processed bar
func (s *Statistic) AddSample(t time.Time, realized, unrealized decimal.Decimal) {
	s.equity = append(s.equity, EquitySample{
		Time:       t,
		Realized:   realized,
		Unrealized: unrealized,
		Equity:     s.capital.Add(realized).Add(unrealized),
	})
}

// AddClosedTrades appends completed round trips for trade statistics
func (s *Statistic) AddClosedTrades(trades ...portfolio.ClosedTrade) {
	s.closed = append(s.closed, trades...)
}

// EquityCurve returns a copy of the collected samples
func (s *Statistic) EquityCurve() []EquitySample {
	out := make([]EquitySample, len(s.equity))
	copy(out, s.equity)
	return out
}

// CalculateResults computes the summary metrics over whatever has been
// collected so far. Partial results from a cleanly stopped run are valid
func (s *Statistic) CalculateResults() (*Results, error) {
	if len(s.equity) == 0 {
		return nil, ErrNoSamples
	}
	last := s.equity[len(s.equity)-1]
	r := &Results{
		StartTime:      s.equity[0].Time,
		EndTime:        last.Time,
		Bars:           len(s.equity),
		InitialCapital: s.capital,
		FinalEquity:    last.Equity,
		TotalReturn:    last.Equity.Sub(s.capital).Div(s.capital),
		MaxDrawdown:    s.maxDrawdown(),
		SharpeRatio:    s.sharpe(),
		EquityCurve:    s.EquityCurve(),
		ClosedTrades:   append([]portfolio.ClosedTrade(nil), s.closed...),
	}

	var winSum, lossSum decimal.Decimal
	for i := range s.closed {
		if s.closed[i].PnL.GreaterThan(decimal.Zero) {
			r.WinningTrades++
			winSum = winSum.Add(s.closed[i].PnL)
		} else {
			r.LosingTrades++
			lossSum = lossSum.Add(s.closed[i].PnL)
		}
	}
	r.TotalTrades = len(s.closed)
	if r.TotalTrades > 0 {
		r.WinRate = decimal.NewFromInt(int64(r.WinningTrades)).Div(decimal.NewFromInt(int64(r.TotalTrades)))
	}
	if r.WinningTrades > 0 {
		r.AverageWin = winSum.Div(decimal.NewFromInt(int64(r.WinningTrades)))
	}
	if r.LosingTrades > 0 {
		r.AverageLoss = lossSum.Div(decimal.NewFromInt(int64(r.LosingTrades)))
	}
	return r, nil
}

// maxDrawdown is the largest peak-to-trough equity decline, expressed as a
// fraction of the peak
func (s *Statistic) maxDrawdown() decimal.Decimal {
	peak := s.equity[0].Equity
	maxDD := decimal.Zero
	for i := range s.equity {
		eq := s.equity[i].Equity
		if eq.GreaterThan(peak) {
			peak = eq
			continue
		}
		if peak.LessThanOrEqual(decimal.Zero) {
			continue
		}
		dd := peak.Sub(eq).Div(peak)
		if dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD
}

// sharpe is mean/stdev of per-bar equity returns scaled by the square root
// of the annualization factor
func (s *Statistic) sharpe() float64 {
	if len(s.equity) < 2 {
		return 0
	}
	returns := make([]decimal.Decimal, 0, len(s.equity)-1)
	for i := 1; i < len(s.equity); i++ {
		prev := s.equity[i-1].Equity
		if prev.LessThanOrEqual(decimal.Zero) {
			continue
		}
		returns = append(returns, s.equity[i].Equity.Sub(prev).Div(prev))
	}
	mean, err := common.DecimalArithmeticMean(returns)
	if err != nil {
		return 0
	}
	stdev, err := common.DecimalPopulationStandardDeviation(returns)
	if err != nil || stdev.IsZero() {
		return 0
	}
	ratio, _ := mean.Div(stdev).Float64()
	return ratio * math.Sqrt(s.annualization)
}

// PrintResult renders the summary the way the CLI reports a finished run
func (r *Results) PrintResult(w io.Writer) {
	hundred := decimal.NewFromInt(100)
	fmt.Fprintf(w, "------------------ Backtest Results ------------------\n")
	fmt.Fprintf(w, "Period:          %v -> %v (%v bars)\n", r.StartTime.Format(time.RFC3339), r.EndTime.Format(time.RFC3339), r.Bars)
	fmt.Fprintf(w, "Initial capital: %v\n", r.InitialCapital)
	fmt.Fprintf(w, "Final equity:    %v\n", r.FinalEquity.StringFixed(2))
	fmt.Fprintf(w, "Total return:    %v%%\n", r.TotalReturn.Mul(hundred).StringFixed(2))
	fmt.Fprintf(w, "Max drawdown:    %v%%\n", r.MaxDrawdown.Mul(hundred).StringFixed(2))
	fmt.Fprintf(w, "Sharpe ratio:    %.4f\n", r.SharpeRatio)
	fmt.Fprintf(w, "Closed trades:   %v (won %v, lost %v)\n", r.TotalTrades, r.WinningTrades, r.LosingTrades)
	if r.TotalTrades > 0 {
		fmt.Fprintf(w, "Win rate:        %v%%\n", r.WinRate.Mul(hundred).StringFixed(2))
		fmt.Fprintf(w, "Average win:     %v\n", r.AverageWin.StringFixed(2))
		fmt.Fprintf(w, "Average loss:    %v\n", r.AverageLoss.StringFixed(2))
	}
}
