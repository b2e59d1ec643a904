package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/quantarc/gocta/config"
	"github.com/quantarc/gocta/data"
	"github.com/quantarc/gocta/engine"
	"github.com/quantarc/gocta/strategies"
)

func main() {
	app := &cli.App{
		Name:  "gocta",
		Usage: "event-driven CTA backtesting engine",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a run configuration file"},
			&cli.StringFlag{Name: "strategy", Value: "doublema", Usage: "strategy to run"},
			&cli.StringFlag{Name: "data", Usage: "path to a CSV bar file"},
			&cli.StringFlag{Name: "symbol", Value: "IF888", Usage: "instrument symbol"},
			&cli.StringFlag{Name: "exchange", Value: "CFFEX", Usage: "exchange tag"},
			&cli.DurationFlag{Name: "interval", Value: time.Minute, Usage: "bar interval"},
			&cli.Float64Flag{Name: "fee-rate", Value: 0.3 / 10000, Usage: "proportional fee rate"},
			&cli.Float64Flag{Name: "slippage", Value: 0.2, Usage: "per-unit slippage charge"},
			&cli.Float64Flag{Name: "contract-size", Value: 300, Usage: "contract multiplier"},
			&cli.Float64Flag{Name: "price-tick", Value: 0.2, Usage: "minimum price increment"},
			&cli.Float64Flag{Name: "capital", Value: 1000000, Usage: "starting capital"},
			&cli.Float64Flag{Name: "annualization", Value: 240, Usage: "sharpe annualization factor"},
		},
		Action: runBacktest,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBacktest(c *cli.Context) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck // stdout sync failure is unactionable

	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	if cfg.DataPath == "" {
		return fmt.Errorf("no data file provided, use --data or set data-path in the config")
	}

	h, err := strategies.LoadStrategyByName(cfg.StrategyName)
	if err != nil {
		return err
	}
	events, err := data.LoadBarsFromCSV(cfg.DataPath, cfg.Exchange, cfg.Symbol, cfg.Interval, cfg.Start, cfg.End)
	if err != nil {
		return err
	}
	feed := &data.Data{}
	feed.SetStream(events)

	bt, err := engine.New(cfg, h, feed, log)
	if err != nil {
		return err
	}
	results, err := bt.Run()
	if results != nil {
		results.PrintResult(os.Stdout)
	}
	return err
}

func loadSettings(c *cli.Context) (*config.Settings, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.ReadConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		if c.IsSet("strategy") || cfg.StrategyName == "" {
			cfg.StrategyName = c.String("strategy")
		}
		if c.IsSet("data") {
			cfg.DataPath = c.String("data")
		}
		return cfg, nil
	}
	cfg := &config.Settings{
		Symbol:              c.String("symbol"),
		Exchange:            c.String("exchange"),
		Interval:            c.Duration("interval"),
		FeeRate:             decimal.NewFromFloat(c.Float64("fee-rate")),
		Slippage:            decimal.NewFromFloat(c.Float64("slippage")),
		ContractSize:        decimal.NewFromFloat(c.Float64("contract-size")),
		PriceTick:           decimal.NewFromFloat(c.Float64("price-tick")),
		Capital:             decimal.NewFromFloat(c.Float64("capital")),
		AnnualizationFactor: c.Float64("annualization"),
		StrategyName:        c.String("strategy"),
		DataPath:            c.String("data"),
	}
	return cfg, cfg.Validate()
}
