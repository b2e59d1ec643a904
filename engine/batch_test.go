package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantarc/gocta/config"
	"github.com/quantarc/gocta/strategy"
)

func TestRunBatch(t *testing.T) {
	t.Parallel()
	specs := make([]RunSpec, 4)
	for i := range specs {
		specs[i] = RunSpec{
			Settings: testSettings(),
			Strategy: &scriptedStrategy{
				script: map[int]func(*strategy.Context) error{
					1: func(c *strategy.Context) error {
						_, err := c.Buy(decimal.NewFromFloat(100.5), decimal.NewFromInt(1))
						return err
					},
				},
			},
			Feed: testFeed(3),
		}
	}
	// one spec is broken and must fail without poisoning the others
	specs[2].Settings = &config.Settings{}

	results := RunBatch(specs, 2, zap.NewNop())
	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		if i == 2 {
			assert.ErrorIs(t, r.Err, config.ErrEmptySymbol)
			continue
		}
		require.NoError(t, r.Err)
		require.NotNil(t, r.Results)
		assert.Equal(t, 3, r.Results.Bars)
	}
}

func TestRunBatchEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, RunBatch(nil, 0, zap.NewNop()))
}
