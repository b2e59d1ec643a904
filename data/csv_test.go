package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantarc/gocta/eventtypes/bar"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadBarsFromCSV(t *testing.T) {
	t.Parallel()
	path := writeCSV(t, `timestamp,open,high,low,close,volume
2019-01-02T09:31:00Z,100,101,99,100.5,1000
2019-01-02T09:32:00Z,100.5,102,100,101.5,1200
`)

	events, err := LoadBarsFromCSV(path, "CFFEX", "IF888", time.Minute, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	b, ok := events[0].(*bar.Bar)
	require.True(t, ok)
	assert.Equal(t, "IF888", b.Symbol)
	assert.Equal(t, time.Minute, b.Interval)
	assert.Equal(t, time.Date(2019, 1, 2, 9, 31, 0, 0, time.UTC), b.Time)
	assert.True(t, b.Open.Equal(decimal.NewFromInt(100)))
	assert.True(t, b.Close.Equal(decimal.NewFromFloat(100.5)))
	assert.True(t, b.Volume.Equal(decimal.NewFromInt(1000)))
}

func TestLoadBarsFromCSVUnixTimestamps(t *testing.T) {
	t.Parallel()
	// headerless, unix second timestamps
	path := writeCSV(t, "1546421460,100,101,99,100.5,1000\n")

	events, err := LoadBarsFromCSV(path, "CFFEX", "IF888", time.Minute, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, time.Unix(1546421460, 0).UTC(), events[0].GetTime())
}

func TestLoadBarsFromCSVRangeFilter(t *testing.T) {
	t.Parallel()
	path := writeCSV(t, `2019-01-02T09:31:00Z,100,101,99,100,1000
2019-01-02T09:32:00Z,100,101,99,100,1000
2019-01-02T09:33:00Z,100,101,99,100,1000
`)

	start := time.Date(2019, 1, 2, 9, 32, 0, 0, time.UTC)
	end := time.Date(2019, 1, 2, 9, 33, 0, 0, time.UTC)
	events, err := LoadBarsFromCSV(path, "CFFEX", "IF888", time.Minute, start, end)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, start, events[0].GetTime())
}

func TestLoadBarsFromCSVErrors(t *testing.T) {
	t.Parallel()
	_, err := LoadBarsFromCSV(filepath.Join(t.TempDir(), "missing.csv"), "CFFEX", "IF888", time.Minute, time.Time{}, time.Time{})
	assert.Error(t, err)

	empty := writeCSV(t, "timestamp,open,high,low,close,volume\n")
	_, err = LoadBarsFromCSV(empty, "CFFEX", "IF888", time.Minute, time.Time{}, time.Time{})
	assert.ErrorIs(t, err, ErrEndOfData)

	badPrice := writeCSV(t, "2019-01-02T09:31:00Z,abc,101,99,100,1000\n")
	_, err = LoadBarsFromCSV(badPrice, "CFFEX", "IF888", time.Minute, time.Time{}, time.Time{})
	assert.Error(t, err)

	badTime := writeCSV(t, "2019-01-02T09:31:00Z,100,101,99,100,1000\nnot-a-time,100,101,99,100,1000\n")
	_, err = LoadBarsFromCSV(badTime, "CFFEX", "IF888", time.Minute, time.Time{}, time.Time{})
	assert.Error(t, err)
}
