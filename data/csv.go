package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantarc/gocta/common"
	"github.com/quantarc/gocta/eventtypes/bar"
	"github.com/quantarc/gocta/eventtypes/event"
)

// LoadBarsFromCSV reads bar records from a headerless or headered CSV file
// with columns: timestamp (RFC3339 or unix seconds), open, high, low,
// close, volume. Records outside [start, end) are skipped when a non-zero
// range is given
func LoadBarsFromCSV(path, exchange, symbol string, interval time.Duration, start, end time.Time) ([]common.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open data file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 6
	var events []common.Event
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv line %v: %w", line, err)
		}
		ts, err := parseTimestamp(record[0])
		if err != nil {
			if line == 1 {
				// header row
				continue
			}
			return nil, fmt.Errorf("csv line %v: %w", line, err)
		}
		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && !ts.Before(end) {
			continue
		}
		b := &bar.Bar{
			Base: event.Base{
				Exchange: exchange,
				Symbol:   symbol,
				Time:     ts,
				Interval: interval,
			},
		}
		fields := []*decimal.Decimal{&b.Open, &b.High, &b.Low, &b.Close, &b.Volume}
		for i := range fields {
			*fields[i], err = decimal.NewFromString(record[i+1])
			if err != nil {
				return nil, fmt.Errorf("csv line %v column %v: %w", line, i+2, err)
			}
		}
		events = append(events, b)
	}
	if len(events) == 0 {
		return nil, ErrEndOfData
	}
	return events, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), nil
	}
	var unix int64
	if _, err := fmt.Sscanf(s, "%d", &unix); err == nil && unix > 0 {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
