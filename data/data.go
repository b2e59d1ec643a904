package data

import (
	"sort"

	"github.com/quantarc/gocta/common"
)

// Reset returns loaded data to a blank state so the same stream can be
// replayed by another run
func (d *Data) Reset() {
	d.latest = nil
	d.offset = 0
}

// SetStream sets the event stream and stamps each event with its offset.
// Replaces any previously held stream
func (d *Data) SetStream(s []common.Event) {
	d.stream = d.stream[:0]
	d.offset = 0
	d.latest = nil
	d.AppendStream(s...)
}

// AppendStream appends events onto the stream, skipping nil entries
func (d *Data) AppendStream(s ...common.Event) {
	for i := range s {
		if s[i] == nil {
			continue
		}
		s[i].SetOffset(int64(len(d.stream)))
		d.stream = append(d.stream, s[i])
	}
}

// Next returns the next event in the stream and shifts the offset forward
func (d *Data) Next() (common.Event, bool) {
	if len(d.stream) <= d.offset {
		return nil, false
	}
	ret := d.stream[d.offset]
	d.offset++
	d.latest = ret
	return ret, true
}

// History returns all events that have already been consumed
func (d *Data) History() []common.Event {
	return d.stream[:d.offset]
}

// Latest returns the most recently consumed event
func (d *Data) Latest() common.Event {
	return d.latest
}

// Offset returns how far through the stream the run is
func (d *Data) Offset() int {
	return d.offset
}

// Err always reports nil; an in-memory stream cannot fail mid-run
func (d *Data) Err() error {
	return nil
}

// SortStream sorts the stream by timestamp and restamps offsets. Only for
// use at load time; a running backtest never reorders
func (d *Data) SortStream() {
	sort.SliceStable(d.stream, func(i, j int) bool {
		return d.stream[i].GetTime().Before(d.stream[j].GetTime())
	})
	for i := range d.stream {
		d.stream[i].SetOffset(int64(i))
	}
}
