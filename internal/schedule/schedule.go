// Package schedule turns raw per-day clock entries into validated records
// grouped by Sunday-anchored week.
package schedule

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/Tiliavir/schedule-planner/internal/model"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

// Reasons an entry is rejected.
var (
	ErrInvalidTimeIn  = errors.New("time in is not a valid time")
	ErrInvalidTimeOut = errors.New("time out is not a valid time")
	ErrNotAfter       = errors.New("time out must be after time in")
)

// Source supplies the raw entries typed for a day, in input order.
type Source interface {
	EntriesFor(day time.Time) []model.RawEntry
}

// Request describes the date range to aggregate. Start and End are inclusive.
type Request struct {
	Start           time.Time
	End             time.Time
	IncludeWeekends bool
}

// Warning reports an entry that was discarded.
type Warning struct {
	Date  time.Time
	Index int // 0-based position of the entry within its day
	Entry model.RawEntry
	Err   error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s entry %d (%q to %q): %v",
		w.Date.Format(model.DateKeyLayout), w.Index+1, w.Entry.TimeIn, w.Entry.TimeOut, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Result is the output of Aggregate.
type Result struct {
	Records  []model.Record
	Warnings []Warning
}

// Aggregate validates every entry in the requested range and returns the
// records in ascending date order, entries of one day in input order.
// Invalid entries are reported as warnings and never stop the run. An End
// before Start yields an empty result.
func Aggregate(req Request, src Source) Result {
	res := Result{Records: []model.Record{}}
	start := timecalc.StartOfDay(req.Start)
	end := timecalc.StartOfDay(req.End)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !req.IncludeWeekends && timecalc.IsWeekend(d) {
			continue
		}
		week := timecalc.WeekNumber(start, d)
		for i, e := range src.EntriesFor(d) {
			if e.Blank() {
				continue
			}
			rec, err := validate(e)
			if err != nil {
				res.Warnings = append(res.Warnings, Warning{Date: d, Index: i, Entry: e, Err: err})
				continue
			}
			rec.Week = week
			rec.Date = d
			res.Records = append(res.Records, rec)
		}
	}
	return res
}

func validate(e model.RawEntry) (model.Record, error) {
	in, ok := timecalc.ParseTime(e.TimeIn)
	if !ok {
		return model.Record{}, ErrInvalidTimeIn
	}
	out, ok := timecalc.ParseTime(e.TimeOut)
	if !ok {
		return model.Record{}, ErrInvalidTimeOut
	}
	if !out.After(in) {
		return model.Record{}, ErrNotAfter
	}
	return model.Record{
		TimeIn:  in,
		TimeOut: out,
		Minutes: timecalc.DurationMinutes(in, out),
	}, nil
}

// Entries is a Source backed by a map keyed by "2006-01-02".
type Entries map[string][]model.RawEntry

// EntriesFor implements Source.
func (e Entries) EntriesFor(day time.Time) []model.RawEntry {
	return e[day.Format(model.DateKeyLayout)]
}

// Add appends an entry to day.
func (e Entries) Add(day time.Time, entry model.RawEntry) {
	key := day.Format(model.DateKeyLayout)
	e[key] = append(e[key], entry)
}

// Typical fills weekdays that have no entries of their own with a single
// typical in/out pair. Days with explicit entries and weekend days are
// passed through from Base unchanged.
type Typical struct {
	Base    Source
	TimeIn  string
	TimeOut string
}

// EntriesFor implements Source.
func (t Typical) EntriesFor(day time.Time) []model.RawEntry {
	var own []model.RawEntry
	if t.Base != nil {
		own = t.Base.EntriesFor(day)
	}
	if timecalc.IsWeekend(day) || hasFilled(own) {
		return own
	}
	return []model.RawEntry{{TimeIn: t.TimeIn, TimeOut: t.TimeOut, Source: model.SourceTypical}}
}

func hasFilled(entries []model.RawEntry) bool {
	for _, e := range entries {
		if !e.Blank() {
			return true
		}
	}
	return false
}
