package msgraph

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Tiliavir/schedule-planner/internal/model"
	"github.com/Tiliavir/schedule-planner/internal/sheet"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

// ErrSpansMidnight is returned by MapEvent for events that end on a later
// day than they start. An entry holds a single in/out pair within one day.
var ErrSpansMidnight = errors.New("event spans midnight")

// ImportResult holds counters for an import run.
type ImportResult struct {
	Imported int
	Updated  int
	Skipped  int
	Errors   int
}

// ImportOptions configures an import run.
type ImportOptions struct {
	DryRun bool
	// Timezone is the IANA zone event times are read in and converted to.
	Timezone string
	Logger   *slog.Logger
}

// parseGraphTime parses a Graph API dateTime string. Graph returns times like
// "2026-02-27T09:00:00.0000000" without a zone suffix when a Prefer:
// outlook.timezone header is set; those are read in tz. Times carrying an
// offset are converted to tz. An empty or unknown tz means UTC for bare
// times and leaves offset times untouched.
func parseGraphTime(dt, tz string) (time.Time, error) {
	var loc *time.Location
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		if loc != nil {
			return t.In(loc), nil
		}
		return t, nil
	}

	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// shouldSkip returns true if the event should not be imported.
func shouldSkip(event CalendarEvent) bool {
	if event.IsCancelled {
		return true
	}
	if event.IsAllDay {
		return true
	}
	if event.Sensitivity == "private" {
		return true
	}
	if event.ShowAs == "free" {
		return true
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return true
	}
	return false
}

// MapEvent converts a Graph event into an entry on the day it starts.
func MapEvent(event CalendarEvent, timezone string) (time.Time, model.RawEntry, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return time.Time{}, model.RawEntry{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return time.Time{}, model.RawEntry{}, fmt.Errorf("parsing end time: %w", err)
	}
	if !timecalc.SameDay(start, end) {
		return time.Time{}, model.RawEntry{}, ErrSpansMidnight
	}

	entry := model.RawEntry{
		TimeIn:     start.Format("15:04"),
		TimeOut:    end.Format("15:04"),
		Source:     model.SourceOutlook,
		ExternalID: event.ID,
	}
	return timecalc.StartOfDay(start), entry, nil
}

// ImportEvents adds the events to s. Events already present (matched by
// external ID) are updated in place when their times changed. Events outside
// the sheet's date range are skipped. With DryRun the sheet is left untouched.
func ImportEvents(events []CalendarEvent, s *sheet.Sheet, opts ImportOptions) ImportResult {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	var result ImportResult
	for _, event := range events {
		if shouldSkip(event) {
			log.Debug("skipping event", "subject", event.Subject)
			result.Skipped++
			continue
		}

		day, entry, err := MapEvent(event, opts.Timezone)
		if errors.Is(err, ErrSpansMidnight) {
			log.Info("skipping event spanning midnight", "subject", event.Subject)
			result.Skipped++
			continue
		}
		if err != nil {
			log.Warn("cannot map event", "subject", event.Subject, "error", err)
			result.Errors++
			continue
		}

		key := day.Format(model.DateKeyLayout)
		if key < s.Start || key > s.End {
			log.Debug("skipping event outside sheet range", "subject", event.Subject, "date", key)
			result.Skipped++
			continue
		}

		if foundKey, idx, ok := s.FindExternal(event.ID); ok {
			found := s.Days[foundKey][idx]
			if foundKey == key && found.TimeIn == entry.TimeIn && found.TimeOut == entry.TimeOut {
				log.Debug("event already imported", "subject", event.Subject, "date", key)
				result.Skipped++
				continue
			}
			if !opts.DryRun {
				days := s.Days[foundKey]
				s.Days[foundKey] = append(days[:idx:idx], days[idx+1:]...)
				s.AddEntry(day, entry)
			}
			log.Info("updated event", "subject", event.Subject, "date", key, "in", entry.TimeIn, "out", entry.TimeOut)
			result.Updated++
			continue
		}

		if !opts.DryRun {
			s.AddEntry(day, entry)
		}
		log.Info("imported event", "subject", event.Subject, "date", key, "in", entry.TimeIn, "out", entry.TimeOut)
		result.Imported++
	}
	return result
}
