// Package sheet reads and writes entry sheets: YAML files holding the date
// range and the clock entries typed for each day.
package sheet

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/schedule-planner/internal/model"
	"github.com/Tiliavir/schedule-planner/internal/schedule"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

// ErrInvalidSheet is wrapped by every validation error.
var ErrInvalidSheet = errors.New("invalid entry sheet")

// TypicalHours is the default in/out pair applied to weekdays without entries.
type TypicalHours struct {
	Enabled bool   `yaml:"enabled"`
	TimeIn  string `yaml:"time_in"`
	TimeOut string `yaml:"time_out"`
}

// Sheet is the on-disk entry sheet.
type Sheet struct {
	Start           string                      `yaml:"start"`
	End             string                      `yaml:"end"`
	IncludeWeekends bool                        `yaml:"include_weekends"`
	TypicalHours    TypicalHours                `yaml:"typical_hours"`
	Days            map[string][]model.RawEntry `yaml:"days"`
}

// New returns a sheet for [start, end] with one empty entry slot for every
// day that will be aggregated.
func New(start, end time.Time, includeWeekends bool) *Sheet {
	s := &Sheet{
		Start:           start.Format(model.DateKeyLayout),
		End:             end.Format(model.DateKeyLayout),
		IncludeWeekends: includeWeekends,
		Days:            map[string][]model.RawEntry{},
	}
	for d := timecalc.StartOfDay(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		if !includeWeekends && timecalc.IsWeekend(d) {
			continue
		}
		s.Days[d.Format(model.DateKeyLayout)] = []model.RawEntry{{}}
	}
	return s
}

// Load reads and validates the sheet at path. A file that is not valid YAML
// is renamed to <path>.corrupt.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading entry sheet %s", path)
	}

	var s Sheet
	if err := yaml.Unmarshal(data, &s); err != nil {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return nil, errors.Wrapf(ErrInvalidSheet, "corrupt YAML in %s (backed up to %s): %v", path, backupPath, err)
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	if s.Days == nil {
		s.Days = map[string][]model.RawEntry{}
	}
	return &s, nil
}

// Save atomically writes the sheet to path.
func Save(path string, s *Sheet) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.Wrap(err, "creating sheet directory")
		}
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshalling entry sheet")
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return errors.Wrap(err, "writing temp sheet")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "renaming temp sheet")
	}
	return nil
}

// Validate checks the date range and the day keys.
func (s *Sheet) Validate() error {
	if _, _, err := s.Range(); err != nil {
		return err
	}
	for key := range s.Days {
		if _, err := time.Parse(model.DateKeyLayout, key); err != nil {
			return errors.Wrapf(ErrInvalidSheet, "day %q is not a YYYY-MM-DD date", key)
		}
	}
	if s.TypicalHours.Enabled {
		if _, ok := timecalc.ParseTime(s.TypicalHours.TimeIn); !ok {
			return errors.Wrapf(ErrInvalidSheet, "typical time_in %q is not a valid time", s.TypicalHours.TimeIn)
		}
		if _, ok := timecalc.ParseTime(s.TypicalHours.TimeOut); !ok {
			return errors.Wrapf(ErrInvalidSheet, "typical time_out %q is not a valid time", s.TypicalHours.TimeOut)
		}
	}
	return nil
}

// Range returns the parsed start and end dates.
func (s *Sheet) Range() (time.Time, time.Time, error) {
	if s.Start == "" || s.End == "" {
		return time.Time{}, time.Time{}, errors.Wrap(ErrInvalidSheet, "start and end are required")
	}
	start, err := time.Parse(model.DateKeyLayout, s.Start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrapf(ErrInvalidSheet, "start %q is not a YYYY-MM-DD date", s.Start)
	}
	end, err := time.Parse(model.DateKeyLayout, s.End)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrapf(ErrInvalidSheet, "end %q is not a YYYY-MM-DD date", s.End)
	}
	return start, end, nil
}

// Request returns the aggregation request described by the sheet.
func (s *Sheet) Request() (schedule.Request, error) {
	start, end, err := s.Range()
	if err != nil {
		return schedule.Request{}, err
	}
	return schedule.Request{Start: start, End: end, IncludeWeekends: s.IncludeWeekends}, nil
}

// Source returns the sheet's entries as a schedule.Source, with typical
// hours applied when enabled.
func (s *Sheet) Source() schedule.Source {
	entries := schedule.Entries(s.Days)
	if !s.TypicalHours.Enabled {
		return entries
	}
	return schedule.Typical{Base: entries, TimeIn: s.TypicalHours.TimeIn, TimeOut: s.TypicalHours.TimeOut}
}

// AddEntry appends an entry to day. Blank slots on that day are dropped.
func (s *Sheet) AddEntry(day time.Time, e model.RawEntry) {
	if s.Days == nil {
		s.Days = map[string][]model.RawEntry{}
	}
	key := day.Format(model.DateKeyLayout)
	existing := s.Days[key]
	filled := existing[:0:0]
	for _, x := range existing {
		if !x.Blank() {
			filled = append(filled, x)
		}
	}
	s.Days[key] = append(filled, e)
}

// FindExternal returns the day key and index of the entry with the given
// external ID.
func (s *Sheet) FindExternal(id string) (string, int, bool) {
	if id == "" {
		return "", 0, false
	}
	for _, key := range s.DayKeys() {
		for i, e := range s.Days[key] {
			if e.ExternalID == id {
				return key, i, true
			}
		}
	}
	return "", 0, false
}

// DayKeys returns the day keys in ascending order.
func (s *Sheet) DayKeys() []string {
	keys := make([]string, 0, len(s.Days))
	for k := range s.Days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
