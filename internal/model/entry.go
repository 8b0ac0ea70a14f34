package model

import (
	"fmt"
	"time"
)

// Entry sources.
const (
	SourceManual  = "manual"
	SourceTypical = "typical"
	SourceOutlook = "outlook"
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay returns a TimeOfDay and reports whether hour and minute are in range.
func NewTimeOfDay(hour, minute int) (TimeOfDay, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: hour, Minute: minute}, true
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// After reports whether t is strictly later than u.
func (t TimeOfDay) After(u TimeOfDay) bool {
	return t.Minutes() > u.Minutes()
}

// String formats t as 24-hour "15:04".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Format12h formats t as zero-padded 12-hour time, e.g. "09:00 AM".
func (t TimeOfDay) Format12h() string {
	h := t.Hour % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if t.Hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", h, t.Minute, suffix)
}

// RawEntry is one unvalidated clock-in/clock-out pair as typed by the user.
type RawEntry struct {
	TimeIn     string `yaml:"in" json:"in"`
	TimeOut    string `yaml:"out" json:"out"`
	Source     string `yaml:"source,omitempty" json:"source,omitempty"`
	ExternalID string `yaml:"external_id,omitempty" json:"external_id,omitempty"`
}

// Blank reports whether neither time was filled in.
func (e RawEntry) Blank() bool {
	return isBlank(e.TimeIn) && isBlank(e.TimeOut)
}

// Origin returns where the entry came from. Entries without a recorded
// source were typed by hand.
func (e RawEntry) Origin() string {
	if e.Source == "" {
		return SourceManual
	}
	return e.Source
}

func isBlank(s string) bool {
	for _, c := range s {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return false
		}
	}
	return true
}

// Record is a validated schedule entry.
type Record struct {
	Week    int
	Date    time.Time
	TimeIn  TimeOfDay
	TimeOut TimeOfDay
	Minutes int
}

// DayName returns the weekday name, e.g. "Monday".
func (r Record) DayName() string {
	return r.Date.Weekday().String()
}

// DateString returns the date as "01/02/2006".
func (r Record) DateString() string {
	return r.Date.Format(DateDisplayLayout)
}

// DateDisplayLayout is the month/day/year layout used in every export.
const DateDisplayLayout = "01/02/2006"

// DateKeyLayout is the ISO layout used for day keys and command line dates.
const DateKeyLayout = "2006-01-02"
