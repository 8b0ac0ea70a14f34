package timecalc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Tiliavir/schedule-planner/internal/model"
)

var (
	hourMeridiem       = regexp.MustCompile(`^(\d{1,2})([ap]m)$`)
	hourMinuteMeridiem = regexp.MustCompile(`^(\d{1,2}):(\d{2})([ap]m)$`)
	hourMinute24       = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseTime parses a clock string such as "9:00AM", "12 pm" or "13:00".
// Whitespace anywhere in the input is ignored and case does not matter.
// The layouts are tried in order: hour+meridiem, hour:minute+meridiem,
// 24-hour hour:minute. ok is false if none match or a value is out of range.
func ParseTime(text string) (model.TimeOfDay, bool) {
	s := strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text))

	if m := hourMeridiem.FindStringSubmatch(s); m != nil {
		if t, ok := fromMeridiem(m[1], "00", m[2]); ok {
			return t, true
		}
	}
	if m := hourMinuteMeridiem.FindStringSubmatch(s); m != nil {
		if t, ok := fromMeridiem(m[1], m[2], m[3]); ok {
			return t, true
		}
	}
	if m := hourMinute24.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		return model.NewTimeOfDay(h, mm)
	}
	return model.TimeOfDay{}, false
}

// fromMeridiem converts a 12-hour clock reading to a TimeOfDay.
func fromMeridiem(hour, minute, meridiem string) (model.TimeOfDay, bool) {
	h, _ := strconv.Atoi(hour)
	mm, _ := strconv.Atoi(minute)
	if h < 1 || h > 12 {
		return model.TimeOfDay{}, false
	}
	h %= 12
	if meridiem == "pm" {
		h += 12
	}
	return model.NewTimeOfDay(h, mm)
}

// DurationMinutes returns the minutes from in to out on the same day.
// Intervals that would be negative are reported as 0.
func DurationMinutes(in, out model.TimeOfDay) int {
	d := out.Minutes() - in.Minutes()
	if d < 0 {
		return 0
	}
	return d
}

// FormatDuration formats minutes as "H hrs M min".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%d hrs %d min", minutes/60, minutes%60)
}

// civil returns the calendar date of t as midnight UTC, so that day
// arithmetic is not affected by DST transitions in t's location.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekAnchor returns the Sunday on or before t, as a civil date.
func WeekAnchor(t time.Time) time.Time {
	c := civil(t)
	return c.AddDate(0, 0, -int(c.Weekday()))
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(civil(b).Sub(civil(a)).Hours() / 24)
}

// WeekNumber returns the 1-based, Sunday-anchored week of current relative
// to start. The week containing start is always week 1. Dates before start
// are reported as week 1.
func WeekNumber(start, current time.Time) int {
	days := DaysBetween(WeekAnchor(start), WeekAnchor(current))
	if days < 0 {
		return 1
	}
	return 1 + days/7
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateKeyLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
