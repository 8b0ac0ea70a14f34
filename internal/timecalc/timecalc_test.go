package timecalc_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/schedule-planner/internal/model"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input  string
		want   model.TimeOfDay
		wantOK bool
	}{
		{"9:00AM", model.TimeOfDay{Hour: 9}, true},
		{"12pm", model.TimeOfDay{Hour: 12}, true},
		{"12am", model.TimeOfDay{Hour: 0}, true},
		{"12:30am", model.TimeOfDay{Hour: 0, Minute: 30}, true},
		{"13:00", model.TimeOfDay{Hour: 13}, true},
		{"0:05", model.TimeOfDay{Hour: 0, Minute: 5}, true},
		{"23:59", model.TimeOfDay{Hour: 23, Minute: 59}, true},
		{" 4 : 30 PM ", model.TimeOfDay{Hour: 16, Minute: 30}, true},
		{"5PM", model.TimeOfDay{Hour: 17}, true},
		{"5 p m", model.TimeOfDay{Hour: 17}, true},
		{"09:00 AM", model.TimeOfDay{Hour: 9}, true},
		{"25:00", model.TimeOfDay{}, false},
		{"9am5pm", model.TimeOfDay{}, false},
		{"13pm", model.TimeOfDay{}, false},
		{"0am", model.TimeOfDay{}, false},
		{"10:60", model.TimeOfDay{}, false},
		{"9:5pm", model.TimeOfDay{}, false},
		{"noon", model.TimeOfDay{}, false},
		{"", model.TimeOfDay{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := timecalc.ParseTime(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeRoundTrip(t *testing.T) {
	var inputs []string
	for h := 1; h <= 12; h++ {
		for _, mm := range []int{0, 1, 30, 59} {
			inputs = append(inputs, fmt.Sprintf("%d:%02dAM", h, mm), fmt.Sprintf("%d:%02dpm", h, mm))
		}
	}
	for h := 0; h < 24; h++ {
		inputs = append(inputs, fmt.Sprintf("%02d:15", h))
	}

	for _, in := range inputs {
		parsed, ok := timecalc.ParseTime(in)
		require.True(t, ok, "parse %q", in)
		again, ok := timecalc.ParseTime(parsed.Format12h())
		require.True(t, ok, "re-parse %q", parsed.Format12h())
		assert.Equal(t, parsed, again, "round trip of %q", in)
	}
}

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		in, out model.TimeOfDay
		want    int
	}{
		{model.TimeOfDay{Hour: 9}, model.TimeOfDay{Hour: 17}, 480},
		{model.TimeOfDay{Hour: 9, Minute: 15}, model.TimeOfDay{Hour: 9, Minute: 45}, 30},
		{model.TimeOfDay{Hour: 12}, model.TimeOfDay{Hour: 12}, 0},
		{model.TimeOfDay{Hour: 17}, model.TimeOfDay{Hour: 9}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timecalc.DurationMinutes(tt.in, tt.out), "%s-%s", tt.in, tt.out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0 hrs 0 min"},
		{45, "0 hrs 45 min"},
		{60, "1 hrs 0 min"},
		{90, "1 hrs 30 min"},
		{2400, "40 hrs 0 min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timecalc.FormatDuration(tt.minutes))
	}
}

func TestWeekAnchor(t *testing.T) {
	// 2024-01-07 is a Sunday.
	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		d := sunday.AddDate(0, 0, i)
		assert.Equal(t, sunday, timecalc.WeekAnchor(d), "anchor of %s", d.Weekday())
	}
	assert.Equal(t, sunday.AddDate(0, 0, -7), timecalc.WeekAnchor(sunday.AddDate(0, 0, -1)))
}

func TestWeekNumberStartIsWeekOne(t *testing.T) {
	base := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC) // Sunday
	for i := 0; i < 7; i++ {
		start := base.AddDate(0, 0, i)
		assert.Equal(t, 1, timecalc.WeekNumber(start, start), "start on %s", start.Weekday())
	}
}

func TestWeekNumberMonotonic(t *testing.T) {
	for offset := 0; offset < 7; offset++ {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		prev := timecalc.WeekNumber(start, start)
		for i := 1; i < 60; i++ {
			d := start.AddDate(0, 0, i)
			got := timecalc.WeekNumber(start, d)
			if d.Weekday() == time.Sunday {
				assert.Equal(t, prev+1, got, "start %s, crossing into %s", start.Format("2006-01-02"), d.Format("2006-01-02"))
			} else {
				assert.Equal(t, prev, got, "start %s, day %s", start.Format("2006-01-02"), d.Format("2006-01-02"))
			}
			prev = got
		}
	}
}

func TestWeekNumberAcrossMonths(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // Monday
	tests := []struct {
		date string
		want int
	}{
		{"2024-01-01", 1},
		{"2024-01-06", 1},
		{"2024-01-07", 2},
		{"2024-01-13", 2},
		{"2024-01-14", 3},
		{"2023-12-31", 1},
		{"2023-12-20", 1},
	}
	for _, tt := range tests {
		d, err := timecalc.ParseDate(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, timecalc.WeekNumber(start, d), tt.date)
	}
}

func TestWeekNumberIgnoresDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("timezone data unavailable")
	}
	// DST starts 2024-03-10 in New York.
	start := time.Date(2024, 3, 3, 0, 0, 0, 0, loc)
	assert.Equal(t, 2, timecalc.WeekNumber(start, time.Date(2024, 3, 10, 0, 0, 0, 0, loc)))
	assert.Equal(t, 2, timecalc.WeekNumber(start, time.Date(2024, 3, 16, 23, 0, 0, 0, loc)))
	assert.Equal(t, 3, timecalc.WeekNumber(start, time.Date(2024, 3, 17, 0, 0, 0, 0, loc)))
}

func TestIsWeekend(t *testing.T) {
	monday := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, timecalc.IsWeekend(monday))
	assert.False(t, timecalc.IsWeekend(monday.AddDate(0, 0, 4)))
	assert.True(t, timecalc.IsWeekend(monday.AddDate(0, 0, 5)))
	assert.True(t, timecalc.IsWeekend(monday.AddDate(0, 0, 6)))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	assert.True(t, timecalc.SameDay(a, b))
	assert.False(t, timecalc.SameDay(a, c))
}

func TestParseDate(t *testing.T) {
	d, err := timecalc.ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = timecalc.ParseDate("01/05/2024")
	assert.Error(t, err)
}
