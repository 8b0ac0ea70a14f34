package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tiliavir/schedule-planner/internal/model"
)

func TestRawEntryOrigin(t *testing.T) {
	assert.Equal(t, model.SourceManual, model.RawEntry{TimeIn: "9am", TimeOut: "5pm"}.Origin())
	assert.Equal(t, model.SourceOutlook, model.RawEntry{Source: model.SourceOutlook}.Origin())
	assert.Equal(t, model.SourceTypical, model.RawEntry{Source: model.SourceTypical}.Origin())
}

func TestRawEntryBlank(t *testing.T) {
	assert.True(t, model.RawEntry{}.Blank())
	assert.True(t, model.RawEntry{TimeIn: " \t", TimeOut: "\n"}.Blank())
	assert.False(t, model.RawEntry{TimeIn: "9am"}.Blank())
}

func TestTimeOfDayFormat(t *testing.T) {
	tests := []struct {
		t       model.TimeOfDay
		want12h string
		want24h string
	}{
		{model.TimeOfDay{Hour: 0}, "12:00 AM", "00:00"},
		{model.TimeOfDay{Hour: 9, Minute: 5}, "09:05 AM", "09:05"},
		{model.TimeOfDay{Hour: 12, Minute: 30}, "12:30 PM", "12:30"},
		{model.TimeOfDay{Hour: 23, Minute: 59}, "11:59 PM", "23:59"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want12h, tt.t.Format12h())
		assert.Equal(t, tt.want24h, tt.t.String())
	}
}
