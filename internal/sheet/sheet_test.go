package sheet_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/schedule-planner/internal/model"
	"github.com/Tiliavir/schedule-planner/internal/schedule"
	"github.com/Tiliavir/schedule-planner/internal/sheet"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewSkipsWeekends(t *testing.T) {
	s := sheet.New(date(2024, 1, 5), date(2024, 1, 8), false)

	assert.Equal(t, "2024-01-05", s.Start)
	assert.Equal(t, "2024-01-08", s.End)
	assert.Equal(t, []string{"2024-01-05", "2024-01-08"}, s.DayKeys())
	assert.Len(t, s.Days["2024-01-05"], 1)
	assert.True(t, s.Days["2024-01-05"][0].Blank())

	withWeekends := sheet.New(date(2024, 1, 5), date(2024, 1, 8), true)
	assert.Len(t, withWeekends.DayKeys(), 4)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheets", "jan.yaml")
	s := sheet.New(date(2024, 1, 1), date(2024, 1, 5), false)
	s.AddEntry(date(2024, 1, 3), model.RawEntry{TimeIn: "9am", TimeOut: "12pm"})
	s.AddEntry(date(2024, 1, 3), model.RawEntry{TimeIn: "13:00", TimeOut: "18:00"})

	require.NoError(t, sheet.Save(path, s))

	loaded, err := sheet.Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Start, loaded.Start)
	assert.Equal(t, s.End, loaded.End)
	require.Len(t, loaded.Days["2024-01-03"], 2)
	assert.Equal(t, "13:00", loaded.Days["2024-01-03"][1].TimeIn)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadHandWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	content := `start: 2024-01-01
end: 2024-01-05
include_weekends: false
typical_hours:
  enabled: true
  time_in: "9:00AM"
  time_out: "5:00PM"
days:
  "2024-01-03":
    - in: "9am"
      out: "12pm"
    - in: "1pm"
      out: "6pm"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := sheet.Load(path)
	require.NoError(t, err)

	req, err := s.Request()
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), req.Start)
	assert.Equal(t, date(2024, 1, 5), req.End)

	res := schedule.Aggregate(req, s.Source())
	require.Len(t, res.Records, 6)
	assert.Equal(t, 480*4+180+300, schedule.TotalMinutes(res.Records))
}

func TestLoadCorruptIsBackedUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start: [unterminated\n"), 0o600))

	_, err := sheet.Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sheet.ErrInvalidSheet))

	_, err = os.Stat(path + ".corrupt")
	assert.NoError(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := sheet.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		sheet sheet.Sheet
	}{
		{"missing start", sheet.Sheet{End: "2024-01-05"}},
		{"bad end", sheet.Sheet{Start: "2024-01-01", End: "01/05/2024"}},
		{"bad day key", sheet.Sheet{Start: "2024-01-01", End: "2024-01-05", Days: map[string][]model.RawEntry{"Jan 3": nil}}},
		{"bad typical", sheet.Sheet{Start: "2024-01-01", End: "2024-01-05", TypicalHours: sheet.TypicalHours{Enabled: true, TimeIn: "nine", TimeOut: "5pm"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sheet.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, sheet.ErrInvalidSheet))
		})
	}
}

func TestAddEntryDropsBlankSlots(t *testing.T) {
	s := sheet.New(date(2024, 1, 2), date(2024, 1, 2), false)
	s.AddEntry(date(2024, 1, 2), model.RawEntry{TimeIn: "9am", TimeOut: "10am"})

	require.Len(t, s.Days["2024-01-02"], 1)
	assert.Equal(t, "9am", s.Days["2024-01-02"][0].TimeIn)
}

func TestFindExternal(t *testing.T) {
	s := sheet.New(date(2024, 1, 2), date(2024, 1, 3), false)
	s.AddEntry(date(2024, 1, 3), model.RawEntry{TimeIn: "9am", TimeOut: "10am"})
	s.AddEntry(date(2024, 1, 3), model.RawEntry{TimeIn: "11am", TimeOut: "12pm", ExternalID: "ext-1"})

	key, idx, ok := s.FindExternal("ext-1")
	require.True(t, ok)
	assert.Equal(t, "2024-01-03", key)
	assert.Equal(t, 1, idx)

	_, _, ok = s.FindExternal("missing")
	assert.False(t, ok)
	_, _, ok = s.FindExternal("")
	assert.False(t, ok)
}
