package export

import (
	"encoding/json"

	"github.com/Tiliavir/schedule-planner/internal/model"
)

type jsonRecord struct {
	Week     int    `json:"week"`
	Day      string `json:"day"`
	Date     string `json:"date"`
	TimeIn   string `json:"time_in"`
	TimeOut  string `json:"time_out"`
	Duration int    `json:"duration"`
}

// JSON renders the records as an indented array of objects. An empty list
// renders as "[]".
func JSON(records []model.Record) ([]byte, error) {
	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		out = append(out, jsonRecord{
			Week:     r.Week,
			Day:      r.DayName(),
			Date:     r.DateString(),
			TimeIn:   r.TimeIn.Format12h(),
			TimeOut:  r.TimeOut.Format12h(),
			Duration: r.Minutes,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
