package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/Tiliavir/schedule-planner/internal/model"
)

// CSV renders a header line followed by one comma-separated line per record.
// Lines end in LF.
func CSV(records []model.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	for _, r := range records {
		date, in, out, minutes := row(r)
		if err := w.Write([]string{date, in, out, strconv.Itoa(minutes)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
