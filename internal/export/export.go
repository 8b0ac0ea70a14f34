// Package export renders schedule records as PDF, XLSX, CSV and JSON.
//
// Every encoder is a pure function of its input: it never modifies the
// record slice and returns a fresh buffer, so encoders may run concurrently.
package export

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Tiliavir/schedule-planner/internal/model"
)

// Format identifies an output encoding.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for a format name that has no encoder.
var ErrUnknownFormat = errors.New("unknown export format")

// Columns is the header shared by the spreadsheet and the CSV table.
var Columns = []string{"Date", "Time In", "Time Out", "Minutes Worked"}

// SheetName is the name of the only worksheet in the XLSX export.
const SheetName = "Schedule"

// Encoder renders records into a byte buffer.
type Encoder func(records []model.Record) ([]byte, error)

var encoders = map[Format]Encoder{
	FormatPDF:  PDF,
	FormatXLSX: XLSX,
	FormatCSV:  CSV,
	FormatJSON: JSON,
}

// Formats returns all supported formats in their canonical order.
func Formats() []Format {
	return []Format{FormatPDF, FormatXLSX, FormatCSV, FormatJSON}
}

// ParseFormat maps a case-insensitive name such as "CSV" or "excel" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// ParseFormats parses a list of names, dropping duplicates.
func ParseFormats(names []string) ([]Format, error) {
	seen := map[Format]bool{}
	var out []Format
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// FileName returns the conventional file name, e.g. "schedule.pdf".
func (f Format) FileName() string {
	return "schedule." + string(f)
}

// ContentType returns the MIME type of the encoding.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// Encode renders records in the given format.
func Encode(f Format, records []model.Record) ([]byte, error) {
	enc, ok := encoders[f]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", string(f))
	}
	data, err := enc(records)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s", f)
	}
	return data, nil
}

// row returns the spreadsheet/CSV cells of a record.
func row(r model.Record) (date, in, out string, minutes int) {
	return r.DateString(), r.TimeIn.Format12h(), r.TimeOut.Format12h(), r.Minutes
}
