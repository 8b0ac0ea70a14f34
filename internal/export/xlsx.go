package export

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/schedule-planner/internal/model"
)

// XLSX renders a workbook with a single "Schedule" sheet: a bold header row
// and one row per record. Minutes are stored as numbers.
func XLSX(records []model.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, errors.Wrap(err, "renaming sheet")
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		date, in, out, minutes := row(r)
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{date, in, out, minutes}); err != nil {
			return nil, errors.Wrapf(err, "writing row %d", i+2)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "creating header style")
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", bold); err != nil {
		return nil, errors.Wrap(err, "styling header")
	}
	if err := f.SetColWidth(SheetName, "A", "D", 16); err != nil {
		return nil, errors.Wrap(err, "setting column width")
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, errors.Wrap(err, "freezing header")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buf.Bytes(), nil
}
