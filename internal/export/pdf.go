package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/Tiliavir/schedule-planner/internal/model"
	"github.com/Tiliavir/schedule-planner/internal/schedule"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

// ReportTitle heads the PDF report.
const ReportTitle = "Work Schedule Report"

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Day", 34},
	{"Date", 34},
	{"Time In", 34},
	{"Time Out", 34},
	{"Duration", 44},
}

const (
	pdfRowHeight = 7.0
	pdfFont      = "Helvetica"
)

// PDF renders an A4 report with one table per week, a subtotal line after
// each week and a grand total at the end. Weeks follow the Week field of the
// records.
func PDF(records []model.Record) ([]byte, error) {
	sum := schedule.Summarize(records)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetTitle(ReportTitle, false)
	pdf.SetCreator("planner", false)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, ReportTitle, "", 1, "C", false, 0, "")
	if len(records) > 0 {
		pdf.SetFont(pdfFont, "", 10)
		span := fmt.Sprintf("%s - %s", records[0].DateString(), records[len(records)-1].DateString())
		pdf.CellFormat(0, 6, span, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	if len(sum.Weeks) == 0 {
		pdf.SetFont(pdfFont, "", 11)
		pdf.CellFormat(0, pdfRowHeight, "No entries recorded.", "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	for _, w := range sum.Weeks {
		pdf.SetFont(pdfFont, "B", 13)
		pdf.CellFormat(0, 9, fmt.Sprintf("Week %d", w.Week), "", 1, "L", false, 0, "")

		pdf.SetFont(pdfFont, "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, pdfRowHeight, c.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont(pdfFont, "", 10)
		for _, r := range w.Records {
			cells := []string{
				r.DayName(),
				r.DateString(),
				r.TimeIn.Format12h(),
				r.TimeOut.Format12h(),
				timecalc.FormatDuration(r.Minutes),
			}
			for i, c := range pdfColumns {
				pdf.CellFormat(c.width, pdfRowHeight, cells[i], "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.SetFont(pdfFont, "B", 10)
		pdf.CellFormat(0, 8, fmt.Sprintf("Week %d Total: %s", w.Week, timecalc.FormatDuration(w.Minutes)), "", 1, "R", false, 0, "")
		pdf.Ln(3)
	}

	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 10, "Grand Total: "+timecalc.FormatDuration(sum.TotalMinutes), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
