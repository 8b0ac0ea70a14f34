package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/schedule-planner/internal/model"
	"github.com/Tiliavir/schedule-planner/internal/schedule"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

var reportInput inputFlags

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the weekly breakdown in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var (
	weekTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	subtotalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	totalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))
)

func init() {
	reportInput.register(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	res, err := aggregate(cmd, &reportInput)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), res.Records)
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d invalid entries skipped (see log)\n", n)
	}
	return nil
}

// printReport writes one table per week followed by its subtotal, and the
// grand total.
func printReport(w io.Writer, records []model.Record) {
	sum := schedule.Summarize(records)
	if len(sum.Weeks) == 0 {
		fmt.Fprintln(w, "No entries recorded.")
	}

	for _, wk := range sum.Weeks {
		fmt.Fprintln(w, weekTitleStyle.Render("Week "+strconv.Itoa(wk.Week)))
		fmt.Fprintln(w, weekTable(wk.Records))
		fmt.Fprintln(w, subtotalStyle.Render(fmt.Sprintf("Week %d Total: %s", wk.Week, timecalc.FormatDuration(wk.Minutes))))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintln(w, totalStyle.Render("Grand Total: "+timecalc.FormatDuration(sum.TotalMinutes)))
}

func weekTable(records []model.Record) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Day", "Date", "Time In", "Time Out", "Duration").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range records {
		t.Row(r.DayName(), r.DateString(), r.TimeIn.Format12h(), r.TimeOut.Format12h(), timecalc.FormatDuration(r.Minutes))
	}
	return t.String()
}
