package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/schedule-planner/internal/logging"
	"github.com/Tiliavir/schedule-planner/internal/sheet"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

var (
	sheetFrom     string
	sheetTo       string
	sheetWeekends bool
	sheetTypical  bool
	sheetOut      string
	sheetForce    bool
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Manage entry sheets",
}

var sheetInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an entry sheet template with one empty slot per day",
	Args:  cobra.NoArgs,
	RunE:  runSheetInit,
}

func init() {
	sheetInitCmd.Flags().StringVar(&sheetFrom, "from", "", "Start date (YYYY-MM-DD)")
	sheetInitCmd.Flags().StringVar(&sheetTo, "to", "", "End date (YYYY-MM-DD)")
	sheetInitCmd.Flags().BoolVar(&sheetWeekends, "weekends", false, "Include Saturdays and Sundays")
	sheetInitCmd.Flags().BoolVar(&sheetTypical, "typical", false, "Enable typical hours from the config")
	sheetInitCmd.Flags().StringVarP(&sheetOut, "out", "o", "schedule.yaml", "Sheet file to write")
	sheetInitCmd.Flags().BoolVar(&sheetForce, "force", false, "Overwrite an existing sheet")
	_ = sheetInitCmd.MarkFlagRequired("from")
	_ = sheetInitCmd.MarkFlagRequired("to")
	sheetCmd.AddCommand(sheetInitCmd)
}

func runSheetInit(cmd *cobra.Command, args []string) error {
	from, err := timecalc.ParseDate(sheetFrom)
	if err != nil {
		return usagef("invalid --from value %q: %v", sheetFrom, err)
	}
	to, err := timecalc.ParseDate(sheetTo)
	if err != nil {
		return usagef("invalid --to value %q: %v", sheetTo, err)
	}
	if to.Before(from) {
		return usagef("--to %s is before --from %s", sheetTo, sheetFrom)
	}

	if _, err := os.Stat(sheetOut); err == nil && !sheetForce {
		return usagef("%s already exists (use --force to overwrite)", sheetOut)
	}

	weekends := cfg.IncludeWeekends
	if cmd.Flags().Changed("weekends") {
		weekends = sheetWeekends
	}

	s := sheet.New(from, to, weekends)
	s.TypicalHours = sheet.TypicalHours{
		Enabled: sheetTypical || cfg.TypicalHours.Enabled,
		TimeIn:  cfg.TypicalHours.TimeIn,
		TimeOut: cfg.TypicalHours.TimeOut,
	}

	if err := sheet.Save(sheetOut, s); err != nil {
		return err
	}
	logger.Info("wrote entry sheet", logging.FieldPath, sheetOut, "days", len(s.Days))
	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ Wrote %s (%d days)\n", sheetOut, len(s.Days))
	return nil
}
