package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/schedule-planner/internal/msgraph"
	"github.com/Tiliavir/schedule-planner/internal/sheet"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

var (
	outlookSyncSheet  string
	outlookSyncFrom   string
	outlookSyncTo     string
	outlookSyncDryRun bool
	outlookSyncTZ     string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events into an entry sheet",
	Args:  cobra.NoArgs,
	RunE:  runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncSheet, "sheet", "", "Entry sheet to import into")
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "Start date (YYYY-MM-DD); defaults to the sheet's start")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "End date (YYYY-MM-DD); defaults to the sheet's end")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned operations without writing")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (e.g. Europe/Berlin)")
	_ = outlookSyncCmd.MarkFlagRequired("sheet")
	outlookCmd.AddCommand(outlookSyncCmd)
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	s, err := sheet.Load(outlookSyncSheet)
	if err != nil {
		if errors.Is(err, sheet.ErrInvalidSheet) {
			return usageError{err}
		}
		return err
	}
	from, to, err := s.Range()
	if err != nil {
		return usageError{err}
	}
	if outlookSyncFrom != "" {
		if from, err = timecalc.ParseDate(outlookSyncFrom); err != nil {
			return usagef("invalid --from value %q: %v", outlookSyncFrom, err)
		}
	}
	if outlookSyncTo != "" {
		if to, err = timecalc.ParseDate(outlookSyncTo); err != nil {
			return usagef("invalid --to value %q: %v", outlookSyncTo, err)
		}
	}

	timezone := cfg.Outlook.Timezone
	if outlookSyncTZ != "" {
		timezone = outlookSyncTZ
	}

	out := cmd.OutOrStdout()
	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Syncing Outlook events (%s → %s)%s...\n\n",
		from.Format("2006-01-02"), to.Format("2006-01-02"), dryTag)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	auth := &msgraph.Auth{
		TenantID: cfg.Outlook.TenantID,
		ClientID: cfg.Outlook.ClientID,
		Prompt:   out,
		Logger:   logger,
	}
	ts, err := auth.TokenSource(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	client := msgraph.NewClient(ctx, ts)
	events, err := client.GetCalendarView(ctx, from, to.AddDate(0, 0, 1), timezone)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar events: %w", err)
	}

	result := msgraph.ImportEvents(events, s, msgraph.ImportOptions{
		DryRun:   outlookSyncDryRun,
		Timezone: timezone,
		Logger:   logger,
	})

	if !outlookSyncDryRun && result.Imported+result.Updated > 0 {
		if err := sheet.Save(outlookSyncSheet, s); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d imported\n", result.Imported)
	fmt.Fprintf(out, "  %d skipped\n", result.Skipped)
	fmt.Fprintf(out, "  %d updated\n", result.Updated)
	if result.Errors > 0 {
		fmt.Fprintf(out, "  %d errors\n", result.Errors)
		return fmt.Errorf("%d events could not be imported", result.Errors)
	}
	return nil
}
