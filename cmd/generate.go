package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Tiliavir/schedule-planner/internal/export"
	"github.com/Tiliavir/schedule-planner/internal/logging"
	"github.com/Tiliavir/schedule-planner/internal/model"
	"github.com/Tiliavir/schedule-planner/internal/schedule"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

var (
	generateInput   inputFlags
	generateFormats []string
	generateOut     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Aggregate entries and write the schedule as PDF, XLSX, CSV and JSON",
	Example: `  planner generate --sheet january.yaml
  planner generate --from 2024-01-01 --to 2024-01-31 --typical-in 9am --typical-out 5pm --format pdf,csv`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateInput.register(generateCmd)
	generateCmd.Flags().StringSliceVar(&generateFormats, "format", nil, "Formats to write: pdf, xlsx, csv, json (default from config)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output directory (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	res, err := aggregate(cmd, &generateInput)
	if err != nil {
		return err
	}

	names := cfg.Output.Formats
	if len(generateFormats) > 0 {
		names = generateFormats
	}
	formats, err := export.ParseFormats(names)
	if err != nil {
		return usageError{err}
	}

	dir := cfg.Output.Dir
	if generateOut != "" {
		dir = generateOut
	}

	paths, err := writeExports(cmd.Context(), logger, dir, formats, res.Records)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range paths {
		fmt.Fprintf(out, "  ✓ Wrote %s\n", p)
	}
	fmt.Fprintf(out, "%d entries, total %s", len(res.Records), timecalc.FormatDuration(schedule.TotalMinutes(res.Records)))
	if n := len(res.Warnings); n > 0 {
		fmt.Fprintf(out, ", %d skipped", n)
	}
	fmt.Fprintln(out)
	return nil
}

// writeExports encodes and writes every format concurrently. The returned
// paths follow the order of formats.
func writeExports(ctx context.Context, log *slog.Logger, dir string, formats []export.Format, records []model.Record) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)
	paths := make([]string, len(formats))

	for i, f := range formats {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := export.WriteFile(dir, f, records)
			if err != nil {
				return err
			}
			log.Info("wrote export",
				logging.FieldFormat, string(f),
				"content_type", f.ContentType(),
				logging.FieldPath, path,
			)
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
