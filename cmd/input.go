package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/schedule-planner/internal/config"
	"github.com/Tiliavir/schedule-planner/internal/logging"
	"github.com/Tiliavir/schedule-planner/internal/model"
	"github.com/Tiliavir/schedule-planner/internal/schedule"
	"github.com/Tiliavir/schedule-planner/internal/sheet"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

// inputFlags are the schedule input flags shared by generate and report.
type inputFlags struct {
	sheet      string
	from       string
	to         string
	typicalIn  string
	typicalOut string
	weekends   bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Entry sheet (YAML) to read entries from")
	cmd.Flags().StringVar(&f.from, "from", "", "Start date (YYYY-MM-DD); overrides the sheet's start")
	cmd.Flags().StringVar(&f.to, "to", "", "End date (YYYY-MM-DD); overrides the sheet's end")
	cmd.Flags().StringVar(&f.typicalIn, "typical-in", "", "Typical time in for weekdays without entries (e.g. 9:00AM)")
	cmd.Flags().StringVar(&f.typicalOut, "typical-out", "", "Typical time out for weekdays without entries (e.g. 5:00PM)")
	cmd.Flags().BoolVar(&f.weekends, "weekends", false, "Include Saturdays and Sundays")
}

// resolve builds the aggregation request and entry source. Values come from
// the config, then the sheet, then explicit flags, each overriding the last.
// weekendsSet reports whether --weekends was given.
func (f *inputFlags) resolve(c config.Config, weekendsSet bool) (schedule.Request, schedule.Source, error) {
	req := schedule.Request{IncludeWeekends: c.IncludeWeekends}
	entries := schedule.Entries{}
	var src schedule.Source = entries
	if c.TypicalHours.Enabled {
		src = schedule.Typical{Base: entries, TimeIn: c.TypicalHours.TimeIn, TimeOut: c.TypicalHours.TimeOut}
	}

	if f.sheet != "" {
		s, err := sheet.Load(f.sheet)
		if err != nil {
			if errors.Is(err, sheet.ErrInvalidSheet) {
				return req, nil, usageError{err}
			}
			return req, nil, err
		}
		if req, err = s.Request(); err != nil {
			return req, nil, usageError{err}
		}
		// The sheet's typical hours replace the config's, enabled or not.
		entries = schedule.Entries(s.Days)
		src = s.Source()
	}

	if f.from != "" {
		d, err := timecalc.ParseDate(f.from)
		if err != nil {
			return req, nil, usagef("invalid --from value %q: %v", f.from, err)
		}
		req.Start = d
	}
	if f.to != "" {
		d, err := timecalc.ParseDate(f.to)
		if err != nil {
			return req, nil, usagef("invalid --to value %q: %v", f.to, err)
		}
		req.End = d
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return req, nil, usagef("--from and --to are required without --sheet")
	}
	if weekendsSet {
		req.IncludeWeekends = f.weekends
	}

	if f.typicalIn != "" || f.typicalOut != "" {
		if f.typicalIn == "" || f.typicalOut == "" {
			return req, nil, usagef("--typical-in and --typical-out must be given together")
		}
		src = schedule.Typical{Base: entries, TimeIn: f.typicalIn, TimeOut: f.typicalOut}
	}
	if t, ok := src.(schedule.Typical); ok {
		if _, ok := timecalc.ParseTime(t.TimeIn); !ok {
			return req, nil, usagef("typical time in %q is not a valid time", t.TimeIn)
		}
		if _, ok := timecalc.ParseTime(t.TimeOut); !ok {
			return req, nil, usagef("typical time out %q is not a valid time", t.TimeOut)
		}
	}
	return req, src, nil
}

// aggregate resolves the input flags, runs the aggregation and logs every
// skipped entry.
func aggregate(cmd *cobra.Command, f *inputFlags) (schedule.Result, error) {
	req, src, err := f.resolve(cfg, cmd.Flags().Changed("weekends"))
	if err != nil {
		return schedule.Result{}, err
	}

	res := schedule.Aggregate(req, src)
	for _, w := range res.Warnings {
		logger.Warn("skipping invalid entry",
			logging.FieldDate, w.Date.Format(model.DateKeyLayout),
			logging.FieldEntry, w.Index,
			"time_in", w.Entry.TimeIn,
			"time_out", w.Entry.TimeOut,
			"source", w.Entry.Origin(),
			"error", w.Err,
		)
	}
	logger.Debug("schedule aggregated",
		"records", len(res.Records),
		logging.FieldMinutes, schedule.TotalMinutes(res.Records),
	)
	return res, nil
}
