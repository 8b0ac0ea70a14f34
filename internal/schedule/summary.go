package schedule

import (
	"sort"

	"github.com/Tiliavir/schedule-planner/internal/model"
)

// WeekGroup holds the records of one week and their total.
type WeekGroup struct {
	Week    int
	Records []model.Record
	Minutes int
}

// Summary is the per-week breakdown of a record list.
type Summary struct {
	Weeks        []WeekGroup
	TotalMinutes int
}

// Summarize groups records by their Week field, ascending. Records keep
// their relative order within a week. The input slice is not modified.
func Summarize(records []model.Record) Summary {
	byWeek := map[int]*WeekGroup{}
	var order []int
	var total int
	for _, r := range records {
		g, ok := byWeek[r.Week]
		if !ok {
			g = &WeekGroup{Week: r.Week}
			byWeek[r.Week] = g
			order = append(order, r.Week)
		}
		g.Records = append(g.Records, r)
		g.Minutes += r.Minutes
		total += r.Minutes
	}
	sort.Ints(order)

	s := Summary{Weeks: make([]WeekGroup, 0, len(order)), TotalMinutes: total}
	for _, w := range order {
		s.Weeks = append(s.Weeks, *byWeek[w])
	}
	return s
}

// TotalMinutes sums the minutes of all records.
func TotalMinutes(records []model.Record) int {
	var total int
	for _, r := range records {
		total += r.Minutes
	}
	return total
}
