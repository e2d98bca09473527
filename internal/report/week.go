// Package report holds the aggregation logic behind the admin reports:
// calendar-week windows, weekly totals, regularity scoring and CSV export.
// Everything here is pure; storage access stays in the store layer.
package report

import (
	"time"

	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
	"github.com/pradeepgv/gita-attendance-tracker/internal/timeutil"
)

// WeekStartOf returns the Sunday beginning the week that contains d,
// truncated to midnight in d's location
func WeekStartOf(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// WeekWindowFor returns the inclusive Sunday-to-Saturday window containing d
func WeekWindowFor(d time.Time) (start, end time.Time) {
	start = WeekStartOf(d)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// WeeklyTotals aggregates a week's ledger rows: distinct families and
// summed headcounts
func WeeklyTotals(records []models.AttendanceWithFamily) (totalFamilies, totalAdults, totalChildren int) {
	seen := map[string]struct{}{}
	for _, rec := range records {
		seen[rec.FamilyID.String()] = struct{}{}
		totalAdults += rec.AdultsCount
		totalChildren += rec.ChildrenCount
	}
	return len(seen), totalAdults, totalChildren
}

// FormatDate renders a time as a calendar-day string
func FormatDate(d time.Time) string {
	return d.Format(timeutil.DateFormat)
}
