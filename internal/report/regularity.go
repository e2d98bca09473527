package report

import (
	"fmt"
	"time"

	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
	"github.com/pradeepgv/gita-attendance-tracker/internal/timeutil"
)

const (
	// RegularityWindowDays is the trailing window the score is computed over,
	// independent of whatever history range the admin is viewing
	RegularityWindowDays = 70
	// RegularityWindowWeeks is the fixed denominator of the score
	RegularityWindowWeeks = 10
)

// RegularityWindowStart returns the cutoff date for the scoring window
// relative to now
func RegularityWindowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -RegularityWindowDays)
}

// WeeksAttended collapses attendance dates to the Sunday starting each
// date's week and counts the distinct weeks. Dates that fail to parse are
// skipped.
func WeeksAttended(dates []string) int {
	weeks := map[string]struct{}{}
	for _, ds := range dates {
		d, err := time.Parse(timeutil.DateFormat, ds)
		if err != nil {
			continue
		}
		weeks[WeekStartOf(d).Format(timeutil.DateFormat)] = struct{}{}
	}
	return len(weeks)
}

// Score builds the regularity result for a set of in-window dates
func Score(dates []string) models.Regularity {
	attended := WeeksAttended(dates)
	return models.Regularity{
		WeeksAttended: attended,
		OutOfWeeks:    RegularityWindowWeeks,
		Summary:       fmt.Sprintf("Attended %d out of last %d weeks", attended, RegularityWindowWeeks),
	}
}
