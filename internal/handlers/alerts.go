package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
	"github.com/pradeepgv/gita-attendance-tracker/internal/report"
	"github.com/pradeepgv/gita-attendance-tracker/internal/timeutil"
)

// AbsenceWindowDays is how long a family can go unseen before they are
// flagged for follow-up
const AbsenceWindowDays = 14

// GetAbsentFamilies handles GET /api/alerts/absent: families with no
// attendance in the trailing two weeks, each with their last attended date
// (null for families that have never attended)
func GetAbsentFamilies(attendance AttendanceStore, clock timeutil.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		cutoff := report.FormatDate(clock.Now().AddDate(0, 0, -AbsenceWindowDays))

		families, err := attendance.AbsentSince(c.Request.Context(), cutoff)
		if err != nil {
			slog.Error("failed to query absent families", "cutoff", cutoff, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query absent families"})
			return
		}

		c.JSON(http.StatusOK, models.AbsentFamiliesResponse{
			Count:    len(families),
			Families: families,
		})
	}
}
