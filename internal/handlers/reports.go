package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
	"github.com/pradeepgv/gita-attendance-tracker/internal/report"
	"github.com/pradeepgv/gita-attendance-tracker/internal/store"
	"github.com/pradeepgv/gita-attendance-tracker/internal/timeutil"
)

// parseDateParam validates an optional YYYY-MM-DD query parameter
func parseDateParam(c *gin.Context, name string) (string, bool) {
	value := c.Query(name)
	if value == "" {
		return "", true
	}
	if _, err := time.Parse(timeutil.DateFormat, value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return "", false
	}
	return value, true
}

// GetWeeklyReport handles GET /api/reports/weekly: the Sunday-to-Saturday
// window containing the reference date, with summary totals
func GetWeeklyReport(attendance AttendanceStore, clock timeutil.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := clock.Now()
		if dateParam := c.Query("date"); dateParam != "" {
			parsed, err := time.Parse(timeutil.DateFormat, dateParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
				return
			}
			target = parsed
		}

		weekStart, weekEnd := report.WeekWindowFor(target)
		startStr := report.FormatDate(weekStart)
		endStr := report.FormatDate(weekEnd)

		records, err := attendance.ListRange(c.Request.Context(), startStr, endStr)
		if err != nil {
			slog.Error("failed to query weekly attendance", "week_start", startStr, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
			return
		}

		totalFamilies, totalAdults, totalChildren := report.WeeklyTotals(records)

		c.JSON(http.StatusOK, models.WeeklyReportResponse{
			WeekStart:     startStr,
			WeekEnd:       endStr,
			TotalFamilies: totalFamilies,
			TotalAdults:   totalAdults,
			TotalChildren: totalChildren,
			TotalPeople:   totalAdults + totalChildren,
			Records:       records,
		})
	}
}

// GetFamilyReport handles GET /api/reports/family/:id: attendance history
// for the requested range plus the fixed-window regularity score. The score
// always covers the trailing 70 days, never the display range.
func GetFamilyReport(families FamilyStore, attendance AttendanceStore, clock timeutil.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid family ID format"})
			return
		}

		startDate, ok := parseDateParam(c, "start_date")
		if !ok {
			return
		}
		endDate, ok := parseDateParam(c, "end_date")
		if !ok {
			return
		}

		ctx := c.Request.Context()

		family, err := families.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrFamilyNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
				return
			}
			slog.Error("failed to query family", "family_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
			return
		}

		history, err := attendance.ListByFamily(ctx, id, startDate, endDate)
		if err != nil {
			slog.Error("failed to query family attendance", "family_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
			return
		}

		windowStart := report.FormatDate(report.RegularityWindowStart(clock.Now()))
		recentDates, err := attendance.DatesSince(ctx, id, windowStart)
		if err != nil {
			slog.Error("failed to query regularity window", "family_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
			return
		}

		c.JSON(http.StatusOK, models.FamilyReportResponse{
			Family:     family,
			Attendance: history,
			Regularity: report.Score(recentDates),
		})
	}
}

// ExportAttendanceCSV handles GET /api/reports/export: a date-filtered
// ledger join flattened to a CSV attachment
func ExportAttendanceCSV(attendance AttendanceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		startDate, ok := parseDateParam(c, "start_date")
		if !ok {
			return
		}
		endDate, ok := parseDateParam(c, "end_date")
		if !ok {
			return
		}

		records, err := attendance.ListRange(c.Request.Context(), startDate, endDate)
		if err != nil {
			slog.Error("failed to query attendance for export", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export attendance"})
			return
		}

		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, records); err != nil {
			slog.Error("failed to write CSV", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export attendance"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=attendance_report.csv")
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	}
}
