package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
	"github.com/pradeepgv/gita-attendance-tracker/internal/store"
	"github.com/pradeepgv/gita-attendance-tracker/internal/timeutil"
)

// SubmitAttendance handles POST /api/attendance: resolves or creates the
// family, rejects a second submission for the same local day, and appends
// a ledger record
func SubmitAttendance(families FamilyStore, attendance AttendanceStore, clock timeutil.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SubmitAttendanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.BindingErrorMessage(err)})
			return
		}

		familyName := strings.TrimSpace(req.FamilyName)
		if familyName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Family name is required"})
			return
		}
		if req.AdultsCount == nil || req.ChildrenCount == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Adults and children count are required"})
			return
		}
		adults, children := *req.AdultsCount, *req.ChildrenCount
		if adults < 0 || children < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Counts cannot be negative"})
			return
		}
		if adults == 0 && children == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "At least one person must be attending"})
			return
		}

		ctx := c.Request.Context()

		// Find or create the family, merging any supplied contact fields
		family, err := families.GetByName(ctx, familyName)
		switch {
		case err == nil:
			if req.Email != "" || req.Mobile != "" || req.SpouseName != "" {
				family, err = families.UpdateContact(ctx, family.ID, req.Email, req.Mobile, req.SpouseName)
				if err != nil {
					slog.Error("failed to update family contact", "family", familyName, "error", err)
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
					return
				}
			}
		case errors.Is(err, store.ErrFamilyNotFound):
			family, err = families.Create(ctx, familyName, req.Email, req.Mobile, req.SpouseName)
			if err != nil {
				slog.Error("failed to create family", "family", familyName, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
				return
			}
		default:
			slog.Error("failed to look up family", "family", familyName, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
			return
		}

		today := timeutil.Today(clock)

		// Friendly duplicate check; the unique constraint below closes the race
		existing, err := attendance.GetByFamilyAndDate(ctx, family.ID, today)
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"error":    "Attendance already submitted today for this family",
				"existing": existing,
			})
			return
		}
		if !errors.Is(err, store.ErrAttendanceNotFound) {
			slog.Error("failed to check existing attendance", "family_id", family.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
			return
		}

		rec, err := attendance.Insert(ctx, family.ID, today, adults, children)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateAttendance) {
				// Lost the race to a concurrent submission; report the winner
				existing, getErr := attendance.GetByFamilyAndDate(ctx, family.ID, today)
				if getErr == nil {
					c.JSON(http.StatusConflict, gin.H{
						"error":    "Attendance already submitted today for this family",
						"existing": existing,
					})
					return
				}
			}
			slog.Error("failed to insert attendance", "family_id", family.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attendance"})
			return
		}

		c.JSON(http.StatusCreated, models.SubmitAttendanceResponse{
			Message:    "Attendance recorded successfully",
			Attendance: rec,
			Family:     family,
		})
	}
}
