package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is one family's submission for one calendar day.
// Records are immutable once written; at most one exists per (family, date).
type AttendanceRecord struct {
	ID            uuid.UUID `json:"id"`
	FamilyID      uuid.UUID `json:"family_id"`
	Date          string    `json:"date"` // local calendar day, YYYY-MM-DD
	AdultsCount   int       `json:"adults_count"`
	ChildrenCount int       `json:"children_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// AttendanceWithFamily is a ledger row joined with family contact fields
type AttendanceWithFamily struct {
	AttendanceRecord
	Family FamilyContact `json:"families"`
}

// SubmitAttendanceRequest is the body for POST /api/attendance.
// Counts are pointers so a missing field is distinguishable from zero.
type SubmitAttendanceRequest struct {
	FamilyName    string `json:"family_name"`
	SpouseName    string `json:"spouse_name"`
	Email         string `json:"email" binding:"omitempty,email_simple"`
	Mobile        string `json:"mobile" binding:"omitempty,mobile"`
	AdultsCount   *int   `json:"adults_count"`
	ChildrenCount *int   `json:"children_count"`
}

// SubmitAttendanceResponse is the 201 body for a successful submission
type SubmitAttendanceResponse struct {
	Message    string            `json:"message"`
	Attendance *AttendanceRecord `json:"attendance"`
	Family     *Family           `json:"family"`
}
