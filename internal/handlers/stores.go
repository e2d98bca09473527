package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
)

// FamilyStore is the family directory surface the handlers consume
type FamilyStore interface {
	Search(ctx context.Context, query string) ([]models.Family, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Family, error)
	GetByName(ctx context.Context, name string) (*models.Family, error)
	Create(ctx context.Context, name, email, mobile, spouseName string) (*models.Family, error)
	UpdateContact(ctx context.Context, id uuid.UUID, email, mobile, spouseName string) (*models.Family, error)
}

// AttendanceStore is the attendance ledger surface the handlers consume
type AttendanceStore interface {
	Insert(ctx context.Context, familyID uuid.UUID, date string, adults, children int) (*models.AttendanceRecord, error)
	GetByFamilyAndDate(ctx context.Context, familyID uuid.UUID, date string) (*models.AttendanceRecord, error)
	ListRange(ctx context.Context, startDate, endDate string) ([]models.AttendanceWithFamily, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID, startDate, endDate string) ([]models.AttendanceRecord, error)
	DatesSince(ctx context.Context, familyID uuid.UUID, since string) ([]string, error)
	AbsentSince(ctx context.Context, cutoff string) ([]models.AbsentFamily, error)
}
