package models

import (
	"time"

	"github.com/google/uuid"
)

// Family represents a household registered with the class
type Family struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"` // unique, matched case-insensitively
	Email      *string   `json:"email"`
	Mobile     *string   `json:"mobile"`
	SpouseName *string   `json:"spouse_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateFamilyRequest is the body for POST /api/families
type CreateFamilyRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" binding:"omitempty,email_simple"`
	Mobile     string `json:"mobile" binding:"omitempty,mobile"`
	SpouseName string `json:"spouse_name"`
}

// FamilyContact is the subset of family fields joined onto attendance rows
type FamilyContact struct {
	Name   string  `json:"name"`
	Email  *string `json:"email"`
	Mobile *string `json:"mobile"`
}
