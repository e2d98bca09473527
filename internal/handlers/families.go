package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
	"github.com/pradeepgv/gita-attendance-tracker/internal/store"
)

// SearchFamilies handles GET /api/families/search for the form autocomplete.
// Blank queries short-circuit to an empty list without touching storage.
func SearchFamilies(families FamilyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("query"))
		if query == "" {
			c.JSON(http.StatusOK, []models.Family{})
			return
		}

		results, err := families.Search(c.Request.Context(), query)
		if err != nil {
			slog.Error("failed to search families", "query", query, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search families"})
			return
		}

		c.JSON(http.StatusOK, results)
	}
}

// GetFamily handles GET /api/families/:id
func GetFamily(families FamilyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid family ID format"})
			return
		}

		family, err := families.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrFamilyNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
				return
			}
			slog.Error("failed to query family", "family_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query family"})
			return
		}

		c.JSON(http.StatusOK, family)
	}
}

// CreateFamily handles POST /api/families: 201 with a new record, or 200
// with merged contact fields when the name already exists
func CreateFamily(families FamilyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateFamilyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.BindingErrorMessage(err)})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Family name is required"})
			return
		}

		ctx := c.Request.Context()

		existing, err := families.GetByName(ctx, name)
		switch {
		case err == nil:
			merged, err := families.UpdateContact(ctx, existing.ID, req.Email, req.Mobile, req.SpouseName)
			if err != nil {
				slog.Error("failed to update family", "family", name, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update family"})
				return
			}
			c.JSON(http.StatusOK, merged)
		case errors.Is(err, store.ErrFamilyNotFound):
			family, err := families.Create(ctx, name, req.Email, req.Mobile, req.SpouseName)
			if err != nil {
				slog.Error("failed to create family", "family", name, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create family"})
				return
			}
			c.JSON(http.StatusCreated, family)
		default:
			slog.Error("failed to look up family", "family", name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create family"})
			return
		}
	}
}
