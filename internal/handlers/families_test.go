package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func familiesRouter(families *fakeFamilyStore) *gin.Engine {
	r := gin.New()
	r.GET("/api/families/search", SearchFamilies(families))
	r.GET("/api/families/:id", GetFamily(families))
	r.POST("/api/families", CreateFamily(families))
	return r
}

func TestSearchFamilies(t *testing.T) {
	families, _ := newFakes()
	families.add("Sharma", "", "", "")
	families.add("Gupta", "", "", "")
	r := familiesRouter(families)

	w := doJSON(r, http.MethodGet, "/api/families/search?query=sha", nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decode[[]models.Family](w)
	require.Len(t, results, 1)
	assert.Equal(t, "Sharma", results[0].Name)
}

func TestSearchFamiliesEmptyQuery(t *testing.T) {
	families, _ := newFakes()
	families.add("Sharma", "", "", "")
	r := familiesRouter(families)

	for _, path := range []string{"/api/families/search", "/api/families/search?query=%20%20"} {
		w := doJSON(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	}
}

func TestSearchFamiliesCapsResults(t *testing.T) {
	families, _ := newFakes()
	for i := 0; i < 12; i++ {
		families.add(fmt.Sprintf("Sharma %02d", i), "", "", "")
	}
	r := familiesRouter(families)

	w := doJSON(r, http.MethodGet, "/api/families/search?query=sharma", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Family](w), 10)
}

func TestGetFamily(t *testing.T) {
	families, _ := newFakes()
	fam := families.add("Sharma", "sharma@example.com", "", "")
	r := familiesRouter(families)

	w := doJSON(r, http.MethodGet, "/api/families/"+fam.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Family](w)
	assert.Equal(t, fam.ID, got.ID)
	assert.Equal(t, "Sharma", got.Name)
}

func TestGetFamilyNotFound(t *testing.T) {
	families, _ := newFakes()
	r := familiesRouter(families)

	w := doJSON(r, http.MethodGet, "/api/families/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetFamilyBadID(t *testing.T) {
	families, _ := newFakes()
	r := familiesRouter(families)

	w := doJSON(r, http.MethodGet, "/api/families/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFamilyNew(t *testing.T) {
	families, _ := newFakes()
	r := familiesRouter(families)

	w := doJSON(r, http.MethodPost, "/api/families", gin.H{
		"name":   "Sharma",
		"email":  "sharma@example.com",
		"mobile": "0412345678",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	got := decode[models.Family](w)
	assert.Equal(t, "Sharma", got.Name)
	require.NotNil(t, got.Email)
	assert.Equal(t, "sharma@example.com", *got.Email)
}

func TestCreateFamilyExistingMerges(t *testing.T) {
	families, _ := newFakes()
	existing := families.add("Sharma", "old@example.com", "", "Priya")
	r := familiesRouter(families)

	w := doJSON(r, http.MethodPost, "/api/families", gin.H{
		"name":   "SHARMA",
		"mobile": "0412345678",
	})

	// existing name returns 200, not 201
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Family](w)
	assert.Equal(t, existing.ID, got.ID)
	require.NotNil(t, got.Mobile)
	assert.Equal(t, "0412345678", *got.Mobile)
	// fields not supplied keep their stored values
	require.NotNil(t, got.Email)
	assert.Equal(t, "old@example.com", *got.Email)
	require.NotNil(t, got.SpouseName)
	assert.Equal(t, "Priya", *got.SpouseName)
}

func TestCreateFamilyValidation(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
		want string
	}{
		{"missing name", gin.H{}, "Family name is required"},
		{"blank name", gin.H{"name": "  "}, "Family name is required"},
		{"bad email", gin.H{"name": "Sharma", "email": "nope"}, "Invalid email format"},
		{"bad mobile", gin.H{"name": "Sharma", "mobile": "123"}, "Invalid mobile number format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			families, _ := newFakes()
			r := familiesRouter(families)

			w := doJSON(r, http.MethodPost, "/api/families", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode[map[string]string](w)
			assert.Equal(t, tt.want, resp["error"])
		})
	}
}
