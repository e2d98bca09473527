package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
)

var ErrFamilyNotFound = errors.New("family not found")

// SearchLimit caps autocomplete results
const SearchLimit = 10

type FamilyStore struct {
	db *pgxpool.Pool
}

func NewFamilyStore(db *pgxpool.Pool) *FamilyStore {
	return &FamilyStore{db: db}
}

const familyColumns = `id, name, email, mobile, spouse_name, created_at`

func scanFamily(row pgx.Row) (*models.Family, error) {
	var family models.Family
	err := row.Scan(
		&family.ID,
		&family.Name,
		&family.Email,
		&family.Mobile,
		&family.SpouseName,
		&family.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFamilyNotFound
		}
		return nil, err
	}
	return &family, nil
}

// Search returns up to SearchLimit families whose name contains the query,
// case-insensitively, ordered by name
func (s *FamilyStore) Search(ctx context.Context, query string) ([]models.Family, error) {
	sql := `
		SELECT ` + familyColumns + `
		FROM families
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, sql, query, SearchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	families := []models.Family{}
	for rows.Next() {
		var family models.Family
		err := rows.Scan(
			&family.ID,
			&family.Name,
			&family.Email,
			&family.Mobile,
			&family.SpouseName,
			&family.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		families = append(families, family)
	}

	return families, rows.Err()
}

// GetByID retrieves a family by its ID
func (s *FamilyStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Family, error) {
	sql := `SELECT ` + familyColumns + ` FROM families WHERE id = $1`
	return scanFamily(s.db.QueryRow(ctx, sql, id))
}

// GetByName retrieves a family by exact name, case-insensitively
func (s *FamilyStore) GetByName(ctx context.Context, name string) (*models.Family, error) {
	sql := `SELECT ` + familyColumns + ` FROM families WHERE LOWER(name) = LOWER($1)`
	return scanFamily(s.db.QueryRow(ctx, sql, name))
}

// Create inserts a new family. Empty optional fields are stored as NULL.
func (s *FamilyStore) Create(ctx context.Context, name, email, mobile, spouseName string) (*models.Family, error) {
	sql := `
		INSERT INTO families (id, name, email, mobile, spouse_name)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		RETURNING ` + familyColumns + `
	`
	return scanFamily(s.db.QueryRow(ctx, sql, uuid.New(), name, email, mobile, spouseName))
}

// UpdateContact merges contact fields into an existing family: a non-empty
// value overwrites, an empty value preserves what is stored
func (s *FamilyStore) UpdateContact(ctx context.Context, id uuid.UUID, email, mobile, spouseName string) (*models.Family, error) {
	sql := `
		UPDATE families
		SET email       = COALESCE(NULLIF($2, ''), email),
		    mobile      = COALESCE(NULLIF($3, ''), mobile),
		    spouse_name = COALESCE(NULLIF($4, ''), spouse_name)
		WHERE id = $1
		RETURNING ` + familyColumns + `
	`
	return scanFamily(s.db.QueryRow(ctx, sql, id, email, mobile, spouseName))
}
