package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
	"github.com/pradeepgv/gita-attendance-tracker/internal/timeutil"
)

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateAttendance = errors.New("attendance already recorded for this family and date")
)

// Postgres error code for unique constraint violations
const uniqueViolationCode = "23505"

type AttendanceStore struct {
	db *pgxpool.Pool
}

func NewAttendanceStore(db *pgxpool.Pool) *AttendanceStore {
	return &AttendanceStore{db: db}
}

func scanAttendance(row pgx.Row) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	var date time.Time
	err := row.Scan(
		&rec.ID,
		&rec.FamilyID,
		&date,
		&rec.AdultsCount,
		&rec.ChildrenCount,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}
	rec.Date = date.Format(timeutil.DateFormat)
	return &rec, nil
}

// Insert writes a new attendance record. The UNIQUE (family_id, date)
// constraint turns a lost duplicate-check race into ErrDuplicateAttendance.
func (s *AttendanceStore) Insert(ctx context.Context, familyID uuid.UUID, date string, adults, children int) (*models.AttendanceRecord, error) {
	sql := `
		INSERT INTO attendance (id, family_id, date, adults_count, children_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, family_id, date, adults_count, children_count, created_at
	`

	rec, err := scanAttendance(s.db.QueryRow(ctx, sql, uuid.New(), familyID, date, adults, children))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateAttendance
		}
		return nil, err
	}
	return rec, nil
}

// GetByFamilyAndDate finds the record for one family on one calendar day
func (s *AttendanceStore) GetByFamilyAndDate(ctx context.Context, familyID uuid.UUID, date string) (*models.AttendanceRecord, error) {
	sql := `
		SELECT id, family_id, date, adults_count, children_count, created_at
		FROM attendance
		WHERE family_id = $1 AND date = $2
	`
	return scanAttendance(s.db.QueryRow(ctx, sql, familyID, date))
}

// ListRange returns ledger rows joined with family contact fields, newest
// first. Empty bounds leave that side of the range open.
func (s *AttendanceStore) ListRange(ctx context.Context, startDate, endDate string) ([]models.AttendanceWithFamily, error) {
	sql := `
		SELECT a.id, a.family_id, a.date, a.adults_count, a.children_count, a.created_at,
		       f.name, f.email, f.mobile
		FROM attendance a
		JOIN families f ON f.id = a.family_id
	`
	args := []any{}
	where := ""
	if startDate != "" {
		args = append(args, startDate)
		where = fmt.Sprintf(" WHERE a.date >= $%d", len(args))
	}
	if endDate != "" {
		args = append(args, endDate)
		if where == "" {
			where = fmt.Sprintf(" WHERE a.date <= $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND a.date <= $%d", len(args))
		}
	}
	sql += where + " ORDER BY a.date DESC"

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.AttendanceWithFamily{}
	for rows.Next() {
		var rec models.AttendanceWithFamily
		var date time.Time
		err := rows.Scan(
			&rec.ID,
			&rec.FamilyID,
			&date,
			&rec.AdultsCount,
			&rec.ChildrenCount,
			&rec.CreatedAt,
			&rec.Family.Name,
			&rec.Family.Email,
			&rec.Family.Mobile,
		)
		if err != nil {
			return nil, err
		}
		rec.Date = date.Format(timeutil.DateFormat)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListByFamily returns one family's rows newest first, optionally bounded
func (s *AttendanceStore) ListByFamily(ctx context.Context, familyID uuid.UUID, startDate, endDate string) ([]models.AttendanceRecord, error) {
	sql := `
		SELECT id, family_id, date, adults_count, children_count, created_at
		FROM attendance
		WHERE family_id = $1
	`
	args := []any{familyID}
	if startDate != "" {
		args = append(args, startDate)
		sql += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if endDate != "" {
		args = append(args, endDate)
		sql += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	sql += " ORDER BY date DESC"

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		var rec models.AttendanceRecord
		var date time.Time
		err := rows.Scan(
			&rec.ID,
			&rec.FamilyID,
			&date,
			&rec.AdultsCount,
			&rec.ChildrenCount,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Date = date.Format(timeutil.DateFormat)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DatesSince returns the dates one family attended on or after a cutoff
func (s *AttendanceStore) DatesSince(ctx context.Context, familyID uuid.UUID, since string) ([]string, error) {
	sql := `SELECT date FROM attendance WHERE family_id = $1 AND date >= $2`

	rows, err := s.db.Query(ctx, sql, familyID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date.Format(timeutil.DateFormat))
	}

	return dates, rows.Err()
}

// AbsentSince returns families with no attendance on or after the cutoff,
// ordered by name, each with their most recent attendance date (nil when the
// family has never attended). One grouped query instead of a per-family loop.
func (s *AttendanceStore) AbsentSince(ctx context.Context, cutoff string) ([]models.AbsentFamily, error) {
	sql := `
		SELECT f.id, f.name, f.email, f.mobile, f.spouse_name, f.created_at, MAX(a.date)
		FROM families f
		LEFT JOIN attendance a ON a.family_id = f.id
		GROUP BY f.id, f.name, f.email, f.mobile, f.spouse_name, f.created_at
		HAVING MAX(a.date) IS NULL OR MAX(a.date) < $1
		ORDER BY f.name ASC
	`

	rows, err := s.db.Query(ctx, sql, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	families := []models.AbsentFamily{}
	for rows.Next() {
		var af models.AbsentFamily
		var last *time.Time
		err := rows.Scan(
			&af.ID,
			&af.Name,
			&af.Email,
			&af.Mobile,
			&af.SpouseName,
			&af.CreatedAt,
			&last,
		)
		if err != nil {
			return nil, err
		}
		if last != nil {
			formatted := last.Format(timeutil.DateFormat)
			af.LastAttended = &formatted
		}
		families = append(families, af)
	}

	return families, rows.Err()
}
