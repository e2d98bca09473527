package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
	"github.com/pradeepgv/gita-attendance-tracker/internal/store"
	"github.com/pradeepgv/gita-attendance-tracker/internal/timeutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	models.RegisterValidations()
}

// fixedClock pins "now" for deterministic date windows
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

func clockAt(date string) fixedClock {
	t, err := time.Parse(timeutil.DateFormat, date)
	if err != nil {
		panic(err)
	}
	return fixedClock{t: t}
}

// fakeFamilyStore is an in-memory FamilyStore
type fakeFamilyStore struct {
	families []*models.Family
}

func (f *fakeFamilyStore) add(name, email, mobile, spouse string) *models.Family {
	fam := &models.Family{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	if email != "" {
		fam.Email = &email
	}
	if mobile != "" {
		fam.Mobile = &mobile
	}
	if spouse != "" {
		fam.SpouseName = &spouse
	}
	f.families = append(f.families, fam)
	return fam
}

func (f *fakeFamilyStore) Search(_ context.Context, query string) ([]models.Family, error) {
	matches := []models.Family{}
	for _, fam := range f.families {
		if strings.Contains(strings.ToLower(fam.Name), strings.ToLower(query)) {
			matches = append(matches, *fam)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	if len(matches) > store.SearchLimit {
		matches = matches[:store.SearchLimit]
	}
	return matches, nil
}

func (f *fakeFamilyStore) GetByID(_ context.Context, id uuid.UUID) (*models.Family, error) {
	for _, fam := range f.families {
		if fam.ID == id {
			out := *fam
			return &out, nil
		}
	}
	return nil, store.ErrFamilyNotFound
}

func (f *fakeFamilyStore) GetByName(_ context.Context, name string) (*models.Family, error) {
	for _, fam := range f.families {
		if strings.EqualFold(fam.Name, name) {
			out := *fam
			return &out, nil
		}
	}
	return nil, store.ErrFamilyNotFound
}

func (f *fakeFamilyStore) Create(_ context.Context, name, email, mobile, spouse string) (*models.Family, error) {
	fam := f.add(name, email, mobile, spouse)
	out := *fam
	return &out, nil
}

func (f *fakeFamilyStore) UpdateContact(_ context.Context, id uuid.UUID, email, mobile, spouse string) (*models.Family, error) {
	for _, fam := range f.families {
		if fam.ID == id {
			if email != "" {
				fam.Email = &email
			}
			if mobile != "" {
				fam.Mobile = &mobile
			}
			if spouse != "" {
				fam.SpouseName = &spouse
			}
			out := *fam
			return &out, nil
		}
	}
	return nil, store.ErrFamilyNotFound
}

// fakeAttendanceStore is an in-memory AttendanceStore joined against a
// fakeFamilyStore for contact fields
type fakeAttendanceStore struct {
	families *fakeFamilyStore
	records  []models.AttendanceRecord
}

func (f *fakeAttendanceStore) add(familyID uuid.UUID, date string, adults, children int) models.AttendanceRecord {
	rec := models.AttendanceRecord{
		ID:            uuid.New(),
		FamilyID:      familyID,
		Date:          date,
		AdultsCount:   adults,
		ChildrenCount: children,
		CreatedAt:     time.Now(),
	}
	f.records = append(f.records, rec)
	return rec
}

func (f *fakeAttendanceStore) Insert(_ context.Context, familyID uuid.UUID, date string, adults, children int) (*models.AttendanceRecord, error) {
	for _, rec := range f.records {
		if rec.FamilyID == familyID && rec.Date == date {
			return nil, store.ErrDuplicateAttendance
		}
	}
	rec := f.add(familyID, date, adults, children)
	return &rec, nil
}

func (f *fakeAttendanceStore) GetByFamilyAndDate(_ context.Context, familyID uuid.UUID, date string) (*models.AttendanceRecord, error) {
	for _, rec := range f.records {
		if rec.FamilyID == familyID && rec.Date == date {
			out := rec
			return &out, nil
		}
	}
	return nil, store.ErrAttendanceNotFound
}

func (f *fakeAttendanceStore) ListRange(ctx context.Context, startDate, endDate string) ([]models.AttendanceWithFamily, error) {
	rows := []models.AttendanceWithFamily{}
	for _, rec := range f.records {
		if startDate != "" && rec.Date < startDate {
			continue
		}
		if endDate != "" && rec.Date > endDate {
			continue
		}
		row := models.AttendanceWithFamily{AttendanceRecord: rec}
		if fam, err := f.families.GetByID(ctx, rec.FamilyID); err == nil {
			row.Family = models.FamilyContact{Name: fam.Name, Email: fam.Email, Mobile: fam.Mobile}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows, nil
}

func (f *fakeAttendanceStore) ListByFamily(_ context.Context, familyID uuid.UUID, startDate, endDate string) ([]models.AttendanceRecord, error) {
	rows := []models.AttendanceRecord{}
	for _, rec := range f.records {
		if rec.FamilyID != familyID {
			continue
		}
		if startDate != "" && rec.Date < startDate {
			continue
		}
		if endDate != "" && rec.Date > endDate {
			continue
		}
		rows = append(rows, rec)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows, nil
}

func (f *fakeAttendanceStore) DatesSince(_ context.Context, familyID uuid.UUID, since string) ([]string, error) {
	dates := []string{}
	for _, rec := range f.records {
		if rec.FamilyID == familyID && rec.Date >= since {
			dates = append(dates, rec.Date)
		}
	}
	return dates, nil
}

func (f *fakeAttendanceStore) AbsentSince(_ context.Context, cutoff string) ([]models.AbsentFamily, error) {
	absent := []models.AbsentFamily{}
	for _, fam := range f.families.families {
		var last string
		for _, rec := range f.records {
			if rec.FamilyID == fam.ID && rec.Date > last {
				last = rec.Date
			}
		}
		if last >= cutoff && last != "" {
			continue
		}
		af := models.AbsentFamily{Family: *fam}
		if last != "" {
			lastCopy := last
			af.LastAttended = &lastCopy
		}
		absent = append(absent, af)
	}
	sort.Slice(absent, func(i, j int) bool { return absent[i].Name < absent[j].Name })
	return absent, nil
}

func newFakes() (*fakeFamilyStore, *fakeAttendanceStore) {
	families := &fakeFamilyStore{}
	return families, &fakeAttendanceStore{families: families}
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		panic(err)
	}
	return out
}
