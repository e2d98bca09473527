package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pradeepgv/gita-attendance-tracker/internal/models"
)

// CSVHeader is the exported column set, in order
var CSVHeader = []string{"Date", "Family Name", "Email", "Mobile", "Adults", "Children", "Total"}

// WriteCSV flattens joined ledger rows into RFC 4180 CSV: header row plus
// one row per record, Total = adults + children
func WriteCSV(w io.Writer, records []models.AttendanceWithFamily) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, rec := range records {
		email := ""
		if rec.Family.Email != nil {
			email = *rec.Family.Email
		}
		mobile := ""
		if rec.Family.Mobile != nil {
			mobile = *rec.Family.Mobile
		}
		row := []string{
			rec.Date,
			rec.Family.Name,
			email,
			mobile,
			strconv.Itoa(rec.AdultsCount),
			strconv.Itoa(rec.ChildrenCount),
			strconv.Itoa(rec.AdultsCount + rec.ChildrenCount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
