package models

// WeeklyReportResponse is the weekly summary for one Sunday-to-Saturday window
type WeeklyReportResponse struct {
	WeekStart     string                 `json:"week_start"`
	WeekEnd       string                 `json:"week_end"`
	TotalFamilies int                    `json:"total_families"`
	TotalAdults   int                    `json:"total_adults"`
	TotalChildren int                    `json:"total_children"`
	TotalPeople   int                    `json:"total_people"`
	Records       []AttendanceWithFamily `json:"records"`
}

// Regularity scores a family's attendance over the trailing 10-week window
type Regularity struct {
	WeeksAttended int    `json:"weeks_attended"`
	OutOfWeeks    int    `json:"out_of_weeks"`
	Summary       string `json:"summary"`
}

// FamilyReportResponse is one family's history plus their regularity score
type FamilyReportResponse struct {
	Family     *Family            `json:"family"`
	Attendance []AttendanceRecord `json:"attendance"`
	Regularity Regularity         `json:"regularity"`
}

// AbsentFamily is a family with no attendance in the trailing two weeks.
// LastAttended is nil for families with no attendance history at all.
type AbsentFamily struct {
	Family
	LastAttended *string `json:"last_attended"`
}

// AbsentFamiliesResponse is the follow-up alert list
type AbsentFamiliesResponse struct {
	Count    int            `json:"count"`
	Families []AbsentFamily `json:"families"`
}
