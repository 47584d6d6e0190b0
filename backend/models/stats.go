package models

// DashboardStats is the merged stat bundle for the dashboard. Fields that do
// not apply to the user's role set stay at zero.
type DashboardStats struct {
	Courses     int64 `json:"courses"`
	Enrollments int64 `json:"enrollments"`
	Events      int64 `json:"events"`
	Internships int64 `json:"internships"`
	Streak      int   `json:"streak"`
}
