package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Internship struct {
	gorm.Model
	Title               string    `gorm:"not null" json:"title"`
	CompanyName         string    `gorm:"not null" json:"company_name"`
	Description         string    `json:"description"`
	Location            string    `json:"location"`
	DurationMonths      *int      `json:"duration_months"`
	Stipend             string    `json:"stipend"`
	ApplicationDeadline time.Time `gorm:"not null" json:"application_deadline"`
	RecruiterID         uuid.UUID `gorm:"type:uuid;index;not null" json:"recruiter_id"`
	IsActive            bool      `gorm:"default:true" json:"is_active"`
}

type InternshipApplication struct {
	gorm.Model
	InternshipID uint      `gorm:"not null;uniqueIndex:idx_internship_student" json:"internship_id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_internship_student" json:"student_id"`
}

func (InternshipApplication) TableName() string {
	return "internship_applications"
}
