package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	Difficulty    string    `gorm:"default:beginner" json:"difficulty"` // beginner, intermediate, advanced
	Category      string    `json:"category"`
	DurationHours int       `json:"duration_hours"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	VideoURL      string    `json:"video_url"`
	EducatorID    uuid.UUID `gorm:"type:uuid;index;not null" json:"educator_id"`
	IsPublished   bool      `gorm:"default:true" json:"is_published"`
}

type CourseEnrollment struct {
	gorm.Model
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_course_student" json:"course_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_student" json:"student_id"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
