package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Title                string    `gorm:"not null" json:"title"`
	Description          string    `json:"description"`
	StartDate            time.Time `gorm:"not null" json:"start_date"`
	EndDate              time.Time `gorm:"not null" json:"end_date"`
	RegistrationDeadline time.Time `gorm:"not null" json:"registration_deadline"`
	Location             string    `json:"location"`
	BannerURL            string    `json:"banner_url"`
	MaxParticipants      *int      `json:"max_participants"`
	OrganizerID          uuid.UUID `gorm:"type:uuid;index;not null" json:"organizer_id"`
	IsActive             bool      `gorm:"default:true" json:"is_active"`
}

type EventRegistration struct {
	gorm.Model
	EventID   uint      `gorm:"not null;uniqueIndex:idx_event_student" json:"event_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_student" json:"student_id"`
}

func (EventRegistration) TableName() string {
	return "event_registrations"
}
