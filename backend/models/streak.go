package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStreak tracks consecutive days of learning activity, one row per user.
// LongestStreak >= CurrentStreak holds for every persisted row.
type UserStreak struct {
	gorm.Model
	UserID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CurrentStreak    int       `gorm:"default:0" json:"current_streak"`
	LongestStreak    int       `gorm:"default:0" json:"longest_streak"`
	LastActivityDate time.Time `json:"last_activity_date"`
}

func (UserStreak) TableName() string {
	return "user_streaks"
}

// NextStreak computes the streak row that should be persisted after a
// qualifying activity on the given day. It performs no I/O; the caller reads
// the existing row (nil if none) and writes the result back.
//
// An activity exactly one day after the last one extends the streak, a gap
// resets it to 1, and a same-day repeat leaves the counter untouched so that
// enrolling twice on one day neither inflates nor penalizes it.
func NextStreak(existing *UserStreak, userID uuid.UUID, today time.Time) UserStreak {
	today = truncateToDay(today)

	if existing == nil {
		return UserStreak{
			UserID:           userID,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: today,
		}
	}

	next := *existing
	diffDays := int(today.Sub(truncateToDay(existing.LastActivityDate)).Hours() / 24)

	switch {
	case diffDays == 1:
		next.CurrentStreak = existing.CurrentStreak + 1
	case diffDays > 1:
		next.CurrentStreak = 1
	}

	if existing.LongestStreak > next.CurrentStreak {
		next.LongestStreak = existing.LongestStreak
	} else {
		next.LongestStreak = next.CurrentStreak
	}
	next.LastActivityDate = today

	return next
}

// truncateToDay maps a time to its calendar date at UTC midnight, so that
// subtracting two results always yields whole days even across DST changes.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
