package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StreakType selects how consecutive adherence is counted.
type StreakType string

const (
	StreakDaily  StreakType = "daily"
	StreakWeekly StreakType = "weekly"
)

// StreakConfig is the per-user streak policy.
type StreakConfig struct {
	MaxRestDaysPerWeek int        `bson:"maxRestDaysPerWeek" json:"maxRestDaysPerWeek"` // Missed days tolerated per rolling 7 days
	StreakType         StreakType `bson:"streakType" json:"streakType"`
}

// User represents an athlete whose workouts are analyzed.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Timezone     string             `bson:"timezone,omitempty" json:"timezone,omitempty"` // IANA name, e.g. "Europe/Berlin"
	WeekStart    *int               `bson:"weekStart,omitempty" json:"weekStart,omitempty"` // 0 = Sunday ... 6 = Saturday
	Streak       StreakConfig       `bson:"streak" json:"streak"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Location resolves the user's timezone, falling back when unset or unknown.
func (u *User) Location(fallback *time.Location) *time.Location {
	if u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
	}
	if fallback == nil {
		return time.UTC
	}
	return fallback
}

// WeekStartDay returns the configured first day of the week or fallback.
func (u *User) WeekStartDay(fallback time.Weekday) time.Weekday {
	if u.WeekStart == nil || *u.WeekStart < 0 || *u.WeekStart > 6 {
		return fallback
	}
	return time.Weekday(*u.WeekStart)
}
