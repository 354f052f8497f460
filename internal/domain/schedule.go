package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleDateLayout is the calendar-date format of ScheduleDay.Date.
const ScheduleDateLayout = "2006-01-02"

// ScheduleDay is one calendar day of a user's plan. A nil TemplateID marks a rest day.
// Days without a document are rest days as well.
type ScheduleDay struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID  `bson:"userId" json:"userId"`
	Date       string              `bson:"date" json:"date"` // Local calendar date, YYYY-MM-DD
	TemplateID *primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"`
	Completed  bool                `bson:"completed" json:"completed"`
	WorkoutID  *primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"` // Workout that fulfilled this day
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsRestDay reports whether no template is assigned.
func (d *ScheduleDay) IsRestDay() bool {
	return d.TemplateID == nil
}
