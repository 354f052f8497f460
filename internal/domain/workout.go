package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutRecord is one logged workout session.
// Records without CompletedAt are still in progress and invisible to analytics.
type WorkoutRecord struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	Name            string              `bson:"name" json:"name"`
	StartedAt       Timestamp           `bson:"startedAt" json:"startedAt"`
	CompletedAt     *Timestamp          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	DurationSeconds *int                `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"` // nil when unknown
	Exercises       []ExerciseEntry     `bson:"exercises" json:"exercises"`
	TemplateID      *primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsCompleted reports whether the workout has a completion timestamp.
func (w *WorkoutRecord) IsCompleted() bool {
	return w.CompletedAt != nil && !w.CompletedAt.IsZero()
}

// ExerciseEntry is one exercise performed within a workout.
type ExerciseEntry struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       []SetEntry         `bson:"sets" json:"sets"`
}

// SetEntry is a single set. A set counts toward volume only when both weight and reps are present.
type SetEntry struct {
	Weight *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Reps   *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	RPE    *float64 `bson:"rpe,omitempty" json:"rpe,omitempty"` // 1-10
}
