package repository

import (
	"context"
	"time"

	"alcyxob/workout-analytics/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDuplicate    = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdatePreferences(ctx context.Context, id primitive.ObjectID, timezone string, weekStart *int, streak domain.StreakConfig) error
}

// ExerciseRepository defines the interface for interacting with exercise definitions.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) // Muscle group resolution
}

// TemplateRepository defines the interface for interacting with workout templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
}

// WorkoutRepository defines the interface for interacting with logged workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.WorkoutRecord) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutRecord, error)
	MarkCompleted(ctx context.Context, id, userID primitive.ObjectID, completedAt time.Time, durationSeconds *int) error
	// ListCompleted returns completed workouts whose completion date lies in [from, to), plus every
	// completed workout whose completion timestamp is not stored as a date.
	ListCompleted(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutRecord, error)
	// FirstCompletedAt returns nil when the user has no date-typed completion yet.
	FirstCompletedAt(ctx context.Context, userID primitive.ObjectID) (*time.Time, error)
}

// ScheduleRepository defines the interface for interacting with schedule days.
// Dates are YYYY-MM-DD strings.
type ScheduleRepository interface {
	Upsert(ctx context.Context, day *domain.ScheduleDay) (*domain.ScheduleDay, error)
	GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.ScheduleDay, error)
	ListRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.ScheduleDay, error) // Inclusive
	MarkCompleted(ctx context.Context, userID primitive.ObjectID, date string, workoutID primitive.ObjectID) error
}

// ExportRepository defines the interface for interacting with export metadata.
type ExportRepository interface {
	Create(ctx context.Context, export *domain.AnalyticsExport) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AnalyticsExport, error)
}
