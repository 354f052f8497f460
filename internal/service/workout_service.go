package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"alcyxob/workout-analytics/internal/analytics"
	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound         = errors.New("workout not found")
	ErrWorkoutAlreadyCompleted = errors.New("workout already completed")
)

// WorkoutInput describes a workout being logged. A non-nil CompletedAt logs a finished session.
type WorkoutInput struct {
	Name            string
	TemplateID      *primitive.ObjectID
	StartedAt       time.Time
	CompletedAt     *time.Time
	DurationSeconds *int
	Exercises       []domain.ExerciseEntry
}

type WorkoutService interface {
	LogWorkout(ctx context.Context, userID primitive.ObjectID, input WorkoutInput) (*domain.WorkoutRecord, error)
	CompleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, durationSeconds *int) (*domain.WorkoutRecord, error)
	ListWorkouts(ctx context.Context, userID primitive.ObjectID, period analytics.Period) ([]domain.WorkoutRecord, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	templateRepo repository.TemplateRepository
	scheduleRepo repository.ScheduleRepository
	userRepo     repository.UserRepository
	settings     AnalyticsSettings
}

func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	templateRepo repository.TemplateRepository,
	scheduleRepo repository.ScheduleRepository,
	userRepo repository.UserRepository,
	settings AnalyticsSettings,
) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		templateRepo: templateRepo,
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		settings:     settings,
	}
}

// LogWorkout validates every set and stores the workout.
func (s *workoutService) LogWorkout(ctx context.Context, userID primitive.ObjectID, input WorkoutInput) (*domain.WorkoutRecord, error) {
	// 1. Validate the header fields and every set
	name := strings.TrimSpace(input.Name)
	if name == "" || (input.DurationSeconds != nil && *input.DurationSeconds < 0) {
		return nil, ErrValidationFailed
	}
	for _, e := range input.Exercises {
		if _, err := analytics.ExerciseVolume(e); err != nil {
			return nil, err
		}
	}
	// 2. A referenced template must belong to the caller
	if input.TemplateID != nil {
		if _, err := ownedTemplate(ctx, s.templateRepo, userID, *input.TemplateID); err != nil {
			return nil, err
		}
	}

	// 3. Build the record; a missing start means "now"
	startedAt := input.StartedAt
	if startedAt.IsZero() {
		startedAt = s.settings.now()
	}
	workout := &domain.WorkoutRecord{
		UserID:     userID,
		Name:       name,
		StartedAt:  domain.At(startedAt.UTC()),
		Exercises:  input.Exercises,
		TemplateID: input.TemplateID,
	}
	if input.CompletedAt != nil {
		if input.CompletedAt.Before(startedAt) {
			return nil, ErrValidationFailed
		}
		completed := domain.At(input.CompletedAt.UTC())
		workout.CompletedAt = &completed
		workout.DurationSeconds = durationOrElapsed(input.DurationSeconds, startedAt, *input.CompletedAt)
	}

	// 4. Save, then flag the planned day if the session is already finished
	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID
	if input.CompletedAt != nil {
		s.markScheduleDay(ctx, userID, workoutID, *input.CompletedAt)
	}
	return workout, nil
}

// CompleteWorkout stamps the workout completed now. Without an explicit duration the
// elapsed time since StartedAt is stored.
func (s *workoutService) CompleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, durationSeconds *int) (*domain.WorkoutRecord, error) {
	if durationSeconds != nil && *durationSeconds < 0 {
		return nil, ErrValidationFailed
	}
	// 1. Load the workout; someone else's workout is reported as missing
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutNotFound
	}
	if workout.IsCompleted() {
		return nil, ErrWorkoutAlreadyCompleted
	}

	// 2. Default the duration to the elapsed time
	now := s.settings.now().UTC()
	if durationSeconds == nil {
		if started, err := analytics.NormalizeTimestamp(workout.StartedAt.Raw(), time.UTC); err == nil && !now.Before(started) {
			durationSeconds = durationOrElapsed(nil, started, now)
		}
	}
	// 3. Stamp completion. The update only matches while completedAt is still null,
	// so a concurrent completion surfaces as ErrUpdateFailed.
	if err := s.workoutRepo.MarkCompleted(ctx, workoutID, userID, now, durationSeconds); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrWorkoutNotFound
		case errors.Is(err, repository.ErrUpdateFailed):
			return nil, ErrWorkoutAlreadyCompleted
		}
		return nil, err
	}

	completed := domain.At(now)
	workout.CompletedAt = &completed
	workout.DurationSeconds = durationSeconds
	workout.UpdatedAt = now
	s.markScheduleDay(ctx, userID, workoutID, now)
	return workout, nil
}

// markScheduleDay flags the planned day of completedAt as done. Unplanned days are left alone.
func (s *workoutService) markScheduleDay(ctx context.Context, userID, workoutID primitive.ObjectID, completedAt time.Time) {
	loc := s.settings.DefaultLocation
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		loc = s.settings.preferencesFor(user).location
	}
	date := analytics.DayKey(completedAt, loc)
	if err := s.scheduleRepo.MarkCompleted(ctx, userID, date, workoutID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		// Adherence also derives completion from the workout itself, so this is not fatal.
		logScheduleMarkFailure(err, userID, date)
	}
}

func (s *workoutService) ListWorkouts(ctx context.Context, userID primitive.ObjectID, period analytics.Period) ([]domain.WorkoutRecord, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	prefs := s.settings.preferencesFor(user)
	now := s.settings.now()
	opts := analytics.ResolveOptions{WeekStart: prefs.weekStart}
	if period == analytics.PeriodAllTime {
		if opts.FirstWorkout, err = s.workoutRepo.FirstCompletedAt(ctx, userID); err != nil {
			return nil, err
		}
	}
	rng, err := analytics.ResolvePeriod(period, now, prefs.location, opts)
	if err != nil {
		return nil, err
	}
	records, err := s.workoutRepo.ListCompleted(ctx, userID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	if period == analytics.PeriodAllTime {
		return records, nil
	}
	// Legacy timestamps come back unfiltered.
	out := make([]domain.WorkoutRecord, 0, len(records))
	for _, r := range records {
		at, err := analytics.CompletionInstant(r, prefs.location)
		if err == nil && rng.Contains(at) {
			out = append(out, r)
		}
	}
	return out, nil
}

func durationOrElapsed(explicit *int, started, completed time.Time) *int {
	if explicit != nil {
		return explicit
	}
	secs := int(completed.Sub(started) / time.Second)
	if secs < 0 {
		return nil
	}
	return &secs
}
