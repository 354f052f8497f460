package api

import (
	"context"
	"fmt"

	"alcyxob/workout-analytics/internal/analytics"
	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubAnalytics records the last call and returns canned results.
type stubAnalytics struct {
	lastUser        primitive.ObjectID
	lastPeriod      analytics.Period
	lastGranularity analytics.Granularity
	err             error
	export          *domain.AnalyticsExport
}

func (s *stubAnalytics) record(userID primitive.ObjectID, period analytics.Period, granularity analytics.Granularity) {
	s.lastUser, s.lastPeriod, s.lastGranularity = userID, period, granularity
}

func (s *stubAnalytics) VolumeTrend(_ context.Context, userID primitive.ObjectID, period analytics.Period, granularity analytics.Granularity) (*analytics.VolumeTrend, error) {
	s.record(userID, period, granularity)
	if s.err != nil {
		return nil, s.err
	}
	return &analytics.VolumeTrend{Granularity: granularity, Points: []analytics.VolumeTrendPoint{}, Total: 1500}, nil
}

func (s *stubAnalytics) MuscleDistribution(_ context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.MuscleDistribution, error) {
	s.record(userID, period, "")
	return &analytics.MuscleDistribution{Groups: []analytics.MuscleVolumeShare{}}, s.err
}

func (s *stubAnalytics) Durations(_ context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.DurationStats, error) {
	s.record(userID, period, "")
	return &analytics.DurationStats{}, s.err
}

func (s *stubAnalytics) Overload(_ context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.OverloadSummary, error) {
	s.record(userID, period, "")
	return nil, s.err
}

func (s *stubAnalytics) Adherence(_ context.Context, userID primitive.ObjectID) (*analytics.AdherenceSummary, error) {
	s.record(userID, "", "")
	return &analytics.AdherenceSummary{}, s.err
}

func (s *stubAnalytics) Heatmap(_ context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.Heatmap, error) {
	s.record(userID, period, "")
	return &analytics.Heatmap{}, s.err
}

func (s *stubAnalytics) Dashboard(_ context.Context, userID primitive.ObjectID, period analytics.Period, granularity analytics.Granularity) (*analytics.Dashboard, error) {
	s.record(userID, period, granularity)
	if s.err != nil {
		return nil, s.err
	}
	return &analytics.Dashboard{Period: period}, nil
}

func (s *stubAnalytics) CreateExport(_ context.Context, userID primitive.ObjectID, period analytics.Period) (*domain.AnalyticsExport, error) {
	s.record(userID, period, "")
	if s.err != nil {
		return nil, s.err
	}
	s.export = &domain.AnalyticsExport{ID: primitive.NewObjectID(), UserID: userID, Period: string(period), ObjectKey: "exports/x.json", ContentType: "application/json", Size: 42}
	return s.export, nil
}

func (s *stubAnalytics) GetExportURL(_ context.Context, userID, exportID primitive.ObjectID) (*domain.AnalyticsExport, string, error) {
	s.record(userID, "", "")
	if s.export == nil || s.export.ID != exportID || s.export.UserID != userID {
		return nil, "", service.ErrExportNotFound
	}
	return s.export, "https://storage.example/" + s.export.ObjectKey, nil
}

type stubWorkouts struct {
	logged *service.WorkoutInput
	err    error
}

func (s *stubWorkouts) LogWorkout(_ context.Context, userID primitive.ObjectID, input service.WorkoutInput) (*domain.WorkoutRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.logged = &input
	return &domain.WorkoutRecord{ID: primitive.NewObjectID(), UserID: userID, Name: input.Name, Exercises: input.Exercises}, nil
}

func (s *stubWorkouts) CompleteWorkout(_ context.Context, userID, workoutID primitive.ObjectID, durationSeconds *int) (*domain.WorkoutRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.WorkoutRecord{ID: workoutID, UserID: userID, DurationSeconds: durationSeconds}, nil
}

func (s *stubWorkouts) ListWorkouts(_ context.Context, _ primitive.ObjectID, _ analytics.Period) ([]domain.WorkoutRecord, error) {
	return []domain.WorkoutRecord{}, s.err
}

type stubUsers struct{}

func (stubUsers) GetProfile(_ context.Context, userID primitive.ObjectID) (*domain.User, error) {
	return &domain.User{ID: userID, Name: "Ada", Email: "ada@example.com", PasswordHash: "secret-hash"}, nil
}

func (stubUsers) UpdatePreferences(_ context.Context, userID primitive.ObjectID, input service.PreferencesInput) (*domain.User, error) {
	if input.Timezone == "Mars/Olympus" {
		return nil, fmt.Errorf("%w: unknown timezone", service.ErrInvalidPreferences)
	}
	return &domain.User{ID: userID, Timezone: input.Timezone, WeekStart: input.WeekStart,
		Streak: domain.StreakConfig{MaxRestDaysPerWeek: input.MaxRestDaysPerWeek, StreakType: input.StreakType}}, nil
}
