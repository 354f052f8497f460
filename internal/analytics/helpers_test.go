package analytics_test

import (
	"time"

	"alcyxob/workout-analytics/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func f64(v float64) *float64 { return &v }

func intp(v int) *int { return &v }

func set(weight float64, reps int) domain.SetEntry {
	return domain.SetEntry{Weight: f64(weight), Reps: intp(reps)}
}

func completedAt(t time.Time, exercises ...domain.ExerciseEntry) domain.WorkoutRecord {
	ts := domain.At(t)
	return domain.WorkoutRecord{
		ID:          primitive.NewObjectID(),
		StartedAt:   domain.At(t.Add(-time.Hour)),
		CompletedAt: &ts,
		Exercises:   exercises,
	}
}

func withRawCompletion(raw interface{}) domain.WorkoutRecord {
	ts := domain.RawTimestamp(raw)
	return domain.WorkoutRecord{ID: primitive.NewObjectID(), CompletedAt: &ts}
}

func entry(id primitive.ObjectID, sets ...domain.SetEntry) domain.ExerciseEntry {
	return domain.ExerciseEntry{ExerciseID: id, Sets: sets}
}

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func date(y int, m time.Month, d, hh, mm int, loc *time.Location) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}
