package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	stored := *user
	r.users[user.ID] = &stored
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePreferences(_ context.Context, id primitive.ObjectID, timezone string, weekStart *int, streak domain.StreakConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Timezone = timezone
	u.WeekStart = weekStart
	u.Streak = streak
	return nil
}

type fakeWorkoutRepo struct {
	mu        sync.Mutex
	workouts  []domain.WorkoutRecord
	listCalls int
	lastFrom  time.Time
	lastTo    time.Time
}

func (r *fakeWorkoutRepo) add(w domain.WorkoutRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID == primitive.NilObjectID {
		w.ID = primitive.NewObjectID()
	}
	r.workouts = append(r.workouts, w)
}

func (r *fakeWorkoutRepo) Create(_ context.Context, w *domain.WorkoutRecord) (primitive.ObjectID, error) {
	w.ID = primitive.NewObjectID()
	r.add(*w)
	return w.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.workouts {
		if w.ID == id {
			cp := w
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) MarkCompleted(_ context.Context, id, userID primitive.ObjectID, completedAt time.Time, durationSeconds *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, w := range r.workouts {
		if w.ID != id || w.UserID != userID {
			continue
		}
		if w.IsCompleted() {
			return repository.ErrUpdateFailed
		}
		ts := domain.At(completedAt)
		r.workouts[i].CompletedAt = &ts
		r.workouts[i].DurationSeconds = durationSeconds
		r.workouts[i].UpdatedAt = completedAt
		return nil
	}
	return repository.ErrNotFound
}

// ListCompleted mirrors the Mongo filter: dates are range-checked, legacy values always match.
func (r *fakeWorkoutRepo) ListCompleted(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	r.lastFrom, r.lastTo = from, to
	out := []domain.WorkoutRecord{}
	for _, w := range r.workouts {
		if w.UserID != userID || !w.IsCompleted() {
			continue
		}
		if at, ok := w.CompletedAt.Raw().(time.Time); ok && (at.Before(from) || !at.Before(to)) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (r *fakeWorkoutRepo) FirstCompletedAt(_ context.Context, userID primitive.ObjectID) (*time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var first *time.Time
	for _, w := range r.workouts {
		if w.UserID != userID || !w.IsCompleted() {
			continue
		}
		if at, ok := w.CompletedAt.Raw().(time.Time); ok && (first == nil || at.Before(*first)) {
			t := at
			first = &t
		}
	}
	return first, nil
}

type fakeScheduleRepo struct {
	mu   sync.Mutex
	days map[string]*domain.ScheduleDay // userID|date
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{days: make(map[string]*domain.ScheduleDay)}
}

func scheduleKey(userID primitive.ObjectID, date string) string {
	return userID.Hex() + "|" + date
}

func (r *fakeScheduleRepo) Upsert(_ context.Context, day *domain.ScheduleDay) (*domain.ScheduleDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scheduleKey(day.UserID, day.Date)
	existing, ok := r.days[key]
	if !ok {
		existing = &domain.ScheduleDay{ID: primitive.NewObjectID(), UserID: day.UserID, Date: day.Date, Completed: day.Completed}
		r.days[key] = existing
	}
	existing.TemplateID = day.TemplateID
	existing.UpdatedAt = time.Now()
	cp := *existing
	return &cp, nil
}

func (r *fakeScheduleRepo) GetByDate(_ context.Context, userID primitive.ObjectID, date string) (*domain.ScheduleDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.days[scheduleKey(userID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeScheduleRepo) ListRange(_ context.Context, userID primitive.ObjectID, from, to string) ([]domain.ScheduleDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ScheduleDay{}
	for _, d := range r.days {
		if d.UserID == userID && d.Date >= from && d.Date <= to {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *fakeScheduleRepo) MarkCompleted(_ context.Context, userID primitive.ObjectID, date string, workoutID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.days[scheduleKey(userID, date)]
	if !ok {
		return repository.ErrNotFound
	}
	d.Completed = true
	d.WorkoutID = &workoutID
	return nil
}

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises []domain.Exercise
}

func (r *fakeExerciseRepo) Create(_ context.Context, e *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = primitive.NewObjectID()
	r.exercises = append(r.exercises, *e)
	return e.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exercises {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Exercise{}
	for _, e := range r.exercises {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []domain.Exercise{}
	for _, e := range r.exercises {
		if want[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeTemplateRepo struct {
	mu        sync.Mutex
	templates []domain.WorkoutTemplate
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = primitive.NewObjectID()
	r.templates = append(r.templates, *t)
	return t.ID, nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.templates {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTemplateRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.WorkoutTemplate{}
	for _, t := range r.templates {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeExportRepo struct {
	mu        sync.Mutex
	exports   map[primitive.ObjectID]domain.AnalyticsExport
	createErr error
}

func newFakeExportRepo() *fakeExportRepo {
	return &fakeExportRepo{exports: make(map[primitive.ObjectID]domain.AnalyticsExport)}
}

func (r *fakeExportRepo) Create(_ context.Context, e *domain.AnalyticsExport) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	e.ID = primitive.NewObjectID()
	r.exports[e.ID] = *e
	return e.ID, nil
}

func (r *fakeExportRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.AnalyticsExport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[key] = body
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return "", errors.New("no such object")
	}
	return "https://storage.example/" + key + "?signed=1", nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}
