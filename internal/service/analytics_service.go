package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"alcyxob/workout-analytics/internal/analytics"
	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/observability"
	"alcyxob/workout-analytics/internal/repository"
	"alcyxob/workout-analytics/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExportNotFound = errors.New("analytics export not found")
	ErrExportFailed   = errors.New("failed to store analytics export")
)

// Metric names used as cache namespaces and metric labels.
const (
	metricVolume    = "volume"
	metricMuscles   = "muscles"
	metricDuration  = "duration"
	metricOverload  = "overload"
	metricAdherence = "adherence"
	metricHeatmap   = "heatmap"
	metricDashboard = "dashboard"
)

const exportContentType = "application/json"

// AnalyticsService serves derived view models for one user and period.
type AnalyticsService interface {
	VolumeTrend(ctx context.Context, userID primitive.ObjectID, period analytics.Period, granularity analytics.Granularity) (*analytics.VolumeTrend, error)
	MuscleDistribution(ctx context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.MuscleDistribution, error)
	Durations(ctx context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.DurationStats, error)
	// Overload returns nil when the period holds fewer than two weeks of data.
	Overload(ctx context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.OverloadSummary, error)
	Adherence(ctx context.Context, userID primitive.ObjectID) (*analytics.AdherenceSummary, error)
	Heatmap(ctx context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.Heatmap, error)
	Dashboard(ctx context.Context, userID primitive.ObjectID, period analytics.Period, granularity analytics.Granularity) (*analytics.Dashboard, error)

	CreateExport(ctx context.Context, userID primitive.ObjectID, period analytics.Period) (*domain.AnalyticsExport, error)
	GetExportURL(ctx context.Context, userID, exportID primitive.ObjectID) (*domain.AnalyticsExport, string, error)
}

type analyticsService struct {
	userRepo     repository.UserRepository
	workoutRepo  repository.WorkoutRepository
	scheduleRepo repository.ScheduleRepository
	exerciseRepo repository.ExerciseRepository
	exportRepo   repository.ExportRepository
	fileStorage  storage.FileStorage
	settings     AnalyticsSettings
	memo         *memo
}

func NewAnalyticsService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	scheduleRepo repository.ScheduleRepository,
	exerciseRepo repository.ExerciseRepository,
	exportRepo repository.ExportRepository,
	fileStorage storage.FileStorage,
	settings AnalyticsSettings,
) AnalyticsService {
	return &analyticsService{
		userRepo:     userRepo,
		workoutRepo:  workoutRepo,
		scheduleRepo: scheduleRepo,
		exerciseRepo: exerciseRepo,
		exportRepo:   exportRepo,
		fileStorage:  fileStorage,
		settings:     settings,
		memo:         newMemo(settings.CacheTTL, settings.CacheCleanup),
	}
}

// dataset is everything one computation reads, loaded once per request.
type dataset struct {
	userID    primitive.ObjectID
	period    analytics.Period
	prefs     preferences
	now       time.Time
	rng       analytics.PeriodRange
	records   []domain.WorkoutRecord
	schedule  []domain.ScheduleDay
	exercises []domain.Exercise
	version   string
}

// key scopes a cached result to the user, the period, today's date and the data version.
func (d *dataset) key(metric string, extra string) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s", metric, d.userID.Hex(), d.period, extra,
		analytics.DayKey(d.now, d.prefs.location), d.version)
}

func (s *analyticsService) loadPreferences(ctx context.Context, userID primitive.ObjectID) (preferences, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return preferences{}, ErrUserNotFound
		}
		return preferences{}, err
	}
	return s.settings.preferencesFor(user), nil
}

// loadOptions widen what loadPeriod reads beyond the period itself.
type loadOptions struct {
	adherence bool // also span the adherence window and load its schedule
	heatmap   bool // also span the heatmap grid
}

// loadPeriod fetches the records covering period plus whatever load asks for.
func (s *analyticsService) loadPeriod(ctx context.Context, userID primitive.ObjectID, period analytics.Period, load loadOptions) (*dataset, error) {
	prefs, err := s.loadPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.settings.now()
	loc := prefs.location

	opts := analytics.ResolveOptions{WeekStart: prefs.weekStart}
	if period == analytics.PeriodAllTime {
		if opts.FirstWorkout, err = s.workoutRepo.FirstCompletedAt(ctx, userID); err != nil {
			return nil, err
		}
	}
	fetch, err := analytics.FetchRange(period, now, loc, opts)
	if err != nil {
		return nil, err
	}
	window := s.adherenceWindow(now, loc)
	if load.adherence {
		fetch = union(fetch, window)
	}
	if load.heatmap {
		// The grid depends only on the period's end, which FirstWorkout never moves.
		provisional, err := analytics.ResolvePeriod(period, now, loc, opts)
		if err != nil {
			return nil, err
		}
		fetch = union(fetch, analytics.HeatmapRange(provisional, now, loc, prefs.weekStart))
	}

	records, err := s.workoutRepo.ListCompleted(ctx, userID, fetch.Start, fetch.End)
	if err != nil {
		return nil, err
	}
	opts.FirstWorkout = earliest(opts.FirstWorkout, analytics.FirstCompletion(records, loc))
	rng, err := analytics.ResolvePeriod(period, now, loc, opts)
	if err != nil {
		return nil, err
	}

	ds := &dataset{
		userID:  userID,
		period:  period,
		prefs:   prefs,
		now:     now,
		rng:     rng,
		records: records,
	}
	if load.adherence {
		if err := s.loadSchedule(ctx, ds, window); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// loadSchedule adds the schedule days of window to ds.
func (s *analyticsService) loadSchedule(ctx context.Context, ds *dataset, window analytics.PeriodRange) error {
	loc := ds.prefs.location
	from := analytics.DayKey(window.Start, loc)
	to := analytics.DayKey(window.End.AddDate(0, 0, -1), loc)
	schedule, err := s.scheduleRepo.ListRange(ctx, ds.userID, from, to)
	if err != nil {
		return err
	}
	ds.schedule = schedule
	return nil
}

// loadExercises resolves the definitions referenced by the loaded records.
func (s *analyticsService) loadExercises(ctx context.Context, ds *dataset) error {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, r := range ds.records {
		for _, e := range r.Exercises {
			if !seen[e.ExerciseID] {
				seen[e.ExerciseID] = true
				ids = append(ids, e.ExerciseID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}
	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	ds.exercises = exercises
	return nil
}

func (s *analyticsService) adherenceWindow(now time.Time, loc *time.Location) analytics.PeriodRange {
	return analytics.AdherenceWindow(now, loc, s.settings.LookbackWeeks, s.settings.HorizonDays)
}

func (s *analyticsService) seal(ds *dataset) *dataset {
	ds.version = datasetVersion(ds.prefs, ds.records, ds.schedule, ds.exercises)
	return ds
}

func (s *analyticsService) VolumeTrend(ctx context.Context, userID primitive.ObjectID, period analytics.Period, granularity analytics.Granularity) (*analytics.VolumeTrend, error) {
	ds, err := s.loadPeriod(ctx, userID, period, loadOptions{})
	if err != nil {
		return nil, err
	}
	s.seal(ds)
	return memoize(s.memo, metricVolume, ds.key(metricVolume, string(granularity)), func() (*analytics.VolumeTrend, error) {
		out, err := analytics.BuildVolumeTrend(ds.records, ds.rng, ds.prefs.location, analytics.TrendOptions{
			Granularity: granularity,
			WeekStart:   ds.prefs.weekStart,
		})
		if err != nil {
			return nil, err
		}
		observability.RecordSkipped(out.Skipped)
		return &out, nil
	})
}

func (s *analyticsService) MuscleDistribution(ctx context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.MuscleDistribution, error) {
	ds, err := s.loadPeriod(ctx, userID, period, loadOptions{})
	if err != nil {
		return nil, err
	}
	if err := s.loadExercises(ctx, ds); err != nil {
		return nil, err
	}
	s.seal(ds)
	return memoize(s.memo, metricMuscles, ds.key(metricMuscles, ""), func() (*analytics.MuscleDistribution, error) {
		lookup := analytics.MuscleLookupFromExercises(ds.exercises)
		out, err := analytics.BuildMuscleDistribution(ds.records, ds.rng, ds.prefs.location, lookup)
		if err != nil {
			return nil, err
		}
		observability.RecordSkipped(out.Skipped)
		return &out, nil
	})
}

func (s *analyticsService) Durations(ctx context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.DurationStats, error) {
	ds, err := s.loadPeriod(ctx, userID, period, loadOptions{})
	if err != nil {
		return nil, err
	}
	s.seal(ds)
	return memoize(s.memo, metricDuration, ds.key(metricDuration, ""), func() (*analytics.DurationStats, error) {
		out, err := analytics.AnalyzeDurations(ds.records, ds.rng, ds.prefs.location)
		if err != nil {
			return nil, err
		}
		observability.RecordSkipped(out.Skipped)
		return &out, nil
	})
}

func (s *analyticsService) Overload(ctx context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.OverloadSummary, error) {
	ds, err := s.loadPeriod(ctx, userID, period, loadOptions{})
	if err != nil {
		return nil, err
	}
	s.seal(ds)
	return memoize(s.memo, metricOverload, ds.key(metricOverload, ""), func() (*analytics.OverloadSummary, error) {
		return analytics.AnalyzeOverload(ds.records, ds.rng, ds.prefs.location, ds.prefs.weekStart)
	})
}

// Adherence always covers the configured lookback window, independent of any period.
func (s *analyticsService) Adherence(ctx context.Context, userID primitive.ObjectID) (*analytics.AdherenceSummary, error) {
	prefs, err := s.loadPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.settings.now()
	window := s.adherenceWindow(now, prefs.location)

	ds := &dataset{userID: userID, prefs: prefs, now: now, rng: window}
	if ds.records, err = s.workoutRepo.ListCompleted(ctx, userID, window.Start, window.End); err != nil {
		return nil, err
	}
	if err := s.loadSchedule(ctx, ds, window); err != nil {
		return nil, err
	}
	s.seal(ds)
	return memoize(s.memo, metricAdherence, ds.key(metricAdherence, ""), func() (*analytics.AdherenceSummary, error) {
		out := s.computeAdherence(ds)
		observability.RecordSkipped(out.SkippedSchedule + out.SkippedWorkouts)
		return &out, nil
	})
}

func (s *analyticsService) computeAdherence(ds *dataset) analytics.AdherenceSummary {
	return analytics.ComputeAdherence(analytics.AdherenceInput{
		Schedule:      ds.schedule,
		Workouts:      ds.records,
		Now:           ds.now,
		Location:      ds.prefs.location,
		LookbackWeeks: s.settings.LookbackWeeks,
		HorizonDays:   s.settings.HorizonDays,
		WeekStart:     ds.prefs.weekStart,
		Streak:        ds.prefs.streak,
		Consistency:   s.settings.Consistency,
	})
}

func (s *analyticsService) Heatmap(ctx context.Context, userID primitive.ObjectID, period analytics.Period) (*analytics.Heatmap, error) {
	ds, err := s.loadPeriod(ctx, userID, period, loadOptions{heatmap: true})
	if err != nil {
		return nil, err
	}
	s.seal(ds)
	return memoize(s.memo, metricHeatmap, ds.key(metricHeatmap, ""), func() (*analytics.Heatmap, error) {
		out, err := analytics.BuildHeatmap(ds.records, ds.rng, ds.now, ds.prefs.location, ds.prefs.weekStart)
		if err != nil {
			return nil, err
		}
		observability.RecordSkipped(out.Skipped)
		return &out, nil
	})
}

func (s *analyticsService) Dashboard(ctx context.Context, userID primitive.ObjectID, period analytics.Period, granularity analytics.Granularity) (*analytics.Dashboard, error) {
	out, _, err := s.dashboard(ctx, userID, period, granularity)
	return out, err
}

// dashboard also returns the dataset version the result was computed from.
func (s *analyticsService) dashboard(ctx context.Context, userID primitive.ObjectID, period analytics.Period, granularity analytics.Granularity) (*analytics.Dashboard, string, error) {
	ds, err := s.loadPeriod(ctx, userID, period, loadOptions{adherence: true, heatmap: true})
	if err != nil {
		return nil, "", err
	}
	if err := s.loadExercises(ctx, ds); err != nil {
		return nil, "", err
	}
	s.seal(ds)

	out, err := memoize(s.memo, metricDashboard, ds.key(metricDashboard, string(granularity)), func() (*analytics.Dashboard, error) {
		d, err := analytics.BuildDashboard(analytics.DashboardInput{
			Period:        period,
			Now:           ds.now,
			Location:      ds.prefs.location,
			WeekStart:     ds.prefs.weekStart,
			Granularity:   granularity,
			Records:       ds.records,
			Schedule:      ds.schedule,
			Lookup:        analytics.MuscleLookupFromExercises(ds.exercises),
			LookbackWeeks: s.settings.LookbackWeeks,
			HorizonDays:   s.settings.HorizonDays,
			Streak:        ds.prefs.streak,
			Consistency:   s.settings.Consistency,
		})
		if err != nil {
			return nil, err
		}
		observability.RecordSkipped(d.Volume.Skipped)
		return &d, nil
	})
	if err != nil {
		return nil, "", err
	}
	return out, ds.version, nil
}

// exportSnapshot is the JSON document stored for an export.
type exportSnapshot struct {
	ExportedAt     time.Time            `json:"exportedAt"`
	UserID         string               `json:"userId"`
	DatasetVersion string               `json:"datasetVersion"`
	Dashboard      *analytics.Dashboard `json:"dashboard"`
}

// CreateExport uploads a dashboard snapshot and records its metadata.
// The object is removed again if the metadata cannot be stored.
func (s *analyticsService) CreateExport(ctx context.Context, userID primitive.ObjectID, period analytics.Period) (*domain.AnalyticsExport, error) {
	// 1. Compute (or reuse) the dashboard and serialize it
	dashboard, version, err := s.dashboard(ctx, userID, period, analytics.GranularityDay)
	if err != nil {
		return nil, err
	}
	now := s.settings.now()
	body, err := json.Marshal(exportSnapshot{
		ExportedAt:     now.UTC(),
		UserID:         userID.Hex(),
		DatasetVersion: version,
		Dashboard:      dashboard,
	})
	if err != nil {
		observability.RecordExport("failure")
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	// 2. Upload the snapshot
	objectKey := fmt.Sprintf("exports/%s/%s.json", userID.Hex(), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, objectKey, exportContentType, body); err != nil {
		observability.RecordExport("failure")
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	// 3. Record the metadata; on failure remove the object again
	export := &domain.AnalyticsExport{
		UserID:         userID,
		Period:         string(period),
		ObjectKey:      objectKey,
		ContentType:    exportContentType,
		Size:           int64(len(body)),
		DatasetVersion: version,
		CreatedAt:      now.UTC(),
	}
	exportID, err := s.exportRepo.Create(ctx, export)
	if err != nil {
		if delErr := s.fileStorage.DeleteObject(ctx, objectKey); delErr != nil {
			logrus.WithError(delErr).WithField("objectKey", objectKey).Warn("failed to remove orphaned export object")
		}
		observability.RecordExport("failure")
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	export.ID = exportID
	observability.RecordExport("success")
	return export, nil
}

// GetExportURL returns the export and a short-lived download URL.
// Exports of other users are reported as not found.
func (s *analyticsService) GetExportURL(ctx context.Context, userID, exportID primitive.ObjectID) (*domain.AnalyticsExport, string, error) {
	export, err := s.exportRepo.GetByID(ctx, exportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrExportNotFound
		}
		return nil, "", err
	}
	if export.UserID != userID {
		return nil, "", ErrExportNotFound
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, export.ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, "", err
	}
	return export, url, nil
}

// union is the smallest range covering both a and b.
func union(a, b analytics.PeriodRange) analytics.PeriodRange {
	if b.Start.Before(a.Start) {
		a.Start = b.Start
	}
	if b.End.After(a.End) {
		a.End = b.End
	}
	return a
}

func earliest(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil || a.Before(*b) {
		return a
	}
	return b
}
