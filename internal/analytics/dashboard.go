package analytics

import (
	"time"

	"alcyxob/workout-analytics/internal/domain"
)

// DashboardInput is everything needed to derive every view model for one period.
type DashboardInput struct {
	Period      Period
	Now         time.Time
	Location    *time.Location
	WeekStart   time.Weekday
	Granularity Granularity
	Records     []domain.WorkoutRecord
	Schedule    []domain.ScheduleDay
	Lookup      MuscleLookup

	LookbackWeeks int
	HorizonDays   int
	Streak        domain.StreakConfig
	Consistency   ConsistencyFunc
}

type Dashboard struct {
	Period    Period             `json:"period" yaml:"period"`
	Range     PeriodRange        `json:"range" yaml:"range"`
	Volume    VolumeTrend        `json:"volume" yaml:"volume"`
	Muscles   MuscleDistribution `json:"muscles" yaml:"muscles"`
	Duration  DurationStats      `json:"duration" yaml:"duration"`
	Overload  *OverloadSummary   `json:"overload" yaml:"overload"`
	Adherence AdherenceSummary   `json:"adherence" yaml:"adherence"`
	Heatmap   Heatmap            `json:"heatmap" yaml:"heatmap"`
}

// FirstCompletion returns the earliest valid completion instant among records.
func FirstCompletion(records []domain.WorkoutRecord, loc *time.Location) *time.Time {
	var first *time.Time
	for _, r := range records {
		if r.CompletedAt == nil {
			continue
		}
		at, err := NormalizeTimestamp(*r.CompletedAt, loc)
		if err != nil {
			continue
		}
		if first == nil || at.Before(*first) {
			t := at
			first = &t
		}
	}
	return first
}

// BuildDashboard resolves the period once and derives every view model from it.
func BuildDashboard(in DashboardInput) (Dashboard, error) {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	period, err := ResolvePeriod(in.Period, in.Now, loc, ResolveOptions{
		WeekStart:    in.WeekStart,
		FirstWorkout: FirstCompletion(in.Records, loc),
	})
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{Period: in.Period, Range: period}
	if out.Volume, err = BuildVolumeTrend(in.Records, period, loc, TrendOptions{Granularity: in.Granularity, WeekStart: in.WeekStart}); err != nil {
		return Dashboard{}, err
	}
	if out.Muscles, err = BuildMuscleDistribution(in.Records, period, loc, in.Lookup); err != nil {
		return Dashboard{}, err
	}
	if out.Duration, err = AnalyzeDurations(in.Records, period, loc); err != nil {
		return Dashboard{}, err
	}
	if out.Overload, err = AnalyzeOverload(in.Records, period, loc, in.WeekStart); err != nil {
		return Dashboard{}, err
	}
	if out.Heatmap, err = BuildHeatmap(in.Records, period, in.Now, loc, in.WeekStart); err != nil {
		return Dashboard{}, err
	}
	out.Adherence = ComputeAdherence(AdherenceInput{
		Schedule:      in.Schedule,
		Workouts:      in.Records,
		Now:           in.Now,
		Location:      loc,
		LookbackWeeks: in.LookbackWeeks,
		HorizonDays:   in.HorizonDays,
		WeekStart:     in.WeekStart,
		Streak:        in.Streak,
		Consistency:   in.Consistency,
	})
	return out, nil
}
