package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"alcyxob/workout-analytics/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetVolume is weight x reps. Sets missing either value contribute 0.
func SetVolume(s domain.SetEntry) (float64, error) {
	if s.Weight != nil && *s.Weight < 0 {
		return 0, fmt.Errorf("%w: negative weight %v", ErrInvalidSet, *s.Weight)
	}
	if s.Reps != nil && *s.Reps < 0 {
		return 0, fmt.Errorf("%w: negative reps %d", ErrInvalidSet, *s.Reps)
	}
	if s.RPE != nil && (*s.RPE < 1 || *s.RPE > 10) {
		return 0, fmt.Errorf("%w: rpe %v outside 1-10", ErrInvalidSet, *s.RPE)
	}
	if s.Weight == nil || s.Reps == nil {
		return 0, nil
	}
	return *s.Weight * float64(*s.Reps), nil
}

// countsTowardVolume reports whether a set has both weight and reps.
func countsTowardVolume(s domain.SetEntry) bool {
	return s.Weight != nil && s.Reps != nil
}

func ExerciseVolume(e domain.ExerciseEntry) (float64, error) {
	total := 0.0
	for _, s := range e.Sets {
		v, err := SetVolume(s)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

func WorkoutVolume(w domain.WorkoutRecord) (float64, error) {
	total := 0.0
	for _, e := range w.Exercises {
		v, err := ExerciseVolume(e)
		if err != nil {
			return 0, fmt.Errorf("workout %s: %w", w.ID.Hex(), err)
		}
		total += v
	}
	return total, nil
}

// Granularity is the bucket size of a volume trend.
type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityWeek Granularity = "week"
)

// ParseGranularity accepts "day" or "week"; empty means day.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(s)) {
	case "", GranularityDay:
		return GranularityDay, nil
	case GranularityWeek:
		return GranularityWeek, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
}

type TrendOptions struct {
	Granularity Granularity
	WeekStart   time.Weekday
}

type VolumeTrendPoint struct {
	Date     time.Time `json:"date" yaml:"date"`
	Key      string    `json:"key" yaml:"key"`
	Volume   float64   `json:"volume" yaml:"volume"`
	Workouts int       `json:"workouts" yaml:"workouts"`
	Sets     int       `json:"sets" yaml:"sets"` // Sets with both weight and reps
}

type VolumeTrend struct {
	Granularity Granularity        `json:"granularity" yaml:"granularity"`
	Points      []VolumeTrendPoint `json:"points" yaml:"points"`
	Total       float64            `json:"total" yaml:"total"`
	Skipped     int                `json:"skipped" yaml:"skipped"`
}

// BuildVolumeTrend sums completed in-period volume per day or week.
// Only buckets with at least one workout produce a point.
func BuildVolumeTrend(records []domain.WorkoutRecord, period PeriodRange, loc *time.Location, opts TrendOptions) (VolumeTrend, error) {
	if opts.Granularity == "" {
		opts.Granularity = GranularityDay
	}
	out := VolumeTrend{Granularity: opts.Granularity, Points: []VolumeTrendPoint{}}
	dated, skipped := completedInPeriod(records, period, loc)
	out.Skipped = skipped

	byKey := make(map[string]int)
	for _, d := range dated {
		start := StartOfDay(d.at, loc)
		if opts.Granularity == GranularityWeek {
			start = StartOfWeek(d.at, loc, opts.WeekStart)
		}
		key := start.Format(DayKeyLayout)
		i, ok := byKey[key]
		if !ok {
			i = len(out.Points)
			byKey[key] = i
			out.Points = append(out.Points, VolumeTrendPoint{Date: start, Key: key})
		}
		v, err := WorkoutVolume(d.record)
		if err != nil {
			return VolumeTrend{}, err
		}
		out.Points[i].Volume += v
		out.Points[i].Workouts++
		for _, e := range d.record.Exercises {
			for _, s := range e.Sets {
				if countsTowardVolume(s) {
					out.Points[i].Sets++
				}
			}
		}
		out.Total += v
	}
	return out, nil
}

// MuscleGroups is the resolved muscle involvement of one exercise.
type MuscleGroups struct {
	Primary   string
	Secondary []string
}

// MuscleLookup resolves an exercise id. ok is false for unknown exercises.
type MuscleLookup func(exerciseID primitive.ObjectID) (groups MuscleGroups, ok bool)

// MuscleLookupFromExercises builds a lookup over exercise definitions.
func MuscleLookupFromExercises(exercises []domain.Exercise) MuscleLookup {
	byID := make(map[primitive.ObjectID]MuscleGroups, len(exercises))
	for _, e := range exercises {
		byID[e.ID] = MuscleGroups{Primary: e.PrimaryMuscleGroup, Secondary: e.SecondaryMuscleGroups}
	}
	return func(id primitive.ObjectID) (MuscleGroups, bool) {
		g, ok := byID[id]
		return g, ok
	}
}

// groups returns primary followed by distinct non-empty secondaries.
func (g MuscleGroups) groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range append([]string{g.Primary}, g.Secondary...) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

type MuscleVolumeShare struct {
	Group      string  `json:"group" yaml:"group"`
	Count      int     `json:"count" yaml:"count"`
	Volume     float64 `json:"volume" yaml:"volume"`
	Percentage float64 `json:"percentage" yaml:"percentage"` // Share of TotalHits
}

// MuscleDistribution attributes every resolved exercise entry to its primary group and to each
// secondary group with the entry's full volume, so volumes overlap across groups and do not
// sum to the workout total. Percentages are shares of TotalHits.
type MuscleDistribution struct {
	Groups            []MuscleVolumeShare `json:"groups" yaml:"groups"`
	TotalHits         int                 `json:"totalHits" yaml:"totalHits"`
	UnresolvedEntries int                 `json:"unresolvedEntries" yaml:"unresolvedEntries"`
	Skipped           int                 `json:"skipped" yaml:"skipped"`
}

func BuildMuscleDistribution(records []domain.WorkoutRecord, period PeriodRange, loc *time.Location, lookup MuscleLookup) (MuscleDistribution, error) {
	out := MuscleDistribution{Groups: []MuscleVolumeShare{}}
	dated, skipped := completedInPeriod(records, period, loc)
	out.Skipped = skipped

	byGroup := make(map[string]*MuscleVolumeShare)
	for _, d := range dated {
		for _, e := range d.record.Exercises {
			v, err := ExerciseVolume(e)
			if err != nil {
				return MuscleDistribution{}, fmt.Errorf("workout %s: %w", d.record.ID.Hex(), err)
			}
			var names []string
			if lookup != nil {
				if g, ok := lookup(e.ExerciseID); ok {
					names = g.groups()
				}
			}
			if len(names) == 0 {
				out.UnresolvedEntries++
				continue
			}
			for _, name := range names {
				share, ok := byGroup[name]
				if !ok {
					share = &MuscleVolumeShare{Group: name}
					byGroup[name] = share
				}
				share.Count++
				share.Volume += v
				out.TotalHits++
			}
		}
	}

	for _, share := range byGroup {
		share.Percentage = round2(float64(share.Count) / float64(out.TotalHits) * 100)
		share.Volume = round2(share.Volume)
		out.Groups = append(out.Groups, *share)
	}
	sort.Slice(out.Groups, func(i, j int) bool {
		if out.Groups[i].Count != out.Groups[j].Count {
			return out.Groups[i].Count > out.Groups[j].Count
		}
		return out.Groups[i].Group < out.Groups[j].Group
	})
	return out, nil
}
