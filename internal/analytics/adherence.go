package analytics

import (
	"time"

	"alcyxob/workout-analytics/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultLookbackWeeks = 12
	DefaultHorizonDays   = 7
)

type DayStatus string

const (
	DayCompleted DayStatus = "completed"
	DayMissed    DayStatus = "missed"
	DayPlanned   DayStatus = "planned"
	DayRest      DayStatus = "rest"
)

// ConsistencyFunc combines adherence and streak into a 0-100 score.
type ConsistencyFunc func(adherencePct *float64, currentStreak, longestStreak int) float64

type AdherenceInput struct {
	Schedule      []domain.ScheduleDay
	Workouts      []domain.WorkoutRecord // Completed workouts also mark their template day completed
	Now           time.Time
	Location      *time.Location
	LookbackWeeks int
	HorizonDays   int
	WeekStart     time.Weekday
	Streak        domain.StreakConfig
	Consistency   ConsistencyFunc
}

type ClassifiedDay struct {
	Date       string              `json:"date" yaml:"date"`
	Status     DayStatus           `json:"status" yaml:"status"`
	TemplateID *primitive.ObjectID `json:"templateId,omitempty" yaml:"templateId,omitempty"`
	WorkoutID  *primitive.ObjectID `json:"workoutId,omitempty" yaml:"workoutId,omitempty"`
}

// OverallAdherence counts classified days. Percentage is nil when nothing was due.
type OverallAdherence struct {
	Completed  int      `json:"completed" yaml:"completed"`
	Missed     int      `json:"missed" yaml:"missed"`
	Planned    int      `json:"planned" yaml:"planned"`
	RestDays   int      `json:"restDays" yaml:"restDays"`
	Percentage *float64 `json:"percentage" yaml:"percentage"`
}

type AdherenceSummary struct {
	WindowStart      string           `json:"windowStart" yaml:"windowStart"`
	WindowEnd        string           `json:"windowEnd" yaml:"windowEnd"` // Inclusive
	Days             []ClassifiedDay  `json:"days" yaml:"days"`
	Overall          OverallAdherence `json:"overall" yaml:"overall"`
	Streak           StreakInfo       `json:"streak" yaml:"streak"`
	ConsistencyScore float64          `json:"consistencyScore" yaml:"consistencyScore"`
	Achievements     []Achievement    `json:"achievements" yaml:"achievements"`
	SkippedSchedule  int              `json:"skippedSchedule" yaml:"skippedSchedule"` // Entries with an unparseable date
	SkippedWorkouts  int              `json:"skippedWorkouts" yaml:"skippedWorkouts"`
}

// ComputeAdherence classifies every day from LookbackWeeks ago through HorizonDays ahead
// and derives adherence, streaks, consistency and achievements from it.
func ComputeAdherence(in AdherenceInput) AdherenceSummary {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	consistency := in.Consistency
	if consistency == nil {
		consistency = DefaultConsistencyScore
	}

	today := StartOfDay(in.Now, loc)
	todayKey := DayKey(today, loc)
	window := AdherenceWindow(in.Now, loc, in.LookbackWeeks, in.HorizonDays)
	start, end := window.Start, window.End.AddDate(0, 0, -1)

	out := AdherenceSummary{WindowStart: DayKey(start, loc), WindowEnd: DayKey(end, loc)}

	schedule := make(map[string]domain.ScheduleDay)
	for _, d := range in.Schedule {
		if _, err := ParseDayKey(d.Date, loc); err != nil {
			out.SkippedSchedule++
			continue
		}
		prev, ok := schedule[d.Date]
		if !ok {
			schedule[d.Date] = d
			continue
		}
		// Duplicate entries for one date: a template on either wins, completion is sticky.
		if prev.TemplateID == nil {
			prev.TemplateID = d.TemplateID
		}
		prev.Completed = prev.Completed || d.Completed
		if prev.WorkoutID == nil {
			prev.WorkoutID = d.WorkoutID
		}
		schedule[d.Date] = prev
	}

	logged := make(map[string]primitive.ObjectID)
	for _, w := range in.Workouts {
		if w.CompletedAt == nil {
			continue
		}
		at, err := NormalizeTimestamp(*w.CompletedAt, loc)
		if err != nil {
			out.SkippedWorkouts++
			continue
		}
		key := DayKey(at, loc)
		if _, ok := logged[key]; !ok {
			logged[key] = w.ID
		}
	}

	var past []DayStatus
	var pastDates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := DayKey(d, loc)
		day := ClassifiedDay{Date: key, Status: DayRest}
		if entry, ok := schedule[key]; ok && entry.TemplateID != nil {
			day.TemplateID = entry.TemplateID
			day.WorkoutID = entry.WorkoutID
			workoutID, wasLogged := logged[key]
			switch {
			case entry.Completed || entry.WorkoutID != nil || wasLogged:
				day.Status = DayCompleted
				if day.WorkoutID == nil && wasLogged {
					id := workoutID
					day.WorkoutID = &id
				}
			case key < todayKey:
				day.Status = DayMissed
			default:
				day.Status = DayPlanned
			}
		}

		switch day.Status {
		case DayCompleted:
			out.Overall.Completed++
		case DayMissed:
			out.Overall.Missed++
		case DayPlanned:
			out.Overall.Planned++
		default:
			out.Overall.RestDays++
		}
		if key <= todayKey {
			past = append(past, day.Status)
			pastDates = append(pastDates, d)
		}
		out.Days = append(out.Days, day)
	}

	if due := out.Overall.Completed + out.Overall.Missed; due > 0 {
		pct := round2(float64(out.Overall.Completed) / float64(due) * 100)
		out.Overall.Percentage = &pct
	}

	out.Streak = computeStreak(past, pastDates, loc, in.WeekStart, in.Streak)
	out.ConsistencyScore = round2(clamp(consistency(out.Overall.Percentage, out.Streak.Current, out.Streak.Longest), 0, 100))
	out.Achievements = EvaluateAchievements(out.Streak.Current, out.Overall.Percentage)
	return out
}

// AdherenceWindow is the range of days ComputeAdherence classifies: lookbackWeeks
// whole weeks ending today, followed by horizonDays planned days.
func AdherenceWindow(now time.Time, loc *time.Location, lookbackWeeks, horizonDays int) PeriodRange {
	if lookbackWeeks <= 0 {
		lookbackWeeks = DefaultLookbackWeeks
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	today := StartOfDay(now, loc)
	return PeriodRange{
		Start: today.AddDate(0, 0, -(7*lookbackWeeks - 1)),
		End:   today.AddDate(0, 0, horizonDays+1),
	}
}

// DefaultConsistencyScore weighs adherence at 70% and the current/longest streak ratio at 30%.
func DefaultConsistencyScore(adherencePct *float64, currentStreak, longestStreak int) float64 {
	adherence := 0.0
	if adherencePct != nil {
		adherence = *adherencePct
	}
	streak := 0.0
	if longestStreak > 0 {
		streak = float64(currentStreak) / float64(longestStreak) * 100
	}
	return clamp(round2(0.7*adherence+0.3*streak), 0, 100)
}
