package analytics

import (
	"time"

	"alcyxob/workout-analytics/internal/domain"
)

type StreakInfo struct {
	Current int               `json:"current" yaml:"current"`
	Longest int               `json:"longest" yaml:"longest"`
	Type    domain.StreakType `json:"type" yaml:"type"`
}

// computeStreak dispatches on the configured streak type.
// days and dates are ascending and end with today.
func computeStreak(days []DayStatus, dates []time.Time, loc *time.Location, weekStart time.Weekday, cfg domain.StreakConfig) StreakInfo {
	tolerance := cfg.MaxRestDaysPerWeek
	if tolerance < 0 {
		tolerance = 0
	}
	if cfg.StreakType == domain.StreakWeekly {
		weeks := weekOutcomes(days, dates, loc, weekStart, tolerance)
		current := currentWeeklyStreak(weeks)
		return StreakInfo{Current: current, Longest: max(current, longestWeeklyStreak(weeks)), Type: domain.StreakWeekly}
	}
	current := currentDailyStreak(days, tolerance)
	return StreakInfo{Current: current, Longest: max(current, longestDailyStreak(days, tolerance)), Type: domain.StreakDaily}
}

// currentDailyStreak walks back from today. Completed days count, rest and planned days
// are neutral, and a missed day is tolerated while the tolerated misses inside any
// 7-day window stay within tolerance.
func currentDailyStreak(days []DayStatus, tolerance int) int {
	streak := 0
	var tolerated []int
	for i := len(days) - 1; i >= 0; i-- {
		switch days[i] {
		case DayCompleted:
			streak++
		case DayMissed:
			if missesInWindow(tolerated, i)+1 > tolerance {
				return streak
			}
			tolerated = append(tolerated, i)
		}
	}
	return streak
}

func longestDailyStreak(days []DayStatus, tolerance int) int {
	longest, streak := 0, 0
	var tolerated []int
	for i, s := range days {
		switch s {
		case DayCompleted:
			streak++
			longest = max(longest, streak)
		case DayMissed:
			if missesInWindow(tolerated, i)+1 > tolerance {
				streak = 0
				tolerated = tolerated[:0]
				continue
			}
			tolerated = append(tolerated, i)
		}
	}
	return longest
}

// missesInWindow counts tolerated misses less than 7 days away from day i.
func missesInWindow(tolerated []int, i int) int {
	n := 0
	for _, j := range tolerated {
		if d := i - j; d > -7 && d < 7 {
			n++
		}
	}
	return n
}

type weekOutcome int

const (
	weekNeutral weekOutcome = iota
	weekKept
	weekBroken
)

// weekOutcomes classifies each week up to today. A week is kept with at least one
// completed day and no more misses than tolerated. Weeks without template days are
// neutral, as is a week whose template days are all still ahead. Any other week breaks.
func weekOutcomes(days []DayStatus, dates []time.Time, loc *time.Location, weekStart time.Weekday, tolerance int) []weekOutcome {
	type tally struct{ completed, missed int }
	var order []string
	tallies := make(map[string]*tally)
	for i, s := range days {
		key := StartOfWeek(dates[i], loc, weekStart).Format(DayKeyLayout)
		t, ok := tallies[key]
		if !ok {
			t = &tally{}
			tallies[key] = t
			order = append(order, key)
		}
		switch s {
		case DayCompleted:
			t.completed++
		case DayMissed:
			t.missed++
		}
	}
	out := make([]weekOutcome, len(order))
	for i, key := range order {
		t := tallies[key]
		switch {
		case t.completed == 0 && t.missed == 0:
			out[i] = weekNeutral
		case t.completed > 0 && t.missed <= tolerance:
			out[i] = weekKept
		default:
			out[i] = weekBroken
		}
	}
	return out
}

func currentWeeklyStreak(weeks []weekOutcome) int {
	streak := 0
	for i := len(weeks) - 1; i >= 0; i-- {
		switch weeks[i] {
		case weekKept:
			streak++
		case weekBroken:
			return streak
		}
	}
	return streak
}

func longestWeeklyStreak(weeks []weekOutcome) int {
	longest, streak := 0, 0
	for _, w := range weeks {
		switch w {
		case weekKept:
			streak++
			longest = max(longest, streak)
		case weekBroken:
			streak = 0
		}
	}
	return longest
}
