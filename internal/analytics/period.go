package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a named analysis window.
type Period string

const (
	PeriodThisWeek   Period = "thisWeek"
	PeriodLast7Days  Period = "last7Days"
	PeriodLast14Days Period = "last14Days"
	PeriodLast30Days Period = "last30Days"
	PeriodThisMonth  Period = "thisMonth"
	PeriodLastMonth  Period = "lastMonth"
	PeriodLast90Days Period = "last90Days"
	PeriodThisYear   Period = "thisYear"
	PeriodAllTime    Period = "allTime"
)

var periods = []Period{
	PeriodThisWeek, PeriodLast7Days, PeriodLast14Days, PeriodLast30Days,
	PeriodThisMonth, PeriodLastMonth, PeriodLast90Days, PeriodThisYear, PeriodAllTime,
}

var rollingDays = map[Period]int{
	PeriodLast7Days:  7,
	PeriodLast14Days: 14,
	PeriodLast30Days: 30,
	PeriodLast90Days: 90,
}

// Periods lists every supported period identifier.
func Periods() []Period {
	out := make([]Period, len(periods))
	copy(out, periods)
	return out
}

// ParsePeriod validates an identifier. Unknown identifiers are rejected, never defaulted.
func ParsePeriod(s string) (Period, error) {
	for _, p := range periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// PeriodRange is a half-open interval [Start, End) of local-midnight instants.
type PeriodRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Contains reports whether t falls inside [Start, End).
func (r PeriodRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Days counts the calendar days in the range.
func (r PeriodRange) Days() int {
	n := 0
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// ResolveOptions carries the user-specific inputs of period resolution.
type ResolveOptions struct {
	WeekStart    time.Weekday
	FirstWorkout *time.Time // Earliest completed workout, used by allTime
}

// ResolvePeriod turns a period into a concrete range anchored to now in loc.
// Rolling windows end at the start of tomorrow so today is always included.
func ResolvePeriod(p Period, now time.Time, loc *time.Location, opts ResolveOptions) (PeriodRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	today := StartOfDay(now, loc)
	tomorrow := today.AddDate(0, 0, 1)

	if n, ok := rollingDays[p]; ok {
		return PeriodRange{Start: tomorrow.AddDate(0, 0, -n), End: tomorrow}, nil
	}

	y, m, _ := today.Date()
	firstOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, loc)

	switch p {
	case PeriodThisWeek:
		start := StartOfWeek(today, loc, opts.WeekStart)
		return PeriodRange{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case PeriodThisMonth:
		return PeriodRange{Start: firstOfMonth, End: firstOfMonth.AddDate(0, 1, 0)}, nil
	case PeriodLastMonth:
		return PeriodRange{Start: firstOfMonth.AddDate(0, -1, 0), End: firstOfMonth}, nil
	case PeriodThisYear:
		jan1 := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return PeriodRange{Start: jan1, End: jan1.AddDate(1, 0, 0)}, nil
	case PeriodAllTime:
		if opts.FirstWorkout == nil || opts.FirstWorkout.IsZero() {
			return ResolvePeriod(PeriodThisMonth, now, loc, opts)
		}
		start := StartOfDay(*opts.FirstWorkout, loc)
		if start.After(today) {
			start = today
		}
		return PeriodRange{Start: start, End: tomorrow}, nil
	}
	return PeriodRange{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, p)
}

// FetchWindow is the coarse range used when loading records from storage.
type FetchWindow string

const (
	FetchWeek    FetchWindow = "week"
	FetchMonth   FetchWindow = "month"
	FetchQuarter FetchWindow = "quarter"
	FetchYear    FetchWindow = "year"
	FetchAll     FetchWindow = "all"
)

// Days is the look-back length of the window; 0 for FetchAll.
func (w FetchWindow) Days() int {
	switch w {
	case FetchWeek:
		return 7
	case FetchMonth:
		return 31
	case FetchQuarter:
		return 92
	case FetchYear:
		return 366
	}
	return 0
}

// FetchWindowFor picks the smallest window that covers p for any possible now.
func FetchWindowFor(p Period) (FetchWindow, error) {
	switch p {
	case PeriodThisWeek, PeriodLast7Days:
		return FetchWeek, nil
	case PeriodLast14Days, PeriodLast30Days, PeriodThisMonth:
		return FetchMonth, nil
	case PeriodLastMonth, PeriodLast90Days:
		return FetchQuarter, nil
	case PeriodThisYear:
		return FetchYear, nil
	case PeriodAllTime:
		return FetchAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, p)
}

// FetchRange returns the storage query range for p. It always contains ResolvePeriod's range.
func FetchRange(p Period, now time.Time, loc *time.Location, opts ResolveOptions) (PeriodRange, error) {
	period, err := ResolvePeriod(p, now, loc, opts)
	if err != nil {
		return PeriodRange{}, err
	}
	window, err := FetchWindowFor(p)
	if err != nil {
		return PeriodRange{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	tomorrow := StartOfDay(now, loc).AddDate(0, 0, 1)
	end := tomorrow
	if period.End.After(end) {
		end = period.End
	}
	if window == FetchAll {
		return PeriodRange{Start: period.Start, End: end}, nil
	}
	return PeriodRange{Start: tomorrow.AddDate(0, 0, -window.Days()), End: end}, nil
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// StartOfWeek returns local midnight of the first day of the week containing t.
func StartOfWeek(t time.Time, loc *time.Location, weekStart time.Weekday) time.Time {
	day := StartOfDay(t, loc)
	diff := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday accepts a weekday name, its three-letter abbreviation, or 0-6 (0 = Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if d, ok := weekdayNames[s]; ok {
		return d, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekStart, s)
}
