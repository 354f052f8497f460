package analytics_test

import (
	"testing"
	"time"

	"alcyxob/workout-analytics/internal/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, p := range analytics.Periods() {
		got, err := analytics.ParsePeriod(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	for _, bad := range []string{"", "lastDecade", "ThisWeek", "last7days"} {
		_, err := analytics.ParsePeriod(bad)
		assert.ErrorIs(t, err, analytics.ErrInvalidPeriod, bad)
	}
}

func TestResolvePeriod_Rolling(t *testing.T) {
	now := date(2024, time.March, 15, 10, 0, time.UTC)

	r, err := analytics.ResolvePeriod(analytics.PeriodLast7Days, now, time.UTC, analytics.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 9, 0, 0, time.UTC), r.Start)
	assert.Equal(t, date(2024, time.March, 16, 0, 0, time.UTC), r.End)
	assert.True(t, r.Contains(now))
	assert.Equal(t, 7, r.Days())

	r, err = analytics.ResolvePeriod(analytics.PeriodLast90Days, now, time.UTC, analytics.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, 90, r.Days())
}

func TestResolvePeriod_UsesViewerLocation(t *testing.T) {
	ny := mustLoad("America/New_York")
	// 23:30 on the 15th in New York is already the 16th in UTC.
	now := date(2024, time.March, 15, 23, 30, ny)

	r, err := analytics.ResolvePeriod(analytics.PeriodLast7Days, now, ny, analytics.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 16, 0, 0, ny), r.End)
	assert.True(t, r.Contains(now))
}

func TestResolvePeriod_DSTTransition(t *testing.T) {
	ny := mustLoad("America/New_York")
	now := date(2024, time.March, 12, 9, 0, ny)

	r, err := analytics.ResolvePeriod(analytics.PeriodLast7Days, now, ny, analytics.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 6, 0, 0, ny), r.Start)
	assert.Equal(t, 0, r.Start.Hour())
	assert.Equal(t, 7, r.Days())
	assert.Equal(t, 7*24*time.Hour-time.Hour, r.End.Sub(r.Start))
}

func TestResolvePeriod_Calendar(t *testing.T) {
	now := date(2024, time.March, 15, 10, 0, time.UTC) // Friday

	tests := []struct {
		name  string
		p     analytics.Period
		opts  analytics.ResolveOptions
		start time.Time
		end   time.Time
	}{
		{"week from monday", analytics.PeriodThisWeek, analytics.ResolveOptions{WeekStart: time.Monday},
			date(2024, time.March, 11, 0, 0, time.UTC), date(2024, time.March, 18, 0, 0, time.UTC)},
		{"week from sunday", analytics.PeriodThisWeek, analytics.ResolveOptions{WeekStart: time.Sunday},
			date(2024, time.March, 10, 0, 0, time.UTC), date(2024, time.March, 17, 0, 0, time.UTC)},
		{"this month", analytics.PeriodThisMonth, analytics.ResolveOptions{},
			date(2024, time.March, 1, 0, 0, time.UTC), date(2024, time.April, 1, 0, 0, time.UTC)},
		{"last month", analytics.PeriodLastMonth, analytics.ResolveOptions{},
			date(2024, time.February, 1, 0, 0, time.UTC), date(2024, time.March, 1, 0, 0, time.UTC)},
		{"this year", analytics.PeriodThisYear, analytics.ResolveOptions{},
			date(2024, time.January, 1, 0, 0, time.UTC), date(2025, time.January, 1, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := analytics.ResolvePeriod(tt.p, now, time.UTC, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
		})
	}
}

func TestResolvePeriod_AllTime(t *testing.T) {
	now := date(2024, time.March, 15, 10, 0, time.UTC)
	first := date(2023, time.January, 5, 18, 45, time.UTC)

	r, err := analytics.ResolvePeriod(analytics.PeriodAllTime, now, time.UTC, analytics.ResolveOptions{FirstWorkout: &first})
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.January, 5, 0, 0, time.UTC), r.Start)
	assert.Equal(t, date(2024, time.March, 16, 0, 0, time.UTC), r.End)

	r, err = analytics.ResolvePeriod(analytics.PeriodAllTime, now, time.UTC, analytics.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 1, 0, 0, time.UTC), r.Start)
	assert.Equal(t, date(2024, time.April, 1, 0, 0, time.UTC), r.End)
}

func TestFetchWindowFor(t *testing.T) {
	want := map[analytics.Period]analytics.FetchWindow{
		analytics.PeriodThisWeek:   analytics.FetchWeek,
		analytics.PeriodLast7Days:  analytics.FetchWeek,
		analytics.PeriodLast14Days: analytics.FetchMonth,
		analytics.PeriodLast30Days: analytics.FetchMonth,
		analytics.PeriodThisMonth:  analytics.FetchMonth,
		analytics.PeriodLastMonth:  analytics.FetchQuarter,
		analytics.PeriodLast90Days: analytics.FetchQuarter,
		analytics.PeriodThisYear:   analytics.FetchYear,
		analytics.PeriodAllTime:    analytics.FetchAll,
	}
	for p, w := range want {
		got, err := analytics.FetchWindowFor(p)
		require.NoError(t, err)
		assert.Equal(t, w, got, p)
	}

	_, err := analytics.FetchWindowFor("forever")
	assert.ErrorIs(t, err, analytics.ErrInvalidPeriod)
}

func TestFetchRange_CoversPeriod(t *testing.T) {
	locs := []*time.Location{time.UTC, mustLoad("America/New_York"), time.FixedZone("UTC+13", 13*3600)}
	first := date(2020, time.June, 1, 12, 0, time.UTC)
	opts := analytics.ResolveOptions{FirstWorkout: &first}

	for _, loc := range locs {
		for day := date(2024, time.January, 1, 13, 0, loc); day.Year() == 2024; day = day.AddDate(0, 0, 1) {
			for _, p := range analytics.Periods() {
				for _, ws := range []time.Weekday{time.Sunday, time.Monday, time.Saturday} {
					opts.WeekStart = ws
					period, err := analytics.ResolvePeriod(p, day, loc, opts)
					require.NoError(t, err)
					fetch, err := analytics.FetchRange(p, day, loc, opts)
					require.NoError(t, err)
					if !assert.False(t, fetch.Start.After(period.Start), "%s %s start", p, day) ||
						!assert.False(t, fetch.End.Before(period.End), "%s %s end", p, day) {
						return
					}
				}
			}
		}
	}
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{"monday": time.Monday, "Sun": time.Sunday, "6": time.Saturday, " TUESDAY ": time.Tuesday} {
		got, err := analytics.ParseWeekday(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := analytics.ParseWeekday("funday")
	assert.ErrorIs(t, err, analytics.ErrInvalidWeekStart)
	_, err = analytics.ParseWeekday("7")
	assert.ErrorIs(t, err, analytics.ErrInvalidWeekStart)
}
