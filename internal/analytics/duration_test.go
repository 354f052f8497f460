package analytics_test

import (
	"testing"
	"time"

	"alcyxob/workout-analytics/internal/analytics"
	"alcyxob/workout-analytics/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timed(t time.Time, seconds int) domain.WorkoutRecord {
	w := completedAt(t)
	w.DurationSeconds = intp(seconds)
	return w
}

func TestAnalyzeDurations(t *testing.T) {
	now := date(2024, time.March, 31, 20, 0, time.UTC)
	period, err := analytics.ResolvePeriod(analytics.PeriodThisMonth, now, time.UTC, analytics.ResolveOptions{})
	require.NoError(t, err)

	unknown := completedAt(date(2024, time.March, 5, 9, 0, time.UTC))
	records := []domain.WorkoutRecord{
		timed(date(2024, time.March, 20, 9, 0, time.UTC), 3600),
		timed(date(2024, time.March, 2, 9, 0, time.UTC), 2400),
		timed(date(2024, time.March, 10, 9, 0, time.UTC), 2400),
		timed(date(2024, time.March, 28, 9, 0, time.UTC), 3600),
		unknown,
		timed(date(2024, time.February, 28, 9, 0, time.UTC), 60),
	}

	s, err := analytics.AnalyzeDurations(records, period, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 3000.0, s.AverageSeconds)
	assert.Equal(t, 50, s.AverageMinutes)
	require.NotNil(t, s.Shortest)
	assert.Equal(t, 2400, s.Shortest.Seconds)
	assert.Equal(t, "2024-03-02", s.Shortest.Date, "ties keep the earliest")
	require.NotNil(t, s.Longest)
	assert.Equal(t, "2024-03-20", s.Longest.Date)
	assert.Equal(t, analytics.Trend{Direction: analytics.TrendIncreasing, Value: 50}, s.Trend)
}

func TestAnalyzeDurations_SmallSamples(t *testing.T) {
	now := date(2024, time.March, 31, 20, 0, time.UTC)
	period, err := analytics.ResolvePeriod(analytics.PeriodThisMonth, now, time.UTC, analytics.ResolveOptions{})
	require.NoError(t, err)

	s, err := analytics.AnalyzeDurations(nil, period, time.UTC)
	require.NoError(t, err)
	assert.Zero(t, s.Count)
	assert.Nil(t, s.Shortest)
	assert.Nil(t, s.Longest)
	assert.Equal(t, analytics.Trend{Direction: analytics.TrendStable}, s.Trend)

	s, err = analytics.AnalyzeDurations([]domain.WorkoutRecord{timed(date(2024, time.March, 3, 9, 0, time.UTC), 1800)}, period, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 30, s.AverageMinutes)
	assert.Equal(t, analytics.Trend{Direction: analytics.TrendStable}, s.Trend)
}

func TestAnalyzeDurations_OddCountRecentHalfIsLarger(t *testing.T) {
	now := date(2024, time.March, 31, 20, 0, time.UTC)
	period, err := analytics.ResolvePeriod(analytics.PeriodThisMonth, now, time.UTC, analytics.ResolveOptions{})
	require.NoError(t, err)

	records := []domain.WorkoutRecord{
		timed(date(2024, time.March, 1, 9, 0, time.UTC), 1000),
		timed(date(2024, time.March, 2, 9, 0, time.UTC), 1000),
		timed(date(2024, time.March, 3, 9, 0, time.UTC), 1000),
	}
	s, err := analytics.AnalyzeDurations(records, period, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, analytics.Trend{Direction: analytics.TrendStable, Value: 0}, s.Trend)
}

func TestAnalyzeDurations_TrendJustBelowThreshold(t *testing.T) {
	now := date(2024, time.March, 31, 20, 0, time.UTC)
	period, err := analytics.ResolvePeriod(analytics.PeriodThisMonth, now, time.UTC, analytics.ResolveOptions{})
	require.NoError(t, err)

	records := []domain.WorkoutRecord{
		timed(date(2024, time.March, 1, 9, 0, time.UTC), 100000),
		timed(date(2024, time.March, 2, 9, 0, time.UTC), 102496), // +2.496%
	}
	s, err := analytics.AnalyzeDurations(records, period, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, analytics.Trend{Direction: analytics.TrendStable, Value: 2.5}, s.Trend)
}
