package service

import (
	"time"

	"alcyxob/workout-analytics/internal/analytics"
	"alcyxob/workout-analytics/internal/domain"
)

// AnalyticsSettings are server-wide defaults and knobs of the analytics engine.
type AnalyticsSettings struct {
	DefaultLocation           *time.Location
	DefaultWeekStart          time.Weekday
	DefaultMaxRestDaysPerWeek int
	LookbackWeeks             int
	HorizonDays               int
	CacheTTL                  time.Duration
	CacheCleanup              time.Duration
	Consistency               analytics.ConsistencyFunc // nil uses analytics.DefaultConsistencyScore
	Clock                     func() time.Time          // nil uses time.Now
}

func (s AnalyticsSettings) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// preferences are the per-user inputs of every engine call.
type preferences struct {
	location  *time.Location
	weekStart time.Weekday
	streak    domain.StreakConfig
}

// preferencesFor fills unset user preferences from the server defaults.
func (s AnalyticsSettings) preferencesFor(u *domain.User) preferences {
	fallback := s.DefaultLocation
	if fallback == nil {
		fallback = time.UTC
	}
	streak := u.Streak
	// An empty type means the user never saved a streak policy.
	if streak.StreakType == "" {
		streak = domain.StreakConfig{StreakType: domain.StreakDaily, MaxRestDaysPerWeek: s.DefaultMaxRestDaysPerWeek}
	}
	return preferences{
		location:  u.Location(fallback),
		weekStart: u.WeekStartDay(s.DefaultWeekStart),
		streak:    streak,
	}
}
