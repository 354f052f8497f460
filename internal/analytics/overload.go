package analytics

import (
	"math"
	"time"

	"alcyxob/workout-analytics/internal/domain"

	"github.com/montanaflynn/stats"
)

type WeeklyOverload struct {
	WeekStart time.Time   `json:"weekStart" yaml:"weekStart"`
	Key       string      `json:"key" yaml:"key"`
	Volume    float64     `json:"volume" yaml:"volume"`
	Workouts  int         `json:"workouts" yaml:"workouts"`
	Change    float64     `json:"change" yaml:"change"`   // Percent versus the previous week
	Defined   bool        `json:"defined" yaml:"defined"` // False for the first week and after a zero week
	Status    TrendStatus `json:"status" yaml:"status"`
	Partial   bool        `json:"partial" yaml:"partial"`
}

type OverloadSummary struct {
	Weeks            []WeeklyOverload `json:"weeks" yaml:"weeks"`
	WeeksProgressing int              `json:"weeksProgressing" yaml:"weeksProgressing"`
	TotalWeeks       int              `json:"totalWeeks" yaml:"totalWeeks"` // Weeks with a defined change
	ProgressRate     float64          `json:"progressRate" yaml:"progressRate"`
	AvgIncrease      float64          `json:"avgIncrease" yaml:"avgIncrease"`
	OverallStatus    OverallStatus    `json:"overallStatus" yaml:"overallStatus"`
	NextWeekTarget   float64          `json:"nextWeekTarget" yaml:"nextWeekTarget"`
	Skipped          int              `json:"skipped" yaml:"skipped"`
}

// AnalyzeOverload compares consecutive weekly volumes inside period.
// It returns nil when fewer than two weekly buckets exist.
func AnalyzeOverload(records []domain.WorkoutRecord, period PeriodRange, loc *time.Location, weekStart time.Weekday) (*OverloadSummary, error) {
	dated, skipped := completedInPeriod(records, period, loc)
	buckets := BucketByWeek(recordsOf(dated), loc, weekStart, period.End)
	if len(buckets.Weeks) < 2 {
		return nil, nil
	}

	summary := &OverloadSummary{Skipped: skipped}
	var changes []float64
	for i, w := range buckets.Weeks {
		week := WeeklyOverload{WeekStart: w.Start, Key: w.Key(), Workouts: len(w.Records), Partial: w.Partial}
		for _, r := range w.Records {
			v, err := WorkoutVolume(r)
			if err != nil {
				return nil, err
			}
			week.Volume += v
		}
		week.Volume = round2(week.Volume)
		var change float64
		if i > 0 {
			change, week.Defined = PercentChange(summary.Weeks[i-1].Volume, week.Volume)
		}
		week.Status = ClassifyChange(change, week.Defined)
		week.Change = round2(change)
		if week.Defined {
			changes = append(changes, change)
			summary.TotalWeeks++
			if week.Status == StatusProgressing {
				summary.WeeksProgressing++
			}
		}
		summary.Weeks = append(summary.Weeks, week)
	}

	var avg float64
	if len(changes) > 0 {
		var err error
		if avg, err = stats.Mean(changes); err != nil {
			return nil, err
		}
		summary.AvgIncrease = round2(avg)
		summary.ProgressRate = round2(float64(summary.WeeksProgressing) / float64(summary.TotalWeeks) * 100)
	}
	summary.OverallStatus = ClassifyOverall(avg)

	last := summary.Weeks[len(summary.Weeks)-1].Volume
	summary.NextWeekTarget = round2(math.Max(0, last*(1+avg/100)))
	return summary, nil
}
