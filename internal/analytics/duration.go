package analytics

import (
	"math"
	"time"

	"alcyxob/workout-analytics/internal/domain"

	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DurationExtreme struct {
	Seconds   int                `json:"seconds" yaml:"seconds"`
	Date      string             `json:"date" yaml:"date"`
	WorkoutID primitive.ObjectID `json:"workoutId" yaml:"workoutId"`
}

type DurationStats struct {
	Count          int              `json:"count" yaml:"count"`
	AverageSeconds float64          `json:"averageSeconds" yaml:"averageSeconds"`
	AverageMinutes int              `json:"averageMinutes" yaml:"averageMinutes"`
	Shortest       *DurationExtreme `json:"shortest" yaml:"shortest"`
	Longest        *DurationExtreme `json:"longest" yaml:"longest"`
	Trend          Trend            `json:"trend" yaml:"trend"`
	Skipped        int              `json:"skipped" yaml:"skipped"`
}

// AnalyzeDurations summarizes completed in-period workouts with a known duration.
// The trend compares the mean of the recent half against the earlier half;
// with an odd count the extra workout belongs to the recent half.
func AnalyzeDurations(records []domain.WorkoutRecord, period PeriodRange, loc *time.Location) (DurationStats, error) {
	out := DurationStats{Trend: Trend{Direction: TrendStable}}
	dated, skipped := completedInPeriod(records, period, loc)
	out.Skipped = skipped

	var seconds []float64
	for _, d := range dated {
		ds := d.record.DurationSeconds
		if ds == nil || *ds < 0 {
			continue
		}
		seconds = append(seconds, float64(*ds))
		if out.Shortest == nil || *ds < out.Shortest.Seconds {
			out.Shortest = &DurationExtreme{Seconds: *ds, Date: d.key, WorkoutID: d.record.ID}
		}
		if out.Longest == nil || *ds > out.Longest.Seconds {
			out.Longest = &DurationExtreme{Seconds: *ds, Date: d.key, WorkoutID: d.record.ID}
		}
	}
	out.Count = len(seconds)
	if out.Count == 0 {
		return out, nil
	}

	mean, err := stats.Mean(seconds)
	if err != nil {
		return DurationStats{}, err
	}
	out.AverageSeconds = round2(mean)
	out.AverageMinutes = int(math.Round(mean / 60))

	if out.Count < 2 {
		return out, nil
	}
	half := out.Count / 2
	earlier, err := stats.Mean(seconds[:half])
	if err != nil {
		return DurationStats{}, err
	}
	recent, err := stats.Mean(seconds[half:])
	if err != nil {
		return DurationStats{}, err
	}
	if change, ok := PercentChange(earlier, recent); ok {
		out.Trend = Trend{Direction: ClassifyDirection(change), Value: round2(change)}
	}
	return out, nil
}
