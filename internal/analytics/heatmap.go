package analytics

import (
	"sort"
	"time"

	"alcyxob/workout-analytics/internal/domain"
)

const (
	HeatmapWeeks = 53
	HeatmapDays  = 7
	HeatmapCells = HeatmapWeeks * HeatmapDays
)

type HeatmapCell struct {
	Date       time.Time `json:"date" yaml:"date"`
	Key        string    `json:"key" yaml:"key"`
	Volume     float64   `json:"volume" yaml:"volume"`
	Level      int       `json:"level" yaml:"level"` // 0-3
	IsToday    bool      `json:"isToday" yaml:"isToday"`
	IsInPeriod bool      `json:"isInPeriod" yaml:"isInPeriod"`
	Column     int       `json:"column" yaml:"column"` // Week index, 0 is oldest
	Row        int       `json:"row" yaml:"row"`       // Day offset from the week start
}

type Heatmap struct {
	Start       string        `json:"start" yaml:"start"`
	End         string        `json:"end" yaml:"end"` // Inclusive
	Cells       []HeatmapCell `json:"cells" yaml:"cells"`
	Thresholds  [2]float64    `json:"thresholds" yaml:"thresholds"`
	TotalVolume float64       `json:"totalVolume" yaml:"totalVolume"` // In-period only
	ActiveDays  int           `json:"activeDays" yaml:"activeDays"`   // In-period only
	Skipped     int           `json:"skipped" yaml:"skipped"`
}

// HeatmapRange is the span of days the heatmap grid covers for period. Callers fetch
// this range, not just the period, so cells outside the period still carry volume.
func HeatmapRange(period PeriodRange, now time.Time, loc *time.Location, weekStart time.Weekday) PeriodRange {
	if loc == nil {
		loc = time.UTC
	}
	anchor := StartOfDay(now, loc)
	if lastDay := period.End.AddDate(0, 0, -1); !period.End.IsZero() && lastDay.Before(anchor) {
		anchor = StartOfDay(lastDay, loc)
	}
	start := StartOfWeek(anchor, loc, weekStart).AddDate(0, 0, -7*(HeatmapWeeks-1))
	return PeriodRange{Start: start, End: start.AddDate(0, 0, HeatmapCells)}
}

// BuildHeatmap lays out 53 weeks of daily volume, the last column being the week that
// contains today or the period's last day, whichever is earlier. Levels scale to the
// user's own in-period volumes by tertile.
func BuildHeatmap(records []domain.WorkoutRecord, period PeriodRange, now time.Time, loc *time.Location, weekStart time.Weekday) (Heatmap, error) {
	if loc == nil {
		loc = time.UTC
	}
	today := StartOfDay(now, loc)
	grid := HeatmapRange(period, now, loc, weekStart)
	gridStart := grid.Start

	dated, skipped := completedInPeriod(records, grid, loc)
	volumes := make(map[string]float64)
	for _, d := range dated {
		v, err := WorkoutVolume(d.record)
		if err != nil {
			return Heatmap{}, err
		}
		volumes[d.key] += v
	}

	out := Heatmap{Cells: make([]HeatmapCell, 0, HeatmapCells), Skipped: skipped}
	var active []float64
	todayKey := DayKey(today, loc)
	for i := 0; i < HeatmapCells; i++ {
		day := gridStart.AddDate(0, 0, i)
		key := DayKey(day, loc)
		cell := HeatmapCell{
			Date:       day,
			Key:        key,
			Volume:     round2(volumes[key]),
			IsToday:    key == todayKey,
			IsInPeriod: period.Contains(day),
			Column:     i / HeatmapDays,
			Row:        i % HeatmapDays,
		}
		if cell.IsInPeriod && cell.Volume > 0 {
			active = append(active, cell.Volume)
			out.TotalVolume += cell.Volume
			out.ActiveDays++
		}
		out.Cells = append(out.Cells, cell)
	}
	out.Start = out.Cells[0].Key
	out.End = out.Cells[len(out.Cells)-1].Key
	out.TotalVolume = round2(out.TotalVolume)

	out.Thresholds = tertiles(active)
	for i := range out.Cells {
		out.Cells[i].Level = heatLevel(out.Cells[i].Volume, out.Thresholds)
	}
	return out, nil
}

// tertiles returns nearest-rank cut points at one and two thirds of the sorted volumes.
func tertiles(volumes []float64) [2]float64 {
	n := len(volumes)
	if n == 0 {
		return [2]float64{}
	}
	sorted := make([]float64, n)
	copy(sorted, volumes)
	sort.Float64s(sorted)
	rank := func(num int) float64 {
		idx := (num*n + 2) / 3 // ceil(num*n/3)
		if idx < 1 {
			idx = 1
		}
		return sorted[idx-1]
	}
	return [2]float64{rank(1), rank(2)}
}

func heatLevel(volume float64, thresholds [2]float64) int {
	switch {
	case volume <= 0:
		return 0
	case volume <= thresholds[0]:
		return 1
	case volume <= thresholds[1]:
		return 2
	default:
		return 3
	}
}
