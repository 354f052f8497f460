package analytics

// TrendThreshold is the percentage beyond which a change is no longer stable.
// Both bounds are closed: +2.5 is an increase, -2.5 a decrease.
const TrendThreshold = 2.5

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// Trend is a classified percentage change.
type Trend struct {
	Direction TrendDirection `json:"direction" yaml:"direction"`
	Value     float64        `json:"value" yaml:"value"`
}

// TrendStatus classifies a single week-over-week change.
type TrendStatus string

const (
	StatusProgressing TrendStatus = "progressing"
	StatusMaintaining TrendStatus = "maintaining"
	StatusRegressing  TrendStatus = "regressing"
)

// OverallStatus classifies the average change across a period.
type OverallStatus string

const (
	OverallOnTrack     OverallStatus = "on_track"
	OverallMaintaining OverallStatus = "maintaining"
	OverallRegressing  OverallStatus = "regressing"
)

// PercentChange returns (cur-prev)/prev*100, unrounded. Classify on this value and round
// only what is reported. The change is undefined when prev is zero.
func PercentChange(prev, cur float64) (float64, bool) {
	if prev == 0 {
		return 0, false
	}
	return (cur - prev) * 100 / prev, true
}

// ClassifyDirection maps a percentage change onto a trend direction.
func ClassifyDirection(change float64) TrendDirection {
	switch {
	case change >= TrendThreshold:
		return TrendIncreasing
	case change <= -TrendThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// ClassifyChange is total over every input; an undefined change is maintaining.
func ClassifyChange(change float64, defined bool) TrendStatus {
	if !defined {
		return StatusMaintaining
	}
	switch ClassifyDirection(change) {
	case TrendIncreasing:
		return StatusProgressing
	case TrendDecreasing:
		return StatusRegressing
	default:
		return StatusMaintaining
	}
}

// ClassifyOverall maps an average change onto the period status.
func ClassifyOverall(avg float64) OverallStatus {
	switch ClassifyDirection(avg) {
	case TrendIncreasing:
		return OverallOnTrack
	case TrendDecreasing:
		return OverallRegressing
	default:
		return OverallMaintaining
	}
}
