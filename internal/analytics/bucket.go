package analytics

import (
	"sort"
	"time"

	"alcyxob/workout-analytics/internal/domain"
)

// DayBuckets groups records by local calendar day.
type DayBuckets struct {
	Days    map[string][]domain.WorkoutRecord
	Skipped int // Records whose timestamp could not be normalized
}

// Keys returns the bucket keys in chronological order.
func (b DayBuckets) Keys() []string {
	keys := make([]string, 0, len(b.Days))
	for k := range b.Days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BucketByDay assigns every record with a valid timestamp to exactly one local day.
func BucketByDay(records []domain.WorkoutRecord, loc *time.Location) DayBuckets {
	out := DayBuckets{Days: make(map[string][]domain.WorkoutRecord)}
	for _, r := range records {
		at, err := CompletionInstant(r, loc)
		if err != nil {
			out.Skipped++
			continue
		}
		key := DayKey(at, loc)
		out.Days[key] = append(out.Days[key], r)
	}
	return out
}

// WeekBucket is a 7-day window starting at the configured week start.
type WeekBucket struct {
	Start   time.Time
	End     time.Time
	Records []domain.WorkoutRecord
	Partial bool // End was clipped before a full week
}

// Key is the day key of the first day of the window.
func (w WeekBucket) Key() string {
	return w.Start.Format(DayKeyLayout)
}

type WeekBuckets struct {
	Weeks   []WeekBucket
	Skipped int
}

// BucketByWeek returns contiguous weekly windows from the week of the earliest record
// to the week of the latest. Windows in between without records are kept empty.
// A non-zero until clips the last window.
func BucketByWeek(records []domain.WorkoutRecord, loc *time.Location, weekStart time.Weekday, until time.Time) WeekBuckets {
	var out WeekBuckets
	dated, skipped := datedRecords(records, loc)
	out.Skipped = skipped
	if len(dated) == 0 {
		return out
	}

	first := StartOfWeek(dated[0].at, loc, weekStart)
	last := StartOfWeek(dated[len(dated)-1].at, loc, weekStart)
	index := make(map[string]int)
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		bucket := WeekBucket{Start: w, End: w.AddDate(0, 0, 7)}
		if !until.IsZero() && until.After(w) && until.Before(bucket.End) {
			bucket.End = until
			bucket.Partial = true
		}
		index[bucket.Key()] = len(out.Weeks)
		out.Weeks = append(out.Weeks, bucket)
	}
	for _, d := range dated {
		i := index[StartOfWeek(d.at, loc, weekStart).Format(DayKeyLayout)]
		out.Weeks[i].Records = append(out.Weeks[i].Records, d.record)
	}
	return out
}

type datedRecord struct {
	record domain.WorkoutRecord
	at     time.Time
	key    string
}

// datedRecords normalizes timestamps and orders records chronologically.
func datedRecords(records []domain.WorkoutRecord, loc *time.Location) ([]datedRecord, int) {
	out := make([]datedRecord, 0, len(records))
	skipped := 0
	for _, r := range records {
		at, err := CompletionInstant(r, loc)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, datedRecord{record: r, at: at, key: DayKey(at, loc)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].at.Equal(out[j].at) {
			return out[i].at.Before(out[j].at)
		}
		return out[i].record.ID.Hex() < out[j].record.ID.Hex()
	})
	return out, skipped
}

// completedInPeriod keeps completed records whose completion falls inside period.
// Malformed timestamps are counted, in-progress records silently dropped.
func completedInPeriod(records []domain.WorkoutRecord, period PeriodRange, loc *time.Location) ([]datedRecord, int) {
	completed := make([]domain.WorkoutRecord, 0, len(records))
	for _, r := range records {
		if r.CompletedAt != nil {
			completed = append(completed, r)
		}
	}
	dated, skipped := datedRecords(completed, loc)
	in := dated[:0]
	for _, d := range dated {
		if period.Contains(d.at) {
			in = append(in, d)
		}
	}
	return in, skipped
}

func recordsOf(dated []datedRecord) []domain.WorkoutRecord {
	out := make([]domain.WorkoutRecord, len(dated))
	for i, d := range dated {
		out[i] = d.record
	}
	return out
}
