package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"alcyxob/workout-analytics/internal/domain"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayKeyLayout is the format of every day key produced by the bucketer.
const DayKeyLayout = "2006-01-02"

// DayKey formats t as the local calendar date in loc.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD key as local midnight in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DayKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, key)
	}
	return t, nil
}

// NormalizeTimestamp converts any stored timestamp representation into an instant in loc.
func NormalizeTimestamp(raw interface{}, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	switch v := raw.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("%w: missing value", ErrMalformedTimestamp)
	case domain.Timestamp:
		return NormalizeTimestamp(v.Raw(), loc)
	case *domain.Timestamp:
		if v == nil {
			return time.Time{}, fmt.Errorf("%w: missing value", ErrMalformedTimestamp)
		}
		return NormalizeTimestamp(v.Raw(), loc)
	case time.Time:
		if v.IsZero() {
			return time.Time{}, fmt.Errorf("%w: zero time", ErrMalformedTimestamp)
		}
		return v.In(loc), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("%w: missing value", ErrMalformedTimestamp)
		}
		return NormalizeTimestamp(*v, loc)
	case primitive.DateTime:
		// Same rule as epoch seconds: the epoch itself or earlier is a placeholder.
		if v <= 0 {
			return time.Time{}, fmt.Errorf("%w: bson date %d", ErrMalformedTimestamp, int64(v))
		}
		return v.Time().In(loc), nil
	case primitive.Timestamp:
		return fromEpochSeconds(float64(v.T), 0, loc)
	case primitive.D:
		m := make(map[string]interface{}, len(v))
		for _, e := range v {
			m[e.Key] = e.Value
		}
		return fromSecondsObject(m, loc)
	case primitive.M:
		return fromSecondsObject(v, loc)
	case map[string]interface{}:
		return fromSecondsObject(v, loc)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, fmt.Errorf("%w: empty string", ErrMalformedTimestamp)
		}
		t, err := cast.ToTimeInDefaultLocationE(s, loc)
		if err != nil || t.IsZero() {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
		}
		return t.In(loc), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, v.String())
		}
		return fromEpochSeconds(f, 0, loc)
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedTimestamp, v)
		}
		return fromEpochSeconds(f, 0, loc)
	}
	return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrMalformedTimestamp, raw)
}

// fromSecondsObject handles {seconds, nanoseconds} and {_seconds, _nanoseconds} documents.
func fromSecondsObject(m map[string]interface{}, loc *time.Location) (time.Time, error) {
	secRaw, ok := m["seconds"]
	if !ok {
		secRaw, ok = m["_seconds"]
	}
	if !ok {
		return time.Time{}, fmt.Errorf("%w: object without seconds", ErrMalformedTimestamp)
	}
	sec, err := cast.ToFloat64E(secRaw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: seconds %v", ErrMalformedTimestamp, secRaw)
	}
	var nanos int64
	if nsRaw, ok := m["nanoseconds"]; ok {
		nanos, err = cast.ToInt64E(nsRaw)
	} else if nsRaw, ok := m["_nanoseconds"]; ok {
		nanos, err = cast.ToInt64E(nsRaw)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: nanoseconds", ErrMalformedTimestamp)
	}
	return fromEpochSeconds(sec, nanos, loc)
}

func fromEpochSeconds(sec float64, nanos int64, loc *time.Location) (time.Time, error) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec <= 0 {
		return time.Time{}, fmt.Errorf("%w: epoch %v", ErrMalformedTimestamp, sec)
	}
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)+nanos).In(loc), nil
}

// CompletionInstant returns the instant a record is bucketed by: its completion
// time, or its start time while still in progress.
func CompletionInstant(r domain.WorkoutRecord, loc *time.Location) (time.Time, error) {
	if r.CompletedAt != nil {
		return NormalizeTimestamp(*r.CompletedAt, loc)
	}
	return NormalizeTimestamp(r.StartedAt, loc)
}
