package analytics

import "errors"

// --- Error Definitions ---
var (
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrInvalidGranularity = errors.New("invalid granularity")
	ErrInvalidWeekStart   = errors.New("invalid week start")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrInvalidSet         = errors.New("invalid set entry")
)
