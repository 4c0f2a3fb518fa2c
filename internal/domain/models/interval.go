package models

import (
	"fmt"
	"time"
)

// Interval is the bucketing granularity.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// IsValidInterval returns true if iv is a supported interval.
func IsValidInterval(iv Interval) bool {
	switch iv {
	case IntervalDay, IntervalWeek, IntervalMonth:
		return true
	default:
		return false
	}
}

// ParseInterval converts a raw string to an Interval, rejecting anything else.
func ParseInterval(s string) (Interval, error) {
	iv := Interval(s)
	if !IsValidInterval(iv) {
		return "", fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	return iv, nil
}

// TimeRange is a validated [Start, End] window with Start strictly before End.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Bucket is one contiguous slice of a TimeRange.
// End is the calendar day before the next bucket's start.
type Bucket struct {
	Start time.Time
	End   time.Time
}
