package usecase

import (
	"fmt"
	"time"

	"SentimentDash/internal/domain/models"
	xutil "SentimentDash/pkg/util"
)

// ValidateRange parses both endpoints as ISO-8601 and requires end > start.
func ValidateRange(startISO, endISO string) (models.TimeRange, error) {
	start, ok := xutil.ParseTime(startISO)
	if !ok {
		return models.TimeRange{}, fmt.Errorf("%w: start %q", models.ErrInvalidRange, startISO)
	}
	end, ok := xutil.ParseTime(endISO)
	if !ok {
		return models.TimeRange{}, fmt.Errorf("%w: end %q", models.ErrInvalidRange, endISO)
	}
	if !end.After(start) {
		return models.TimeRange{}, models.ErrInvalidRange
	}
	return models.TimeRange{Start: start, End: end}, nil
}

// Bucketize splits r into contiguous buckets of one unit each. Bucket i starts
// at r.Start plus i units, so month buckets never drift after a clamped day.
// The bucket containing r.End is included and may extend past it.
func Bucketize(r models.TimeRange, unit models.Interval) []models.Bucket {
	var out []models.Bucket
	for i := 0; ; i++ {
		start := advance(r.Start, unit, i)
		if i > 0 && start.After(r.End) {
			break
		}
		next := advance(r.Start, unit, i+1)
		out = append(out, models.Bucket{Start: start, End: next.AddDate(0, 0, -1)})
	}
	return out
}

// BucketCount returns len(Bucketize(r, unit)) without allocating the buckets
// for day and week units.
func BucketCount(r models.TimeRange, unit models.Interval) int {
	switch unit {
	case models.IntervalDay, models.IntervalWeek:
		step := 24 * time.Hour
		if unit == models.IntervalWeek {
			step *= 7
		}
		// calendar days can be 23h or 25h in zones with DST, so count exactly near the edge
		n := int(r.End.Sub(r.Start)/step) + 1
		for n > 1 && advance(r.Start, unit, n-1).After(r.End) {
			n--
		}
		for !advance(r.Start, unit, n).After(r.End) {
			n++
		}
		return n
	default:
		return len(Bucketize(r, unit))
	}
}

func advance(anchor time.Time, unit models.Interval, n int) time.Time {
	switch unit {
	case models.IntervalDay:
		return anchor.AddDate(0, 0, n)
	case models.IntervalWeek:
		return anchor.AddDate(0, 0, 7*n)
	default:
		return xutil.AddMonthsClamped(anchor, n)
	}
}

// NewFeedRequest scopes a feed page to [start, end] by calendar date. A range
// that collapses to a single date is widened by one day so the feed returns it.
func NewFeedRequest(limit int, start, end time.Time, asset string) models.FeedRequest {
	s, e := xutil.FormatDate(start), xutil.FormatDate(end)
	if s == e {
		e = xutil.FormatDate(end.AddDate(0, 0, 1))
	}
	return models.FeedRequest{Limit: limit, Start: s, End: e, Asset: asset, Page: 1}
}
