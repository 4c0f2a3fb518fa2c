package usecase

import (
	"testing"
	"time"

	"SentimentDash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketizeDays(t *testing.T) {
	bs := Bucketize(models.TimeRange{Start: date(2024, 1, 1), End: date(2024, 1, 10)}, models.IntervalDay)
	require.Len(t, bs, 10)
	assert.Equal(t, date(2024, 1, 1), bs[0].Start)
	assert.Equal(t, date(2024, 1, 10), bs[9].Start)
	for _, b := range bs {
		assert.Equal(t, b.Start, b.End, "a day bucket spans exactly its own date")
	}
}

func TestBucketizeWeeks(t *testing.T) {
	bs := Bucketize(models.TimeRange{Start: date(2024, 1, 1), End: date(2024, 2, 15)}, models.IntervalWeek)
	require.Len(t, bs, 7)
	assert.Equal(t, date(2024, 1, 1), bs[0].Start)
	assert.Equal(t, date(2024, 1, 7), bs[0].End)
	assert.Equal(t, date(2024, 2, 12), bs[6].Start)
	assert.Equal(t, date(2024, 2, 18), bs[6].End, "last bucket may extend past the requested end")
}

func TestBucketizeMonthsClampFromAnchor(t *testing.T) {
	bs := Bucketize(models.TimeRange{Start: date(2024, 1, 31), End: date(2024, 4, 30)}, models.IntervalMonth)
	require.Len(t, bs, 4)
	assert.Equal(t, date(2024, 1, 31), bs[0].Start)
	assert.Equal(t, date(2024, 2, 28), bs[0].End)
	assert.Equal(t, date(2024, 2, 29), bs[1].Start)
	assert.Equal(t, date(2024, 3, 31), bs[2].Start, "anchored addition does not drift to the 29th")
	assert.Equal(t, date(2024, 4, 30), bs[3].Start)
}

func TestBucketizeMonthsCommonYear(t *testing.T) {
	bs := Bucketize(models.TimeRange{Start: date(2023, 1, 31), End: date(2023, 2, 28)}, models.IntervalMonth)
	require.Len(t, bs, 2)
	assert.Equal(t, date(2023, 2, 28), bs[1].Start)
	assert.Equal(t, date(2023, 2, 27), bs[0].End)
}

func TestBucketizeProperties(t *testing.T) {
	cases := []struct {
		start, end time.Time
	}{
		{date(2024, 1, 1), date(2024, 1, 2)},
		{date(2024, 1, 1), date(2024, 12, 31)},
		{date(2023, 11, 15), date(2024, 3, 1)},
		{time.Date(2024, 2, 28, 13, 30, 0, 0, time.UTC), date(2024, 3, 2)},
		{date(2020, 1, 31), date(2021, 1, 31)},
	}
	for _, tc := range cases {
		for _, unit := range []models.Interval{models.IntervalDay, models.IntervalWeek, models.IntervalMonth} {
			r := models.TimeRange{Start: tc.start, End: tc.end}
			bs := Bucketize(r, unit)

			require.NotEmpty(t, bs)
			assert.Equal(t, r.Start, bs[0].Start)
			for i := 1; i < len(bs); i++ {
				assert.True(t, bs[i].Start.After(bs[i-1].Start), "ascending")
				assert.Equal(t, bs[i].Start.AddDate(0, 0, -1), bs[i-1].End, "contiguous")
			}
			last := bs[len(bs)-1]
			assert.False(t, last.Start.After(r.End))
			assert.True(t, advance(r.Start, unit, len(bs)).After(r.End), "next would-be start is past the end")
			assert.Equal(t, len(bs), BucketCount(r, unit))
		}
	}
}

func TestBucketizeDeterministic(t *testing.T) {
	r := models.TimeRange{Start: date(2024, 1, 1), End: date(2024, 6, 1)}
	assert.Equal(t, Bucketize(r, models.IntervalWeek), Bucketize(r, models.IntervalWeek))
}

func TestValidateRange(t *testing.T) {
	r, err := ValidateRange("2024-01-01", "2024-01-10T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), r.Start)
	assert.Equal(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), r.End)

	zoneless, err := ValidateRange("2024-01-01T09:00:00", "2024-01-01T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, zoneless.Start.Location())

	for _, tc := range [][2]string{
		{"2024-01-10", "2024-01-10"},
		{"2024-01-10", "2024-01-01"},
		{"nope", "2024-01-01"},
		{"2024-01-01", ""},
		{"2024-13-01", "2024-14-01"},
	} {
		_, err := ValidateRange(tc[0], tc[1])
		assert.ErrorIs(t, err, models.ErrInvalidRange, "%v", tc)
	}
}

func TestNewFeedRequestWidensSameDay(t *testing.T) {
	req := NewFeedRequest(100, date(2024, 1, 5), date(2024, 1, 5), "AAPL")
	assert.Equal(t, models.FeedRequest{Limit: 100, Start: "2024-01-05", End: "2024-01-06", Asset: "AAPL", Page: 1}, req)

	req = NewFeedRequest(100, date(2024, 1, 1), date(2024, 1, 7), "AAPL")
	assert.Equal(t, "2024-01-07", req.End)
}
