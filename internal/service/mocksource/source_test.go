package mocksource

import (
	"context"
	"testing"

	"SentimentDash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPredictionsDeterministic(t *testing.T) {
	s := New(4)
	req := models.FeedRequest{Limit: 100, Start: "2024-01-01", End: "2024-01-08", Asset: "AAPL", Page: 1}

	a, err := s.FetchPredictions(context.Background(), req)
	require.NoError(t, err)
	b, err := s.FetchPredictions(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)

	for _, r := range a {
		assert.Equal(t, "AAPL", r.Asset)
		assert.Equal(t, r.AssetLongPredictionsTotal+r.AssetShortPredictionsTotal, r.AssetTotalPredictions)
		assert.Contains(t, []string{"long", "short"}, r.Direction)
		assert.GreaterOrEqual(t, r.DataDate, "2024-01-01")
		assert.Less(t, r.DataDate, "2024-01-08")
	}
}

func TestFetchPredictionsPerDayBounds(t *testing.T) {
	s := New(2)
	recs, err := s.FetchPredictions(context.Background(), models.FeedRequest{Limit: 1000, Start: "2024-03-01", End: "2024-03-11", Asset: "MSFT"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(recs), 10)
	assert.LessOrEqual(t, len(recs), 20)
}

func TestFetchPredictionsRespectsLimit(t *testing.T) {
	recs, err := New(5).FetchPredictions(context.Background(), models.FeedRequest{Limit: 3, Start: "2024-01-01", End: "2024-02-01", Asset: "NVDA"})
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestFetchPredictionsWithoutAsset(t *testing.T) {
	recs, err := New(3).FetchPredictions(context.Background(), models.FeedRequest{Limit: 10, Page: 1})
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.Contains(t, defaultAssets, r.Asset)
	}
}

func TestFetchPredictionsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(3).FetchPredictions(ctx, models.FeedRequest{Asset: "AAPL"})
	assert.ErrorIs(t, err, context.Canceled)
}
