package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"SentimentDash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDirectory map[string]string

func (d staticDirectory) Lookup(ticker string) (string, bool) {
	name, ok := d[ticker]
	return name, ok
}

func newTestService(src *fakeSource, pub *capturePublisher, cfg PredictionsConfig) *PredictionService {
	icons := NewIconResolver("https://img.logo.dev/%s.com", "tok")
	agg := NewAggregator(src, icons, nil, nil, AggregatorConfig{})
	if pub == nil {
		return NewPredictionService(src, agg, icons, nil, nil, nil, nil, cfg)
	}
	return NewPredictionService(src, agg, icons, nil, pub, nil, nil, cfg)
}

func newDirectoryService(src *fakeSource, names staticDirectory) *PredictionService {
	icons := NewIconResolver("https://img.logo.dev/%s.com", "tok")
	agg := NewAggregator(src, icons, nil, nil, AggregatorConfig{})
	return NewPredictionService(src, agg, icons, names, nil, nil, nil, PredictionsConfig{})
}

func TestInvalidRangeFetchesNothing(t *testing.T) {
	src := newFakeSource()
	svc := newTestService(src, nil, PredictionsConfig{})
	ctx := context.Background()

	for _, tc := range [][2]string{
		{"2024-01-10", "2024-01-01"},
		{"2024-01-10", "2024-01-10"},
		{"garbage", "2024-01-10"},
	} {
		out, err := svc.GetAssetPredictions(ctx, "AAPL", "apple", tc[0], tc[1], "day")
		assert.Nil(t, out)
		assert.ErrorIs(t, err, models.ErrInvalidRange)

		ind, err := svc.GetIndividualPredictions(ctx, "AAPL", "apple", tc[0], tc[1], "day", "Jim Cramer")
		assert.Nil(t, ind)
		assert.ErrorIs(t, err, models.ErrInvalidRange)
	}
	assert.Equal(t, int32(0), src.count.Load())
}

func TestInvalidIntervalFetchesNothing(t *testing.T) {
	src := newFakeSource()
	svc := newTestService(src, nil, PredictionsConfig{})

	_, err := svc.GetAssetPredictions(context.Background(), "AAPL", "apple", "2024-01-01", "2024-01-10", "hour")
	assert.ErrorIs(t, err, models.ErrInvalidInterval)
	_, err = svc.GetIndividualPredictions(context.Background(), "AAPL", "apple", "2024-01-01", "2024-01-10", "year", "x")
	assert.ErrorIs(t, err, models.ErrInvalidInterval)
	assert.Equal(t, int32(0), src.count.Load())
}

func TestRangeTooLarge(t *testing.T) {
	src := newFakeSource()
	svc := newTestService(src, nil, PredictionsConfig{MaxBuckets: 5})

	_, err := svc.GetAssetPredictions(context.Background(), "AAPL", "apple", "2024-01-01", "2024-01-10", "day")
	assert.ErrorIs(t, err, models.ErrRangeTooLarge)
	assert.Equal(t, int32(0), src.count.Load())
}

func TestGetAssetPredictionsPublishesSeries(t *testing.T) {
	src := newFakeSource()
	src.pages["2024-01-01"] = []models.PredictionRecord{rec(2, 1, 1, 50)}
	pub := &capturePublisher{}
	svc := newTestService(src, pub, PredictionsConfig{})

	out, err := svc.GetAssetPredictions(context.Background(), "AAPL", "apple", "2024-01-01", "2024-01-10", "day")
	require.NoError(t, err)
	require.Len(t, out, 10)
	assert.Equal(t, int32(10), src.count.Load())

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, "AAPL", ev.Symbol)
	assert.Equal(t, models.IntervalDay, ev.Interval)
	assert.Equal(t, out, ev.Summaries)
	assert.NotEmpty(t, ev.ID)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	src := newFakeSource()
	pub := &capturePublisher{err: errors.New("kafka down")}
	svc := newTestService(src, pub, PredictionsConfig{})

	out, err := svc.GetAssetPredictions(context.Background(), "AAPL", "apple", "2024-01-01", "2024-01-03", "day")
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestGetIndividualPredictions(t *testing.T) {
	src := newFakeSource()
	src.pages["2024-01-01"] = []models.PredictionRecord{
		{Asset: "AAPL", Direction: "up", Price: 180, DataDate: "2024-01-02"},
		{Asset: "AAPL", Direction: "long", Price: 181, DataDate: "2024-01-03"},
		{Asset: "", Direction: "short", Price: 179, DataDate: "2024-01-04"},
		{Asset: "AAPL", Direction: "sideways", Price: 178, DataDate: "2024-01-05"},
	}
	svc := newTestService(src, nil, PredictionsConfig{IndividualLimit: 50})

	out, err := svc.GetIndividualPredictions(context.Background(), "AAPL", "apple", "2024-01-01", "2024-01-31", "week", "CATHIE WOOD")
	require.NoError(t, err)
	require.Len(t, out, 4)

	reqs := src.requests()
	require.Len(t, reqs, 1, "individual path does not bucket")
	assert.Equal(t, models.FeedRequest{Limit: 50, Start: "2024-01-01", End: "2024-01-31", Asset: "AAPL", Page: 1}, reqs[0])

	assert.Equal(t, models.DirectionUp, out[0].PredictedDirection)
	assert.Equal(t, models.DirectionUp, out[1].PredictedDirection)
	assert.Equal(t, models.DirectionDown, out[2].PredictedDirection)
	assert.Equal(t, models.DirectionDown, out[3].PredictedDirection)
	assert.Equal(t, "AAPL", out[2].Symbol)
	assert.Equal(t, "2024-01-02", out[0].Timestamp)
	assert.Equal(t, "CATHIE WOOD", out[0].Username)
	assert.Equal(t, "https://pbs.twimg.com/profile_images/1782845672829423617/xuyhQIY5_400x400.jpg", out[0].UserIconURL)
	assert.Equal(t, "https://img.logo.dev/apple.com?token=tok", out[0].IconURL)
}

func TestGetIndividualPredictionsUnknownUser(t *testing.T) {
	src := newFakeSource()
	src.pages["2024-01-01"] = []models.PredictionRecord{{Asset: "AAPL", Direction: "up"}}
	svc := newTestService(src, nil, PredictionsConfig{})

	out, err := svc.GetIndividualPredictions(context.Background(), "AAPL", "apple", "2024-01-01", "2024-01-31", "day", "Someone Else")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].UserIconURL)

	b, err := json.Marshal(out[0])
	require.NoError(t, err)
	assert.NotContains(t, string(b), "userIconUrl")
}

func TestGetIndividualPredictionsSourceError(t *testing.T) {
	src := newFakeSource()
	src.errs["2024-01-01"] = models.ErrMalformedResponse
	svc := newTestService(src, nil, PredictionsConfig{})

	out, err := svc.GetIndividualPredictions(context.Background(), "AAPL", "apple", "2024-01-01", "2024-01-31", "day", "x")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestListPredictions(t *testing.T) {
	src := newFakeSource()
	src.pages[""] = []models.PredictionRecord{{PredictionID: "p1", Asset: "TSLA"}, {PredictionID: "p2", Asset: "NVDA"}}
	svc := newTestService(src, nil, PredictionsConfig{})

	out, err := svc.ListPredictions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "https://img.logo.dev/TSLA.com?token=tok", out[0].IconURL)
	assert.Equal(t, "p2", out[1].PredictionID)
	assert.Equal(t, 10, src.requests()[0].Limit)
}

func TestSentimentContext(t *testing.T) {
	src := newFakeSource()
	src.pages["2024-01-01"] = []models.PredictionRecord{
		{Asset: "AAPL", Direction: "long"},
		{Asset: "AAPL", Direction: "short"},
		{Asset: "MSFT", Direction: "up"},
		{Asset: "aapl", Direction: "down"},
	}
	svc := newTestService(src, nil, PredictionsConfig{})
	ctx := context.Background()
	base := models.SentimentContextRequest{Start: "2024-01-01", End: "2024-01-31", Interval: "day", Limit: 100}

	req := base
	req.AggregateType = "totalPredictions"
	res, err := svc.SentimentContext(ctx, &req)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.Bullish)
	assert.Equal(t, 2, res.Bearish)
	assert.Equal(t, map[string]int{"AAPL": 2, "MSFT": 1, "aapl": 1}, res.BySymbol)

	req = base
	req.AggregateType = "bullishPredictions"
	req.Direction = "long"
	res, err = svc.SentimentContext(ctx, &req)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 0, res.Bearish)

	req = base
	req.AggregateType = "symbolSpecificPredictions"
	req.Symbol = "AAPL"
	res, err = svc.SentimentContext(ctx, &req)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
}

func TestSentimentContextInvalidRange(t *testing.T) {
	src := newFakeSource()
	svc := newTestService(src, nil, PredictionsConfig{})

	_, err := svc.SentimentContext(context.Background(), &models.SentimentContextRequest{
		AggregateType: "totalPredictions", Start: "2024-02-01", End: "2024-01-01", Interval: "day",
	})
	assert.ErrorIs(t, err, models.ErrInvalidRange)
	assert.Equal(t, int32(0), src.count.Load())
}

func TestListPredictionsSendsLatestRequest(t *testing.T) {
	src := newFakeSource()
	svc := newTestService(src, nil, PredictionsConfig{})

	_, err := svc.ListPredictions(context.Background(), 25)
	require.NoError(t, err)

	got := src.requests()[0]
	assert.Equal(t, models.FeedRequest{Limit: 25, Page: 1}, got)
	assert.True(t, got.IsLatest())

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":25,"page":1}`, string(b))
}

func TestCompanyNameFallsBackToDirectory(t *testing.T) {
	src := newFakeSource()
	src.pages["2024-01-01"] = []models.PredictionRecord{{Asset: "AAPL", Direction: "up"}}
	src.pages[""] = []models.PredictionRecord{{Asset: "AAPL"}, {Asset: "ZZZZ"}}
	svc := newDirectoryService(src, staticDirectory{"AAPL": "apple"})
	ctx := context.Background()

	grouped, err := svc.GetAssetPredictions(ctx, "AAPL", "", "2024-01-01", "2024-01-02", "day")
	require.NoError(t, err)
	assert.Equal(t, "https://img.logo.dev/apple.com?token=tok", grouped[0].IconURL)

	ind, err := svc.GetIndividualPredictions(ctx, "AAPL", " ", "2024-01-01", "2024-01-31", "day", "x")
	require.NoError(t, err)
	assert.Equal(t, "apple", ind[0].CompanyName)

	explicit, err := svc.GetIndividualPredictions(ctx, "AAPL", "Apple Computer", "2024-01-01", "2024-01-31", "day", "x")
	require.NoError(t, err)
	assert.Equal(t, "Apple Computer", explicit[0].CompanyName)

	list, err := svc.ListPredictions(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "https://img.logo.dev/apple.com?token=tok", list[0].IconURL)
	assert.Equal(t, "https://img.logo.dev/ZZZZ.com?token=tok", list[1].IconURL)
}

func TestCompany(t *testing.T) {
	svc := newDirectoryService(newFakeSource(), staticDirectory{"MSFT": "microsoft"})

	assert.Equal(t, models.Company{Ticker: "MSFT", CompanyName: "microsoft", Known: true}, svc.Company(" msft "))
	assert.Equal(t, models.Company{Ticker: "QQQQ", CompanyName: models.UnknownCompany}, svc.Company("qqqq"))

	bare := newTestService(newFakeSource(), nil, PredictionsConfig{})
	assert.Equal(t, models.UnknownCompany, bare.Company("MSFT").CompanyName)
}

func TestPriceHistory(t *testing.T) {
	src := newFakeSource()
	src.pages["2024-01-01"] = []models.PredictionRecord{
		{Asset: "AAPL", DataDate: "2024-01-03", Price: 186},
		{Asset: "AAPL", DataDate: "2024-01-02", Price: 184},
		{Asset: "AAPL", DataDate: "2024-01-03T15:00:00Z", Price: 187},
		{Asset: "AAPL", DataDate: "garbage", Price: 1},
		{Asset: "AAPL", DataDate: "2024-01-04", Price: 0},
		{Asset: "MSFT", DataDate: "2024-01-05", Price: 370},
	}
	svc := newTestService(src, nil, PredictionsConfig{IndividualLimit: 60})

	out, err := svc.PriceHistory(context.Background(), "AAPL", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, []models.PricePoint{
		{Date: "2024-01-02", Price: 184},
		{Date: "2024-01-03", Price: 187},
	}, out)
	assert.Equal(t, models.FeedRequest{Limit: 60, Start: "2024-01-01", End: "2024-01-31", Asset: "AAPL", Page: 1}, src.requests()[0])
}

func TestPriceHistoryDefaultsToLastMonth(t *testing.T) {
	src := newFakeSource()
	svc := newTestService(src, nil, PredictionsConfig{})
	svc.now = func() time.Time { return time.Date(2024, 3, 31, 14, 0, 0, 0, time.UTC) }

	out, err := svc.PriceHistory(context.Background(), "AAPL", "", "")
	require.NoError(t, err)
	assert.Empty(t, out)

	req := src.requests()[0]
	assert.Equal(t, "2024-02-29", req.Start)
	assert.Equal(t, "2024-03-31", req.End)
}

func TestPriceHistoryInvalidRange(t *testing.T) {
	src := newFakeSource()
	svc := newTestService(src, nil, PredictionsConfig{})

	_, err := svc.PriceHistory(context.Background(), "AAPL", "2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, models.ErrInvalidRange)
	assert.Equal(t, int32(0), src.count.Load())
}
