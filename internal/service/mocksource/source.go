package mocksource

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"

	"SentimentDash/internal/domain/models"
	xutil "SentimentDash/pkg/util"
)

var defaultAssets = []string{"AAPL", "MSFT", "NVDA", "TSLA", "SPY"}

// Source produces synthetic feed pages. The same request always yields the
// same records, so charts and tests are reproducible without the live feed.
type Source struct {
	perDay int
}

// New returns a Source emitting up to perDay records per calendar day.
func New(perDay int) *Source {
	if perDay <= 0 {
		perDay = 3
	}
	return &Source{perDay: perDay}
}

func (s *Source) FetchPredictions(ctx context.Context, req models.FeedRequest) ([]models.PredictionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed(req), 0x5eed))
	start, end := s.window(req)

	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}
	out := make([]models.PredictionRecord, 0, limit)
	for day := start; day.Before(end) && len(out) < limit; day = day.AddDate(0, 0, 1) {
		n := 1 + rng.IntN(s.perDay)
		for j := 0; j < n && len(out) < limit; j++ {
			asset := req.Asset
			if asset == "" {
				asset = defaultAssets[rng.IntN(len(defaultAssets))]
			}
			out = append(out, record(rng, asset, day, len(out)))
		}
	}
	return out, nil
}

// window resolves the request dates, defaulting to the week before a fixed
// reference day when they are absent.
func (s *Source) window(req models.FeedRequest) (time.Time, time.Time) {
	ref := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	start := xutil.ParseTimeDefault(req.Start, ref.AddDate(0, 0, -7))
	end := xutil.ParseTimeDefault(req.End, time.Time{})
	if !end.After(start) {
		end = start.AddDate(0, 0, 7)
	}
	return start, end
}

func record(rng *rand.Rand, asset string, day time.Time, idx int) models.PredictionRecord {
	long := rng.IntN(40)
	short := rng.IntN(40)
	dir := "short"
	if rng.IntN(2) == 0 {
		dir = "long"
	}
	base := 50 + float64(assetHash(asset)%900)
	price := base * (0.9 + 0.2*rng.Float64())

	date := xutil.FormatDate(day)
	return models.PredictionRecord{
		PredictionID:               fmt.Sprintf("mock-%s-%s-%d", asset, date, idx),
		UserID:                     fmt.Sprintf("user-%d", rng.IntN(50)),
		Asset:                      asset,
		Direction:                  dir,
		Price:                      float64(int(price*100)) / 100,
		DataDate:                   date,
		PredictionDate:             date,
		AssetTotalPredictions:      long + short,
		AssetLongPredictionsTotal:  long,
		AssetShortPredictionsTotal: short,
		AssetConfidenceScore:       rng.Float64(),
		AssetMomentum:              rng.Float64()*2 - 1,
	}
}

func seed(req models.FeedRequest) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%d|%d", req.Asset, req.Start, req.End, req.Limit, req.Page)
	return h.Sum64()
}

func assetHash(asset string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(asset))
	return h.Sum64()
}
