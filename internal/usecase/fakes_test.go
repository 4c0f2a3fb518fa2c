package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"SentimentDash/internal/domain/models"
)

// fakeSource answers by request start date and records every call.
type fakeSource struct {
	mu       sync.Mutex
	pages    map[string][]models.PredictionRecord
	errs     map[string]error
	delays   map[string]time.Duration
	calls    []models.FeedRequest
	count    atomic.Int32
	inflight atomic.Int32
	peak     atomic.Int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages:  map[string][]models.PredictionRecord{},
		errs:   map[string]error{},
		delays: map[string]time.Duration{},
	}
}

func (f *fakeSource) FetchPredictions(ctx context.Context, req models.FeedRequest) ([]models.PredictionRecord, error) {
	f.count.Add(1)
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, req)
	page, err, delay := f.pages[req.Start], f.errs[req.Start], f.delays[req.Start]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (f *fakeSource) requests() []models.FeedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.FeedRequest, len(f.calls))
	copy(out, f.calls)
	return out
}

type capturePublisher struct {
	mu     sync.Mutex
	events []*models.SeriesEvent
	err    error
}

func (p *capturePublisher) PublishSeries(_ context.Context, ev *models.SeriesEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *capturePublisher) Close() error { return nil }

func rec(total, long, short int, price float64) models.PredictionRecord {
	return models.PredictionRecord{
		AssetTotalPredictions:      total,
		AssetLongPredictionsTotal:  long,
		AssetShortPredictionsTotal: short,
		Price:                      price,
	}
}
