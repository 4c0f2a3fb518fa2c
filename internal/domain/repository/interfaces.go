package repository

import (
	"context"
	"encoding/json"

	"SentimentDash/internal/domain/models"
)

// PredictionSource fetches one page of prediction records.
type PredictionSource interface {
	FetchPredictions(ctx context.Context, req models.FeedRequest) ([]models.PredictionRecord, error)
}

// FeedRelay forwards a feed request and returns the records untouched.
type FeedRelay interface {
	Relay(ctx context.Context, req models.FeedRequest) ([]json.RawMessage, error)
}

// SeriesPublisher emits computed series for downstream consumers.
type SeriesPublisher interface {
	PublishSeries(ctx context.Context, ev *models.SeriesEvent) error
	Close() error
}

type Metrics interface {
	RecordFetch(source string, seconds float64, err error)
	RecordAggregation(interval string, buckets int, seconds float64, err error)
	RecordCache(hit bool)
	RecordUpstreamStatus(status int)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) RecordFetch(string, float64, error)            {}
func (NopMetrics) RecordAggregation(string, int, float64, error) {}
func (NopMetrics) RecordCache(bool)                              {}
func (NopMetrics) RecordUpstreamStatus(int)                      {}

// CompanyDirectory maps tickers to the company names used for logos.
type CompanyDirectory interface {
	Lookup(ticker string) (string, bool)
}
