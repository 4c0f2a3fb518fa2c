package repository

import (
	"context"
	"errors"
	"time"

	"SentimentDash/internal/domain/models"
	"SentimentDash/internal/domain/repository"
	"SentimentDash/pkg/cache"
	xlogger "SentimentDash/pkg/logger"

	"golang.org/x/sync/singleflight"
)

const feedKeyPrefix = "feed"

// CachedSource decorates a PredictionSource with a response cache and
// collapses concurrent identical requests into one upstream call.
type CachedSource struct {
	next    repository.PredictionSource
	cache   cache.Service
	ttl     time.Duration
	group   singleflight.Group
	metrics repository.Metrics
	logger  *xlogger.Logger
}

func NewCachedSource(next repository.PredictionSource, c cache.Service, ttl time.Duration, metrics repository.Metrics, logger *xlogger.Logger) *CachedSource {
	if metrics == nil {
		metrics = repository.NopMetrics{}
	}
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &CachedSource{next: next, cache: c, ttl: ttl, metrics: metrics, logger: logger}
}

func (s *CachedSource) FetchPredictions(ctx context.Context, req models.FeedRequest) ([]models.PredictionRecord, error) {
	key := feedKey(req)

	if s.cache != nil {
		var recs []models.PredictionRecord
		err := s.cache.Get(ctx, key, &recs)
		if err == nil {
			s.metrics.RecordCache(true)
			return recs, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("feed cache read failed", xlogger.String("key", key), xlogger.Error(err))
		}
		s.metrics.RecordCache(false)
	}

	ch := s.group.DoChan(key, func() (interface{}, error) {
		// detached so one caller's cancellation does not fail the others sharing this call
		fctx := context.WithoutCancel(ctx)
		if dl, ok := ctx.Deadline(); ok {
			var cancel context.CancelFunc
			fctx, cancel = context.WithDeadline(fctx, dl)
			defer cancel()
		}
		recs, err := s.next.FetchPredictions(fctx, req)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(fctx, key, recs, s.ttl); err != nil {
				s.logger.Warn("feed cache write failed", xlogger.String("key", key), xlogger.Error(err))
			}
		}
		return recs, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		recs := res.Val.([]models.PredictionRecord)
		out := make([]models.PredictionRecord, len(recs))
		copy(out, recs)
		return out, nil
	}
}

func feedKey(req models.FeedRequest) string {
	return cache.GenerateKeyWithParams(feedKeyPrefix, req.Asset, req.Start, req.End, req.Limit, req.Page)
}
