package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"SentimentDash/internal/domain/models"
	domrepo "SentimentDash/internal/domain/repository"
	xlogger "SentimentDash/pkg/logger"
	xutil "SentimentDash/pkg/util"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "SentimentDash/usecase"

type AggregatorConfig struct {
	PageSize       int
	FetchTimeout   time.Duration
	MaxConcurrency int
}

// Aggregator fetches one feed page per bucket concurrently and reduces each
// page to a BucketSummary.
type Aggregator struct {
	source  domrepo.PredictionSource
	icons   *IconResolver
	metrics domrepo.Metrics
	logger  *xlogger.Logger
	tracer  trace.Tracer
	cfg     AggregatorConfig
}

func NewAggregator(source domrepo.PredictionSource, icons *IconResolver, metrics domrepo.Metrics, logger *xlogger.Logger, cfg AggregatorConfig) *Aggregator {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if metrics == nil {
		metrics = domrepo.NopMetrics{}
	}
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &Aggregator{
		source:  source,
		icons:   icons,
		metrics: metrics,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
		cfg:     cfg,
	}
}

// Aggregate returns one summary per bucket sorted by bucket start. If any
// bucket fetch fails the remaining fetches are cancelled and the first error
// is returned with a nil slice.
func (a *Aggregator) Aggregate(ctx context.Context, buckets []models.Bucket, symbol, companyName string) ([]models.BucketSummary, error) {
	ctx, span := a.tracer.Start(ctx, "Aggregator.Aggregate", trace.WithAttributes(
		attribute.String("symbol", symbol),
		attribute.Int("buckets", len(buckets)),
	))
	defer span.End()

	icon := a.icons.CompanyIcon(companyName)
	out := make([]models.BucketSummary, len(buckets))

	g, gctx := errgroup.WithContext(ctx)
	if a.cfg.MaxConcurrency > 0 {
		g.SetLimit(a.cfg.MaxConcurrency)
	}
	for i, b := range buckets {
		g.Go(func() error {
			recs, err := a.fetchBucket(gctx, b, symbol)
			if err != nil {
				return fmt.Errorf("bucket %s: %w", xutil.FormatDate(b.Start), err)
			}
			s := Reduce(recs)
			s.IconURL = icon
			s.Timestamp = b.Start
			if s.Count != s.CountPositive+s.CountNegative {
				a.logger.Debug("bucket totals disagree with long/short sums",
					xlogger.String("symbol", symbol),
					xlogger.String("bucket", xutil.FormatDate(b.Start)),
					xlogger.Int("count", s.Count),
					xlogger.Int("long", s.CountPositive),
					xlogger.Int("short", s.CountNegative),
				)
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregate failed")
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (a *Aggregator) fetchBucket(ctx context.Context, b models.Bucket, symbol string) ([]models.PredictionRecord, error) {
	if a.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.FetchTimeout)
		defer cancel()
	}
	req := NewFeedRequest(a.cfg.PageSize, b.Start, b.End, symbol)

	ctx, span := a.tracer.Start(ctx, "Aggregator.fetchBucket", trace.WithAttributes(
		attribute.String("start", req.Start),
		attribute.String("end", req.End),
	))
	defer span.End()

	recs, err := a.source.FetchPredictions(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("records", len(recs)))
	return recs, nil
}

// Reduce sums the feed's per-record totals. Each count is summed on its own
// field and the price of the last record wins.
func Reduce(recs []models.PredictionRecord) models.BucketSummary {
	var s models.BucketSummary
	for _, r := range recs {
		s.Count += r.AssetTotalPredictions
		s.CountPositive += r.AssetLongPredictionsTotal
		s.CountNegative += r.AssetShortPredictionsTotal
		s.ActualPrice = r.Price
	}
	return s
}
