package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"SentimentDash/internal/domain/models"
	domrepo "SentimentDash/internal/domain/repository"
	xlogger "SentimentDash/pkg/logger"
	xutil "SentimentDash/pkg/util"

	"github.com/google/uuid"
)

type PredictionsConfig struct {
	IndividualLimit int
	MaxBuckets      int
}

// PredictionService is the entry point for the dashboard views. Every method
// validates its time range before touching the source.
type PredictionService struct {
	source    domrepo.PredictionSource
	agg       *Aggregator
	icons     *IconResolver
	names     domrepo.CompanyDirectory
	publisher domrepo.SeriesPublisher
	metrics   domrepo.Metrics
	logger    *xlogger.Logger
	cfg       PredictionsConfig
	now       func() time.Time
}

// NewPredictionService wires the views. names may be nil, in which case a
// missing company name falls back to the ticker.
func NewPredictionService(source domrepo.PredictionSource, agg *Aggregator, icons *IconResolver, names domrepo.CompanyDirectory, publisher domrepo.SeriesPublisher, metrics domrepo.Metrics, logger *xlogger.Logger, cfg PredictionsConfig) *PredictionService {
	if cfg.IndividualLimit <= 0 {
		cfg.IndividualLimit = 100
	}
	if metrics == nil {
		metrics = domrepo.NopMetrics{}
	}
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &PredictionService{
		source:    source,
		agg:       agg,
		icons:     icons,
		names:     names,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// GetAssetPredictions buckets [startISO, endISO] by interval and returns one
// summary per bucket in chronological order.
func (s *PredictionService) GetAssetPredictions(ctx context.Context, symbol, companyName, startISO, endISO, interval string) ([]models.BucketSummary, error) {
	r, err := ValidateRange(startISO, endISO)
	if err != nil {
		return nil, err
	}
	iv, err := models.ParseInterval(interval)
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxBuckets > 0 && BucketCount(r, iv) > s.cfg.MaxBuckets {
		return nil, fmt.Errorf("%w: limit is %d", models.ErrRangeTooLarge, s.cfg.MaxBuckets)
	}

	companyName = s.companyName(symbol, companyName)
	began := time.Now()
	buckets := Bucketize(r, iv)
	out, err := s.agg.Aggregate(ctx, buckets, symbol, companyName)
	s.metrics.RecordAggregation(string(iv), len(buckets), time.Since(began).Seconds(), err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &models.SeriesEvent{
		ID:          uuid.NewString(),
		Symbol:      symbol,
		CompanyName: companyName,
		Interval:    iv,
		Start:       r.Start,
		End:         r.End,
		Summaries:   out,
		ComputedAt:  time.Now().UTC(),
	})
	return out, nil
}

// GetIndividualPredictions fetches a single page for the symbol and range and
// maps it for the per-user chart. The interval is validated but not used for
// bucketing.
func (s *PredictionService) GetIndividualPredictions(ctx context.Context, symbol, companyName, startISO, endISO, interval, username string) ([]models.IndividualPrediction, error) {
	r, err := ValidateRange(startISO, endISO)
	if err != nil {
		return nil, err
	}
	if _, err := models.ParseInterval(interval); err != nil {
		return nil, err
	}

	recs, err := s.source.FetchPredictions(ctx, NewFeedRequest(s.cfg.IndividualLimit, r.Start, r.End, symbol))
	if err != nil {
		return nil, err
	}

	companyName = s.companyName(symbol, companyName)
	icon := s.icons.CompanyIcon(companyName)
	avatar, _ := models.LookupKnownUser(username).AvatarURL()
	out := make([]models.IndividualPrediction, 0, len(recs))
	for _, rec := range recs {
		sym := rec.Asset
		if sym == "" {
			sym = symbol
		}
		out = append(out, models.IndividualPrediction{
			IconURL:            icon,
			Symbol:             sym,
			CompanyName:        companyName,
			Username:           username,
			Timestamp:          rec.DataDate,
			ActualPrice:        rec.Price,
			PredictedDirection: models.NormalizeDirection(rec.Direction),
			UserIconURL:        avatar,
		})
	}
	return out, nil
}

// ListPredictions returns the latest feed page with each asset's logo. The
// request carries no range or asset.
func (s *PredictionService) ListPredictions(ctx context.Context, limit int) ([]models.PredictionListItem, error) {
	recs, err := s.source.FetchPredictions(ctx, models.FeedRequest{Limit: limit, Page: 1})
	if err != nil {
		return nil, err
	}
	out := make([]models.PredictionListItem, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.PredictionListItem{
			PredictionRecord: rec,
			IconURL:          s.icons.CompanyIcon(s.companyName(rec.Asset, "")),
		})
	}
	return out, nil
}

// SentimentContext counts feed records for the agent's context tool.
func (s *PredictionService) SentimentContext(ctx context.Context, req *models.SentimentContextRequest) (*models.SentimentContext, error) {
	r, err := ValidateRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if _, err := models.ParseInterval(req.Interval); err != nil {
		return nil, err
	}

	recs, err := s.source.FetchPredictions(ctx, NewFeedRequest(req.Limit, r.Start, r.End, req.Symbol))
	if err != nil {
		return nil, err
	}

	res := &models.SentimentContext{
		AggregateType: req.AggregateType,
		Symbol:        req.Symbol,
		Direction:     req.Direction,
	}
	var want models.Direction
	if req.Direction != "" {
		want = models.NormalizeDirection(req.Direction)
	}
	for _, rec := range recs {
		if want != "" && models.NormalizeDirection(rec.Direction) != want {
			continue
		}
		if req.AggregateType == "symbolSpecificPredictions" && !strings.EqualFold(rec.Asset, req.Symbol) {
			continue
		}
		res.Total++
		if rec.IsBullish() {
			res.Bullish++
		} else {
			res.Bearish++
		}
		if req.AggregateType == "totalPredictions" {
			if res.BySymbol == nil {
				res.BySymbol = make(map[string]int)
			}
			res.BySymbol[rec.Asset]++
		}
	}
	return res, nil
}

// Company resolves a ticker through the directory. Unknown tickers keep the
// ticker and report UnknownCompany as the name.
func (s *PredictionService) Company(ticker string) models.Company {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if s.names != nil {
		if name, ok := s.names.Lookup(ticker); ok {
			return models.Company{Ticker: ticker, CompanyName: name, Known: true}
		}
	}
	return models.Company{Ticker: ticker, CompanyName: models.UnknownCompany}
}

// PriceHistory returns one price per day for ticker, taken from the last feed
// record of that day. An empty range means the month up to today.
func (s *PredictionService) PriceHistory(ctx context.Context, ticker, startISO, endISO string) ([]models.PricePoint, error) {
	if startISO == "" && endISO == "" {
		end := s.now().UTC().Truncate(24 * time.Hour)
		startISO = xutil.FormatDate(xutil.AddMonthsClamped(end, -1))
		endISO = xutil.FormatDate(end)
	}
	r, err := ValidateRange(startISO, endISO)
	if err != nil {
		return nil, err
	}

	recs, err := s.source.FetchPredictions(ctx, NewFeedRequest(s.cfg.IndividualLimit, r.Start, r.End, ticker))
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]float64, len(recs))
	for _, rec := range recs {
		if rec.Price <= 0 || (rec.Asset != "" && !strings.EqualFold(rec.Asset, ticker)) {
			continue
		}
		day, ok := xutil.ParseTime(rec.DataDate)
		if !ok {
			continue
		}
		byDay[xutil.FormatDate(day)] = rec.Price
	}

	out := make([]models.PricePoint, 0, len(byDay))
	for d, p := range byDay {
		out = append(out, models.PricePoint{Date: d, Price: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// companyName prefers the caller's name, then the directory, then the ticker.
func (s *PredictionService) companyName(symbol, given string) string {
	if given = strings.TrimSpace(given); given != "" {
		return given
	}
	if s.names != nil {
		if name, ok := s.names.Lookup(symbol); ok {
			return name
		}
	}
	return symbol
}

func (s *PredictionService) publish(ctx context.Context, ev *models.SeriesEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSeries(ctx, ev); err != nil {
		s.logger.Warn("publish series event failed",
			xlogger.String("symbol", ev.Symbol),
			xlogger.Error(err),
		)
	}
}
