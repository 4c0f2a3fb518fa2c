package di

import (
	"fmt"
	"time"

	"SentimentDash/internal/domain/repository"
	"SentimentDash/internal/handler/api"
	internalrepo "SentimentDash/internal/repository"
	"SentimentDash/internal/service/company"
	"SentimentDash/internal/service/components"
	"SentimentDash/internal/service/gateway"
	"SentimentDash/internal/service/mocksource"
	"SentimentDash/internal/service/playfair"
	"SentimentDash/internal/service/ratelimit"
	"SentimentDash/internal/usecase"
	"SentimentDash/pkg/cache"
	"SentimentDash/pkg/config"
	xhttp "SentimentDash/pkg/http"
	pkgkafka "SentimentDash/pkg/kafka"
	xlogger "SentimentDash/pkg/logger"
	"SentimentDash/pkg/metrics"
	"SentimentDash/pkg/server"
)

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideLogger creates the application logger. With Kafka enabled, error
// entries are aggregated and shipped to the log topic.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*xlogger.Logger, func(), error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	if producer == nil {
		return l, func() {}, nil
	}
	l.AddCollector(&xlogger.CollectionConfig{
		TimeInterval:   cfg.Log.CollectInterval,
		CountThreshold: cfg.Log.CollectMaxEntries,
		Topic:          cfg.Kafka.LogTopic,
		Publisher:      producer,
	})
	return l, l.RemoveCollector, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache builds the feed cache: memory only, or memory in front of Redis.
// Returns nil when caching is disabled.
func ProvideCache(cfg *config.Config) (cache.Service, func(), error) {
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}
	if !cfg.Cache.Redis.Enabled {
		mc := cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemorySize))
		return mc, func() { _ = mc.Close() }, nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	lc := cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(cfg.Cache.MemorySize),
		cache.WithLayeredMemoryTTL(cfg.Cache.TTL/2),
	)
	return lc, func() { _ = lc.Close() }, nil
}

// ProvidePlayfairClient creates the direct feed client used by the proxy route
// and by the upstream source kind.
func ProvidePlayfairClient(cfg *config.Config, m repository.Metrics, l *xlogger.Logger) *playfair.Client {
	if cfg.Playfair.APIKey == "" {
		l.Warn("prediction api key is not set; /api/proxy will answer 500")
	}
	return playfair.New(cfg.Playfair.URL, cfg.Playfair.APIKey,
		xhttp.NewClient(xhttp.WithTimeout(cfg.Playfair.Timeout)), m, l)
}

// ProvideFeedRelay exposes the feed client as the proxy's relay.
func ProvideFeedRelay(c *playfair.Client) repository.FeedRelay {
	return c
}

// ProvidePredictionSource selects the data source by source.kind and wraps it
// with the response cache.
func ProvidePredictionSource(cfg *config.Config, pf *playfair.Client, c cache.Service, m repository.Metrics, l *xlogger.Logger) (repository.PredictionSource, error) {
	var src repository.PredictionSource
	switch cfg.Source.Kind {
	case config.SourceUpstream:
		src = pf
	case config.SourceGateway:
		src = gateway.New(cfg.Gateway.URL, xhttp.NewClient(xhttp.WithTimeout(cfg.Gateway.Timeout)), m)
	case config.SourceMock:
		// synthetic data is cheap and stable; no cache in front of it
		l.Info("prediction source: mock")
		return mocksource.New(0), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
	l.Info("prediction source", xlogger.String("kind", cfg.Source.Kind))
	if c == nil {
		return src, nil
	}
	return internalrepo.NewCachedSource(src, c, cfg.Cache.TTL, m, l), nil
}

// ProvideSeriesPublisher publishes computed series to Kafka, or nil when
// Kafka is disabled.
func ProvideSeriesPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SeriesPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.SeriesTopic)
}

// ProvideCompanyDirectory builds the ticker to company-name table from the
// built-in names and the companies section of the config.
func ProvideCompanyDirectory(cfg *config.Config, l *xlogger.Logger) repository.CompanyDirectory {
	d := company.New(cfg.Companies)
	l.Debug("company directory loaded", xlogger.Int("tickers", d.Len()))
	return d
}

// ProvideIconResolver builds logo URLs from config.
func ProvideIconResolver(cfg *config.Config) *usecase.IconResolver {
	return usecase.NewIconResolver(cfg.Logo.BaseURL, cfg.Logo.Token)
}

// ProvideAggregator creates the bucket aggregation pipeline.
func ProvideAggregator(src repository.PredictionSource, icons *usecase.IconResolver, m repository.Metrics, l *xlogger.Logger, cfg *config.Config) *usecase.Aggregator {
	return usecase.NewAggregator(src, icons, m, l, usecase.AggregatorConfig{
		PageSize:       cfg.Aggregation.PageSize,
		FetchTimeout:   cfg.Aggregation.FetchTimeout,
		MaxConcurrency: cfg.Aggregation.MaxConcurrency,
	})
}

// ProvidePredictionService creates the prediction use cases.
func ProvidePredictionService(
	src repository.PredictionSource,
	agg *usecase.Aggregator,
	icons *usecase.IconResolver,
	names repository.CompanyDirectory,
	pub repository.SeriesPublisher,
	m repository.Metrics,
	l *xlogger.Logger,
	cfg *config.Config,
) *usecase.PredictionService {
	return usecase.NewPredictionService(src, agg, icons, names, pub, m, l, usecase.PredictionsConfig{
		IndividualLimit: cfg.Predictions.IndividualLimit,
		MaxBuckets:      cfg.Aggregation.MaxBuckets,
	})
}

// ProvideRateLimiter limits /api/proxy per client IP.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if cfg.RateLimit.ProxyRPS <= 0 {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.ProxyRPS, cfg.RateLimit.ProxyBurst, 10*time.Minute)
}

// ProvideCatalog returns the component catalog.
func ProvideCatalog() components.Catalog {
	return components.Default()
}

// ProvideHTTPServer creates the Echo server with all routes.
func ProvideHTTPServer(cfg *config.Config, router *api.Router, l *xlogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(router,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(true, cfg.Server.CORSOrigins...),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *xlogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, l, srv)
}
