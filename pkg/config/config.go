package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Source kinds select where prediction records come from.
const (
	SourceUpstream = "upstream" // call the prediction API directly with the configured key
	SourceGateway  = "gateway"  // call a remote proxy gateway that owns the key
	SourceMock     = "mock"     // deterministic synthetic records
)

type Config struct {
	Environment string            `yaml:"environment" default:"development"`
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Source      SourceConfig      `yaml:"source"`
	Playfair    PlayfairConfig    `yaml:"playfair"`
	Gateway     GatewayConfig     `yaml:"gateway"`
	Logo        LogoConfig        `yaml:"logo"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Predictions PredictionsConfig `yaml:"predictions"`
	Cache       CacheConfig       `yaml:"cache"`
	Kafka       KafkaConfig       `yaml:"kafka"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Companies   map[string]string `yaml:"companies"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	SlowThreshold   time.Duration `yaml:"slow_threshold" default:"3s"`
	CORSOrigins     []string      `yaml:"cors_origins" default:"[\"*\"]"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"console"`
	Output string `yaml:"output" default:"stdout"`

	// error shipping to the Kafka log topic
	CollectInterval   time.Duration `yaml:"collect_interval" default:"10s"`
	CollectMaxEntries int           `yaml:"collect_max_entries" default:"50"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics"`
}

type SourceConfig struct {
	Kind string `yaml:"kind" default:"upstream"`
}

type PlayfairConfig struct {
	URL     string        `yaml:"url" default:"http://api.playfairapp.com/top-accounts-feed"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout" default:"15s"`
}

type GatewayConfig struct {
	URL     string        `yaml:"url" default:"http://localhost:8080/api/proxy"`
	Timeout time.Duration `yaml:"timeout" default:"15s"`
}

type LogoConfig struct {
	// BaseURL is a printf template receiving the company name.
	BaseURL string `yaml:"base_url" default:"https://img.logo.dev/%s.com"`
	Token   string `yaml:"token"`
}

type AggregationConfig struct {
	PageSize       int           `yaml:"page_size" default:"100"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout" default:"10s"`
	MaxConcurrency int           `yaml:"max_concurrency" default:"16"`
	MaxBuckets     int           `yaml:"max_buckets" default:"400"`
}

type PredictionsConfig struct {
	IndividualLimit int `yaml:"individual_limit" default:"100"`
	ListDefault     int `yaml:"list_default" default:"10"`
	ListMax         int `yaml:"list_max" default:"100"`
}

type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" default:"true"`
	TTL        time.Duration `yaml:"ttl" default:"5m"`
	MemorySize int           `yaml:"memory_size" default:"2000"`
	Redis      RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr" default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix" default:"sentimentdash"`
}

type KafkaConfig struct {
	Enabled      bool           `yaml:"enabled"`
	Brokers      []string       `yaml:"brokers"`
	SeriesTopic  string         `yaml:"series_topic" default:"dashboard.sentiment.series"`
	LogTopic     string         `yaml:"log_topic" default:"dashboard.logs"`
	RequiredAcks int            `yaml:"required_acks" default:"-1"`
	Compression  string         `yaml:"compression" default:"snappy"`
	Producer     ProducerConfig `yaml:"producer"`
}

type ProducerConfig struct {
	MaxAttempts  int           `yaml:"max_attempts" default:"3"`
	Linger       time.Duration `yaml:"linger" default:"200ms"`
	BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
	BatchSize    int           `yaml:"batch_size" default:"100"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
	Async        bool          `yaml:"async" default:"true"`
}

type RateLimitConfig struct {
	ProxyRPS   float64 `yaml:"proxy_rps" default:"10"`
	ProxyBurst int     `yaml:"proxy_burst" default:"20"`
}

// Default returns a configuration populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// An empty path skips the file and starts from defaults.
func LoadWithEnv(path string) (*Config, error) {
	var (
		c   *Config
		err error
	)
	if path == "" {
		c, err = Default()
	} else {
		c, err = Load(path)
	}
	if err != nil {
		return nil, err
	}

	c.applyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("PLAYFAIR_API_KEY"); v != "" {
		c.Playfair.APIKey = v
	}
	if v := getenv("PLAYFAIR_URL"); v != "" {
		c.Playfair.URL = v
	}
	if v := getenv("LOGO_API_KEY"); v != "" {
		c.Logo.Token = v
	}
	if v := getenv("PREDICTION_SOURCE"); v != "" {
		c.Source.Kind = v
	}
	if v := getenv("GATEWAY_URL"); v != "" {
		c.Gateway.URL = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Enabled = true
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := getenv("HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks if the configuration is valid.
// A missing prediction API key is not a load error; the proxy reports it per request.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Source.Kind {
	case SourceUpstream, SourceGateway, SourceMock:
	default:
		return fmt.Errorf("source.kind must be '%s', '%s' or '%s', got '%s'", SourceUpstream, SourceGateway, SourceMock, c.Source.Kind)
	}
	if c.Source.Kind == SourceGateway && c.Gateway.URL == "" {
		return fmt.Errorf("gateway.url is required when source.kind is '%s'", SourceGateway)
	}
	if c.Playfair.URL == "" {
		return fmt.Errorf("playfair.url is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Aggregation.PageSize <= 0 || c.Aggregation.PageSize > 100 {
		return fmt.Errorf("aggregation.page_size must be in [1,100], got %d", c.Aggregation.PageSize)
	}
	if c.Aggregation.MaxBuckets <= 0 {
		return fmt.Errorf("aggregation.max_buckets must be positive")
	}
	if !strings.Contains(c.Logo.BaseURL, "%s") {
		return fmt.Errorf("logo.base_url must contain a %%s placeholder for the company name")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}
