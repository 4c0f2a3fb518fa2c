package playfair

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"SentimentDash/internal/domain/models"
	drepo "SentimentDash/internal/domain/repository"
	"SentimentDash/internal/service/feed"
	xhttp "SentimentDash/pkg/http"
	xlogger "SentimentDash/pkg/logger"
)

const sourceName = "playfair"

// Client calls the prediction feed directly with a bearer credential.
type Client struct {
	url     string
	apiKey  string
	http    *xhttp.Client
	metrics drepo.Metrics
	logger  *xlogger.Logger
}

// New creates a feed client. An empty apiKey is accepted; every call then
// fails with ErrCredentialMissing.
func New(url, apiKey string, httpClient *xhttp.Client, metrics drepo.Metrics, logger *xlogger.Logger) *Client {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &Client{url: url, apiKey: apiKey, http: httpClient, metrics: metrics, logger: logger}
}

// Relay posts req to the feed and returns the data array as received.
func (c *Client) Relay(ctx context.Context, req models.FeedRequest) ([]json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, models.ErrCredentialMissing
	}

	began := time.Now()
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.url,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
			"Content-Type":  "application/json",
		},
		Body: req,
	}, &body)
	if err != nil {
		c.metrics.RecordFetch(sourceName, time.Since(began).Seconds(), err)
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			c.metrics.RecordUpstreamStatus(se.StatusCode)
			c.logger.Warn("prediction feed returned an error",
				xlogger.Int("status", se.StatusCode),
				xlogger.String("asset", req.Asset),
			)
			return nil, &models.UpstreamError{Status: se.StatusCode, Body: se.Body}
		}
		return nil, err
	}

	items, err := feed.ParseEnvelope(body)
	c.metrics.RecordFetch(sourceName, time.Since(began).Seconds(), err)
	if err != nil {
		c.logger.Warn("prediction feed response malformed", xlogger.String("asset", req.Asset), xlogger.Error(err))
		return nil, err
	}
	return items, nil
}

// FetchPredictions implements PredictionSource.
func (c *Client) FetchPredictions(ctx context.Context, req models.FeedRequest) ([]models.PredictionRecord, error) {
	items, err := c.Relay(ctx, req)
	if err != nil {
		return nil, err
	}
	return feed.DecodeRecords(items)
}
