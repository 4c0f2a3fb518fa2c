package gateway

import (
	"context"
	"errors"
	"time"

	"SentimentDash/internal/domain/models"
	drepo "SentimentDash/internal/domain/repository"
	"SentimentDash/internal/service/feed"
	xhttp "SentimentDash/pkg/http"
)

const sourceName = "gateway"

// Client reads predictions through a remote proxy route that holds the
// credential, so this process never needs it.
type Client struct {
	url     string
	http    *xhttp.Client
	metrics drepo.Metrics
}

func New(url string, httpClient *xhttp.Client, metrics drepo.Metrics) *Client {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	return &Client{url: url, http: httpClient, metrics: metrics}
}

func (c *Client) FetchPredictions(ctx context.Context, req models.FeedRequest) ([]models.PredictionRecord, error) {
	began := time.Now()
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.url,
		Body:   req,
	}, &body)
	if err != nil {
		c.metrics.RecordFetch(sourceName, time.Since(began).Seconds(), err)
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			c.metrics.RecordUpstreamStatus(se.StatusCode)
			msg := feed.ErrorBody(se.Body)
			if ue, ok := models.ParseUpstreamError(msg); ok {
				return nil, ue
			}
			return nil, &models.GatewayError{Status: se.StatusCode, Body: msg}
		}
		return nil, err
	}

	items, err := feed.ParseEnvelope(body)
	c.metrics.RecordFetch(sourceName, time.Since(began).Seconds(), err)
	if err != nil {
		return nil, err
	}
	return feed.DecodeRecords(items)
}
