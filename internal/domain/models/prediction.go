package models

import "time"

// PredictionRecord is one row of the prediction feed. Only a handful of fields
// feed the aggregation; the rest are carried for list and context views.
type PredictionRecord struct {
	PredictionID   string  `json:"prediction_id"`
	UserID         string  `json:"userID"`
	Asset          string  `json:"asset"`
	Direction      string  `json:"direction"`
	Price          float64 `json:"price"`
	DataDate       string  `json:"data_date"`
	PredictionDate string  `json:"prediction_date"`

	AssetTotalPredictions        int     `json:"asset_total_predictions"`
	AssetLongPredictionsTotal    int     `json:"asset_long_predictions_total"`
	AssetShortPredictionsTotal   int     `json:"asset_short_predictions_total"`
	AssetLongPercentageTotal     float64 `json:"asset_long_predictions_percentage_total"`
	AssetShortPercentageTotal    float64 `json:"asset_short_predictions_percentage_total"`
	AssetSuccessfulLong          int     `json:"asset_successful_long_predictions"`
	AssetSuccessfulShort         int     `json:"asset_successful_short_predictions"`
	AssetTotalPercentageSuccess  float64 `json:"asset_total_predictions_percentage_successful"`
	AssetConfidenceScore         float64 `json:"asset_confidence_score"`
	AssetMomentum                float64 `json:"asset_momentum"`
	AssetTotalPortfolioReturn    float64 `json:"asset_total_portfolio_return"`
	OverallTotalPredictions      int     `json:"overall_total_predictions"`
	OverallLongPredictionsTotal  int     `json:"overall_long_predictions_total"`
	OverallShortPredictionsTotal int     `json:"overall_short_predictions_total"`
	OverallConfidenceScore       float64 `json:"overall_confidence_score"`
	OverallMomentum              float64 `json:"overall_momentum"`
}

// IsBullish reports whether the record predicts an upward move.
func (r PredictionRecord) IsBullish() bool {
	return NormalizeDirection(r.Direction) == DirectionUp
}

// FeedRequest is the body accepted by the prediction feed and by the proxy route.
// Start and end travel together. Asset narrows a range to one symbol and needs
// the range. A request with none of the three asks for the latest page.
type FeedRequest struct {
	Limit int    `json:"limit" default:"100" validate:"gte=1,lte=1000"`
	Start string `json:"start,omitempty" validate:"required_with=End Asset,omitempty,isodate"`
	End   string `json:"end,omitempty" validate:"required_with=Start Asset,omitempty,isodate"`
	Asset string `json:"asset,omitempty"`
	Page  int    `json:"page" default:"1" validate:"gte=1"`
}

// IsLatest reports whether the request is unscoped.
func (r FeedRequest) IsLatest() bool {
	return r.Start == "" && r.End == "" && r.Asset == ""
}

// FeedResponse is the envelope returned by the feed.
type FeedResponse struct {
	Data []PredictionRecord `json:"data"`
}

// BucketSummary is the reduced sentiment of one bucket.
// Count is summed independently of CountPositive and CountNegative.
type BucketSummary struct {
	IconURL       string    `json:"iconUrl"`
	Timestamp     time.Time `json:"timestamp"`
	Count         int       `json:"count"`
	CountPositive int       `json:"countPositive"`
	CountNegative int       `json:"countNegative"`
	ActualPrice   float64   `json:"actualPrice"`
}

// IndividualPrediction is a single record shaped for the per-user chart.
type IndividualPrediction struct {
	IconURL            string    `json:"iconUrl"`
	Symbol             string    `json:"symbol"`
	CompanyName        string    `json:"companyName"`
	Username           string    `json:"username"`
	Timestamp          string    `json:"timestamp"`
	ActualPrice        float64   `json:"actualPrice"`
	PredictedDirection Direction `json:"predictedDirection"`
	UserIconURL        string    `json:"userIconUrl,omitempty"`
}

// PredictionListItem is a feed record decorated with the asset logo.
type PredictionListItem struct {
	PredictionRecord
	IconURL string `json:"iconUrl"`
}

// SentimentContext answers the aggregate questions an agent asks about the feed.
type SentimentContext struct {
	AggregateType string         `json:"aggregateType"`
	Symbol        string         `json:"symbol,omitempty"`
	Direction     string         `json:"direction,omitempty"`
	Total         int            `json:"total"`
	Bullish       int            `json:"bullish"`
	Bearish       int            `json:"bearish"`
	BySymbol      map[string]int `json:"bySymbol,omitempty"`
}

// SeriesEvent is published after a grouped series is computed.
type SeriesEvent struct {
	ID          string          `json:"id"`
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Interval    Interval        `json:"interval"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Summaries   []BucketSummary `json:"summaries"`
	ComputedAt  time.Time       `json:"computedAt"`
}
