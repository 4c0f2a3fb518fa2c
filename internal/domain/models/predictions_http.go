package models

// Requests for the dashboard HTTP endpoints.

type GroupedPredictionsRequest struct {
	Symbol      string `query:"symbol" json:"symbol" validate:"required"`
	CompanyName string `query:"companyName" json:"companyName"`
	Start       string `query:"start" json:"start" validate:"required"`
	End         string `query:"end" json:"end" validate:"required"`
	Interval    string `query:"interval" json:"interval" default:"day" validate:"oneof=day week month"`
	Interpolate bool   `query:"interpolate" json:"interpolate"`
}

type IndividualPredictionsRequest struct {
	Symbol      string `query:"symbol" json:"symbol" validate:"required"`
	CompanyName string `query:"companyName" json:"companyName"`
	Start       string `query:"start" json:"start" validate:"required"`
	End         string `query:"end" json:"end" validate:"required"`
	Interval    string `query:"interval" json:"interval" default:"day" validate:"oneof=day week month"`
	Username    string `query:"username" json:"username" validate:"required"`
}

type PredictionListRequest struct {
	Limit int `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=100"`
}

type SentimentContextRequest struct {
	AggregateType string `query:"aggregateType" json:"aggregateType" validate:"required,oneof=totalPredictions bullishPredictions bearishPredictions symbolSpecificPredictions"`
	Symbol        string `query:"symbol" json:"symbol" validate:"required_if=AggregateType symbolSpecificPredictions"`
	Start         string `query:"start" json:"start" validate:"required"`
	End           string `query:"end" json:"end" validate:"required"`
	Interval      string `query:"interval" json:"interval" default:"day" validate:"oneof=day week month"`
	Direction     string `query:"direction" json:"direction" validate:"omitempty,oneof=up down long short"`
	Limit         int    `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=100"`
}
