package models

// UnknownCompany is answered for tickers missing from the directory.
const UnknownCompany = "Unknown Company"

// Company pairs a ticker with the brand name used for its logo.
type Company struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
	Known       bool   `json:"known"`
}

// PricePoint is the closing feed price of one day.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type CompanyNameRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required"`
}

// StockDataRequest asks for a ticker's daily prices. Without a range the
// last month up to today is used.
type StockDataRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required"`
	Start  string `query:"start" json:"start" validate:"required_with=End,omitempty,isodate"`
	End    string `query:"end" json:"end" validate:"required_with=Start,omitempty,isodate"`
}
