package market

import "time"

// CryptoPrice is one observed price point for a symbol.
type CryptoPrice struct {
	Symbol    string    `json:"symbol"`
	PriceEUR  float64   `json:"price_eur"`
	PriceUSD  float64   `json:"price_usd"`
	Volume24h float64   `json:"volume_24h"`
	Change24h float64   `json:"change_24h"`
	Timestamp time.Time `json:"timestamp"`
}

// MarketData is everything known about one symbol at evaluation time.
// Optional fields are nil when the upstream source had nothing.
type MarketData struct {
	Symbol         string        `json:"symbol"`
	CurrentPrice   *CryptoPrice  `json:"current_price,omitempty"`
	PriceChange24h *float64      `json:"price_change_24h,omitempty"`
	Volume24h      *float64      `json:"volume_24h,omitempty"`
	FearGreedIndex *int          `json:"fear_greed_index,omitempty"`
	PriceHistory   []CryptoPrice `json:"price_history,omitempty"`
}

// PredictionType is the direction a prediction points at.
type PredictionType string

const (
	PredictionBullish PredictionType = "BULLISH"
	PredictionBearish PredictionType = "BEARISH"
	PredictionNeutral PredictionType = "NEUTRAL"
)

// Prediction is the output of the trend predictor for one symbol.
type Prediction struct {
	Symbol     string         `json:"symbol"`
	Type       PredictionType `json:"prediction_type"`
	Confidence int            `json:"confidence"` // 0-100
	TrendScore int            `json:"trend_score"`
}

// OpportunityScore rates how attractive a symbol looks right now.
type OpportunityScore struct {
	Symbol         string   `json:"symbol"`
	Score          int      `json:"score"` // 0-10
	Recommendation string   `json:"recommendation"` // BUY, SELL, HOLD
	Confidence     int      `json:"confidence"` // 0-100
	Factors        []string `json:"factors,omitempty"`
}

// BrokerQuote is one broker's current offer for a symbol.
type BrokerQuote struct {
	Broker   string  `json:"broker"`
	PriceEUR float64 `json:"price_eur"`
	FeePct   float64 `json:"fee_pct"`
}
