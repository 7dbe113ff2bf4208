package analysis

import (
	"testing"

	"cryptoherald/internal/market"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestPredictBullishOnStrongRise(t *testing.T) {
	md := &market.MarketData{
		Symbol:         "BTC",
		PriceChange24h: floatPtr(6.0),
	}

	p := Predict(md)
	if p == nil {
		t.Fatal("Expected a prediction, got nil")
	}
	if p.Type != market.PredictionBullish {
		t.Errorf("Expected BULLISH, got %s", p.Type)
	}
	if p.Confidence < 50 || p.Confidence > 90 {
		t.Errorf("Confidence out of range: %d", p.Confidence)
	}
}

func TestPredictBearishOnStrongDrop(t *testing.T) {
	md := &market.MarketData{
		Symbol:         "ETH",
		PriceChange24h: floatPtr(-6.0),
	}

	p := Predict(md)
	if p.Type != market.PredictionBearish {
		t.Errorf("Expected BEARISH, got %s", p.Type)
	}
}

func TestPredictNeutralOnFlatMarket(t *testing.T) {
	md := &market.MarketData{
		Symbol:         "SOL",
		PriceChange24h: floatPtr(0.1),
	}

	p := Predict(md)
	if p.Type != market.PredictionNeutral {
		t.Errorf("Expected NEUTRAL, got %s", p.Type)
	}
}

func TestPredictUsesMomentum(t *testing.T) {
	history := make([]market.CryptoPrice, 0, 16)
	for i := 0; i < 16; i++ {
		// Steady climb, the last quarter clearly above the one before it.
		history = append(history, market.CryptoPrice{PriceEUR: 100 + float64(i)*5})
	}
	md := &market.MarketData{
		Symbol:       "BTC",
		PriceHistory: history,
	}

	p := Predict(md)
	if p.Type != market.PredictionBullish {
		t.Errorf("Expected BULLISH from momentum alone, got %s (score %d)", p.Type, p.TrendScore)
	}
}

func TestPredictNilInput(t *testing.T) {
	if p := Predict(nil); p != nil {
		t.Errorf("Expected nil prediction for nil market data, got %+v", p)
	}
}

func TestScoreOpportunityDipWithFear(t *testing.T) {
	md := &market.MarketData{
		Symbol:         "BTC",
		PriceChange24h: floatPtr(-9.0),
		Volume24h:      floatPtr(2_000_000_000),
		FearGreedIndex: intPtr(15),
	}

	opp := ScoreOpportunity(md, nil)
	if opp == nil {
		t.Fatal("Expected an opportunity score, got nil")
	}
	if opp.Score < 7 {
		t.Errorf("Expected a high score for a fearful dip, got %d", opp.Score)
	}
	if opp.Recommendation != "BUY" {
		t.Errorf("Expected BUY, got %s", opp.Recommendation)
	}
	if len(opp.Factors) < 3 {
		t.Errorf("Expected at least 3 factors, got %v", opp.Factors)
	}
}

func TestScoreOpportunityOverheatedMarket(t *testing.T) {
	md := &market.MarketData{
		Symbol:         "DOGE",
		PriceChange24h: floatPtr(12.0),
		FearGreedIndex: intPtr(85),
	}
	pred := &market.Prediction{Symbol: "DOGE", Type: market.PredictionBearish, Confidence: 70}

	opp := ScoreOpportunity(md, pred)
	if opp.Score > 3 {
		t.Errorf("Expected a low score for an overheated market, got %d", opp.Score)
	}
	if opp.Recommendation != "SELL" {
		t.Errorf("Expected SELL, got %s", opp.Recommendation)
	}
}

func TestScoreOpportunityStaysInRange(t *testing.T) {
	md := &market.MarketData{
		Symbol:         "BTC",
		PriceChange24h: floatPtr(-50.0),
		Volume24h:      floatPtr(5_000_000_000),
		FearGreedIndex: intPtr(1),
	}
	pred := &market.Prediction{Symbol: "BTC", Type: market.PredictionBullish, Confidence: 90}

	opp := ScoreOpportunity(md, pred)
	if opp.Score < 0 || opp.Score > 10 {
		t.Errorf("Score out of range: %d", opp.Score)
	}
	if opp.Confidence > 90 {
		t.Errorf("Confidence above cap: %d", opp.Confidence)
	}
}
