package analysis

import (
	"math"

	"cryptoherald/internal/market"
)

// Predict derives a trend prediction for one symbol from its 24h change and
// recent price momentum. The trend score accumulates signed evidence, the
// confidence grows with how much evidence agrees.
func Predict(md *market.MarketData) *market.Prediction {
	if md == nil {
		return nil
	}

	score := 0

	if md.PriceChange24h != nil {
		change := *md.PriceChange24h
		switch {
		case change > 5:
			score += 3
		case change > 2:
			score += 2
		case change > 0.5:
			score++
		case change < -5:
			score -= 3
		case change < -2:
			score -= 2
		case change < -0.5:
			score--
		}
	}

	if m := momentum(md.PriceHistory); m != 0 {
		score += m
	}

	p := &market.Prediction{
		Symbol:     md.Symbol,
		TrendScore: score,
	}
	switch {
	case score >= 2:
		p.Type = market.PredictionBullish
	case score <= -2:
		p.Type = market.PredictionBearish
	default:
		p.Type = market.PredictionNeutral
	}

	confidence := 50 + int(math.Abs(float64(score)))*10
	if confidence > 90 {
		confidence = 90
	}
	p.Confidence = confidence

	return p
}

// momentum compares the recent quarter of the history against the quarter
// before it and returns a signed score in [-2, 2].
func momentum(history []market.CryptoPrice) int {
	if len(history) < 8 {
		return 0
	}

	quarter := len(history) / 4
	recent := avgPrice(history[len(history)-quarter:])
	previous := avgPrice(history[len(history)-2*quarter : len(history)-quarter])
	if previous == 0 {
		return 0
	}

	shift := (recent - previous) / previous * 100
	switch {
	case shift > 2:
		return 2
	case shift > 0.5:
		return 1
	case shift < -2:
		return -2
	case shift < -0.5:
		return -1
	}
	return 0
}

func avgPrice(points []market.CryptoPrice) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += p.PriceEUR
	}
	return sum / float64(len(points))
}
