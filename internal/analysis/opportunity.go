package analysis

import (
	"cryptoherald/internal/market"
)

// ScoreOpportunity rates a symbol from 0 to 10 and attaches the factors that
// contributed to the score. The recommendation follows the score and the
// predicted trend.
func ScoreOpportunity(md *market.MarketData, pred *market.Prediction) *market.OpportunityScore {
	if md == nil {
		return nil
	}

	score := 5.0
	var factors []string

	if md.PriceChange24h != nil {
		change := *md.PriceChange24h
		switch {
		case change < -8:
			score += 2
			factors = append(factors, "forte baisse récente, point d'entrée possible")
		case change < -3:
			score += 1
			factors = append(factors, "prix en retrait sur 24h")
		case change > 8:
			score -= 2
			factors = append(factors, "forte hausse récente, risque de correction")
		case change > 3:
			score -= 1
			factors = append(factors, "prix déjà en forte hausse")
		}
	}

	if md.Volume24h != nil && *md.Volume24h > 1_000_000_000 {
		score += 1
		factors = append(factors, "volume d'échange élevé")
	}

	if md.FearGreedIndex != nil {
		switch idx := *md.FearGreedIndex; {
		case idx < 25:
			score += 1.5
			factors = append(factors, "marché en peur extrême")
		case idx < 45:
			score += 0.5
			factors = append(factors, "marché craintif")
		case idx >= 75:
			score -= 1.5
			factors = append(factors, "marché en avidité extrême")
		}
	}

	if pred != nil {
		switch pred.Type {
		case market.PredictionBullish:
			score += 1
			factors = append(factors, "tendance prédite haussière")
		case market.PredictionBearish:
			score -= 1
			factors = append(factors, "tendance prédite baissière")
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	opp := &market.OpportunityScore{
		Symbol:  md.Symbol,
		Score:   int(score + 0.5),
		Factors: factors,
	}

	switch {
	case opp.Score >= 7:
		opp.Recommendation = "BUY"
	case opp.Score <= 3:
		opp.Recommendation = "SELL"
	default:
		opp.Recommendation = "HOLD"
	}

	confidence := 40 + len(factors)*10
	if pred != nil {
		confidence += pred.Confidence / 10
	}
	if confidence > 90 {
		confidence = 90
	}
	opp.Confidence = confidence

	return opp
}
