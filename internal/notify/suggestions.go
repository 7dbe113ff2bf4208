package notify

import (
	"fmt"
	"sort"
	"strings"

	"cryptoherald/internal/market"
)

// Suggestion is one alternative coin proposed by the suggestions block.
type Suggestion struct {
	Symbol           string
	Score            float64
	OpportunityScore int
	Change24h        float64
	Reasons          []string
	RiskLevel        string // low, medium, high
}

// SuggestionService scans the cross-coin data for coins worth mentioning
// alongside the one being notified about.
type SuggestionService struct{}

func NewSuggestionService() *SuggestionService {
	return &SuggestionService{}
}

// Generate returns at most blk.MaxSuggestions suggestions, best first,
// drawn from coins whose opportunity score clears the configured minimum.
func (s *SuggestionService) Generate(
	currentSymbol string,
	allMarkets map[string]*market.MarketData,
	allPredictions map[string]*market.Prediction,
	allOpportunities map[string]*market.OpportunityScore,
	blk *SuggestionsBlock,
) []Suggestion {
	var suggestions []Suggestion

	for symbol, md := range allMarkets {
		if blk.ExcludeCurrent && strings.EqualFold(symbol, currentSymbol) {
			continue
		}
		opp := allOpportunities[symbol]
		if md == nil || opp == nil {
			continue
		}
		if opp.Score < blk.MinOpportunityScore {
			continue
		}

		suggestion := s.evaluate(symbol, md, allPredictions[symbol], opp, blk)
		if suggestion.Score > 0 {
			suggestions = append(suggestions, suggestion)
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Symbol < suggestions[j].Symbol
	})

	max := blk.MaxSuggestions
	if max <= 0 {
		max = 3
	}
	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions
}

func (s *SuggestionService) evaluate(
	symbol string,
	md *market.MarketData,
	pred *market.Prediction,
	opp *market.OpportunityScore,
	blk *SuggestionsBlock,
) Suggestion {
	score := float64(opp.Score)
	var reasons []string

	var change float64
	if md.PriceChange24h != nil {
		change = *md.PriceChange24h
	}

	if blk.PreferTrending && change > 3 {
		score += 1
		reasons = append(reasons, "forte tendance haussière")
	}
	if blk.PreferUndervalued && change < -5 {
		score += 1
		reasons = append(reasons, "prix attractif")
	}
	if blk.PreferLowVolatility && change > -2 && change < 2 {
		score += 0.5
		reasons = append(reasons, "peu de volatilité")
	}
	if md.Volume24h != nil && *md.Volume24h > 1_000_000_000 {
		score += 0.5
		reasons = append(reasons, "beaucoup d'activité")
	}
	if pred != nil && pred.Type == market.PredictionBullish && pred.Confidence >= 60 {
		score += 1
		reasons = append(reasons, "prédiction IA positive")
	}

	if score > 10 {
		score = 10
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "bon score d'opportunité")
	}

	risk := "medium"
	switch {
	case change > 8 || change < -8:
		risk = "high"
	case change > -2 && change < 2:
		risk = "low"
	}

	return Suggestion{
		Symbol:           symbol,
		Score:            score,
		OpportunityScore: opp.Score,
		Change24h:        change,
		Reasons:          reasons,
		RiskLevel:        risk,
	}
}

// FormatMessage renders the suggestions into the block's message body.
func (s *SuggestionService) FormatMessage(blk *SuggestionsBlock, suggestions []Suggestion, kid bool) string {
	lines := []string{blk.RenderTitle()}
	if kid {
		lines = append(lines, "🔍 D'autres cryptos qui pourraient t'intéresser :")
	}

	for _, sug := range suggestions {
		lines = append(lines, fmt.Sprintf("• %s - Score %.0f/10 - %s", sug.Symbol, sug.Score, sug.Reasons[0]))
	}

	return strings.Join(lines, "\n")
}
