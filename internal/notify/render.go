package notify

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"cryptoherald/internal/market"
)

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// defaultGlossary maps the domain terms renderers may reference to their
// kid-friendly definitions.
var defaultGlossary = map[string]string{
	"crypto":      "Monnaie numérique qui existe uniquement sur internet",
	"prix":        "Combien coûte 1 unité de cette crypto en euros",
	"variation":   "De combien le prix a changé (en % = sur 100)",
	"volume":      "Combien d'argent total a été échangé",
	"tendance":    "Direction générale du prix (monte, descend, ou stable)",
	"opportunité": "Chance d'acheter ou vendre au bon moment",
	"courtier":    "Plateforme où on peut acheter des cryptos",
	"IA":          "Intelligence Artificielle = ordinateur qui essaie de prédire le futur",
}

func renderPriceBlock(ctx *renderContext, blk *PriceBlock, kid bool, md *market.MarketData) string {
	if md == nil {
		return ""
	}

	lines := []string{blk.RenderTitle()}

	if blk.ShowPriceEUR && md.CurrentPrice != nil {
		price := md.CurrentPrice.PriceEUR
		if kid {
			lines = append(lines, fmt.Sprintf("Le prix est de %.2f€ maintenant", price))
			ctx.markTerm("prix")
		} else {
			lines = append(lines, fmt.Sprintf("Prix actuel : %.2f€", price))
		}
	}

	if blk.ShowPriceUSD && md.CurrentPrice != nil {
		lines = append(lines, fmt.Sprintf("Prix USD : $%.2f", md.CurrentPrice.PriceUSD))
	}

	if blk.ShowVariation && md.PriceChange24h != nil {
		change := *md.PriceChange24h
		emoji := "➡️"
		if change > 0 {
			emoji = "📈"
		} else if change < 0 {
			emoji = "📉"
		}

		if kid {
			switch {
			case change > 0:
				lines = append(lines, fmt.Sprintf("%s Il a monté de +%.1f%% en 24h - C'est bien !", emoji, change))
			case change < 0:
				lines = append(lines, fmt.Sprintf("%s Il a baissé de %.1f%% en 24h - Le prix descend", emoji, change))
			default:
				lines = append(lines, fmt.Sprintf("%s Le prix n'a pas changé en 24h - Il est stable", emoji))
			}
			ctx.markTerm("variation")
		} else {
			lines = append(lines, fmt.Sprintf("%s Variation 24h : %+.1f%%", emoji, change))
		}
	}

	if blk.ShowVolume && md.Volume24h != nil {
		volume := *md.Volume24h
		if kid {
			switch {
			case volume > 1_000_000_000:
				lines = append(lines, "🔊 Beaucoup de gens l'achètent aujourd'hui (volume très élevé)")
			case volume > 100_000_000:
				lines = append(lines, "🔊 Pas mal d'activité sur cette crypto")
			default:
				lines = append(lines, "🔊 Activité normale sur cette crypto")
			}
			ctx.markTerm("volume")
		} else {
			lines = append(lines, fmt.Sprintf("🔊 Volume 24h : %.0f€", volume))
		}
	}

	if blk.AddComment && kid && md.PriceChange24h != nil {
		change := *md.PriceChange24h
		switch {
		case change > 3:
			lines = append(lines, "\n💬 📈 Le prix monte ! C'est une bonne nouvelle si tu possèdes déjà cette crypto.")
		case change < -3:
			lines = append(lines, "\n💬 📉 Le prix baisse. Ça peut être un bon moment pour acheter si tu crois en cette crypto.")
		default:
			lines = append(lines, "\n💬 ➡️ Le prix est stable. Le marché hésite.")
		}
	}

	return strings.Join(lines, "\n")
}

var sparklineLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline renders a price series as a one-line unicode mini-chart.
func sparkline(values []float64) string {
	if len(values) < 2 {
		return ""
	}
	low, high := values[0], values[0]
	for _, v := range values {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	var b strings.Builder
	for _, v := range values {
		level := 0
		if high > low {
			level = int((v - low) / (high - low) * float64(len(sparklineLevels)-1))
		}
		b.WriteRune(sparklineLevels[level])
	}
	return b.String()
}

func periodName(hours int) string {
	switch hours {
	case 1:
		return "1 heure"
	case 4:
		return "4 heures"
	case 24:
		return "1 jour"
	case 168:
		return "1 semaine"
	case 720:
		return "1 mois"
	}
	return fmt.Sprintf("%dh", hours)
}

func renderChartBlock(blk *ChartBlock, md *market.MarketData) string {
	if md == nil || !blk.ShowSparklines || len(md.PriceHistory) < 2 {
		return ""
	}

	lines := []string{blk.RenderTitle()}
	for _, tf := range blk.Timeframes {
		// History points are hourly; take the tail covering the timeframe.
		points := md.PriceHistory
		if len(points) > tf {
			points = points[len(points)-tf:]
		}
		values := make([]float64, 0, len(points))
		for _, p := range points {
			values = append(values, p.PriceEUR)
		}
		if chart := sparkline(values); chart != "" {
			lines = append(lines, fmt.Sprintf("📊 %s : %s", periodName(tf), chart))
		}
	}

	if len(lines) == 1 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func renderPredictionBlock(ctx *renderContext, blk *PredictionBlock, kid bool, pred *market.Prediction) string {
	if pred == nil {
		return ""
	}
	if pred.Confidence < blk.MinConfidenceToShow {
		return ""
	}

	lines := []string{blk.RenderTitle()}

	if blk.ShowType {
		if kid {
			switch pred.Type {
			case market.PredictionBullish:
				lines = append(lines, "🚀 L'IA pense que le prix va monter")
			case market.PredictionBearish:
				lines = append(lines, "⬇️ L'IA pense que le prix va baisser")
			default:
				lines = append(lines, "🤷 L'IA ne voit pas de tendance claire")
			}
			ctx.markTerm("IA")
		} else {
			emoji := "🤷"
			switch pred.Type {
			case market.PredictionBullish:
				emoji = "🚀"
			case market.PredictionBearish:
				emoji = "⬇️"
			}
			lines = append(lines, fmt.Sprintf("%s Tendance : %s", emoji, pred.Type))
		}
	}

	if blk.ShowConfidence {
		if kid {
			level := "peu sûre"
			switch {
			case pred.Confidence >= 75:
				level = "très sûre"
			case pred.Confidence >= 60:
				level = "plutôt sûre"
			case pred.Confidence >= 50:
				level = "pas très sûre"
			}
			lines = append(lines, fmt.Sprintf("Confiance : %d%% - L'IA est %s", pred.Confidence, level))
		} else {
			lines = append(lines, fmt.Sprintf("Confiance : %d%%", pred.Confidence))
		}
	}

	return strings.Join(lines, "\n")
}

func renderOpportunityBlock(ctx *renderContext, blk *OpportunityBlock, kid bool, opp *market.OpportunityScore) string {
	if opp == nil {
		return ""
	}
	if opp.Score < blk.MinScoreToShow {
		return ""
	}

	lines := []string{blk.RenderTitle()}

	if blk.ShowScore {
		score := opp.Score
		if score < 0 {
			score = 0
		}
		if score > 10 {
			score = 10
		}
		stars := strings.Repeat("⭐", score) + strings.Repeat("☆", 10-score)

		if kid {
			lines = append(lines, fmt.Sprintf("%s %d/10", stars, score))
			ctx.markTerm("opportunité")
			switch {
			case score >= 8:
				lines = append(lines, "🌟 Excellente opportunité ! À surveiller de près.")
			case score >= 6:
				lines = append(lines, "👍 Bonne opportunité, à considérer.")
			case score >= 4:
				lines = append(lines, "⚖️ Opportunité moyenne, reste prudent.")
			default:
				lines = append(lines, "⚠️ Opportunité faible, attends peut-être.")
			}
		} else {
			lines = append(lines, fmt.Sprintf("Score : %d/10 %s", score, stars))
		}
	}

	if blk.ShowRecommendation && opp.Recommendation != "" {
		lines = append(lines, fmt.Sprintf("\n💡 %s", opp.Recommendation))
	}

	if blk.ShowReasons && len(opp.Factors) > 0 {
		if kid {
			lines = append(lines, "\nPourquoi ce score ?")
		} else {
			lines = append(lines, "\nFacteurs :")
		}
		factors := opp.Factors
		if len(factors) > 3 {
			factors = factors[:3]
		}
		for _, factor := range factors {
			lines = append(lines, fmt.Sprintf("  • %s", factor))
		}
	}

	return strings.Join(lines, "\n")
}

func renderBrokersBlock(ctx *renderContext, blk *BrokersBlock, quotes []market.BrokerQuote) string {
	if len(quotes) == 0 {
		return ""
	}

	sorted := make([]market.BrokerQuote, len(quotes))
	copy(sorted, quotes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PriceEUR < sorted[j].PriceEUR })

	lines := []string{blk.RenderTitle()}
	ctx.markTerm("courtier")

	best := sorted[0]
	if blk.ShowBestPrice {
		lines = append(lines, fmt.Sprintf("🏆 Meilleur prix : %s - %.2f€", best.Broker, best.PriceEUR))
	}

	rest := sorted[1:]
	max := blk.MaxBrokersDisplayed
	if max > 0 && len(rest) > max {
		rest = rest[:max]
	}
	if len(rest) > 0 {
		lines = append(lines, "📋 Autres options :")
		for _, q := range rest {
			premium := (q.PriceEUR - best.PriceEUR) / best.PriceEUR * 100
			lines = append(lines, fmt.Sprintf("  • %s : %.2f€ (+%.2f%%)", q.Broker, q.PriceEUR, premium))
		}
	}

	if blk.ShowFees {
		lines = append(lines, "\n💰 N'oublie pas de compter les frais d'achat !")
	}

	return strings.Join(lines, "\n")
}

func renderFearGreedBlock(blk *FearGreedBlock, md *market.MarketData) string {
	if md == nil || md.FearGreedIndex == nil {
		return ""
	}
	index := *md.FearGreedIndex

	lines := []string{blk.RenderTitle()}

	if blk.ShowIndex {
		lines = append(lines, fmt.Sprintf("📊 Indice : %d/100", index))
	}

	if blk.ShowInterpretation {
		var message string
		switch {
		case index < 25:
			message = "😱 Peur extrême ! Les gens vendent beaucoup. Parfois c'est le moment d'acheter."
		case index < 45:
			message = "😟 Le marché a peur. Les prix baissent souvent."
		case index < 55:
			message = "😐 Le marché est calme, ni peur ni avidité."
		case index < 75:
			message = "😊 Le marché est optimiste. Les prix montent souvent."
		default:
			message = "🤑 Avidité extrême ! Attention, les prix peuvent bientôt chuter."
		}
		lines = append(lines, "\n"+message)
	}

	return strings.Join(lines, "\n")
}

func renderGainLossBlock(blk *GainLossBlock, kid bool, md *market.MarketData) string {
	if md == nil || md.PriceChange24h == nil || md.CurrentPrice == nil {
		return ""
	}

	amount := blk.InvestmentAmount
	changePct := *md.PriceChange24h
	gain := amount * changePct / 100

	emoji, verb := "✅", "gagné"
	if gain < 0 {
		emoji, verb = "❌", "perdu"
	}

	lines := []string{blk.RenderTitle()}
	if kid {
		lines = append(lines, fmt.Sprintf("\nSi tu avais mis %.0f€ il y a 24h :", amount))
		abs := gain
		if abs < 0 {
			abs = -abs
		}
		lines = append(lines, fmt.Sprintf("%s Tu aurais %s %.2f€", emoji, verb, abs))
		lines = append(lines, fmt.Sprintf("Ton argent vaudrait maintenant %.2f€", amount+gain))
	} else {
		lines = append(lines, fmt.Sprintf("%s Investissement de %.0f€ il y a 24h", emoji, amount))
		if blk.ShowPercentage {
			lines = append(lines, fmt.Sprintf("Gain/Perte : %+.2f€ (%+.1f%%)", gain, changePct))
		} else {
			lines = append(lines, fmt.Sprintf("Gain/Perte : %+.2f€", gain))
		}
	}

	return strings.Join(lines, "\n")
}

func renderGlossaryBlock(ctx *renderContext, blk *GlossaryBlock) string {
	if len(ctx.usedTerms) == 0 && len(blk.CustomTerms) == 0 {
		return ""
	}

	lines := []string{blk.RenderTitle(), ""}

	if blk.AutoDetectTerms {
		terms := make([]string, 0, len(ctx.usedTerms))
		for term := range ctx.usedTerms {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for _, term := range terms {
			if definition, ok := defaultGlossary[term]; ok {
				lines = append(lines, fmt.Sprintf("• **%s** : %s", capitalize(term), definition))
			}
		}
	}

	customTerms := make([]string, 0, len(blk.CustomTerms))
	for term := range blk.CustomTerms {
		customTerms = append(customTerms, term)
	}
	sort.Strings(customTerms)
	for _, term := range customTerms {
		lines = append(lines, fmt.Sprintf("• **%s** : %s", term, blk.CustomTerms[term]))
	}

	// Title and spacer only: every detected term lacked a definition.
	if len(lines) <= 2 {
		return ""
	}
	return strings.Join(lines, "\n")
}
