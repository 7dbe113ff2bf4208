package notify

import (
	"fmt"
	"runtime/debug"
	"strings"

	"cryptoherald/internal/market"
	"cryptoherald/pkg/logger"
)

// Input is everything one generation cycle needs. The caller materializes all
// data up front; the generator performs no I/O.
type Input struct {
	Symbol      string
	Market      *market.MarketData
	Prediction  *market.Prediction
	Opportunity *market.OpportunityScore
	Brokers     []market.BrokerQuote

	// Cross-coin maps used by the suggestions block.
	AllMarkets       map[string]*market.MarketData
	AllPredictions   map[string]*market.Prediction
	AllOpportunities map[string]*market.OpportunityScore

	Hour      int
	DayOfWeek int // Monday = 0
}

// Generator assembles notification messages from an immutable settings
// snapshot. It holds no per-invocation state, so one instance can serve
// concurrent calls.
type Generator struct {
	settings    *Settings
	suggestions *SuggestionService
	logger      *logger.Logger
}

func NewGenerator(settings *Settings, log *logger.Logger) *Generator {
	return &Generator{
		settings:    settings,
		suggestions: NewSuggestionService(),
		logger:      log,
	}
}

// renderContext is created fresh for every Generate call. It collects the
// domain terms referenced while rendering, which the glossary block consumes.
type renderContext struct {
	usedTerms map[string]struct{}
}

func newRenderContext() *renderContext {
	return &renderContext{usedTerms: map[string]struct{}{}}
}

func (ctx *renderContext) markTerm(term string) {
	ctx.usedTerms[term] = struct{}{}
}

// Generate produces the notification message for one symbol, or ok=false when
// any gate suppresses it: global disable, profile disable, quiet hours, no
// active schedule, or send threshold. Unexpected failures are logged and
// suppress the notification rather than crashing the polling cycle.
func (g *Generator) Generate(in Input) (message string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Notification generation panicked",
				"symbol", in.Symbol,
				"panic", r,
				"stack", string(debug.Stack()))
			message = ""
			ok = false
		}
	}()

	if !g.settings.Enabled {
		return "", false
	}

	profile := g.settings.Profile(in.Symbol)
	if !profile.Enabled {
		return "", false
	}

	if g.settings.IsQuietHour(in.Hour) {
		return "", false
	}

	cfg := profile.ActiveConfig(in.Hour, in.DayOfWeek)
	if cfg == nil || !cfg.Enabled {
		return "", false
	}

	if !g.shouldSend(cfg, in.Market, in.Opportunity) {
		return "", false
	}

	ctx := newRenderContext()
	var parts []string

	if header := g.renderHeader(profile, cfg, in); header != "" {
		parts = append(parts, header)
	}
	if profile.IntroMessage != "" {
		parts = append(parts, profile.IntroMessage)
	}

	for _, name := range cfg.BlocksOrder {
		if name == orderHeader || name == orderFooter {
			continue
		}
		kind, err := ParseBlockKind(name)
		if err != nil {
			// Rejected by the validator at load time; nothing to render.
			continue
		}
		if opts := cfg.Blocks.Options(kind); opts == nil || !opts.Enabled {
			continue
		}
		if content := g.renderBlock(ctx, kind, cfg, in); content != "" {
			parts = append(parts, content)
		}
	}

	if profile.OutroMessage != "" {
		parts = append(parts, profile.OutroMessage)
	}
	if footer := g.renderFooter(cfg); footer != "" {
		parts = append(parts, footer)
	}

	full := strings.Join(parts, "\n\n")
	full = Truncate(full, g.settings.MaxMessageLength)

	if !CheckEmphasisBalance(full) {
		g.logger.Warn("Notification has unbalanced emphasis markers", "symbol", in.Symbol)
	}

	return full, true
}

// shouldSend evaluates the configured send thresholds. The policy on any
// internal failure is fail-open: over-notifying beats silently dropping.
func (g *Generator) shouldSend(cfg *ScheduleConfig, md *market.MarketData, opp *market.OpportunityScore) (send bool) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Send threshold evaluation panicked", "panic", r)
			send = true
		}
	}()

	if cfg.SendOnlyIfChangeAbove != nil {
		if md == nil || md.PriceChange24h == nil {
			return false
		}
		change := *md.PriceChange24h
		if change < 0 {
			change = -change
		}
		if change < *cfg.SendOnlyIfChangeAbove {
			return false
		}
	}

	if cfg.SendOnlyIfOpportunityAbove != nil {
		if opp == nil {
			return false
		}
		if opp.Score < *cfg.SendOnlyIfOpportunityAbove {
			return false
		}
	}

	return true
}

// timeOfDay maps an hour to its display label and emoji.
func timeOfDay(hour int) (label, emoji string) {
	switch {
	case hour >= 5 && hour < 12:
		return "matin", "🌅"
	case hour >= 12 && hour < 18:
		return "après-midi", "☀️"
	case hour >= 18 && hour < 23:
		return "soir", "🌆"
	default:
		return "nuit", "🌙"
	}
}

func (g *Generator) renderHeader(profile *CoinProfile, cfg *ScheduleConfig, in Input) string {
	template := cfg.HeaderMessage
	if template == "" {
		template = g.settings.HeaderTemplate
	}

	label, emoji := timeOfDay(in.Hour)
	if profile.CustomEmoji != "" {
		emoji = profile.CustomEmoji
	}
	return RenderTemplate(template, map[string]string{
		"symbol":    in.Symbol,
		"nickname":  profile.DisplayName(),
		"time_slot": label,
		"emoji":     emoji,
		"hour":      fmt.Sprintf("%d", in.Hour),
	})
}

func (g *Generator) renderFooter(cfg *ScheduleConfig) string {
	template := cfg.FooterMessage
	if template == "" {
		template = g.settings.FooterTemplate
	}
	return RenderTemplate(template, nil)
}

// renderBlock dispatches to the block-specific renderer. A panic inside one
// renderer is contained here: the block contributes nothing and the rest of
// the message assembles normally.
func (g *Generator) renderBlock(ctx *renderContext, kind BlockKind, cfg *ScheduleConfig, in Input) (content string) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Block renderer panicked",
				"block", string(kind),
				"symbol", in.Symbol,
				"panic", r,
				"stack", string(debug.Stack()))
			content = ""
		}
	}()

	kid := cfg.KidFriendly && g.settings.KidFriendlyMode

	switch kind {
	case BlockPrice:
		return renderPriceBlock(ctx, &cfg.Blocks.Price, kid, in.Market)
	case BlockChart:
		return renderChartBlock(&cfg.Blocks.Chart, in.Market)
	case BlockPrediction:
		return renderPredictionBlock(ctx, &cfg.Blocks.Prediction, kid, in.Prediction)
	case BlockOpportunity:
		return renderOpportunityBlock(ctx, &cfg.Blocks.Opportunity, kid, in.Opportunity)
	case BlockBrokers:
		return renderBrokersBlock(ctx, &cfg.Blocks.Brokers, in.Brokers)
	case BlockFearGreed:
		return renderFearGreedBlock(&cfg.Blocks.FearGreed, in.Market)
	case BlockGainLoss:
		return renderGainLossBlock(&cfg.Blocks.GainLoss, kid, in.Market)
	case BlockSuggestions:
		return g.renderSuggestionsBlock(&cfg.Blocks.Suggestions, kid, in)
	case BlockGlossary:
		return renderGlossaryBlock(ctx, &cfg.Blocks.Glossary)
	}
	return ""
}

func (g *Generator) renderSuggestionsBlock(blk *SuggestionsBlock, kid bool, in Input) string {
	suggestions := g.suggestions.Generate(in.Symbol, in.AllMarkets, in.AllPredictions, in.AllOpportunities, blk)
	if len(suggestions) == 0 {
		return ""
	}
	return g.suggestions.FormatMessage(blk, suggestions, kid)
}
