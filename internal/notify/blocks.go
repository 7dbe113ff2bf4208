package notify

import (
	"fmt"
	"unicode"
)

// BlockKind identifies one renderable section of a notification.
type BlockKind string

const (
	BlockPrice       BlockKind = "price"
	BlockChart       BlockKind = "chart"
	BlockPrediction  BlockKind = "prediction"
	BlockOpportunity BlockKind = "opportunity"
	BlockBrokers     BlockKind = "brokers"
	BlockFearGreed   BlockKind = "fear_greed"
	BlockGainLoss    BlockKind = "gain_loss"
	BlockSuggestions BlockKind = "suggestions"
	BlockGlossary    BlockKind = "glossary"
)

// Reserved names allowed in blocks_order but rendered outside the block
// dispatch (they bracket the message).
const (
	orderHeader = "header"
	orderFooter = "footer"
)

// AllBlockKinds returns every block kind in default display order.
func AllBlockKinds() []BlockKind {
	return []BlockKind{
		BlockPrice,
		BlockChart,
		BlockPrediction,
		BlockOpportunity,
		BlockBrokers,
		BlockFearGreed,
		BlockGainLoss,
		BlockSuggestions,
		BlockGlossary,
	}
}

// ParseBlockKind converts a configured block name into a BlockKind.
// Unknown names are a configuration error, not a runtime condition.
func ParseBlockKind(name string) (BlockKind, error) {
	switch BlockKind(name) {
	case BlockPrice, BlockChart, BlockPrediction, BlockOpportunity,
		BlockBrokers, BlockFearGreed, BlockGainLoss, BlockSuggestions, BlockGlossary:
		return BlockKind(name), nil
	}
	return "", fmt.Errorf("unknown block name %q", name)
}

// BlockOptions are the fields shared by every block configuration.
type BlockOptions struct {
	Enabled   bool   `yaml:"enabled"`
	Title     string `yaml:"title"`
	ShowEmoji bool   `yaml:"show_emoji"`
}

// RenderTitle returns the block title, with the leading emoji stripped
// when show_emoji is off.
func (o BlockOptions) RenderTitle() string {
	if o.ShowEmoji {
		return o.Title
	}
	for i, r := range o.Title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return o.Title[i:]
		}
	}
	return o.Title
}

type PriceBlock struct {
	BlockOptions   `yaml:",inline"`
	ShowPriceEUR   bool `yaml:"show_price_eur"`
	ShowPriceUSD   bool `yaml:"show_price_usd"`
	ShowVariation  bool `yaml:"show_variation_24h"`
	ShowVolume     bool `yaml:"show_volume"`
	AddComment     bool `yaml:"add_price_comment"`
}

type ChartBlock struct {
	BlockOptions   `yaml:",inline"`
	ShowSparklines bool  `yaml:"show_sparklines"`
	Timeframes     []int `yaml:"timeframes"`
}

type PredictionBlock struct {
	BlockOptions        `yaml:",inline"`
	ShowType            bool `yaml:"show_prediction_type"`
	ShowConfidence      bool `yaml:"show_confidence"`
	MinConfidenceToShow int  `yaml:"min_confidence_to_show"`
}

type OpportunityBlock struct {
	BlockOptions       `yaml:",inline"`
	ShowScore          bool `yaml:"show_score"`
	ShowRecommendation bool `yaml:"show_recommendation"`
	ShowReasons        bool `yaml:"show_reasons"`
	MinScoreToShow     int  `yaml:"min_score_to_show"`
}

type BrokersBlock struct {
	BlockOptions        `yaml:",inline"`
	ShowBestPrice       bool `yaml:"show_best_price"`
	ShowFees            bool `yaml:"show_fees"`
	MaxBrokersDisplayed int  `yaml:"max_brokers_displayed"`
}

type FearGreedBlock struct {
	BlockOptions       `yaml:",inline"`
	ShowIndex          bool `yaml:"show_index"`
	ShowInterpretation bool `yaml:"show_interpretation"`
}

type GainLossBlock struct {
	BlockOptions     `yaml:",inline"`
	ShowPercentage   bool    `yaml:"show_percentage"`
	InvestmentAmount float64 `yaml:"investment_amount"`
}

type SuggestionsBlock struct {
	BlockOptions        `yaml:",inline"`
	MaxSuggestions      int  `yaml:"max_suggestions"`
	MinOpportunityScore int  `yaml:"min_opportunity_score"`
	ExcludeCurrent      bool `yaml:"exclude_current"`
	PreferTrending      bool `yaml:"prefer_trending"`
	PreferUndervalued   bool `yaml:"prefer_undervalued"`
	PreferLowVolatility bool `yaml:"prefer_low_volatility"`
}

type GlossaryBlock struct {
	BlockOptions    `yaml:",inline"`
	AutoDetectTerms bool              `yaml:"auto_detect_terms"`
	CustomTerms     map[string]string `yaml:"custom_terms"`
}

// BlockSet holds one configuration record per block kind.
type BlockSet struct {
	Price       PriceBlock       `yaml:"price_block"`
	Chart       ChartBlock       `yaml:"chart_block"`
	Prediction  PredictionBlock  `yaml:"prediction_block"`
	Opportunity OpportunityBlock `yaml:"opportunity_block"`
	Brokers     BrokersBlock     `yaml:"brokers_block"`
	FearGreed   FearGreedBlock   `yaml:"fear_greed_block"`
	GainLoss    GainLossBlock    `yaml:"gain_loss_block"`
	Suggestions SuggestionsBlock `yaml:"suggestions_block"`
	Glossary    GlossaryBlock    `yaml:"glossary_block"`
}

// Options returns the shared options of the given block kind.
func (b *BlockSet) Options(kind BlockKind) *BlockOptions {
	switch kind {
	case BlockPrice:
		return &b.Price.BlockOptions
	case BlockChart:
		return &b.Chart.BlockOptions
	case BlockPrediction:
		return &b.Prediction.BlockOptions
	case BlockOpportunity:
		return &b.Opportunity.BlockOptions
	case BlockBrokers:
		return &b.Brokers.BlockOptions
	case BlockFearGreed:
		return &b.FearGreed.BlockOptions
	case BlockGainLoss:
		return &b.GainLoss.BlockOptions
	case BlockSuggestions:
		return &b.Suggestions.BlockOptions
	case BlockGlossary:
		return &b.Glossary.BlockOptions
	}
	return nil
}

// DefaultBlockSet returns the block configuration used when a schedule does
// not override anything.
func DefaultBlockSet() BlockSet {
	return BlockSet{
		Price: PriceBlock{
			BlockOptions:  BlockOptions{Enabled: true, Title: "💰 Prix actuel", ShowEmoji: true},
			ShowPriceEUR:  true,
			ShowVariation: true,
			ShowVolume:    true,
			AddComment:    true,
		},
		Chart: ChartBlock{
			BlockOptions:   BlockOptions{Enabled: false, Title: "📊 Évolution du prix", ShowEmoji: true},
			ShowSparklines: true,
			Timeframes:     []int{24, 168},
		},
		Prediction: PredictionBlock{
			BlockOptions:        BlockOptions{Enabled: true, Title: "🔮 Prédiction IA", ShowEmoji: true},
			ShowType:            true,
			ShowConfidence:      true,
			MinConfidenceToShow: 50,
		},
		Opportunity: OpportunityBlock{
			BlockOptions:       BlockOptions{Enabled: true, Title: "⭐ Score d'opportunité", ShowEmoji: true},
			ShowScore:          true,
			ShowRecommendation: true,
			ShowReasons:        true,
		},
		Brokers: BrokersBlock{
			BlockOptions:        BlockOptions{Enabled: false, Title: "💱 Où acheter le moins cher", ShowEmoji: true},
			ShowBestPrice:       true,
			ShowFees:            true,
			MaxBrokersDisplayed: 3,
		},
		FearGreed: FearGreedBlock{
			BlockOptions:       BlockOptions{Enabled: true, Title: "😨😁 Humeur du marché", ShowEmoji: true},
			ShowIndex:          true,
			ShowInterpretation: true,
		},
		GainLoss: GainLossBlock{
			BlockOptions:     BlockOptions{Enabled: false, Title: "💵 Si tu avais investi", ShowEmoji: true},
			ShowPercentage:   true,
			InvestmentAmount: 100,
		},
		Suggestions: SuggestionsBlock{
			BlockOptions:        BlockOptions{Enabled: false, Title: "💡 Autres cryptos intéressantes", ShowEmoji: true},
			MaxSuggestions:      3,
			MinOpportunityScore: 7,
			ExcludeCurrent:      true,
			PreferTrending:      true,
			PreferUndervalued:   true,
		},
		Glossary: GlossaryBlock{
			BlockOptions:    BlockOptions{Enabled: true, Title: "📚 Petit glossaire", ShowEmoji: true},
			AutoDetectTerms: true,
		},
	}
}
