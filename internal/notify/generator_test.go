package notify

import (
	"strings"
	"testing"
	"time"

	"cryptoherald/internal/market"
	"cryptoherald/pkg/logger"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func btcMarket() *market.MarketData {
	return &market.MarketData{
		Symbol: "BTC",
		CurrentPrice: &market.CryptoPrice{
			Symbol:    "BTC",
			PriceEUR:  91600.00,
			PriceUSD:  98400.00,
			Timestamp: time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC),
		},
		PriceChange24h: floatPtr(2.5),
		Volume24h:      floatPtr(1_500_000_000),
	}
}

// testSettings returns a snapshot with one BTC schedule firing at hour 9
// every day, rendering header, price and footer.
func testSettings() *Settings {
	cfg := DefaultScheduleConfig("matin", []int{9})
	cfg.BlocksOrder = []string{"header", "price", "footer"}
	cfg.KidFriendly = false

	settings := DefaultSettings()
	settings.Quiet.Enabled = false
	settings.Coins = map[string]*CoinProfile{
		"BTC": {
			Symbol:    "BTC",
			Enabled:   true,
			Scheduled: []*ScheduleConfig{&cfg},
		},
	}
	return settings
}

func TestGenerate_EndToEnd(t *testing.T) {
	g := NewGenerator(testSettings(), logger.NewNop())

	msg, ok := g.Generate(Input{
		Symbol:    "BTC",
		Market:    btcMarket(),
		Hour:      9,
		DayOfWeek: 0,
	})
	if !ok {
		t.Fatal("Expected a notification for the scheduled hour")
	}

	if !strings.Contains(msg, "matin") {
		t.Errorf("Expected the morning time slot in the header, got %q", msg)
	}
	if !strings.Contains(msg, "BTC") {
		t.Errorf("Expected the symbol in the message, got %q", msg)
	}
	if !strings.Contains(msg, "91600.00€") {
		t.Errorf("Expected the EUR price, got %q", msg)
	}
	if !strings.Contains(msg, "+2.5%") {
		t.Errorf("Expected the signed 24h variation, got %q", msg)
	}
	if !strings.HasSuffix(msg, "ℹ️ Ceci est une information, pas un conseil financier !") {
		t.Errorf("Expected the footer disclaimer at the end, got %q", msg)
	}
}

func TestGenerate_GloballyDisabled(t *testing.T) {
	settings := testSettings()
	settings.Enabled = false
	g := NewGenerator(settings, logger.NewNop())

	if _, ok := g.Generate(Input{Symbol: "BTC", Market: btcMarket(), Hour: 9}); ok {
		t.Error("Expected no notification when notifications are globally disabled")
	}
}

func TestGenerate_ProfileDisabled(t *testing.T) {
	settings := testSettings()
	settings.Coins["BTC"].Enabled = false
	g := NewGenerator(settings, logger.NewNop())

	if _, ok := g.Generate(Input{Symbol: "BTC", Market: btcMarket(), Hour: 9}); ok {
		t.Error("Expected no notification for a disabled coin profile")
	}
}

func TestGenerate_QuietHoursSuppress(t *testing.T) {
	settings := testSettings()
	settings.Quiet = QuietHours{Enabled: true, Start: 8, End: 10}
	g := NewGenerator(settings, logger.NewNop())

	if _, ok := g.Generate(Input{Symbol: "BTC", Market: btcMarket(), Hour: 9}); ok {
		t.Error("Expected quiet hours to suppress the notification entirely")
	}
}

func TestGenerate_NoActiveScheduleNoDefault(t *testing.T) {
	g := NewGenerator(testSettings(), logger.NewNop())

	if _, ok := g.Generate(Input{Symbol: "BTC", Market: btcMarket(), Hour: 14}); ok {
		t.Error("Expected no notification outside scheduled hours without a default config")
	}
}

func TestShouldSend_ChangeThreshold(t *testing.T) {
	g := NewGenerator(testSettings(), logger.NewNop())
	cfg := DefaultScheduleConfig("seuil", []int{9})
	cfg.SendOnlyIfChangeAbove = floatPtr(5.0)

	below := btcMarket()
	below.PriceChange24h = floatPtr(3.0)
	if g.shouldSend(&cfg, below, nil) {
		t.Error("Expected change below threshold to suppress sending")
	}

	negative := btcMarket()
	negative.PriceChange24h = floatPtr(-6.0)
	if !g.shouldSend(&cfg, negative, nil) {
		t.Error("Expected absolute change above threshold to send")
	}

	above := btcMarket()
	above.PriceChange24h = floatPtr(6.0)
	if !g.shouldSend(&cfg, above, nil) {
		t.Error("Expected change above threshold to send")
	}

	if g.shouldSend(&cfg, nil, nil) {
		t.Error("Expected missing market data to suppress sending")
	}
}

func TestShouldSend_OpportunityThreshold(t *testing.T) {
	g := NewGenerator(testSettings(), logger.NewNop())
	cfg := DefaultScheduleConfig("seuil", []int{9})
	cfg.SendOnlyIfOpportunityAbove = intPtr(7)

	if g.shouldSend(&cfg, btcMarket(), nil) {
		t.Error("Expected missing opportunity score to suppress sending")
	}
	if g.shouldSend(&cfg, btcMarket(), &market.OpportunityScore{Score: 5}) {
		t.Error("Expected score below threshold to suppress sending")
	}
	if !g.shouldSend(&cfg, btcMarket(), &market.OpportunityScore{Score: 8}) {
		t.Error("Expected score above threshold to send")
	}
}

func TestShouldSend_NoThresholdsAlwaysSends(t *testing.T) {
	g := NewGenerator(testSettings(), logger.NewNop())
	cfg := DefaultScheduleConfig("libre", []int{9})

	if !g.shouldSend(&cfg, nil, nil) {
		t.Error("Expected no thresholds to mean always-send")
	}
}

func TestGenerate_PanickingBlockDoesNotBreakMessage(t *testing.T) {
	settings := testSettings()
	cfg := settings.Coins["BTC"].Scheduled[0]
	cfg.BlocksOrder = []string{"header", "price", "chart", "footer"}
	cfg.Blocks.Chart.Enabled = true
	// A negative timeframe makes the chart renderer slice out of range.
	cfg.Blocks.Chart.Timeframes = []int{-5}

	md := btcMarket()
	for i := 0; i < 10; i++ {
		md.PriceHistory = append(md.PriceHistory, market.CryptoPrice{PriceEUR: 90000 + float64(i)*100})
	}

	g := NewGenerator(settings, logger.NewNop())
	msg, ok := g.Generate(Input{Symbol: "BTC", Market: md, Hour: 9, DayOfWeek: 3})
	if !ok {
		t.Fatal("Expected the message to survive a panicking block renderer")
	}
	if !strings.Contains(msg, "91600.00€") {
		t.Errorf("Expected the price block to render despite the chart failure, got %q", msg)
	}
	if !strings.HasSuffix(msg, "ℹ️ Ceci est une information, pas un conseil financier !") {
		t.Errorf("Expected the footer despite the chart failure, got %q", msg)
	}
}

func TestGenerate_GlossaryOmittedWhenNothingUsed(t *testing.T) {
	settings := testSettings()
	cfg := settings.Coins["BTC"].Scheduled[0]
	cfg.BlocksOrder = []string{"header", "glossary", "footer"}
	cfg.KidFriendly = true

	g := NewGenerator(settings, logger.NewNop())
	msg, ok := g.Generate(Input{Symbol: "BTC", Hour: 9, DayOfWeek: 0})
	if !ok {
		t.Fatal("Expected a notification")
	}
	if strings.Contains(msg, "glossaire") {
		t.Errorf("Expected the glossary block to be omitted when no terms were used, got %q", msg)
	}
}

func TestGenerate_GlossaryListsUsedTerms(t *testing.T) {
	settings := testSettings()
	cfg := settings.Coins["BTC"].Scheduled[0]
	cfg.BlocksOrder = []string{"header", "price", "glossary", "footer"}
	cfg.KidFriendly = true

	g := NewGenerator(settings, logger.NewNop())
	msg, ok := g.Generate(Input{Symbol: "BTC", Market: btcMarket(), Hour: 9, DayOfWeek: 0})
	if !ok {
		t.Fatal("Expected a notification")
	}
	if !strings.Contains(msg, "Petit glossaire") {
		t.Errorf("Expected the glossary block after kid-friendly price rendering, got %q", msg)
	}
	if !strings.Contains(msg, "**Prix**") {
		t.Errorf("Expected the 'prix' term definition, got %q", msg)
	}
}

func TestGenerate_TruncatesOverlongMessage(t *testing.T) {
	settings := testSettings()
	settings.MaxMessageLength = 100
	settings.Coins["BTC"].IntroMessage = strings.Repeat("blabla ", 700)

	g := NewGenerator(settings, logger.NewNop())
	msg, ok := g.Generate(Input{Symbol: "BTC", Market: btcMarket(), Hour: 9, DayOfWeek: 0})
	if !ok {
		t.Fatal("Expected a notification")
	}
	if len([]rune(msg)) > 100 {
		t.Errorf("Expected the message to respect max_message_length, got %d runes", len([]rune(msg)))
	}
	if !strings.HasSuffix(msg, TruncationMarker) {
		t.Errorf("Expected the truncation marker, got %q", msg)
	}
}

func TestGenerate_CustomEmojiAndNicknameInHeader(t *testing.T) {
	settings := testSettings()
	profile := settings.Coins["BTC"]
	profile.Nickname = "Bibi"
	profile.CustomEmoji = "🪙"
	settings.Coins["BTC"].Scheduled[0].HeaderMessage = "{emoji} {nickname} ({symbol})"

	g := NewGenerator(settings, logger.NewNop())
	msg, ok := g.Generate(Input{Symbol: "BTC", Market: btcMarket(), Hour: 9, DayOfWeek: 0})
	if !ok {
		t.Fatal("Expected a notification")
	}
	if !strings.Contains(msg, "🪙 Bibi (BTC)") {
		t.Errorf("Expected custom emoji and nickname in the header, got %q", msg)
	}
}
