package notify

import (
	"strings"
	"testing"
)

func validSettings() *Settings {
	cfg := DefaultScheduleConfig("matin", []int{9})
	settings := DefaultSettings()
	settings.Coins = map[string]*CoinProfile{
		"BTC": {Symbol: "BTC", Enabled: true, Scheduled: []*ScheduleConfig{&cfg}},
	}
	return settings
}

func TestValidateSettings_CleanConfig(t *testing.T) {
	result := ValidateSettings(validSettings())
	if !result.OK() {
		t.Fatalf("Expected no errors for a clean config, got %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("Expected no warnings for a clean config, got %v", result.Warnings)
	}
}

func TestValidateSettings_HourOutOfRange(t *testing.T) {
	settings := validSettings()
	settings.Coins["BTC"].Scheduled[0].Hours = []int{9, 24}

	result := ValidateSettings(settings)
	if result.OK() {
		t.Fatal("Expected an error for hour 24")
	}
	if !containsSubstring(result.Errors, "out of range 0-23") {
		t.Errorf("Expected an hour range error, got %v", result.Errors)
	}
}

func TestValidateSettings_DayOutOfRange(t *testing.T) {
	settings := validSettings()
	settings.Coins["BTC"].Scheduled[0].DaysOfWeek = []int{0, 7}

	result := ValidateSettings(settings)
	if !containsSubstring(result.Errors, "out of range 0-6") {
		t.Errorf("Expected a day range error, got %v", result.Errors)
	}
}

func TestValidateSettings_UnknownBlockName(t *testing.T) {
	settings := validSettings()
	settings.Coins["BTC"].Scheduled[0].BlocksOrder = []string{"header", "price", "sparkles", "footer"}

	result := ValidateSettings(settings)
	if result.OK() {
		t.Fatal("Expected an error for an unknown block name")
	}
	if !containsSubstring(result.Errors, `unknown block name "sparkles"`) {
		t.Errorf("Expected an unknown block error, got %v", result.Errors)
	}
}

func TestValidateSettings_UnbalancedTemplateBraces(t *testing.T) {
	settings := validSettings()
	settings.Coins["BTC"].Scheduled[0].HeaderMessage = "🔔 {symbol sans fermeture"

	result := ValidateSettings(settings)
	if !result.OK() {
		t.Fatalf("Expected brace imbalance to be a warning, not an error: %v", result.Errors)
	}
	if !containsSubstring(result.Warnings, "unbalanced braces") {
		t.Errorf("Expected an unbalanced braces warning, got %v", result.Warnings)
	}
}

func TestValidateSettings_OverlappingSchedulesWarn(t *testing.T) {
	first := DefaultScheduleConfig("tôt", []int{9, 12})
	second := DefaultScheduleConfig("tard", []int{12, 18})
	settings := DefaultSettings()
	settings.Coins = map[string]*CoinProfile{
		"BTC": {Symbol: "BTC", Enabled: true, Scheduled: []*ScheduleConfig{&first, &second}},
	}

	result := ValidateSettings(settings)
	if !result.OK() {
		t.Fatalf("Expected the overlap to be a warning, not an error: %v", result.Errors)
	}
	if !containsSubstring(result.Warnings, "already covered") {
		t.Errorf("Expected an overlap warning for hour 12, got %v", result.Warnings)
	}
}

func TestValidateSettings_DisabledScheduleDoesNotOverlap(t *testing.T) {
	first := DefaultScheduleConfig("off", []int{9})
	first.Enabled = false
	second := DefaultScheduleConfig("on", []int{9})
	settings := DefaultSettings()
	settings.Coins = map[string]*CoinProfile{
		"BTC": {Symbol: "BTC", Enabled: true, Scheduled: []*ScheduleConfig{&first, &second}},
	}

	result := ValidateSettings(settings)
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no overlap warning with a disabled schedule, got %v", result.Warnings)
	}
}

func containsSubstring(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
