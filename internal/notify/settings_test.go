package notify

import "testing"

func TestIsQuietHour_WrapsPastMidnight(t *testing.T) {
	settings := DefaultSettings()
	settings.Quiet = QuietHours{Enabled: true, Start: 23, End: 7}

	for _, hour := range []int{23, 0, 6} {
		if !settings.IsQuietHour(hour) {
			t.Errorf("Expected hour %d to be quiet with window 23-7", hour)
		}
	}
	for _, hour := range []int{7, 12, 22} {
		if settings.IsQuietHour(hour) {
			t.Errorf("Expected hour %d not to be quiet with window 23-7", hour)
		}
	}
}

func TestIsQuietHour_SimpleRange(t *testing.T) {
	settings := DefaultSettings()
	settings.Quiet = QuietHours{Enabled: true, Start: 1, End: 6}

	if !settings.IsQuietHour(1) {
		t.Error("Expected quiet window start to be quiet")
	}
	if settings.IsQuietHour(6) {
		t.Error("Expected quiet window end to be excluded (half-open range)")
	}
	if settings.IsQuietHour(12) {
		t.Error("Expected midday not to be quiet")
	}
}

func TestIsQuietHour_Disabled(t *testing.T) {
	settings := DefaultSettings()
	settings.Quiet = QuietHours{Enabled: false, Start: 0, End: 24}

	if settings.IsQuietHour(3) {
		t.Error("Expected no quiet hours when the feature is disabled")
	}
}

func TestActiveConfig_FirstMatchWins(t *testing.T) {
	first := DefaultScheduleConfig("first", []int{9})
	second := DefaultScheduleConfig("second", []int{9, 12})
	profile := &CoinProfile{
		Symbol:    "BTC",
		Enabled:   true,
		Scheduled: []*ScheduleConfig{&first, &second},
	}

	got := profile.ActiveConfig(9, 2)
	if got == nil || got.Name != "first" {
		t.Fatalf("Expected first schedule to win for the overlapping hour, got %+v", got)
	}

	got = profile.ActiveConfig(12, 2)
	if got == nil || got.Name != "second" {
		t.Fatalf("Expected second schedule for hour 12, got %+v", got)
	}
}

func TestActiveConfig_SkipsDisabledAndWrongDay(t *testing.T) {
	disabled := DefaultScheduleConfig("disabled", []int{9})
	disabled.Enabled = false
	weekdaysOnly := DefaultScheduleConfig("weekdays", []int{9})
	weekdaysOnly.DaysOfWeek = []int{0, 1, 2, 3, 4}

	profile := &CoinProfile{
		Symbol:    "ETH",
		Enabled:   true,
		Scheduled: []*ScheduleConfig{&disabled, &weekdaysOnly},
	}

	if got := profile.ActiveConfig(9, 2); got == nil || got.Name != "weekdays" {
		t.Fatalf("Expected disabled schedule to be skipped, got %+v", got)
	}
	// Sunday (day 6) is outside the weekday mask.
	if got := profile.ActiveConfig(9, 6); got != nil {
		t.Fatalf("Expected no active config on Sunday, got %+v", got)
	}
}

func TestActiveConfig_FallsBackToDefault(t *testing.T) {
	fallback := DefaultScheduleConfig("fallback", []int{15})
	profile := &CoinProfile{
		Symbol:        "BTC",
		Enabled:       true,
		DefaultConfig: &fallback,
	}

	if got := profile.ActiveConfig(4, 0); got == nil || got.Name != "fallback" {
		t.Fatalf("Expected fallback default config, got %+v", got)
	}
}

func TestProfile_UnknownSymbolGetsDefaultWithoutMutation(t *testing.T) {
	settings := DefaultSettings()
	settings.DefaultScheduledHours = []int{9, 18}

	profile := settings.Profile("DOGE")
	if profile == nil || !profile.Enabled {
		t.Fatal("Expected an enabled default profile for an unknown symbol")
	}
	if len(profile.Scheduled) != 2 {
		t.Fatalf("Expected one schedule per default hour, got %d", len(profile.Scheduled))
	}
	if _, ok := settings.Coins["DOGE"]; ok {
		t.Error("Profile lookup must not mutate the coin registry")
	}
}
