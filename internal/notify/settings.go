package notify

import "fmt"

// MaxTelegramMessageLength is the hard cap imposed by the Telegram API.
const MaxTelegramMessageLength = 4096

// ScheduleConfig is one named notification schedule: which blocks to render,
// at which hours and days, and under which send thresholds.
type ScheduleConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Enabled     bool   `yaml:"enabled"`

	Hours      []int `yaml:"hours"`
	DaysOfWeek []int `yaml:"days_of_week"`

	// BlocksOrder lists block names plus the reserved "header"/"footer"
	// entries, in display order.
	BlocksOrder []string `yaml:"blocks_order"`

	HeaderMessage string `yaml:"header_message"`
	FooterMessage string `yaml:"footer_message"`

	KidFriendly bool `yaml:"kid_friendly_mode"`

	// Send thresholds. Nil means no threshold.
	SendOnlyIfChangeAbove      *float64 `yaml:"send_only_if_change_above,omitempty"`
	SendOnlyIfOpportunityAbove *int     `yaml:"send_only_if_opportunity_above,omitempty"`

	Blocks BlockSet `yaml:",inline"`
}

// DefaultScheduleConfig returns a schedule with the stock block set, active
// every day at the given hours.
func DefaultScheduleConfig(name string, hours []int) ScheduleConfig {
	return ScheduleConfig{
		Name:          name,
		Enabled:       true,
		Hours:         hours,
		DaysOfWeek:    []int{0, 1, 2, 3, 4, 5, 6},
		BlocksOrder:   defaultBlocksOrder(),
		HeaderMessage: "🔔 {time_slot} - Mise à jour {symbol}",
		FooterMessage: "ℹ️ Ceci est une information, pas un conseil financier !",
		KidFriendly:   true,
		Blocks:        DefaultBlockSet(),
	}
}

func defaultBlocksOrder() []string {
	order := []string{orderHeader}
	for _, kind := range AllBlockKinds() {
		order = append(order, string(kind))
	}
	return append(order, orderFooter)
}

// IsActiveAt reports whether this schedule fires at the given hour and day of
// week (Monday=0).
func (c *ScheduleConfig) IsActiveAt(hour, dayOfWeek int) bool {
	if !c.Enabled {
		return false
	}
	if !containsInt(c.DaysOfWeek, dayOfWeek) {
		return false
	}
	return containsInt(c.Hours, hour)
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// CoinProfile groups the schedules of one tracked symbol.
type CoinProfile struct {
	Symbol  string `yaml:"-"`
	Enabled bool   `yaml:"enabled"`

	Scheduled []*ScheduleConfig `yaml:"scheduled_notifications"`

	// DefaultConfig is used when no scheduled notification matches.
	DefaultConfig *ScheduleConfig `yaml:"default_config,omitempty"`

	CustomEmoji  string `yaml:"custom_emoji,omitempty"`
	Nickname     string `yaml:"nickname,omitempty"`
	IntroMessage string `yaml:"intro_message,omitempty"`
	OutroMessage string `yaml:"outro_message,omitempty"`
}

// ActiveConfig returns the first enabled schedule matching the given hour and
// day, scanning in list order. First match wins; overlapping later schedules
// are ignored. Falls back to DefaultConfig, which may be nil.
func (p *CoinProfile) ActiveConfig(hour, dayOfWeek int) *ScheduleConfig {
	for _, cfg := range p.Scheduled {
		if cfg.IsActiveAt(hour, dayOfWeek) {
			return cfg
		}
	}
	return p.DefaultConfig
}

// DisplayName returns the nickname when configured, the symbol otherwise.
func (p *CoinProfile) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.Symbol
}

// QuietHours is the time-of-day window during which nothing is sent.
type QuietHours struct {
	Enabled bool `yaml:"enabled"`
	Start   int  `yaml:"start"`
	End     int  `yaml:"end"`
}

// Settings is the full notification configuration, loaded once from
// notifications.yaml and treated as an immutable snapshot afterwards.
type Settings struct {
	Enabled          bool `yaml:"enabled"`
	KidFriendlyMode  bool `yaml:"kid_friendly_mode"`
	MaxMessageLength int  `yaml:"max_message_length"`

	Quiet QuietHours `yaml:"quiet_hours"`

	DefaultScheduledHours []int `yaml:"default_scheduled_hours"`

	HeaderTemplate string `yaml:"global_header_template"`
	FooterTemplate string `yaml:"global_footer_template"`

	Coins map[string]*CoinProfile `yaml:"-"`
}

// DefaultSettings returns the stock global configuration.
func DefaultSettings() *Settings {
	return &Settings{
		Enabled:               true,
		KidFriendlyMode:       true,
		MaxMessageLength:      MaxTelegramMessageLength,
		Quiet:                 QuietHours{Enabled: true, Start: 23, End: 7},
		DefaultScheduledHours: []int{9, 12, 18},
		HeaderTemplate:        "🔔 Notification Crypto {time_slot}",
		FooterTemplate:        "💡 N'investis jamais plus que ce que tu peux te permettre de perdre !",
		Coins:                 map[string]*CoinProfile{},
	}
}

// IsQuietHour reports whether the given hour falls inside the configured
// quiet window. A start >= end window wraps past midnight.
func (s *Settings) IsQuietHour(hour int) bool {
	if !s.Quiet.Enabled {
		return false
	}
	start, end := s.Quiet.Start, s.Quiet.End
	if start < end {
		return start <= hour && hour < end
	}
	return hour >= start || hour < end
}

// Profile returns the profile of a symbol. Unknown symbols get a freshly
// built default profile; the registry itself is never mutated by a lookup.
func (s *Settings) Profile(symbol string) *CoinProfile {
	if p, ok := s.Coins[symbol]; ok {
		return p
	}
	return s.DefaultProfile(symbol)
}

// DefaultProfile builds the profile used for symbols without explicit
// configuration: one schedule per default hour.
func (s *Settings) DefaultProfile(symbol string) *CoinProfile {
	profile := &CoinProfile{Symbol: symbol, Enabled: true}
	for _, hour := range s.DefaultScheduledHours {
		cfg := DefaultScheduleConfig(fmt.Sprintf("Notification %dh", hour), []int{hour})
		profile.Scheduled = append(profile.Scheduled, &cfg)
	}
	return profile
}
