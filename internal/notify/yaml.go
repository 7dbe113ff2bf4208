package notify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// notifications.yaml layout:
//
//	notifications:
//	  enabled: true
//	  kid_friendly_mode: true
//	  max_message_length: 4096
//	  default_scheduled_hours: [9, 12, 18]
//	  quiet_hours: {enabled: true, start: 23, end: 7}
//	  global_header_template: "..."
//	  global_footer_template: "..."
//	coins:
//	  BTC:
//	    enabled: true
//	    nickname: ...
//	    scheduled_notifications:
//	      - name: ...
//	        hours: [9]
//	        days_of_week: [0, 1, 2, 3, 4]
//	        blocks_order: [header, price, footer]
//	        price_block: {enabled: true, ...}
type fileDoc struct {
	Notifications *Settings               `yaml:"notifications"`
	Coins         map[string]*CoinProfile `yaml:"coins"`
}

// decodeWithDefaults decodes a YAML node over a pre-populated default value,
// so omitted keys keep their stock configuration instead of zeroing out.
func decodeWithDefaults[T any](value *yaml.Node, def T) (T, error) {
	if err := value.Decode(&def); err != nil {
		var zero T
		return zero, err
	}
	return def, nil
}

func (c *ScheduleConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain ScheduleConfig
	decoded, err := decodeWithDefaults(value, plain(DefaultScheduleConfig("", nil)))
	if err != nil {
		return err
	}
	*c = ScheduleConfig(decoded)
	return nil
}

func (p *CoinProfile) UnmarshalYAML(value *yaml.Node) error {
	type plain CoinProfile
	decoded, err := decodeWithDefaults(value, plain(CoinProfile{Enabled: true}))
	if err != nil {
		return err
	}
	*p = CoinProfile(decoded)
	return nil
}

func (s *Settings) UnmarshalYAML(value *yaml.Node) error {
	type plain Settings
	decoded, err := decodeWithDefaults(value, plain(*DefaultSettings()))
	if err != nil {
		return err
	}
	*s = Settings(decoded)
	return nil
}

// Parse decodes a notifications.yaml document.
func Parse(data []byte) (*Settings, error) {
	doc := fileDoc{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse notification config: %s", err)
	}

	settings := doc.Notifications
	if settings == nil {
		settings = DefaultSettings()
	}
	if settings.MaxMessageLength <= 0 || settings.MaxMessageLength > MaxTelegramMessageLength {
		settings.MaxMessageLength = MaxTelegramMessageLength
	}

	settings.Coins = map[string]*CoinProfile{}
	for symbol, profile := range doc.Coins {
		profile.Symbol = symbol
		settings.Coins[symbol] = profile
	}
	return settings, nil
}

// Load reads and decodes a notifications.yaml file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notification config: %s", err)
	}
	return Parse(data)
}

// Save writes the settings back to disk in the same document layout.
func Save(settings *Settings, path string) error {
	doc := fileDoc{Notifications: settings, Coins: settings.Coins}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to encode notification config: %s", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write notification config: %s", err)
	}
	return nil
}
