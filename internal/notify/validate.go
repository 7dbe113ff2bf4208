package notify

import (
	"fmt"
	"strings"
)

// ValidationResult collects configuration problems without failing the load.
// Errors mean the configuration cannot be used as-is; warnings are suspicious
// but workable.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

func (r *ValidationResult) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// OK reports whether the configuration has no hard errors.
func (r *ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// ValidateSettings checks a loaded configuration: hour/day ranges, block name
// vocabulary, template brace balance, and overlapping schedules.
func ValidateSettings(s *Settings) ValidationResult {
	var result ValidationResult

	if s.MaxMessageLength <= 0 {
		result.errorf("notifications: max_message_length must be positive, got %d", s.MaxMessageLength)
	}
	validateHourRange(&result, "notifications.quiet_hours.start", s.Quiet.Start)
	validateHourRange(&result, "notifications.quiet_hours.end", s.Quiet.End)
	for _, hour := range s.DefaultScheduledHours {
		validateHourRange(&result, "notifications.default_scheduled_hours", hour)
	}
	validateTemplate(&result, "notifications.global_header_template", s.HeaderTemplate)
	validateTemplate(&result, "notifications.global_footer_template", s.FooterTemplate)

	for symbol, profile := range s.Coins {
		validateProfile(&result, symbol, profile)
	}

	return result
}

func validateProfile(result *ValidationResult, symbol string, profile *CoinProfile) {
	seenHours := map[int]string{}

	for _, cfg := range profile.Scheduled {
		where := fmt.Sprintf("coins.%s.%s", symbol, cfg.Name)

		for _, hour := range cfg.Hours {
			validateHourRange(result, where+".hours", hour)
			if !cfg.Enabled {
				continue
			}
			if other, ok := seenHours[hour]; ok {
				// First match wins at runtime; the later schedule is dead
				// for this hour. Deliberate policy, worth surfacing.
				result.warnf("%s: hour %d is already covered by schedule %q, which will always win", where, hour, other)
			} else {
				seenHours[hour] = cfg.Name
			}
		}

		for _, day := range cfg.DaysOfWeek {
			if day < 0 || day > 6 {
				result.errorf("%s.days_of_week: day %d out of range 0-6", where, day)
			}
		}

		for _, name := range cfg.BlocksOrder {
			if name == orderHeader || name == orderFooter {
				continue
			}
			if _, err := ParseBlockKind(name); err != nil {
				result.errorf("%s.blocks_order: %s", where, err)
			}
		}

		validateTemplate(result, where+".header_message", cfg.HeaderMessage)
		validateTemplate(result, where+".footer_message", cfg.FooterMessage)
	}
}

func validateHourRange(result *ValidationResult, where string, hour int) {
	if hour < 0 || hour > 23 {
		result.errorf("%s: hour %d out of range 0-23", where, hour)
	}
}

func validateTemplate(result *ValidationResult, where, template string) {
	if strings.Count(template, "{") != strings.Count(template, "}") {
		result.warnf("%s: unbalanced braces in template %q", where, template)
	}
}
