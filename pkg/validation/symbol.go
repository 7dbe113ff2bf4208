package validation

import (
	"fmt"
	"strings"
)

// ValidateSymbol validates a crypto ticker symbol (BTC, ETH, ...).
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}

	if len(symbol) > 12 {
		return fmt.Errorf("invalid symbol length: expected at most 12 characters, got %d", len(symbol))
	}

	for _, r := range symbol {
		isUpper := r >= 'A' && r <= 'Z'
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		if !isUpper && !isLower && !isDigit {
			return fmt.Errorf("invalid symbol %q: only letters and digits are allowed", symbol)
		}
	}

	return nil
}

// NormalizeSymbol converts a symbol to its canonical uppercase form.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateAndNormalizeSymbol validates a symbol and returns its normalized form.
func ValidateAndNormalizeSymbol(symbol string) (string, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return "", err
	}
	return NormalizeSymbol(symbol), nil
}
