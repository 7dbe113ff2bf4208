package notify

import (
	"strings"
	"testing"
)

func TestRenderTemplate_SubstitutesKnownVariables(t *testing.T) {
	got := RenderTemplate("🔔 {time_slot} - Mise à jour {symbol}", map[string]string{
		"time_slot": "matin",
		"symbol":    "BTC",
	})

	want := "🔔 matin - Mise à jour BTC"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderTemplate_MissingVariableGetsPlaceholder(t *testing.T) {
	got := RenderTemplate("Prix de {symbol}: {missing}€", map[string]string{"symbol": "BTC"})

	if !strings.Contains(got, "BTC") {
		t.Errorf("Expected supplied variable to be substituted, got %q", got)
	}
	if !strings.Contains(got, "[missing?]") {
		t.Errorf("Expected visible placeholder for missing variable, got %q", got)
	}
}

func TestRenderTemplate_NilVars(t *testing.T) {
	got := RenderTemplate("Salut {name}", nil)
	if got != "Salut [name?]" {
		t.Errorf("Expected placeholder with nil vars, got %q", got)
	}
}

func TestRenderTemplate_LeavesUnbalancedBracesAlone(t *testing.T) {
	got := RenderTemplate("oops {symbol", map[string]string{"symbol": "BTC"})
	if got != "oops {symbol" {
		t.Errorf("Expected malformed template to pass through, got %q", got)
	}
}

func TestCheckEmphasisBalance(t *testing.T) {
	if !CheckEmphasisBalance("du texte **gras** et _italique_") {
		t.Error("Expected paired markers to balance")
	}
	if CheckEmphasisBalance("du texte **gras* cassé") {
		t.Error("Expected odd asterisk count to be unbalanced")
	}
}
