package notify

import (
	"strings"
	"testing"
)

func TestTruncate_ShortMessageUntouched(t *testing.T) {
	msg := "court message"
	if got := Truncate(msg, 100); got != msg {
		t.Errorf("Expected message under the limit to pass through, got %q", got)
	}
}

func TestTruncate_LongMessageCutAtWordBoundary(t *testing.T) {
	msg := strings.Repeat("des mots séparés par des espaces ", 200)
	got := Truncate(msg, 100)

	if len([]rune(got)) > 150 {
		t.Errorf("Expected truncated message near the limit, got %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Errorf("Expected truncation marker at the end, got %q", got)
	}
	body := strings.TrimSuffix(got, "\n\n"+TruncationMarker)
	if !strings.HasPrefix(msg, body) {
		t.Errorf("Expected truncated body to be a prefix of the original, got %q", body)
	}
	// Cut at a word boundary: the preserved body must end on a full word.
	if strings.HasSuffix(body, " ") {
		t.Errorf("Expected trailing spaces to be trimmed, got %q", body)
	}
	rest := strings.TrimPrefix(msg, body)
	if !strings.HasPrefix(rest, " ") && rest != "" {
		t.Errorf("Expected the cut to land between words, remainder starts with %q", rest[:1])
	}
}

func TestTruncate_PrefersParagraphBoundary(t *testing.T) {
	msg := "premier paragraphe\n\ndeuxième paragraphe\n\n" + strings.Repeat("x", 500)
	got := Truncate(msg, 60)

	body := strings.TrimSuffix(got, "\n\n"+TruncationMarker)
	if body != "premier paragraphe\n\ndeuxième paragraphe" {
		t.Errorf("Expected cut at the latest paragraph break, got %q", body)
	}
}

func TestTruncate_FallsBackToLineBoundary(t *testing.T) {
	msg := "ligne une\nligne deux\n" + strings.Repeat("y", 500)
	got := Truncate(msg, 40)

	body := strings.TrimSuffix(got, "\n\n"+TruncationMarker)
	if body != "ligne une\nligne deux" {
		t.Errorf("Expected cut at the latest line break, got %q", body)
	}
}

func TestTruncate_HardCutWithoutBoundaries(t *testing.T) {
	msg := strings.Repeat("z", 500)
	got := Truncate(msg, 50)

	if len([]rune(got)) > 50 {
		t.Errorf("Expected hard cut to respect the limit, got %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Errorf("Expected truncation marker, got %q", got)
	}
}

func TestTruncate_NeverSplitsEmoji(t *testing.T) {
	msg := strings.Repeat("📈", 300)
	got := Truncate(msg, 100)

	body := strings.TrimSuffix(got, "\n\n"+TruncationMarker)
	for _, r := range body {
		if r == '�' {
			t.Fatal("Truncation produced a broken rune")
		}
	}
	if !strings.HasPrefix(msg, body) {
		t.Errorf("Expected emoji body to be a clean prefix of the original")
	}
}

func TestTruncate_DoesNotCutInsideHTMLTag(t *testing.T) {
	msg := strings.Repeat("a", 80) + "<b>important</b>" + strings.Repeat("b", 200)
	got := Truncate(msg, 95)

	body := strings.TrimSuffix(got, "\n\n"+TruncationMarker)
	if strings.Count(body, "<") != strings.Count(body, ">") {
		t.Errorf("Expected no dangling HTML tag after truncation, got %q", body)
	}
}
