package notify

import "strings"

// TruncationMarker is appended to any message cut down to fit the length cap.
const TruncationMarker = "[truncated]"

// Truncate cuts a message down to at most limit runes, preferring to cut at
// the latest paragraph break before the cap, then the latest line break, then
// the latest word boundary, and only then mid-text. The cut never lands
// inside a multi-byte rune or an open HTML tag, and the marker is always
// appended to a shortened message.
func Truncate(message string, limit int) string {
	runes := []rune(message)
	if len(runes) <= limit {
		return message
	}

	// Room for "\n\n" + marker inside the cap.
	reserve := len([]rune(TruncationMarker)) + 2
	cut := limit - reserve
	if cut < 1 {
		cut = 1
	}
	prefix := string(runes[:cut])

	if idx := strings.LastIndex(prefix, "\n\n"); idx > 0 {
		prefix = prefix[:idx]
	} else if idx := strings.LastIndexByte(prefix, '\n'); idx > 0 {
		prefix = prefix[:idx]
	} else if idx := strings.LastIndexByte(prefix, ' '); idx > 0 {
		prefix = prefix[:idx]
	}

	// Never leave an unterminated HTML tag at the cut point.
	if open := strings.LastIndexByte(prefix, '<'); open > strings.LastIndexByte(prefix, '>') && open >= 0 {
		prefix = prefix[:open]
	}

	prefix = strings.TrimRight(prefix, " \n")
	return prefix + "\n\n" + TruncationMarker
}
