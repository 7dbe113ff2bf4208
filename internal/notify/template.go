package notify

import (
	"fmt"
	"regexp"
	"strings"
)

var templateVarPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// RenderTemplate substitutes {name} placeholders in a user template. A
// variable the caller did not supply is replaced with a visible "[name?]"
// marker instead of failing, so a malformed template degrades the message
// rather than dropping it.
func RenderTemplate(template string, vars map[string]string) string {
	return templateVarPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		return fmt.Sprintf("[%s?]", name)
	})
}

// CheckEmphasisBalance reports whether Markdown emphasis characters pair up.
// An odd count means the message will render with a dangling marker; callers
// log it as a warning and send anyway.
func CheckEmphasisBalance(message string) bool {
	return strings.Count(message, "*")%2 == 0 && strings.Count(message, "_")%2 == 0
}
