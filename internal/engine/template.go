// ABOUTME: Suggestion template rendering with {token} substitution.
// ABOUTME: Unresolved tokens are stripped; Sanitize is idempotent.
package engine

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{[a-z_]+\}`)

// RenderTemplate substitutes {token} placeholders from vars, then
// sanitizes the result.
func RenderTemplate(tpl string, vars map[string]string) string {
	out := tpl
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return Sanitize(out)
}

// Sanitize strips any leftover {token} literals and collapses the
// whitespace they leave behind. Sanitizing already-clean text is a
// no-op, so display layers can apply it unconditionally.
func Sanitize(s string) string {
	out := tokenPattern.ReplaceAllString(s, "")
	for strings.Contains(out, "  ") {
		out = strings.ReplaceAll(out, "  ", " ")
	}
	out = strings.ReplaceAll(out, " .", ".")
	out = strings.ReplaceAll(out, " ,", ",")
	return strings.TrimSpace(out)
}
