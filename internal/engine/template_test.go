// ABOUTME: Tests for suggestion template rendering and sanitization.
// ABOUTME: Sanitize must be idempotent so display layers can reapply it.
package engine

import "testing"

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		vars map[string]string
		want string
	}{
		{
			"substitutes token",
			"Work around {hotspot} today.",
			map[string]string{"hotspot": "left knee"},
			"Work around left knee today.",
		},
		{
			"strips unresolved token",
			"{event} is this week. Stay sharp.",
			nil,
			"is this week. Stay sharp.",
		},
		{
			"strips mid-sentence token cleanly",
			"Taper for {event} starts now.",
			map[string]string{},
			"Taper for starts now.",
		},
		{
			"no tokens",
			"Go train hard.",
			map[string]string{"hotspot": "unused"},
			"Go train hard.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderTemplate(tt.tpl, tt.vars); got != tt.want {
				t.Errorf("RenderTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"Work around {hotspot} today.",
		"Already clean text.",
		"Double  spaces and {token} leftovers , see .",
		"",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitizeCollapsesWhitespace(t *testing.T) {
	got := Sanitize("Taper for {event} now.")
	if got != "Taper for now." {
		t.Errorf("Sanitize() = %q, want %q", got, "Taper for now.")
	}
}
