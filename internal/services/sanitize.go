package services

import "strings"

// Sanitize strips a markdown code fence (optionally tagged json) from
// model output. Applying it twice yields the same result, and it never
// fails: unfenced text passes through untouched.
func Sanitize(text string) string {
	t := strings.TrimSpace(text)
	for {
		stripped := stripFence(t)
		if stripped == t {
			return t
		}
		t = stripped
	}
}

func stripFence(t string) string {
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	// optional language tag on the opening fence
	lower := strings.ToLower(t)
	if strings.HasPrefix(lower, "json") {
		t = t[len("json"):]
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}
