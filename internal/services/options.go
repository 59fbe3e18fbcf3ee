package services

import (
	"encoding/json"
	"strings"
)

// ParseOptions turns an author-supplied option string into an ordered choice
// list. Input starting with "[" is read as a JSON array; a malformed literal
// yields nil rather than an error so a typo never blocks survey authoring.
// Anything else is comma-split with each piece trimmed and blanks dropped.
// Order is preserved; it is the display order of the choice widget.
func ParseOptions(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var out []string
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil
		}
		return out
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
