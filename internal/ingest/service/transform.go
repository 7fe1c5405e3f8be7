package service

import (
	"regexp"
	"strings"
	"time"
)

var actorRe = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)$`)

// parseActor splits the export's "Display Name (id)" actor format. A
// bare value without parentheses is a name with no key.
func parseActor(value string) (id, name string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ""
	}
	if m := actorRe.FindStringSubmatch(value); m != nil {
		return m[2], strings.TrimSpace(m[1])
	}
	return "", value
}

var timestampLayouts = []string{
	"01-02-2006 15:04:05",
	"2006-01-02 15:04:05",
}

// parseTimestamp accepts the export's MM-DD-YYYY form with an ISO-ish
// fallback; anything else is absence, not an error.
func parseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
