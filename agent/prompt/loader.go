package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/concierge.txt
var conciergeRaw string

// Concierge returns the trimmed system prompt for the concierge agent.
// The embed is compile-time; this is safe to call concurrently.
func Concierge() string {
	return strings.TrimSpace(conciergeRaw)
}
