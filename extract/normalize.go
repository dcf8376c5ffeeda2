package extract

import "strings"

// Normalize joins recognized fragments into the single search string the
// rules run over. Fragment order is kept; empty fragments are dropped.
func Normalize(fragments []string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
