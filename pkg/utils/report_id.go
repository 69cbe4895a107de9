package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateReportID creates a readable battle report ID.
// Format: {kind}-{slug(label)}-{8charHex}
//
// Example:
//   - Input: kind="battle", label="Lancer Mk II"
//   - Output: "battle-lancer-mk-ii-a3f8e2b1"
func GenerateReportID(kind, label string) string {
	slug := slugify(label)
	if slug == "" {
		return kind + "-" + generateShortUUID()
	}
	return kind + "-" + slug + "-" + generateShortUUID()
}

// slugify lowercases the label and collapses every run of non-alphanumerics into one hyphen.
//   - "Lancer Mk II" -> "lancer-mk-ii"
//   - "  --Anvil--  " -> "anvil"
func slugify(label string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
