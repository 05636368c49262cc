// Package dedupe fingerprints card content so imports can tell which
// cards a remote deck already holds, regardless of cosmetic whitespace
// or casing differences.
package dedupe

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/hiten-shah0106/flashify/internal/domain"
)

// Normalize joins the card's question and answer after cleaning each
// side: trimmed, lowercased, line endings normalized. The newline join
// keeps "question"+"answer" from colliding with "questiona"+"nswer".
func Normalize(card domain.Card) string {
	clean := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}
	return clean(card.Question) + "\n" + clean(card.Answer)
}

// Hash returns the SHA-256 of the normalized card content as a hex
// string. Two cards with the same hash are the same card for import
// purposes.
func Hash(card domain.Card) string {
	sum := sha256.Sum256([]byte(Normalize(card)))
	return fmt.Sprintf("%x", sum)
}
