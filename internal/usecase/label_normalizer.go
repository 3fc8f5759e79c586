package usecase

import (
	"regexp"
	"strings"
)

// Compiled regex patterns for label normalization
var (
	labelPunctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	labelSpacesRegex      = regexp.MustCompile(`\s+`)
)

// dutchStopWords are filler words stripped from shop labels before any
// table or canonical-set matching. Keep this list short: stripping too
// much merges categories that should stay apart.
var dutchStopWords = map[string]bool{
	"de":   true,
	"het":  true,
	"een":  true,
	"en":   true,
	"of":   true,
	"voor": true,
	"met":  true,
	"van":  true,
	"uit":  true,
	"bij":  true,
	"naar": true,
	"per":  true,
	"alle": true,
	"onze": true,
	"ons":  true,
}

// NormalizeLabel produces the canonical comparison form of a raw shop
// label or title: lowercase, punctuation to spaces, Dutch stop-words
// removed, whitespace collapsed.
func NormalizeLabel(raw string) string {
	cleaned := strings.ToLower(raw)
	cleaned = labelPunctuationRegex.ReplaceAllString(cleaned, " ")

	words := strings.Fields(cleaned)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if dutchStopWords[word] {
			continue
		}
		kept = append(kept, word)
	}

	cleaned = strings.Join(kept, " ")
	cleaned = labelSpacesRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// spaceFree returns the normalized form with all spaces removed, so
// "aardappel groente fruit" still hits "aardappel-groente-fruit" after
// that category itself is normalized.
func spaceFree(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
