// Package normalizer cleans raw comment text ahead of sentiment
// classification. The pipeline is deterministic and order-sensitive: URLs and
// HTML are stripped before lowercasing so case-sensitive patterns still match,
// and stopwords are removed after lowercasing so the lookup is exact.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlRe     = regexp.MustCompile(`https?://[^\s]+|www\.[^\s]+`)
	htmlRe    = regexp.MustCompile(`<[^>]*>`)
	specialRe = regexp.MustCompile(`[^a-zA-Z0-9\s]+`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// Normalize runs the full cleanup pipeline over a single comment body.
// It is pure and total: any input produces a (possibly empty) string, and
// applying it to its own output is a no-op.
func Normalize(text string) string {
	text = urlRe.ReplaceAllString(text, " ")
	text = htmlRe.ReplaceAllString(text, " ")
	text = stripSymbols(text)
	text = specialRe.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	text = spaceRe.ReplaceAllString(text, " ")

	tokens := strings.Fields(text)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if stopwords[tok] {
			continue
		}
		lemma := Lemmatize(tok)
		if stopwords[lemma] {
			continue
		}
		kept = append(kept, lemma)
	}

	return strings.Join(kept, " ")
}

// stripSymbols drops emoji and other non-ASCII symbol runes. Remaining
// non-ASCII letters fall to the special-character pass.
func stripSymbols(text string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, text)
}

// Lemmatize reduces a token to a canonical root using plural suffix rules.
// The rules are chosen so the function is idempotent; verb inflection is
// deliberately left alone.
func Lemmatize(tok string) string {
	switch {
	case strings.HasSuffix(tok, "ies") && len(tok) > 4:
		return tok[:len(tok)-3] + "y"
	case strings.HasSuffix(tok, "sses"):
		return tok[:len(tok)-2]
	case strings.HasSuffix(tok, "xes"), strings.HasSuffix(tok, "ches"), strings.HasSuffix(tok, "shes"), strings.HasSuffix(tok, "zes"):
		return tok[:len(tok)-2]
	case strings.HasSuffix(tok, "s") && len(tok) > 3 &&
		!strings.HasSuffix(tok, "ss") && !strings.HasSuffix(tok, "us") && !strings.HasSuffix(tok, "is"):
		return tok[:len(tok)-1]
	default:
		return tok
	}
}
