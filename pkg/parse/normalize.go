// Package parse implements the classification and normalization engine for
// trading-card listing titles. Each extractor is a stateless function over
// normalized text; the Classifier composes them against a catalog snapshot.
package parse

import (
	"regexp"
	"strings"
)

// identifierToken matches tokens that look like set codes or card numbers
// ("op01", "op-01", "op01-121"). These survive normalization verbatim so the
// downstream extractors can find them.
var identifierToken = regexp.MustCompile(`^[a-z]{2,5}-?\d{2,3}(-\d{2,4})?$`)

// noisePhrases is the stoplist of marketing filler removed from titles.
// Multi-word phrases come first so their single-word fragments don't survive.
var noisePhrases = []string{
	"fast shipping",
	"free shipping",
	"ships fast",
	"near mint",
	"in hand",
	"us seller",
	"nm",
	"mint",
	"english",
	"eng",
	"authentic",
	"official",
}

const punctCutset = "!\"#$%&'()*+,./:;<=>?@[\\]^_`{|}~-"

// Normalize lowercases a title, strips punctuation runs and marketing noise,
// and collapses whitespace. Identifier-looking tokens are kept verbatim.
// Normalize is idempotent; empty input yields empty output.
func Normalize(title string) string {
	fields := strings.Fields(strings.ToLower(title))

	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if identifierToken.MatchString(tok) {
			tokens = append(tokens, tok)
			continue
		}
		tok = strings.Trim(tok, punctCutset)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}

	s := strings.Join(tokens, " ")
	s = stripNoise(s)
	return strings.TrimSpace(s)
}

// stripNoise removes whole-word stoplist phrases, repeating until stable so
// removal never exposes a fresh match it then misses.
func stripNoise(s string) string {
	for {
		before := s
		padded := " " + s + " "
		for _, phrase := range noisePhrases {
			padded = strings.ReplaceAll(padded, " "+phrase+" ", " ")
		}
		s = strings.TrimSpace(padded)
		s = strings.Join(strings.Fields(s), " ")
		if s == before {
			return s
		}
	}
}
