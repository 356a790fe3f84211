package parse

import (
	"regexp"
	"strings"
)

// cardNumberPattern matches structured card identifiers in normalized text:
// letters(2-5), optional separator, digits(2-3), separator, digits(2-4).
// Examples: "op01-121", "st09-005", "eb01-012", "op-01-121".
var cardNumberPattern = regexp.MustCompile(`\b([a-z]{2,5})-?(\d{2,3})-(\d{2,4})\b`)

// setCodePattern matches a standalone set-code token ("op01", "op-01") that
// is not part of a full card number.
var setCodePattern = regexp.MustCompile(`\b([a-z]{2,5})-?(\d{2,3})\b`)

// CardNumberMatch is the result of scanning a title for a card identifier.
// Extras holds further candidates in reading order; titles are assumed to
// lead with the identifying code, so the first candidate wins.
type CardNumberMatch struct {
	SetCode    string // canonical, e.g. "OP01"
	CardNumber string // canonical, e.g. "OP01-121"
	Extras     []string
}

// ExtractCardNumber scans normalized text for card-number tokens. It
// validates format only; existence in the catalog is the set matcher's job.
func ExtractCardNumber(normalized string) (CardNumberMatch, bool) {
	matches := cardNumberPattern.FindAllStringSubmatch(normalized, -1)
	if len(matches) == 0 {
		return CardNumberMatch{}, false
	}

	first := matches[0]
	m := CardNumberMatch{
		SetCode:    canonicalFromParts(first[1], first[2]),
		CardNumber: canonicalFromParts(first[1], first[2]) + "-" + first[3],
	}

	for _, extra := range matches[1:] {
		m.Extras = append(m.Extras, canonicalFromParts(extra[1], extra[2])+"-"+extra[3])
	}

	return m, true
}

// ExtractSetCode scans normalized text for a bare set-code token. Full card
// numbers also qualify; their set-code prefix is returned. Used by the
// sealed path, where packaging often prints the set code without a card
// sequence.
func ExtractSetCode(normalized string) (string, bool) {
	m := setCodePattern.FindStringSubmatch(normalized)
	if m == nil {
		return "", false
	}
	return canonicalFromParts(m[1], m[2]), true
}

func canonicalFromParts(letters, digits string) string {
	return strings.ToUpper(letters) + digits
}
