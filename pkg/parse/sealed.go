package parse

import (
	"strings"

	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// sealedRule maps a keyword phrase to its canonical sealed type.
type sealedRule struct {
	phrase string
	typ    domain.SealedType
}

// sealedRules is checked in order: specific phrases come before the general
// ones they contain, so "booster box" is decided before a bare "box".
var sealedRules = []sealedRule{
	{"booster box", domain.SealedBoosterBox},
	{"display box", domain.SealedDisplay},
	{"collection box", domain.SealedCollectionBox},
	{"gift set", domain.SealedGiftSet},
	{"gift collection", domain.SealedGiftSet},
	{"booster pack", domain.SealedBoosterPack},
	{"blister pack", domain.SealedBoosterPack},
	{"starter deck", domain.SealedStarterDeck},
	{"sealed case", domain.SealedCase},
	{"master case", domain.SealedCase},
	{"sealed box", domain.SealedBoosterBox},
	{"display", domain.SealedDisplay},
	{"case", domain.SealedCase},
	{"box", domain.SealedBoosterBox},
}

// ExtractSealed scans normalized text for sealed-product keywords and maps
// the first matching rule to its canonical type. Phrases match on whole
// words only.
func ExtractSealed(normalized string) (domain.SealedType, bool) {
	padded := " " + normalized + " "
	for _, rule := range sealedRules {
		if strings.Contains(padded, " "+rule.phrase+" ") {
			return rule.typ, true
		}
	}
	return "", false
}

// sealedPhrase returns the phrase that produced the given match so the
// classifier can strip it before card-name matching.
func sealedPhrase(normalized string) string {
	padded := " " + normalized + " "
	for _, rule := range sealedRules {
		if strings.Contains(padded, " "+rule.phrase+" ") {
			return rule.phrase
		}
	}
	return ""
}
