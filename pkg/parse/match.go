package parse

import (
	"strings"

	"github.com/tcgtrack/tcg-price-tracker/pkg/catalog"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// MatchSet resolves a loose set reference to a catalog entry. An explicit
// code guess is tried first (canonicalized exact lookup); failing that, known
// set names are searched as whole substrings of the free text, longest name
// first. No fuzzy matching: results stay deterministic and explainable.
func MatchSet(
	cat *catalog.Catalog,
	codeGuess string,
	freeText string,
) (domain.CatalogSet, bool) {
	if codeGuess != "" {
		if s, ok := cat.SetByCode(codeGuess); ok {
			return s, ok
		}
	}

	padded := " " + freeText + " "
	for _, s := range cat.SetsByNameLength() {
		name := Normalize(s.Name)
		if name == "" {
			continue
		}
		if strings.Contains(padded, " "+name+" ") {
			return s, true
		}
	}

	return domain.CatalogSet{}, false
}

// MatchCard resolves the remaining free text to a catalog card. With a
// resolved set and a card-number guess the lookup is exact; otherwise the
// longest known card name appearing in the text wins. Equal-length ties
// prefer a card from the resolved set, then catalog order, and are recorded
// as a diagnostic.
func MatchCard(
	cat *catalog.Catalog,
	set *domain.CatalogSet,
	cardNumberGuess string,
	freeText string,
) (domain.CatalogCard, bool, []string) {
	if set != nil && cardNumberGuess != "" {
		if card, ok := cat.CardByNumber(set.Code, cardNumberGuess); ok {
			return card, true, nil
		}
	}

	candidates := cat.Cards()
	if set != nil {
		candidates = cat.CardsInSet(set.Code)
	}

	padded := " " + freeText + " "

	var (
		best    []domain.CatalogCard
		bestLen int
	)
	for _, card := range candidates {
		name := Normalize(card.Name)
		if name == "" || !strings.Contains(padded, " "+name+" ") {
			continue
		}
		switch {
		case len(name) > bestLen:
			best = best[:0]
			best = append(best, card)
			bestLen = len(name)
		case len(name) == bestLen:
			best = append(best, card)
		}
	}

	if len(best) == 0 {
		return domain.CatalogCard{}, false, nil
	}

	winner := best[0]
	var diags []string
	if len(best) > 1 {
		// Prefer a card sharing the resolved set before falling back to
		// catalog order.
		if set != nil {
			for _, card := range best {
				if card.SetCode == set.Code {
					winner = card
					break
				}
			}
		}
		diags = append(diags, "ambiguous card name match: "+winner.Name)
	}

	return winner, true, diags
}
