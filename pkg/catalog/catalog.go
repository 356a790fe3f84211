// Package catalog provides the immutable reference catalog of known sets,
// cards, and grading companies that parsed listing fragments resolve against.
//
// A Catalog is built once and never mutated; reloads replace the whole value
// through a Provider so in-flight parses keep the snapshot they started with.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// Build errors.
var (
	ErrDuplicateSet     = errors.New("duplicate set code")
	ErrDuplicateCard    = errors.New("duplicate card number")
	ErrUnknownSetCode   = errors.New("card references unknown set")
	ErrDuplicateAlias   = errors.New("grading alias claimed twice")
	ErrInvalidGradeSpan = errors.New("invalid grade range")
)

// Catalog is a read-only index over the reference data.
type Catalog struct {
	sets       map[string]domain.CatalogSet // canonical code -> set
	setsByLen  []domain.CatalogSet          // longest name first, then code
	cards      map[string]domain.CatalogCard
	cardsBySet map[string][]domain.CatalogCard
	cardList   []domain.CatalogCard // catalog iteration order
	companies  []domain.CatalogGradingCompany
	aliases    map[string]domain.CatalogGradingCompany
}

// CanonicalSetCode strips separators and uppercases a set code so that
// "OP-01", "op01", and "OP01" all compare equal.
func CanonicalSetCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r == '-' || r == '_' || r == '.' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// CanonicalCardNumber uppercases a card number and normalizes its separator
// to a single hyphen ("op01 121" -> "OP01-121").
func CanonicalCardNumber(number string) string {
	n := strings.ToUpper(strings.TrimSpace(number))
	n = strings.ReplaceAll(n, "_", "-")
	n = strings.ReplaceAll(n, " ", "-")
	for strings.Contains(n, "--") {
		n = strings.ReplaceAll(n, "--", "-")
	}
	return n
}

// Build constructs a Catalog from static reference tables. The input slices
// are copied; the result shares no state with the caller.
func Build(
	sets []domain.CatalogSet,
	cards []domain.CatalogCard,
	companies []domain.CatalogGradingCompany,
) (*Catalog, error) {
	c := &Catalog{
		sets:       make(map[string]domain.CatalogSet, len(sets)),
		cards:      make(map[string]domain.CatalogCard, len(cards)),
		cardsBySet: make(map[string][]domain.CatalogCard),
		aliases:    make(map[string]domain.CatalogGradingCompany),
	}

	for _, s := range sets {
		key := CanonicalSetCode(s.Code)
		if key == "" {
			return nil, fmt.Errorf("set %q: empty canonical code", s.Code)
		}
		if _, exists := c.sets[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSet, s.Code)
		}
		s.Code = key
		c.sets[key] = s
		c.setsByLen = append(c.setsByLen, s)
	}

	// Longest set name first so that substring matching prefers the most
	// specific name; ties broken by code for determinism.
	sort.SliceStable(c.setsByLen, func(i, j int) bool {
		a, b := c.setsByLen[i], c.setsByLen[j]
		if len(a.Name) != len(b.Name) {
			return len(a.Name) > len(b.Name)
		}
		return a.Code < b.Code
	})

	for _, card := range cards {
		setKey := CanonicalSetCode(card.SetCode)
		if _, ok := c.sets[setKey]; !ok {
			return nil, fmt.Errorf("%w: %s (card %s)", ErrUnknownSetCode, card.SetCode, card.CardNumber)
		}
		card.SetCode = setKey
		card.CardNumber = CanonicalCardNumber(card.CardNumber)

		key := cardKey(setKey, card.CardNumber)
		if _, exists := c.cards[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, card.CardNumber)
		}
		c.cards[key] = card
		c.cardsBySet[setKey] = append(c.cardsBySet[setKey], card)
		c.cardList = append(c.cardList, card)
	}

	for _, gc := range companies {
		if gc.MinGrade >= gc.MaxGrade {
			return nil, fmt.Errorf("%w: %s (%.1f-%.1f)", ErrInvalidGradeSpan, gc.Code, gc.MinGrade, gc.MaxGrade)
		}
		for _, alias := range gc.Aliases {
			key := strings.ToLower(alias)
			if _, exists := c.aliases[key]; exists {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateAlias, alias)
			}
			c.aliases[key] = gc
		}
		c.companies = append(c.companies, gc)
	}

	return c, nil
}

func cardKey(setCode, cardNumber string) string {
	return setCode + "|" + cardNumber
}

// SetByCode looks up a set by its code, tolerating separator and case
// differences.
func (c *Catalog) SetByCode(code string) (domain.CatalogSet, bool) {
	s, ok := c.sets[CanonicalSetCode(code)]
	return s, ok
}

// SetsByNameLength returns all sets ordered longest name first. The order is
// fixed at build time so matching over it is deterministic.
func (c *Catalog) SetsByNameLength() []domain.CatalogSet {
	return c.setsByLen
}

// CardByNumber looks up a card by set code and card number.
func (c *Catalog) CardByNumber(setCode, cardNumber string) (domain.CatalogCard, bool) {
	card, ok := c.cards[cardKey(CanonicalSetCode(setCode), CanonicalCardNumber(cardNumber))]
	return card, ok
}

// CardsInSet returns the cards of one set in catalog order.
func (c *Catalog) CardsInSet(setCode string) []domain.CatalogCard {
	return c.cardsBySet[CanonicalSetCode(setCode)]
}

// Cards returns every card in catalog order.
func (c *Catalog) Cards() []domain.CatalogCard {
	return c.cardList
}

// Companies returns the known grading companies.
func (c *Catalog) Companies() []domain.CatalogGradingCompany {
	return c.companies
}

// CompanyByAlias resolves a grading-company alias token (case-insensitive).
func (c *Catalog) CompanyByAlias(alias string) (domain.CatalogGradingCompany, bool) {
	gc, ok := c.aliases[strings.ToLower(alias)]
	return gc, ok
}

// NumSets returns the number of sets in the catalog.
func (c *Catalog) NumSets() int { return len(c.sets) }

// NumCards returns the number of cards in the catalog.
func (c *Catalog) NumCards() int { return len(c.cardList) }
