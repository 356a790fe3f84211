package parse

import (
	"strconv"
	"strings"

	"github.com/tcgtrack/tcg-price-tracker/pkg/catalog"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// GradingMatch is the result of scanning a title for a grading signal.
// Diagnostics is populated even when no usable (company, grade) pair is
// found, e.g. for a company mention with no grade nearby.
type GradingMatch struct {
	Company     string // canonical company code, e.g. "PSA"
	Grade       float64
	Diagnostics []string
}

// ExtractGrading scans normalized text for a grading-company alias and an
// associated numeric grade. Both "psa 10" and "psa10" forms are accepted;
// the grade must sit in the token immediately before or after the alias.
//
// A company mention without a valid grade is not an error: the match is
// absent and a diagnostic records the mention, so "psa graded lot" titles
// are not misclassified as graded singles.
func ExtractGrading(cat *catalog.Catalog, normalized string) (GradingMatch, bool) {
	tokens := strings.Fields(normalized)

	type mention struct {
		company string
		grade   float64
		graded  bool
	}

	var mentions []mention
	for i, tok := range tokens {
		gc, rest, ok := companyToken(cat, tok)
		if !ok {
			continue
		}

		m := mention{company: gc.Code}

		// Concatenated form first ("psa10"), then the adjacent tokens.
		if rest != "" {
			if g, ok := parseGrade(rest); ok && gc.ValidGrade(g) {
				m.grade, m.graded = g, true
			}
		} else {
			if g, ok := gradeAt(tokens, i+1); ok && gc.ValidGrade(g) {
				m.grade, m.graded = g, true
			} else if g, ok := gradeAt(tokens, i-1); ok && gc.ValidGrade(g) {
				m.grade, m.graded = g, true
			}
		}

		mentions = append(mentions, m)
	}

	if len(mentions) == 0 {
		return GradingMatch{}, false
	}

	// First mention by position wins; the rest are recorded as ambiguity.
	var diags []string
	for _, m := range mentions[1:] {
		diags = append(diags, "ambiguous grading mention: "+m.company)
	}

	winner := mentions[0]
	if !winner.graded {
		diags = append(diags, "grading company without grade: "+winner.company)
		return GradingMatch{Diagnostics: diags}, false
	}

	return GradingMatch{
		Company:     winner.company,
		Grade:       winner.grade,
		Diagnostics: diags,
	}, true
}

// companyToken resolves a token against the grading alias index. It returns
// the trailing remainder for concatenated forms ("psa10" -> rest "10");
// tokens that merely start with an alias but continue with letters do not
// count.
func companyToken(
	cat *catalog.Catalog,
	tok string,
) (domain.CatalogGradingCompany, string, bool) {
	if c, found := cat.CompanyByAlias(tok); found {
		return c, "", true
	}

	// Concatenated alias+digits form.
	idx := strings.IndexFunc(tok, func(r rune) bool { return r >= '0' && r <= '9' })
	if idx <= 0 {
		return domain.CatalogGradingCompany{}, "", false
	}
	c, found := cat.CompanyByAlias(tok[:idx])
	if !found {
		return domain.CatalogGradingCompany{}, "", false
	}
	return c, tok[idx:], true
}

func gradeAt(tokens []string, i int) (float64, bool) {
	if i < 0 || i >= len(tokens) {
		return 0, false
	}
	return parseGrade(tokens[i])
}

func parseGrade(tok string) (float64, bool) {
	g, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return g, true
}
