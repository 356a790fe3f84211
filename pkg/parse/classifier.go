package parse

import (
	"errors"
	"strings"

	"github.com/tcgtrack/tcg-price-tracker/pkg/catalog"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// ErrMissingTitle marks a malformed raw listing (empty title). It is the only
// condition under which no parsed record is produced; everything else
// degrades to diagnostics on the record.
var ErrMissingTitle = errors.New("raw listing has empty title")

// Classifier derives a structured ParsedListing from a raw listing title by
// composing the extractors and resolving their fragments against one catalog
// snapshot. Classification is pure and deterministic: the same title and the
// same snapshot always yield the same record.
type Classifier struct {
	cat *catalog.Catalog
}

// NewClassifier creates a Classifier over the given catalog snapshot.
func NewClassifier(cat *catalog.Catalog) *Classifier {
	return &Classifier{cat: cat}
}

// Catalog returns the snapshot this classifier resolves against.
func (c *Classifier) Catalog() *catalog.Catalog {
	return c.cat
}

// Classify parses one raw listing. All three extractors always run; the
// decision policy then applies in strict priority order: Graded > Sealed >
// Raw > Unknown. Grading and sealed keywords outrank a card-number token
// because sealed packaging often prints set codes, and a graded slab still
// names a card.
func (c *Classifier) Classify(raw *domain.RawListing) (*domain.ParsedListing, error) {
	if strings.TrimSpace(raw.Title) == "" {
		return nil, ErrMissingTitle
	}

	cleaned := Normalize(raw.Title)

	out := &domain.ParsedListing{
		OriginalTitle: raw.Title,
		CleanedTitle:  cleaned,
	}

	num, numOK := ExtractCardNumber(cleaned)
	grading, gradingOK := ExtractGrading(c.cat, cleaned)
	sealedType, sealedOK := ExtractSealed(cleaned)

	for _, extra := range num.Extras {
		out.Diagnostics = append(out.Diagnostics, "additional card number candidate: "+extra)
	}
	out.Diagnostics = append(out.Diagnostics, grading.Diagnostics...)

	switch {
	case gradingOK:
		c.classifyGraded(out, &grading, &num, numOK)
	case sealedOK:
		c.classifySealed(out, sealedType, &num, numOK)
	case numOK:
		c.classifyRaw(out, &num)
	default:
		c.classifyUnknown(out, &grading)
	}

	return out, nil
}

// classifyGraded fills a graded record. Set and card fields are attached
// best-effort: a graded card still names a card, but their absence does not
// change the product type.
func (c *Classifier) classifyGraded(
	out *domain.ParsedListing,
	grading *GradingMatch,
	num *CardNumberMatch,
	numOK bool,
) {
	out.ProductType = domain.ProductGraded
	out.GradingCompany = grading.Company
	grade := grading.Grade
	out.Grade = &grade

	text := c.residualText(out.CleanedTitle)

	set, setOK := MatchSet(c.cat, num.SetCode, text)
	if setOK {
		out.SetCode = set.Code
	}

	var setRef *domain.CatalogSet
	if setOK {
		setRef = &set
	}

	card, cardOK, diags := MatchCard(c.cat, setRef, num.CardNumber, text)
	out.Diagnostics = append(out.Diagnostics, diags...)

	switch {
	case cardOK:
		out.CardName = card.Name
		out.SetCode = card.SetCode
		out.CardNumber = card.CardNumber
	case numOK:
		// Keep the extracted number even when the catalog has no such card.
		out.CardNumber = num.CardNumber
		out.Diagnostics = append(out.Diagnostics, "unresolved card: "+num.CardNumber)
	}

	out.Confidence = gradeConfidence(out, setOK, cardOK, numOK)
}

// classifySealed fills a sealed record: sealed type plus a set resolved from
// whatever identifier token or set name is present. Card fields stay empty.
func (c *Classifier) classifySealed(
	out *domain.ParsedListing,
	sealedType domain.SealedType,
	num *CardNumberMatch,
	numOK bool,
) {
	out.ProductType = domain.ProductSealed
	out.SealedType = sealedType

	codeGuess := num.SetCode
	if !numOK {
		if code, ok := ExtractSetCode(out.CleanedTitle); ok {
			codeGuess = code
		}
	}

	set, setOK := MatchSet(c.cat, codeGuess, c.residualText(out.CleanedTitle))
	if setOK {
		out.SetCode = set.Code
		out.Confidence = domain.ConfidenceHigh
	} else {
		out.Diagnostics = append(out.Diagnostics, "unresolved set")
		out.Confidence = domain.ConfidenceLow
	}

	if hasAmbiguity(out.Diagnostics) && out.Confidence == domain.ConfidenceHigh {
		out.Confidence = domain.ConfidenceMedium
	}
}

// classifyRaw fills a raw single-card record from a validated card number.
func (c *Classifier) classifyRaw(out *domain.ParsedListing, num *CardNumberMatch) {
	out.ProductType = domain.ProductRaw
	out.CardNumber = num.CardNumber

	text := c.residualText(out.CleanedTitle)

	set, setOK := MatchSet(c.cat, num.SetCode, text)
	if !setOK {
		out.Diagnostics = append(out.Diagnostics, "unresolved set: "+num.SetCode)
		out.Confidence = domain.ConfidenceLow
		return
	}
	out.SetCode = set.Code

	card, cardOK, diags := MatchCard(c.cat, &set, num.CardNumber, text)
	out.Diagnostics = append(out.Diagnostics, diags...)

	if cardOK {
		out.CardName = card.Name
		out.CardNumber = card.CardNumber
		out.Confidence = domain.ConfidenceHigh
	} else {
		// Type is determined but the name falls back to the cleaned title.
		out.Diagnostics = append(out.Diagnostics, "unresolved card name")
		out.Confidence = domain.ConfidenceMedium
	}

	if hasAmbiguity(out.Diagnostics) && out.Confidence == domain.ConfidenceHigh {
		out.Confidence = domain.ConfidenceMedium
	}
}

// classifyUnknown terminates with the Unknown type: a valid classification,
// not an error. Diagnostics explain which signals were absent.
func (c *Classifier) classifyUnknown(out *domain.ParsedListing, grading *GradingMatch) {
	out.ProductType = domain.ProductUnknown
	out.Confidence = domain.ConfidenceLow

	if len(grading.Diagnostics) == 0 {
		out.Diagnostics = append(out.Diagnostics, "no grading signal")
	}
	out.Diagnostics = append(out.Diagnostics,
		"no card number candidate",
		"no sealed keyword",
	)
}

// residualText strips tokens already consumed by the grading and sealed
// extractors so they cannot interfere with name matching.
func (c *Classifier) residualText(cleaned string) string {
	padded := " " + cleaned + " "

	if phrase := sealedPhrase(cleaned); phrase != "" {
		padded = strings.ReplaceAll(padded, " "+phrase+" ", " ")
	}

	tokens := strings.Fields(padded)
	kept := tokens[:0]
	for i := 0; i < len(tokens); i++ {
		if _, rest, ok := companyToken(c.cat, tokens[i]); ok {
			// Skip the alias token and, for the split form, the grade token
			// beside it.
			if rest == "" && i+1 < len(tokens) {
				if _, isNum := parseGrade(tokens[i+1]); isNum {
					i++
				}
			}
			continue
		}
		kept = append(kept, tokens[i])
	}

	return strings.Join(kept, " ")
}

// gradeConfidence assigns confidence for graded records.
func gradeConfidence(
	out *domain.ParsedListing,
	setOK, cardOK, numOK bool,
) domain.Confidence {
	if hasAmbiguity(out.Diagnostics) {
		return domain.ConfidenceMedium
	}
	// A card-number token was present but never resolved: degraded.
	if numOK && !cardOK {
		return domain.ConfidenceMedium
	}
	// Identifier-free slab titles that still resolved nothing are fine as
	// long as nothing contradicted the grading signal.
	if !numOK && !setOK && !cardOK {
		return domain.ConfidenceMedium
	}
	return domain.ConfidenceHigh
}

func hasAmbiguity(diags []string) bool {
	for _, d := range diags {
		if strings.HasPrefix(d, "ambiguous") || strings.HasPrefix(d, "additional") {
			return true
		}
	}
	return false
}
