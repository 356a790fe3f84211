// Package domain defines the core business types for tcg-price-tracker.
package domain

import (
	"time"
)

// ProductType represents the category of a trading-card listing.
type ProductType string

// Product type constants.
const (
	ProductRaw     ProductType = "raw"
	ProductGraded  ProductType = "graded"
	ProductSealed  ProductType = "sealed"
	ProductUnknown ProductType = "unknown"
)

// Confidence indicates how fully a parsed record's fields were resolved
// against the reference catalog.
type Confidence string

// Confidence constants.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// SealedType represents the canonical form of an unopened retail unit.
type SealedType string

// Sealed type constants.
const (
	SealedBoosterBox    SealedType = "booster_box"
	SealedBoosterPack   SealedType = "booster_pack"
	SealedStarterDeck   SealedType = "starter_deck"
	SealedCollectionBox SealedType = "collection_box"
	SealedGiftSet       SealedType = "gift_set"
	SealedDisplay       SealedType = "display"
	SealedCase          SealedType = "case"
)

// RawListing is one scraped sold-listing record, exactly as persisted by the
// raw-storage collaborator. It is read-only input to the parsing engine.
type RawListing struct {
	Title         string    `json:"title"`
	Price         float64   `json:"price"`
	ShippingPrice *float64  `json:"shipping_price,omitempty"`
	SoldAt        time.Time `json:"sold_at"`
	SourceID      string    `json:"source_id"`
	SourceURL     string    `json:"source_url"`
}

// TotalPrice returns the sale price including shipping when known.
func (r *RawListing) TotalPrice() float64 {
	total := r.Price
	if r.ShippingPrice != nil {
		total += *r.ShippingPrice
	}
	return total
}

// ParsedListing is the structured record derived from a RawListing title.
// It is constructed once by the classifier and never mutated.
//
// Field presence follows the product type: Graded records always carry
// GradingCompany and Grade; Sealed records always carry SealedType; Unknown
// records carry nothing beyond the cleaned and original titles.
type ParsedListing struct {
	ProductType    ProductType `json:"product_type"`
	CardName       string      `json:"card_name,omitempty"`
	SetCode        string      `json:"set_code,omitempty"`
	CardNumber     string      `json:"card_number,omitempty"`
	GradingCompany string      `json:"grading_company,omitempty"`
	Grade          *float64    `json:"grade,omitempty"`
	SealedType     SealedType  `json:"sealed_type,omitempty"`
	CleanedTitle   string      `json:"cleaned_title"`
	OriginalTitle  string      `json:"original_title"`
	Confidence     Confidence  `json:"confidence"`
	Diagnostics    []string    `json:"diagnostics,omitempty"`
}

// Listing is the stored record: the raw listing fields joined with the parse
// result, keyed by the originating source ID.
type Listing struct {
	ID        string `json:"id"         db:"id"`
	SourceID  string `json:"source_id"  db:"source_id"`
	Title     string `json:"title"      db:"title"`
	SourceURL string `json:"source_url" db:"source_url"`

	// Pricing
	Price         float64   `json:"price"                    db:"price"`
	ShippingPrice *float64  `json:"shipping_price,omitempty" db:"shipping_price"`
	SoldAt        time.Time `json:"sold_at"                  db:"sold_at"`

	// Parse result
	ProductType    ProductType `json:"product_type"              db:"product_type"`
	CardName       string      `json:"card_name,omitempty"       db:"card_name"`
	SetCode        string      `json:"set_code,omitempty"        db:"set_code"`
	CardNumber     string      `json:"card_number,omitempty"     db:"card_number"`
	GradingCompany string      `json:"grading_company,omitempty" db:"grading_company"`
	Grade          *float64    `json:"grade,omitempty"           db:"grade"`
	SealedType     SealedType  `json:"sealed_type,omitempty"     db:"sealed_type"`
	CleanedTitle   string      `json:"cleaned_title"             db:"cleaned_title"`
	Confidence     Confidence  `json:"confidence"                db:"confidence"`
	Diagnostics    []string    `json:"diagnostics,omitempty"     db:"diagnostics"`

	// Timestamps
	FirstSeenAt time.Time `json:"first_seen_at" db:"first_seen_at"`
	UpdatedAt   time.Time `json:"updated_at"    db:"updated_at"`
}

// NewListing joins a raw listing with its parse result into a storable record.
func NewListing(raw *RawListing, parsed *ParsedListing) *Listing {
	return &Listing{
		SourceID:       raw.SourceID,
		Title:          raw.Title,
		SourceURL:      raw.SourceURL,
		Price:          raw.Price,
		ShippingPrice:  raw.ShippingPrice,
		SoldAt:         raw.SoldAt,
		ProductType:    parsed.ProductType,
		CardName:       parsed.CardName,
		SetCode:        parsed.SetCode,
		CardNumber:     parsed.CardNumber,
		GradingCompany: parsed.GradingCompany,
		Grade:          parsed.Grade,
		SealedType:     parsed.SealedType,
		CleanedTitle:   parsed.CleanedTitle,
		Confidence:     parsed.Confidence,
		Diagnostics:    parsed.Diagnostics,
	}
}

// TotalPrice returns the sale price including shipping when known.
func (l *Listing) TotalPrice() float64 {
	total := l.Price
	if l.ShippingPrice != nil {
		total += *l.ShippingPrice
	}
	return total
}

// CatalogSet is a themed card release identified by a short code.
type CatalogSet struct {
	Code        string     `json:"code"                   yaml:"code"`
	Name        string     `json:"name"                   yaml:"name"`
	ReleaseDate *time.Time `json:"release_date,omitempty" yaml:"release_date,omitempty"`
}

// CatalogCard is a single card within a set.
type CatalogCard struct {
	SetCode    string `json:"set_code"    yaml:"set_code"`
	CardNumber string `json:"card_number" yaml:"card_number"`
	Name       string `json:"name"        yaml:"name"`
	Rarity     string `json:"rarity"      yaml:"rarity"`
}

// CatalogGradingCompany is a known grading company with its recognized
// aliases and valid grade bounds.
type CatalogGradingCompany struct {
	Code     string   `json:"code"      yaml:"code"`
	Aliases  []string `json:"aliases"   yaml:"aliases"`
	MinGrade float64  `json:"min_grade" yaml:"min_grade"`
	MaxGrade float64  `json:"max_grade" yaml:"max_grade"`
}

// ValidGrade reports whether g is within the company's bounds on a
// half-point increment.
func (c *CatalogGradingCompany) ValidGrade(g float64) bool {
	if g < c.MinGrade || g > c.MaxGrade {
		return false
	}
	doubled := g * 2
	return doubled == float64(int(doubled))
}

// ParseStats summarizes parse outcomes across stored listings.
type ParseStats struct {
	Total         int            `json:"total"`
	ByProductType map[string]int `json:"by_product_type"`
	ByConfidence  map[string]int `json:"by_confidence"`
	WithDiags     int            `json:"with_diagnostics"`
}

// JobRun records a single execution of a scheduled job.
type JobRun struct {
	ID           string     `json:"id"                      db:"id"`
	JobName      string     `json:"job_name"                db:"job_name"`
	StartedAt    time.Time  `json:"started_at"              db:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"  db:"completed_at"`
	Status       string     `json:"status"                  db:"status"`
	ErrorText    string     `json:"error_text,omitempty"    db:"error_text"`
	RowsAffected *int       `json:"rows_affected,omitempty" db:"rows_affected"`
}
