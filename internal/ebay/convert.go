package ebay

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

var numberPattern = regexp.MustCompile(`[\d.]+`)

// soldDateLayouts covers the formats the API and scraped pages have been
// observed to use.
var soldDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006",
	"2 Jan 2006",
}

// ToRawListings converts Finding API items into raw listings. Items missing
// an ID, a title, or a parseable price are dropped; the second return value
// counts them.
func ToRawListings(items []Item) ([]domain.RawListing, int) {
	listings := make([]domain.RawListing, 0, len(items))
	skipped := 0
	for i := range items {
		l, ok := toRawListing(&items[i])
		if !ok {
			skipped++
			continue
		}
		listings = append(listings, l)
	}
	return listings, skipped
}

func toRawListing(item *Item) (domain.RawListing, bool) {
	l := domain.RawListing{
		SourceID:  first(item.ItemID),
		Title:     first(item.Title),
		SourceURL: first(item.ViewItemURL),
	}
	if l.SourceID == "" || l.Title == "" {
		return domain.RawListing{}, false
	}

	price, ok := priceOf(item)
	if !ok {
		return domain.RawListing{}, false
	}
	l.Price = price

	l.ShippingPrice = shippingOf(item)

	if len(item.ListingInfo) > 0 {
		if t, ok := ParseSoldDate(first(item.ListingInfo[0].EndTime)); ok {
			l.SoldAt = t
		}
	}

	return l, true
}

func priceOf(item *Item) (float64, bool) {
	if len(item.SellingStatus) == 0 || len(item.SellingStatus[0].CurrentPrice) == 0 {
		return 0, false
	}
	return ParsePrice(item.SellingStatus[0].CurrentPrice[0].Value)
}

func shippingOf(item *Item) *float64 {
	if len(item.ShippingInfo) == 0 {
		return nil
	}
	info := &item.ShippingInfo[0]

	if len(info.ShippingServiceCost) > 0 {
		if cost, ok := ParsePrice(info.ShippingServiceCost[0].Value); ok {
			return &cost
		}
	}

	// "Free" shipping types carry no cost element.
	if cost, ok := ParseShipping(first(info.ShippingType)); ok {
		return &cost
	}

	return nil
}

// ParsePrice parses a price string, tolerating currency symbols and
// thousands separators ("$1,234.56").
func ParsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseShipping parses a shipping cost from text like "+$5.15 delivery" or
// "Free delivery". Free shipping parses as zero.
func ParseShipping(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	if strings.Contains(strings.ToLower(text), "free") {
		return 0, true
	}
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseSoldDate parses a sold date, tolerating the API's ISO timestamps and
// the "Sold Jan 15, 2024" forms scraped pages use.
func ParseSoldDate(text string) (time.Time, bool) {
	cleaned := strings.TrimSpace(text)
	if after, found := strings.CutPrefix(cleaned, "Sold"); found {
		cleaned = strings.TrimSpace(after)
	}
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, layout := range soldDateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
