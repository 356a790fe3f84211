package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderBySoldAt    = "sold_at"
	orderByPrice     = "price"
	orderByFirstSeen = "first_seen_at"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderBySoldAt:    "sold_at DESC NULLS LAST",
	orderByPrice:     "price ASC",
	orderByFirstSeen: "first_seen_at DESC",
}

const defaultOrderBy = "sold_at DESC NULLS LAST"

const baseListingsSelect = `SELECT id, source_id, title, source_url,
	price, shipping_price, sold_at,
	product_type, COALESCE(card_name, ''), COALESCE(set_code, ''), COALESCE(card_number, ''),
	COALESCE(grading_company, ''), grade, COALESCE(sealed_type, ''),
	cleaned_title, confidence, COALESCE(diagnostics, '{}'),
	first_seen_at, updated_at
FROM listings`

const countListingsSelect = "SELECT COUNT(*) FROM listings"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a listing
// query. It returns two SQL strings (one for the data query, one for the
// count query) and the positional parameters.
func (q *ListingQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	addFilter := func(expr string, val any) {
		conditions = append(conditions, fmt.Sprintf(expr, paramIdx))
		args = append(args, val)
		paramIdx++
	}

	if q.ProductType != nil {
		addFilter("product_type = $%d", *q.ProductType)
	}
	if q.SetCode != nil {
		addFilter("set_code = $%d", *q.SetCode)
	}
	if q.CardNumber != nil {
		addFilter("card_number = $%d", *q.CardNumber)
	}
	if q.GradingCompany != nil {
		addFilter("grading_company = $%d", *q.GradingCompany)
	}
	if q.Confidence != nil {
		addFilter("confidence = $%d", *q.Confidence)
	}
	if q.MinPrice != nil {
		addFilter("price >= $%d", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		addFilter("price <= $%d", *q.MaxPrice)
	}
	if q.SoldAfter != nil {
		addFilter("sold_at >= $%d", *q.SoldAfter)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseListingsSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countListingsSelect + whereClause

	return dataSQL, countSQL, args
}
