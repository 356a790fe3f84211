package ebay

// Wire types for the Finding API JSON response format. The API wraps every
// field in a single-element array, including scalars.

type findCompletedItemsResponse struct {
	Body []findingResponseBody `json:"findCompletedItemsResponse"`
}

type findingResponseBody struct {
	Ack              []string           `json:"ack"`
	ErrorMessage     []errorMessage     `json:"errorMessage"`
	SearchResult     []searchResult     `json:"searchResult"`
	PaginationOutput []paginationOutput `json:"paginationOutput"`
}

type errorMessage struct {
	Error []apiError `json:"error"`
}

type apiError struct {
	ErrorID []string `json:"errorId"`
	Message []string `json:"message"`
}

type searchResult struct {
	Count string `json:"@count"`
	Items []Item `json:"item"`
}

type paginationOutput struct {
	PageNumber   []string `json:"pageNumber"`
	TotalPages   []string `json:"totalPages"`
	TotalEntries []string `json:"totalEntries"`
}

// Item is one completed-listing entry from the Finding API.
type Item struct {
	ItemID        []string        `json:"itemId"`
	Title         []string        `json:"title"`
	ViewItemURL   []string        `json:"viewItemURL"`
	SellingStatus []sellingStatus `json:"sellingStatus"`
	ShippingInfo  []shippingInfo  `json:"shippingInfo"`
	ListingInfo   []listingInfo   `json:"listingInfo"`
}

type sellingStatus struct {
	CurrentPrice []money `json:"currentPrice"`
}

type shippingInfo struct {
	ShippingServiceCost []money  `json:"shippingServiceCost"`
	ShippingType        []string `json:"shippingType"`
}

type listingInfo struct {
	EndTime []string `json:"endTime"`
}

type money struct {
	CurrencyID string `json:"@currencyId"`
	Value      string `json:"__value__"`
}

// first returns the single element of a Finding API array-wrapped scalar.
func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
