// Package main implements a mock eBay Finding API server for local
// development. It serves findCompletedItems responses built from a JSON
// fixture of sold listings, so ingestion can run without real eBay
// credentials. Response fields follow the Finding API convention of wrapping
// every value, scalars included, in a single-element array.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// fixtureListing is one sold listing in the fixture file.
type fixtureListing struct {
	ItemID   string  `json:"item_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Shipping float64 `json:"shipping"`
	SoldAt   string  `json:"sold_at"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/listings.json", "path to sold-listings fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	listings, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "listings", len(listings))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /services/search/FindingService/v1", findingHandler(logger, listings))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Finding API server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) ([]fixtureListing, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var listings []fixtureListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return listings, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func findingHandler(logger *slog.Logger, listings []fixtureListing) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if op := q.Get("OPERATION-NAME"); op != "findCompletedItems" {
			writeJSON(w, failureResponse(fmt.Sprintf("unsupported operation %q", op)))
			logger.Warn("unsupported operation", "operation", op)
			return
		}
		if q.Get("SECURITY-APPNAME") == "" {
			writeJSON(w, failureResponse("missing SECURITY-APPNAME"))
			logger.Warn("request missing app ID")
			return
		}

		keywords := strings.ToLower(q.Get("keywords"))
		entries := intParam(q.Get("paginationInput.entriesPerPage"), 100)
		page := intParam(q.Get("paginationInput.pageNumber"), 1)

		// Filter by keywords: every word must appear in the title.
		var matched []fixtureListing
		for _, l := range listings {
			if titleMatches(l.Title, keywords) {
				matched = append(matched, l)
			}
		}

		total := len(matched)
		totalPages := (total + entries - 1) / entries

		start := (page - 1) * entries
		if start > total {
			start = total
		}
		end := min(start+entries, total)
		pageItems := matched[start:end]

		items := make([]map[string]any, 0, len(pageItems))
		for _, l := range pageItems {
			items = append(items, wireItem(l))
		}

		writeJSON(w, map[string]any{
			"findCompletedItemsResponse": []map[string]any{{
				"ack": []string{"Success"},
				"searchResult": []map[string]any{{
					"@count": strconv.Itoa(len(items)),
					"item":   items,
				}},
				"paginationOutput": []map[string]any{{
					"pageNumber":   []string{strconv.Itoa(page)},
					"totalPages":   []string{strconv.Itoa(totalPages)},
					"totalEntries": []string{strconv.Itoa(total)},
				}},
			}},
		})
		logger.Info("findCompletedItems",
			"keywords", keywords,
			"matched", total,
			"returned", len(items),
			"page", page,
		)
	}
}

func titleMatches(title, keywords string) bool {
	if keywords == "" {
		return true
	}
	lower := strings.ToLower(title)
	for _, word := range strings.Fields(keywords) {
		if !strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

// wireItem renders one listing in the Finding API's array-wrapped format.
func wireItem(l fixtureListing) map[string]any {
	return map[string]any{
		"itemId":      []string{l.ItemID},
		"title":       []string{l.Title},
		"viewItemURL": []string{"https://www.ebay.com/itm/" + l.ItemID},
		"sellingStatus": []map[string]any{{
			"currentPrice": []map[string]string{{
				"@currencyId": "USD",
				"__value__":   strconv.FormatFloat(l.Price, 'f', 2, 64),
			}},
		}},
		"shippingInfo": []map[string]any{{
			"shippingServiceCost": []map[string]string{{
				"@currencyId": "USD",
				"__value__":   strconv.FormatFloat(l.Shipping, 'f', 2, 64),
			}},
			"shippingType": []string{"Flat"},
		}},
		"listingInfo": []map[string]any{{
			"endTime": []string{l.SoldAt},
		}},
	}
}

func failureResponse(msg string) map[string]any {
	return map[string]any{
		"findCompletedItemsResponse": []map[string]any{{
			"ack": []string{"Failure"},
			"errorMessage": []map[string]any{{
				"error": []map[string]any{{
					"errorId": []string{"2"},
					"message": []string{msg},
				}},
			}},
		}},
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}
