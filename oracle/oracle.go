// Package oracle resolves stock symbols to current market prices. The
// default source scrapes a public quote page; an optional Redis-backed
// decorator caches results between lookups.
package oracle

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownSymbol means the quote page yielded no parsable price
	// for the requested symbol.
	ErrUnknownSymbol = errors.New("unknown stock symbol")
	// ErrUnavailable means the quote site could not be reached.
	ErrUnavailable = errors.New("stock quote service unavailable")
)

// PriceSource resolves a symbol to its current price in integer cents.
type PriceSource interface {
	CurrentPrice(symbol string) (int64, error)
}

// lastSaleSelector matches the quote page node carrying the day's
// last-sale price, e.g. <div id="qwidget_lastsale">$123.45</div>.
const lastSaleSelector = "#qwidget_lastsale"

// QuoteScraper fetches prices by scraping the quote page at
// <baseURL>/<symbol>.
type QuoteScraper struct {
	baseURL string
	client  *http.Client
}

func NewQuoteScraper(baseURL string) *QuoteScraper {
	return &QuoteScraper{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CurrentPrice scrapes the last-sale price for symbol and returns it
// in integer cents.
func (q *QuoteScraper) CurrentPrice(symbol string) (int64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	resp, err := q.client.Get(q.baseURL + "/" + strings.ToLower(symbol))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: quote page returned %s", ErrUnavailable, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	lastSale := strings.TrimSpace(doc.Find(lastSaleSelector).First().Text())
	if lastSale == "" {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	cents, err := parseQuote(lastSale)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrUnknownSymbol, symbol, err)
	}
	return cents, nil
}

// parseQuote converts a dollar quote such as "$1,234.567" to integer
// cents, rounding half up.
func parseQuote(s string) (int64, error) {
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("unparsable quote %q", s)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
