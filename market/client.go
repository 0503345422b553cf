// Package market fetches live stock prices from Alpha Vantage, with an
// optional cache in front.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrQuoteNotFound = errors.New("market: no quote for symbol")
	ErrUpstream      = errors.New("market: quote provider unavailable")
)

type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

// Client calls the Alpha Vantage GLOBAL_QUOTE endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// GlobalQuote returns the latest price of symbol.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+q.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("market: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if body.GlobalQuote.Price == "" {
		return decimal.Zero, ErrQuoteNotFound
	}

	price, err := decimal.NewFromString(body.GlobalQuote.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %q: %v", ErrUpstream, body.GlobalQuote.Price, err)
	}
	return price, nil
}
