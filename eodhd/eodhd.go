// Package eodhd implements the market-data provider on top of the
// EODHD.com API: the latest traded price from the real-time endpoint,
// and the security's declared currency and display name from the search
// endpoint.
package eodhd

import (
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/PaesslerAG/jsonpath"

	"github.com/PhDFlo/foliotrack"
)

const apiKeyEnv = "EODHD_API_KEY"

var apiKeyFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching prices from EODHD.com.\n If missing it will read the environment variable \""+apiKeyEnv+"\". You can get one at https://eodhd.com/")

// DemoKey is EODHD's public demo key; enough for a handful of tickers
// like MCD.US, and used by live tests.
const DemoKey = "demo"

func apiKey() string {
	if *apiKeyFlag == "" {
		*apiKeyFlag = os.Getenv(apiKeyEnv)
	}
	return *apiKeyFlag
}

const defaultBaseURL = "https://eodhd.com/api"

// Client fetches quotes from EODHD. It implements foliotrack.MarketData.
type Client struct {
	apiKey  string
	http    *http.Client
	baseURL string
}

// New returns a Client using the API key from the flag or environment.
func New() *Client {
	return &Client{apiKey: apiKey(), http: new(http.Client), baseURL: defaultBaseURL}
}

// NewWithBaseURL returns a Client hitting the given base URL, for tests.
func NewWithBaseURL(key, base string) *Client {
	return &Client{apiKey: key, http: new(http.Client), baseURL: base}
}

// Quote returns the latest price for a ticker, together with the
// currency and name the provider declares for it (best effort: a failed
// search leaves them empty rather than failing the quote).
func (c *Client) Quote(ticker string) (foliotrack.Quote, error) {
	price, err := c.latestPrice(ticker)
	if err != nil {
		return foliotrack.Quote{}, err
	}

	quote := foliotrack.Quote{Price: price}
	// currency and name are informative only
	if currency, name, err := c.describe(ticker); err == nil {
		quote.Currency = currency
		quote.Name = name
	}
	return quote, nil
}

// latestPrice hits the real-time endpoint and picks the close.
func (c *Client) latestPrice(ticker string) (float64, error) {
	addr := fmt.Sprintf("%s/real-time/%s?fmt=json&api_token=%s", c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.apiKey))

	var jobj any
	if err := jwget(c.http, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error retrieving %q: %w", ticker, err)
	}

	jval, err := jsonpath.Get("$.close", jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing quote for %q: %w", ticker, err)
	}
	price, ok := jval.(float64)
	if !ok || price <= 0 {
		// a halted or unknown ticker answers "NA"
		return 0, fmt.Errorf("no price for %q: got %v", ticker, jval)
	}
	return price, nil
}

// describe hits the search endpoint for the declared currency and name.
func (c *Client) describe(ticker string) (currency, name string, err error) {
	addr := fmt.Sprintf("%s/search/%s?limit=1&fmt=json&api_token=%s", c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.apiKey))

	var jobj any
	if err := jwget(c.http, addr, &jobj); err != nil {
		return "", "", fmt.Errorf("error searching %q: %w", ticker, err)
	}

	if jval, err := jsonpath.Get("$[0].Currency", jobj); err == nil {
		currency, _ = jval.(string)
	}
	if jval, err := jsonpath.Get("$[0].Name", jobj); err == nil {
		name, _ = jval.(string)
	}
	if currency == "" && name == "" {
		return "", "", fmt.Errorf("no match for %q", ticker)
	}
	return currency, name, nil
}

var _ foliotrack.MarketData = (*Client)(nil)
