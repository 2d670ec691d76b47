// Package ecb fetches the European Central Bank's daily reference
// exchange rates, the observations the engine's currency converter
// builds its cross rates from.
//
// The ECB quotes every currency against the euro: an observation for USD
// is the number of dollars one euro buys. The package therefore
// implements foliotrack.RateProvider with EUR as the reference currency.
package ecb

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PhDFlo/foliotrack/date"
)

// defaultBaseURL is the ECB data portal. Series keys follow the EXR
// dataflow: daily frequency, currency, euro denominator, spot rate.
const defaultBaseURL = "https://data-api.ecb.europa.eu/service/data/EXR"

// Client fetches daily reference rates. The zero value is not usable,
// call New.
type Client struct {
	http    *http.Client
	baseURL string
}

// New returns a Client with a daily-expiring disk cache, since the ECB
// publishes at most one observation per day.
func New() *Client {
	return &Client{http: daily(), baseURL: defaultBaseURL}
}

// NewWithBaseURL returns an uncached Client hitting the given base URL,
// for tests.
func NewWithBaseURL(base string) *Client {
	return &Client{http: new(http.Client), baseURL: base}
}

// Reference returns the ECB's quote currency.
func (c *Client) Reference() string { return "EUR" }

// RateAgainstReference returns how many units of 'currency' one euro
// bought on 'on' (zero date: the latest published observation).
func (c *Client) RateAgainstReference(currency string, on date.Date) (float64, error) {
	addr := fmt.Sprintf("%s/D.%s.EUR.SP00.A", c.baseURL, url.PathEscape(currency))
	query := url.Values{"format": {"csvdata"}}
	if on.IsZero() {
		query.Set("lastNObservations", "1")
	} else {
		query.Set("startPeriod", on.String())
		query.Set("endPeriod", on.String())
	}

	resp, err := c.http.Get(addr + "?" + query.Encode())
	if err != nil {
		return 0, fmt.Errorf("cannot reach ECB: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		// the portal answers 404 for unknown currencies and 204 for
		// dates with no observation (weekends, holidays)
		return 0, fmt.Errorf("no observation published")
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected ECB status %s", resp.Status)
	}

	return parseObservation(resp.Body)
}

// parseObservation extracts the last OBS_VALUE from an SDMX csvdata body.
func parseObservation(r io.Reader) (float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // the portal pads optional attribute columns

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("cannot parse ECB response: %w", err)
	}
	obsCol := -1
	for i, name := range header {
		if name == "OBS_VALUE" {
			obsCol = i
		}
	}
	if obsCol < 0 {
		return 0, fmt.Errorf("cannot parse ECB response: no OBS_VALUE column")
	}

	var last string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("cannot parse ECB response: %w", err)
		}
		if obsCol < len(record) {
			last = record[obsCol]
		}
	}
	if last == "" {
		return 0, fmt.Errorf("no observation published")
	}
	rate, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse ECB observation %q: %w", last, err)
	}
	return rate, nil
}
