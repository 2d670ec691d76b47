package eodhd

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// jwget gets the url and decodes the JSON response into jobj.
func jwget(client *http.Client, url string, jobj any) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("error getting %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error getting %q: status %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(jobj); err != nil {
		return fmt.Errorf("error decoding response from %q: %w", url, err)
	}
	return nil
}
