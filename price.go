package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// priceClient fetches the current Bitcoin USD price from a CoinDesk-style
// JSON endpoint.
type priceClient struct {
	url  string
	http *http.Client
}

func newPriceClient(cfg PriceConfig) *priceClient {
	return &priceClient{
		url:  cfg.APIURL,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// FetchUSD performs one blocking price lookup. Network failures, non-2xx
// responses and malformed payloads are distinct errors.
func (c *priceClient) FetchUSD(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("price API returned HTTP %d", resp.StatusCode)
	}

	var payload struct {
		BPI struct {
			USD struct {
				RateFloat *float64 `json:"rate_float"`
			} `json:"USD"`
		} `json:"bpi"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("parsing price response: %w", err)
	}
	if payload.BPI.USD.RateFloat == nil {
		return 0, fmt.Errorf("price response missing bpi.USD.rate_float")
	}

	return *payload.BPI.USD.RateFloat, nil
}
