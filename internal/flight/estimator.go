// Package flight talks to the external fare-estimate provider. The rest of
// the system only sees the Estimator interface; prices are advisory and an
// unavailable estimate is an expected answer, not an error condition for
// the caller.
package flight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"backend-tripnest/internal/itinerary"
)

var ErrUnavailable = errors.New("flight estimate unavailable")

type Estimate struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Estimator interface {
	Estimate(ctx context.Context, trip itinerary.Trip) (Estimate, error)
}

// Client queries the configured fare provider over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Estimate(ctx context.Context, trip itinerary.Trip) (Estimate, error) {
	if c.baseURL == "" || trip.AirportCode == "" || trip.StartDate == "" || trip.EndDate == "" {
		return Estimate{}, ErrUnavailable
	}

	q := url.Values{}
	q.Set("destination", trip.AirportCode)
	q.Set("depart", trip.StartDate)
	q.Set("return", trip.EndDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/fares?"+q.Encode(), nil)
	if err != nil {
		return Estimate{}, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Estimate{}, fmt.Errorf("%w: provider status %d", ErrUnavailable, resp.StatusCode)
	}

	var est Estimate
	if err := json.NewDecoder(resp.Body).Decode(&est); err != nil {
		return Estimate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if est.Amount <= 0 {
		return Estimate{}, ErrUnavailable
	}
	return est, nil
}
