// Package fares talks to the external flight-fares API: resolving free-text
// route labels to IATA codes and looking up the observed best price for a
// route on a given travel date.
package fares

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrLocationNotFound is returned when a label cannot be resolved to a
// routable location. This is the pipeline's only hard user-facing error.
var ErrLocationNotFound = errors.New("location not found")

// LocationResolver resolves a free-text departure/arrival label to an IATA code.
type LocationResolver interface {
	ResolveLocation(ctx context.Context, label string) (string, error)
}

// PriceProvider returns the observed best price for a route on a travel date.
// ok is false when the API has no observation for that date.
type PriceProvider interface {
	BestPrice(ctx context.Context, origin, destination string, date time.Time) (price float64, ok bool, err error)
}

// Client is an HTTP client for the fares API using OAuth2 client credentials.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a fares API client.
func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()
	return nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.accessToken
	expired := time.Now().After(c.tokenExpiry)
	c.mu.Unlock()

	if token == "" || expired {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fares API error (%d): %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}

// ResolveLocation resolves a free-text label to the best-matching IATA code.
func (c *Client) ResolveLocation(ctx context.Context, label string) (string, error) {
	query := url.Values{}
	query.Set("keyword", label)
	query.Set("subType", "CITY,AIRPORT")

	var result struct {
		Data []struct {
			IataCode string `json:"iataCode"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/v1/reference-data/locations", query, &result); err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", label, err)
	}
	if len(result.Data) == 0 || result.Data[0].IataCode == "" {
		return "", fmt.Errorf("%w: %q", ErrLocationNotFound, label)
	}
	return result.Data[0].IataCode, nil
}

// BestPrice returns the lowest observed fare for the route on the given date.
func (c *Client) BestPrice(ctx context.Context, origin, destination string, date time.Time) (float64, bool, error) {
	query := url.Values{}
	query.Set("originIataCode", origin)
	query.Set("destinationIataCode", destination)
	query.Set("departureDate", date.Format("2006-01-02"))

	var result struct {
		Data []struct {
			PriceMetrics []struct {
				Amount          string `json:"amount"`
				QuartileRanking string `json:"quartileRanking"`
			} `json:"priceMetrics"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/v1/analytics/itinerary-price-metrics", query, &result); err != nil {
		return 0, false, err
	}
	if len(result.Data) == 0 || len(result.Data[0].PriceMetrics) == 0 {
		return 0, false, nil
	}

	for _, m := range result.Data[0].PriceMetrics {
		if m.QuartileRanking != "MINIMUM" {
			continue
		}
		price, err := strconv.ParseFloat(m.Amount, 64)
		if err != nil {
			return 0, false, fmt.Errorf("failed to parse price %q: %w", m.Amount, err)
		}
		return price, true, nil
	}
	return 0, false, nil
}
