package tcgapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TierPrices holds the market pricing block for one price tier.
type TierPrices struct {
	Low    *float64 `json:"low"`
	Mid    *float64 `json:"mid"`
	High   *float64 `json:"high"`
	Market *float64 `json:"market"`
}

// TCGPlayer models the tcgplayer section of a card payload. Price tiers are
// keyed by name (holofoil, normal, reverseHolofoil) and any subset may be
// present for a given printing.
type TCGPlayer struct {
	URL    string                `json:"url"`
	Prices map[string]TierPrices `json:"prices"`
}

// Images holds the artwork URLs for a card.
type Images struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

// Set describes the expansion a card belongs to.
type Set struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Card represents a single card record from the remote catalog service.
// HP arrives as a string in the wire format.
type Card struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HP        string    `json:"hp"`
	Types     []string  `json:"types"`
	Subtypes  []string  `json:"subtypes"`
	Rarity    string    `json:"rarity"`
	Set       Set       `json:"set"`
	Images    Images    `json:"images"`
	TCGPlayer TCGPlayer `json:"tcgplayer"`
}

// cardResponse models the single-card envelope returned by /cards/{id}.
type cardResponse struct {
	Data *Card `json:"data"`
}

// SearchResponse models the paginated envelope returned by /cards?q=.
type SearchResponse struct {
	Data       []Card `json:"data"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	Count      int    `json:"count"`
	TotalCount int    `json:"totalCount"`
}

// Fetcher defines the card catalog operations used by the resolver.
type Fetcher interface {
	GetCard(ctx context.Context, id string) (*Card, error)
	SearchCards(ctx context.Context, name, setName string) (*SearchResponse, error)
}

// Client provides access to the remote card catalog API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a card catalog client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tcg api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tcg base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// GetCard fetches a card by its canonical identifier.
func (c *Client) GetCard(ctx context.Context, id string) (*Card, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("card id must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/cards/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("parse card url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card fetch returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload cardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode card response: %w", err)
	}
	if payload.Data == nil {
		return nil, errors.New("card response missing data")
	}
	return payload.Data, nil
}

// SearchCards performs an exact-match search by card name and set name. Both
// values are embedded in a quoted query term and transport-escaped, so spaces
// and embedded quotes never corrupt the query string.
func (c *Client) SearchCards(ctx context.Context, name, setName string) (*SearchResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("card name must not be empty")
	}
	setName = strings.TrimSpace(setName)

	endpoint, err := url.Parse(c.baseURL + "/cards")
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	params := url.Values{}
	query := fmt.Sprintf("name:%q", name)
	if setName != "" {
		query += fmt.Sprintf(" set.name:%q", setName)
	}
	params.Set("q", query)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &payload, nil
}
