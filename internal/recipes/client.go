package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const DefaultCatalogURL = "https://dummyjson.com/recipes"

// ErrMalformedPayload is returned when the catalog body is not the expected shape.
var ErrMalformedPayload = errors.New("malformed catalog payload")

// Recipe is the subset of catalog fields required by the app.
type Recipe struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Cuisine      string   `json:"cuisine"`
	Tags         []string `json:"tags"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`

	Difficulty      string  `json:"difficulty,omitempty"`
	Servings        int     `json:"servings,omitempty"`
	PrepTimeMinutes int     `json:"prepTimeMinutes,omitempty"`
	CookTimeMinutes int     `json:"cookTimeMinutes,omitempty"`
	Rating          float64 `json:"rating,omitempty"`
}

// HasTag reports exact, case-sensitive membership of tag in r.Tags.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type catalogResponse struct {
	Recipes *[]Recipe `json:"recipes"`
}

type Client struct {
	catalogURL string
	http       *http.Client
}

// NewClient builds a catalog client. A nil httpClient gets a client without a
// timeout; the caller bounds the request through ctx when it wants one.
func NewClient(catalogURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if strings.TrimSpace(catalogURL) == "" {
		catalogURL = DefaultCatalogURL
	}
	return &Client{
		catalogURL: strings.TrimRight(catalogURL, "/"),
		http:       httpClient,
	}
}

func (c *Client) ListRecipes(ctx context.Context) ([]Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.catalogURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list recipes request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("list recipes failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode recipes response: %w: %v", ErrMalformedPayload, err)
	}
	if payload.Recipes == nil {
		return nil, fmt.Errorf("decode recipes response: %w: missing recipes list", ErrMalformedPayload)
	}
	return *payload.Recipes, nil
}
