package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"appresolve/internal/textutil"
)

// Record represents a single catalog entry as returned by search or lookup.
type Record struct {
	TrackID       int64    `json:"trackId"`
	TrackName     string   `json:"trackName"`
	BundleID      string   `json:"bundleId"`
	SellerName    string   `json:"sellerName"`
	ArtistName    string   `json:"artistName"`
	PrimaryGenre  string   `json:"primaryGenreName"`
	Genres        []string `json:"genres"`
	LanguageCodes []string `json:"languageCodesISO2A"`
	ReleaseDate   string   `json:"releaseDate"`
}

// Seller returns the seller name, falling back to the artist name when the
// catalog omits it.
func (r Record) Seller() string {
	return textutil.NonEmpty(r.SellerName, r.ArtistName)
}

// Response models the catalog search/lookup payload.
type Response struct {
	ResultCount int      `json:"resultCount"`
	Results     []Record `json:"results"`
}

// Searcher defines the catalog operations used by the resolver.
type Searcher interface {
	Search(ctx context.Context, term, country, language string, limit int) ([]Record, error)
	Lookup(ctx context.Context, id int64, country, language string) (*Record, error)
}

// Client provides access to the iTunes Search API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	pacer      *pacer
}

var _ Searcher = (*Client)(nil)

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

// WithPacing sets the minimum delay between consecutive calls to the same
// storefront. Zero disables pacing.
func WithPacing(delay time.Duration) Option {
	return func(c *Client) {
		c.pacer = newPacer(delay)
	}
}

// New creates a catalog client.
func New(baseURL, userAgent string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	if timeout <= 0 {
		return nil, errors.New("catalog timeout must be positive")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  strings.TrimSpace(userAgent),
		httpClient: &http.Client{Timeout: timeout},
		pacer:      newPacer(0),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search queries a storefront for software entries matching the term.
func (c *Client) Search(ctx context.Context, term, country, language string, limit int) ([]Record, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("search term must not be empty")
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("entity", "software")
	params.Set("media", "software")
	params.Set("country", country)
	if language != "" {
		params.Set("lang", language)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	payload, err := c.get(ctx, "/search", country, params)
	if err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// Lookup fetches the authoritative record for a track identifier from one
// storefront. Returns nil when the storefront has no entry for the id.
func (c *Client) Lookup(ctx context.Context, id int64, country, language string) (*Record, error) {
	if id <= 0 {
		return nil, errors.New("track id must be positive")
	}

	params := url.Values{}
	params.Set("id", strconv.FormatInt(id, 10))
	params.Set("entity", "software")
	params.Set("country", country)
	if language != "" {
		params.Set("lang", language)
	}

	payload, err := c.get(ctx, "/lookup", country, params)
	if err != nil {
		return nil, err
	}
	if payload.ResultCount == 0 || len(payload.Results) == 0 {
		return nil, nil
	}
	record := payload.Results[0]
	return &record, nil
}

func (c *Client) get(ctx context.Context, path, country string, params url.Values) (*Response, error) {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	if err := c.pacer.wait(ctx, country); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return &payload, nil
}
