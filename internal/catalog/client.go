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

	"cinescout/internal/media"
)

// Hit represents a single catalog match.
type Hit struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
}

// DisplayTitle returns the movie title or TV name, whichever is set.
func (h Hit) DisplayTitle() string {
	if strings.TrimSpace(h.Title) != "" {
		return h.Title
	}
	return h.Name
}

// Response models the TMDB paginated results envelope.
type Response struct {
	Page         int   `json:"page"`
	Results      []Hit `json:"results"`
	TotalPages   int   `json:"total_pages"`
	TotalResults int   `json:"total_results"`
}

// Detail carries the subset of a detail payload the resolver needs.
type Detail struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Name       string `json:"name"`
	PosterPath string `json:"poster_path"`
}

// StatusError reports a non-200 response from the catalog service.
type StatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s returned %d", e.Endpoint, e.StatusCode)
}

// Client provides raw access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

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

// WithTimeout overrides the default per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a catalog client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("catalog api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search queries the catalog for titles of the given kind.
func (c *Client) Search(ctx context.Context, query string, kind media.Kind) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("include_adult", "true")
	var payload Response
	if err := c.get(ctx, "/search/"+kind.String(), params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Details fetches the detail payload for a known catalog id.
func (c *Client) Details(ctx context.Context, id int64, kind media.Kind) (*Detail, error) {
	if id <= 0 {
		return nil, errors.New("id must be positive")
	}
	var payload Detail
	if err := c.get(ctx, fmt.Sprintf("/%s/%d", kind, id), url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Recommendations fetches titles related to the given catalog id.
func (c *Client) Recommendations(ctx context.Context, id int64, kind media.Kind) (*Response, error) {
	if id <= 0 {
		return nil, errors.New("id must be positive")
	}
	params := url.Values{}
	params.Set("page", "1")
	var payload Response
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/recommendations", kind, id), params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NowPlaying fetches the movies currently in theaters.
func (c *Client) NowPlaying(ctx context.Context) (*Response, error) {
	params := url.Values{}
	params.Set("page", "1")
	var payload Response
	if err := c.get(ctx, "/movie/now_playing", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DiscoverByGenre fetches popular titles of the given kind in a genre.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int64, kind media.Kind) (*Response, error) {
	if genreID <= 0 {
		return nil, errors.New("genre id must be positive")
	}
	params := url.Values{}
	params.Set("with_genres", strconv.FormatInt(genreID, 10))
	params.Set("sort_by", "popularity.desc")
	params.Set("page", "1")
	var payload Response
	if err := c.get(ctx, "/discover/"+kind.String(), params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse catalog url: %w", err)
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Endpoint: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
