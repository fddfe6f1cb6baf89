package omdb

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client represents an OMDb API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new OMDb client.
// An empty API key is accepted; OMDb rejects such requests with 401, which
// surfaces as *HTTPError.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the endpoint the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchMovies searches titles matching query. Pages start at 1.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))

	c.logger.Debug().
		Str("query", query).
		Int("page", page).
		Msg("Searching OMDb")

	resp, err := FetchJSON[SearchResponse](ctx, c.httpClient, c.buildURL(params))
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetMovieByID fetches the full record for an IMDb identifier
func (c *Client) GetMovieByID(ctx context.Context, id string) (*MovieDetails, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}

	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "full")

	c.logger.Debug().Str("id", id).Msg("Fetching OMDb title")

	details, err := FetchJSON[MovieDetails](ctx, c.httpClient, c.buildURL(params))
	if err != nil {
		return nil, err
	}

	return &details, nil
}

// buildURL adds the API key to params and appends them to the base URL
func (c *Client) buildURL(params url.Values) string {
	params.Set("apikey", c.apiKey)

	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return c.baseURL + sep + params.Encode()
}
