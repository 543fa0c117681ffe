// Package tmdb proxies the TMDB REST API. Responses are passed through to
// callers as raw JSON; nothing is cached or retried.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iris/movie-favorites-api/internal/config"
)

// ErrNotConfigured is returned when no API key is set. Detected at first use,
// not at startup.
var ErrNotConfigured = errors.New("TMDB API key not configured")

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.TMDBBaseURL,
		apiKey:  cfg.TMDBAPIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	return c.get(ctx, "/search/movie", params)
}

// MovieDetails fetches a movie by its TMDB ID. appendToResponse is an optional
// comma-separated list of extra sections (e.g. "credits,videos,images").
func (c *Client) MovieDetails(ctx context.Context, movieID int, appendToResponse string) (json.RawMessage, error) {
	params := url.Values{}
	if appendToResponse != "" {
		params.Set("append_to_response", appendToResponse)
	}
	return c.get(ctx, fmt.Sprintf("/movie/%d", movieID), params)
}

func (c *Client) MovieCredits(ctx context.Context, movieID int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/movie/%d/credits", movieID), url.Values{})
}

func (c *Client) MovieVideos(ctx context.Context, movieID int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), url.Values{})
}

func (c *Client) MovieImages(ctx context.Context, movieID int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/movie/%d/images", movieID), url.Values{})
}

func (c *Client) MovieRecommendations(ctx context.Context, movieID, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.get(ctx, fmt.Sprintf("/movie/%d/recommendations", movieID), params)
}

func (c *Client) MovieSimilar(ctx context.Context, movieID, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.get(ctx, fmt.Sprintf("/movie/%d/similar", movieID), params)
}

func (c *Client) MovieReviews(ctx context.Context, movieID, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return c.get(ctx, fmt.Sprintf("/movie/%d/reviews", movieID), params)
}

type upstreamError struct {
	StatusMessage string `json:"status_message"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	params.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TMDB request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("TMDB request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var upstream upstreamError
		if json.Unmarshal(body, &upstream) == nil && upstream.StatusMessage != "" {
			return nil, fmt.Errorf("TMDB request failed: %s", upstream.StatusMessage)
		}
		return nil, fmt.Errorf("TMDB request failed: status %d", resp.StatusCode)
	}

	return json.RawMessage(body), nil
}
