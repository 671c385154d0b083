// Package unsplash fetches random cover images from the Unsplash API with a
// single blocking call per request.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.unsplash.com"

// ErrNotConfigured is returned when no access key was supplied.
var ErrNotConfigured = errors.New("unsplash access key is not configured")

// Client calls the random-photo endpoint.
type Client struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client. An empty key disables the feature without
// failing startup.
func NewClient(accessKey string) *Client {
	return &Client{
		accessKey:  accessKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type randomPhotoResponse struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

// RandomPhotoURL returns the regular-size URL of a random photo matching the
// query.
func (c *Client) RandomPhotoURL(ctx context.Context, query string) (string, error) {
	if c.accessKey == "" {
		return "", ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/photos/random?query=%s&client_id=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(c.accessKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash: unexpected status %d", resp.StatusCode)
	}

	var parsed randomPhotoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding unsplash response: %w", err)
	}
	if parsed.URLs.Regular == "" {
		return "", errors.New("unsplash: response missing image URL")
	}
	return parsed.URLs.Regular, nil
}
