// Package nasa fetches Astronomy Picture of the Day records from the NASA
// public API.
package nasa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the APOD endpoint.
	DefaultBaseURL = "https://api.nasa.gov/planetary/apod"

	// DefaultAPIKey is NASA's rate-limited demo credential, usable without
	// registration.
	DefaultAPIKey = "DEMO_KEY"

	// DateLayout is the wire format for date keys.
	DateLayout = "2006-01-02"
)

// MediaType discriminates the two record variants the API serves.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Picture is one day's record. Copyright is empty for public-domain
// pictures.
type Picture struct {
	Title       string
	Date        string
	Explanation string
	URL         string
	Copyright   string
	Media       MediaType
}

// APIError is a non-2xx response from the API, carrying the
// server-provided message when the body had one.
type APIError struct {
	Date       string
	StatusCode int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apod %s: %s", e.Date, e.Msg)
}

type apodResponse struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	MediaType   string `json:"media_type"`
	Copyright   string `json:"copyright"`
}

type errorResponse struct {
	Msg string `json:"msg"`
}

// Client calls the APOD API.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBaseURL overrides the API endpoint. Tests point this at a local
// server.
func WithBaseURL(raw string) Option {
	return func(c *Client) { c.baseURL = raw }
}

// NewClient creates a client. An empty apiKey falls back to DefaultAPIKey.
func NewClient(apiKey string, opts ...Option) *Client {
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}
	c := &Client{
		http:    http.DefaultClient,
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Today returns the current local date key.
func Today() string {
	return time.Now().Format(DateLayout)
}

// Picture fetches the record for date. Every failure mode - transport
// errors, non-2xx statuses, bodies that do not decode into a full record -
// comes back as an error naming the date; nothing panics past this
// boundary. Semantic date validity ("date out of range") is the server's
// call and surfaces as an *APIError.
func (c *Client) Picture(ctx context.Context, date string) (*Picture, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("date", date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("apod %s: %w", date, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apod %s: %w", date, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp, date)
	}

	var body apodResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("apod %s: decode response: %w", date, err)
	}
	return buildPicture(date, body)
}

// apiError extracts the server's message from an error body, synthesizing
// one when the body is not the documented shape.
func (c *Client) apiError(resp *http.Response, date string) error {
	apiErr := &APIError{
		Date:       date,
		StatusCode: resp.StatusCode,
		Msg:        fmt.Sprintf("HTTP error, status %d", resp.StatusCode),
	}

	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Msg != "" {
		apiErr.Msg = body.Msg
	}
	return apiErr
}

// buildPicture validates required fields before constructing the record so
// a malformed response never produces a partially populated Picture.
func buildPicture(date string, body apodResponse) (*Picture, error) {
	for _, f := range []struct{ name, value string }{
		{"title", body.Title},
		{"date", body.Date},
		{"explanation", body.Explanation},
		{"url", body.URL},
	} {
		if f.value == "" {
			return nil, fmt.Errorf("apod %s: %w: missing %q", date, errMalformed, f.name)
		}
	}

	media := MediaImage
	if body.MediaType == "video" {
		media = MediaVideo
	}

	return &Picture{
		Title:       body.Title,
		Date:        body.Date,
		Explanation: body.Explanation,
		URL:         body.URL,
		Copyright:   body.Copyright,
		Media:       media,
	}, nil
}

var errMalformed = errors.New("malformed response")

// IsMalformed reports whether err is a response that decoded but was
// missing required record fields.
func IsMalformed(err error) bool {
	return errors.Is(err, errMalformed)
}
