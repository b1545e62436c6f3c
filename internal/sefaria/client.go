// Package sefaria fetches the Hebrew text of Psalm 119 from the Sefaria
// text API.
package sefaria

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/FocuswithJustin/Tehillim119/core/errors"
	"github.com/FocuswithJustin/Tehillim119/core/psalm"
)

// DefaultBaseURL is the Sefaria API root.
const DefaultBaseURL = "https://www.sefaria.org"

// psalm119Path requests Psalm 119 in Hebrew with no surrounding context.
const psalm119Path = "/api/texts/Psalms.119?lang=he&context=0"

// Client provides HTTP access to the Sefaria text API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %s", e.Status)
}

// NewClient creates a client against the public Sefaria API.
func NewClient() *Client {
	return NewClientWith(nil, "")
}

// NewClientWith creates a client with an explicit HTTP client and base URL.
// Nil and empty values fall back to defaults. Tests point baseURL at an
// httptest server.
func NewClientWith(hc *http.Client, baseURL string) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  "tehillim119/1.0",
	}
}

// textResponse is the subset of the Sefaria payload we consume.
type textResponse struct {
	He []string `json:"he"`
}

// FetchPsalm119 fetches the raw Hebrew verses of Psalm 119 in canonical
// order. The verses may still contain HTML markup and parsha markers; they
// are not cleaned here. Any transport error, non-success status, malformed
// payload, or a verse count other than 176 fails the whole fetch; there is
// no partial success and no retry.
func (c *Client) FetchPsalm119(ctx context.Context) ([]string, error) {
	url := c.baseURL + psalm119Path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewFetch(url, "creating request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFetch(url, "executing request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, apperrors.NewFetch(url, resp.Status, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewFetch(url, "reading response", err)
	}

	var payload textResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.NewFetch(url, "malformed payload", err)
	}

	if len(payload.He) != psalm.VerseCount {
		return nil, apperrors.NewFetch(url, "wrong verse count",
			apperrors.NewVerseCount(len(payload.He), psalm.VerseCount))
	}

	return payload.He, nil
}
