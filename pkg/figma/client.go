package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	figmaAPIBase = "https://api.figma.com/v1"
	maxRetries   = 3
)

// Version of the figma-claude module.
const Version = "0.2.0"

// Client represents a Figma API client with configured HTTP settings for reliable communication
// with the Figma API. It includes retry logic and optimized transport settings for handling large files.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	retryDelay  time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API root (used by tests).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(base, "/") }
}

// WithRetryDelay sets the base delay between retries. Attempt n waits n*delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) { c.retryDelay = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new Figma API client with the provided personal access token.
// The client is configured with connection pooling, disabled HTTP/2 (for large file
// stability), and a 10-minute timeout for very large files.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     figmaAPIBase,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
		retryDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var fileKeyRe = regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$)`)

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
// The pattern is anchored so that look-alike domains are rejected.
func ExtractFileKey(figmaURL string) (string, error) {
	matches := fileKeyRe.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}
	return matches[1], nil
}

var (
	nodeIDQueryRe = regexp.MustCompile(`[?&]node-id=([^&#]*)`)
	nodeIDHashRe  = regexp.MustCompile(`#([0-9]+[:-][0-9]+(?:,\s*[0-9]+[:-][0-9]+)*)$`)
	nodeIDPathRe  = regexp.MustCompile(`/nodes/([^?#]+)`)
)

// ExtractNodeIDs returns the node IDs referenced by a Figma URL, in order and
// without duplicates. It understands the node-id query parameter, a #id fragment
// and a /nodes/id path. URL-style IDs (123-456) are normalized to API form (123:456).
// A URL without node references yields an empty slice.
func ExtractNodeIDs(figmaURL string) ([]string, error) {
	var raw string
	switch {
	case nodeIDQueryRe.MatchString(figmaURL):
		raw = nodeIDQueryRe.FindStringSubmatch(figmaURL)[1]
	case nodeIDPathRe.MatchString(figmaURL):
		raw = nodeIDPathRe.FindStringSubmatch(figmaURL)[1]
	case nodeIDHashRe.MatchString(figmaURL):
		raw = nodeIDHashRe.FindStringSubmatch(figmaURL)[1]
	default:
		return []string{}, nil
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("decode node ids %q: %w", raw, err)
	}

	ids := make([]string, 0)
	for _, part := range strings.Split(decoded, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		ids = append(ids, strings.Replace(id, "-", ":", 1))
	}
	return deduplicateNodeIDs(ids), nil
}

// deduplicateNodeIDs removes repeated IDs, keeping the first occurrence.
func deduplicateNodeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// GetFile retrieves complete file data including document structure, styles, metadata
// and shared plugin data.
func (c *Client) GetFile(ctx context.Context, fileKey string) (*FileResponse, error) {
	var fileResp FileResponse
	q := url.Values{"plugin_data": {"shared"}}
	if err := c.get(ctx, "/files/"+fileKey, q, &fileResp); err != nil {
		return nil, err
	}
	return &fileResp, nil
}

// GetFileNodes retrieves specific nodes (with shared plugin data) from a file.
func (c *Client) GetFileNodes(ctx context.Context, fileKey string, nodeIDs []string) (*NodesResponse, error) {
	var nodesResp NodesResponse
	q := url.Values{
		"ids":         {strings.Join(nodeIDs, ",")},
		"plugin_data": {"shared"},
	}
	if err := c.get(ctx, "/files/"+fileKey+"/nodes", q, &nodesResp); err != nil {
		return nil, err
	}
	return &nodesResp, nil
}

// GetImages asks the render API for image URLs of the given nodes.
func (c *Client) GetImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (*ImagesResponse, error) {
	var imgResp ImagesResponse
	q := url.Values{
		"ids":    {strings.Join(nodeIDs, ",")},
		"format": {format},
		"scale":  {strconv.FormatFloat(scale, 'f', -1, 64)},
	}
	if err := c.get(ctx, "/images/"+fileKey, q, &imgResp); err != nil {
		return nil, err
	}
	if imgResp.Err != "" {
		return nil, fmt.Errorf("render API error: %s", imgResp.Err)
	}
	return &imgResp, nil
}

// GetMe returns the user that owns the access token.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// get performs a GET and decodes the JSON body into out. It retries up to three
// times with linear backoff on transport errors, 429 and 5xx responses.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		body, status, err := c.do(ctx, endpoint)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("attempt %d failed: %w", attempt, err)
		case status != http.StatusOK:
			lastErr = fmt.Errorf("API request failed with status %d: %s", status, string(body))
			if status != http.StatusTooManyRequests && status < 500 {
				return lastErr
			}
		default:
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil
		}

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			}
		}
	}

	return lastErr
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Figma-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
