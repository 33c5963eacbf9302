package edinet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	// APIVersion is the EDINET API version the client speaks
	APIVersion = 2
	// DefaultBaseURL is the versioned API root
	DefaultBaseURL = "https://api.edinet-fsa.go.jp/api/v2/"

	apiKeyParam = "Subscription-Key"
)

// Client represents an EDINET API client
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new EDINET client. No request is made.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := url.Parse(o.baseURL); err != nil {
		return nil, fmt.Errorf("%w: base URL: %v", ErrInvalidConfig, err)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:    o.baseURL,
		apiKey:     apiKey,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		logger:     o.logger,
	}, nil
}

// String never includes the API key
func (c *Client) String() string {
	return fmt.Sprintf("edinet.Client{baseURL: %s, apiKey: [REDACTED]}", c.baseURL)
}

// BaseURL returns the API root requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a GET with the API key attached and returns the body
// of a 200 response. Other statuses become a *ResponseError; transport
// errors are returned as the HTTP client reported them.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("params", params.Encode()).
		Msg("Making EDINET API request")

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set(apiKeyParam, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("EDINET API response")

	if resp.StatusCode != http.StatusOK {
		return nil, newResponseError(resp.StatusCode, body)
	}

	return body, nil
}

// ListDocuments calls documents.json for the calendar date of date. The
// shape of the result depends on mode: Results is only populated for
// ModeWithDocuments.
func (c *Client) ListDocuments(ctx context.Context, date time.Time, mode ListMode) (*ListResponse, error) {
	if date.IsZero() {
		return nil, &ValidationError{Field: "date", Value: date, Reason: "date is required"}
	}
	if !mode.Valid() {
		return nil, &ValidationError{Field: "mode", Value: int(mode), Reason: "must be 1 (metadata) or 2 (documents)"}
	}

	params := url.Values{}
	params.Set("date", FormatDate(date))
	params.Set("type", mode.Code())

	body, err := c.doRequest(ctx, "documents.json", params)
	if err != nil {
		return nil, err
	}

	var response ListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &response, nil
}

// ListMetadata returns only the metadata block for date
func (c *Client) ListMetadata(ctx context.Context, date time.Time) (*ListResponse, error) {
	return c.ListDocuments(ctx, date, ModeMetadataOnly)
}

// ListDocumentsWithResults returns metadata and every document filed on date
func (c *Client) ListDocumentsWithResults(ctx context.Context, date time.Time) (*ListResponse, error) {
	return c.ListDocuments(ctx, date, ModeWithDocuments)
}

// FetchDocument downloads one variant of a document. The bytes are returned
// exactly as received.
func (c *Client) FetchDocument(ctx context.Context, documentID string, format Format) ([]byte, error) {
	if !format.Valid() {
		return nil, &ValidationError{Field: "format", Value: int(format), Reason: "must be between 1 and 5"}
	}
	if documentID == "" {
		return nil, &ValidationError{Field: "document ID", Value: `""`, Reason: "document ID is required"}
	}

	params := url.Values{}
	params.Set("type", format.Code())

	return c.doRequest(ctx, "documents/"+url.PathEscape(documentID), params)
}
