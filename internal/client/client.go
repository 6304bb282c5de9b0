package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mist/mist/internal/api"
)

const defaultTimeout = 10 * time.Second

// Client handles communication with the Mist API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
	UserAgent  string

	timeout time.Duration

	Templates *TemplatesAPI
	Updates   *UpdatesAPI
	Settings  *SettingsService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.Token = token }
}

// WithTimeout sets the request timeout. It is applied to a copy of the HTTP
// client, so a shared client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a Client for the API rooted at baseURL (e.g. "http://localhost:8080/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		UserAgent:  "mist-client",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.HTTPClient
		hc.Timeout = c.timeout
		c.HTTPClient = &hc
	}
	c.Templates = &TemplatesAPI{client: c}
	c.Updates = &UpdatesAPI{client: c}
	c.Settings = &SettingsService{client: c}
	return c
}

// Error is returned for non-2xx responses.
type Error struct {
	StatusCode int
	App        api.AppError
}

func (e *Error) Error() string {
	return fmt.Sprintf("API Error (%d): %s", e.StatusCode, e.App.Error())
}

// Get performs a GET request and decodes the response envelope.
func Get[T any](ctx context.Context, c *Client, path string) (*api.Response[T], error) {
	return do[T](ctx, c, http.MethodGet, path, nil)
}

// Put performs a PUT request with a JSON body and decodes the response envelope.
func Put[T any](ctx context.Context, c *Client, path string, body any) (*api.Response[T], error) {
	return do[T](ctx, c, http.MethodPut, path, body)
}

func do[T any](ctx context.Context, c *Client, method, path string, body any) (*api.Response[T], error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := CheckResponse(resp); err != nil {
		return nil, err
	}

	var out api.Response[T]
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	out.StatusCode = resp.StatusCode
	return &out, nil
}

// CheckResponse checks the API response for errors.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &Error{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(resp.Body)

	var envelope api.Response[json.RawMessage]
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != nil {
			apiErr.App = *envelope.Error
		}
		if apiErr.App.Message == "" {
			apiErr.App.Message = envelope.Message
		}
	}
	if apiErr.App.Message == "" {
		apiErr.App.Message = strings.TrimSpace(string(body))
	}
	if apiErr.App.Message == "" {
		apiErr.App.Message = http.StatusText(resp.StatusCode)
	}
	if apiErr.App.Code == "" {
		apiErr.App.Code = codeForStatus(resp.StatusCode)
	}
	return apiErr
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return api.CodeNotFound
	case status >= 400 && status < 500:
		return api.CodeBadRequest
	default:
		return api.CodeInternal
	}
}
