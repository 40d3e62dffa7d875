// Package client talks to the Apiglot HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apiglot/apiglot"
	"github.com/tidwall/gjson"
)

// DefaultHost is used when no host is configured.
const DefaultHost = "https://api.apiglot.com"

// ErrNoOutput is returned when a translate response carries no result.llm_output.
var ErrNoOutput = errors.New("translate response has no result.llm_output")

// Options configures a Client.
type Options struct {
	Host      string // API base URL (default: DefaultHost)
	APIKey    string // Bearer token sent with every request
	UserAgent string // User-Agent header (default: apiglot.UserAgent())
}

// Client is the one HTTP client shared by every command.
type Client struct {
	base      *url.URL
	apiKey    string
	userAgent string
	http      *http.Client
	cache     apiglot.Cache
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithCache enables caching of project info responses.
func WithCache(cache apiglot.Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// New creates a Client for opts.Host.
func New(opts Options, options ...Option) (*Client, error) {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = DefaultHost
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, &apiglot.ConfigError{Field: "host", Message: "invalid URL", Cause: err}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &apiglot.ConfigError{Field: "host", Message: fmt.Sprintf("%q is not an absolute URL", host)}
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = apiglot.UserAgent()
	}

	c := &Client{
		base:      base,
		apiKey:    opts.APIKey,
		userAgent: ua,
		http:      &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Host returns the base URL requests are resolved against.
func (c *Client) Host() string {
	return c.base.String()
}

// Get fetches path. A non-empty bearer replaces the configured API key.
func (c *Client) Get(ctx context.Context, path, bearer string) ([]byte, error) {
	if bearer == "" {
		bearer = c.apiKey
	}
	return c.do(ctx, http.MethodGet, path, bearer, nil)
}

// Post sends body as JSON to path.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, c.apiKey, data)
}

// ProjectInfoJSON returns the raw project info of projectID, from the cache
// when one is configured.
func (c *Client) ProjectInfoJSON(ctx context.Context, projectID, apiKey string) ([]byte, error) {
	if projectID == "" {
		return nil, &apiglot.ConfigError{Field: "projectId", Message: "is required"}
	}

	key := c.projectInfoKey(projectID, apiKey)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return []byte(cached), nil
		}
	}

	data, err := c.Get(ctx, "/projects/"+url.PathEscape(projectID)+"/info", apiKey)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("project info for %s is not valid JSON", projectID)
	}

	if c.cache != nil {
		// A failed write only costs a request next time.
		_ = c.cache.Set(key, string(data))
	}
	return data, nil
}

// ProjectInfo fetches and parses the info of projectID.
func (c *Client) ProjectInfo(ctx context.Context, projectID, apiKey string) (*apiglot.ProjectInfo, error) {
	data, err := c.ProjectInfoJSON(ctx, projectID, apiKey)
	if err != nil {
		return nil, err
	}
	return apiglot.ParseProjectInfo(data)
}

// ForgetProjectInfo drops the cached info of projectID, if the cache supports it.
func (c *Client) ForgetProjectInfo(projectID, apiKey string) error {
	inv, ok := c.cache.(interface{ Delete(key string) error })
	if !ok {
		return nil
	}
	return inv.Delete(c.projectInfoKey(projectID, apiKey))
}

// Translate posts payload to the translate endpoint of projectID and returns
// the translated document.
func (c *Client) Translate(ctx context.Context, projectID string, payload any) (string, error) {
	data, err := c.Post(ctx, "/projects/"+url.PathEscape(projectID)+"/translate", payload)
	if err != nil {
		return "", err
	}
	out := gjson.GetBytes(data, "result.llm_output")
	if !out.Exists() {
		return "", ErrNoOutput
	}
	return out.String(), nil
}

// NamespaceResources fetches the translation resources of one namespace.
func (c *Client) NamespaceResources(ctx context.Context, projectID, lang, namespace string) ([]byte, error) {
	path := fmt.Sprintf("/v1/%s/%s/%s", url.PathEscape(projectID), url.PathEscape(lang), url.PathEscape(namespace))
	data, err := c.Get(ctx, path, "")
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("resources of namespace %s are not valid JSON", namespace)
	}
	return data, nil
}

func (c *Client) projectInfoKey(projectID, apiKey string) string {
	if apiKey == "" {
		apiKey = c.apiKey
	}
	return apiglot.ProjectInfoKey(c.base.String(), projectID, apiKey)
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body []byte) ([]byte, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target.Redacted(), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response of %s %s: %w", method, target.Redacted(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp, data)
	}
	return data, nil
}

func newAPIError(resp *http.Response, body []byte) *apiglot.APIError {
	apiErr := &apiglot.APIError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		apiErr.Message = gjson.GetBytes(body, "error").String()
	}
	return apiErr
}
