// Package twistapi is the Twist v3 REST client and the adapter binding it to
// the domain ports. The domain has no knowledge of HTTP.
package twistapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Twist v3 API root.
const DefaultBaseURL = "https://api.twist.com/api/v3"

// Executor runs a request under a throttling and retry policy. DoOnce is
// used for requests that create something and must not be repeated once the
// server may have acted on them.
type Executor interface {
	Do(ctx context.Context, fn func(context.Context) error) error
	DoOnce(ctx context.Context, fn func(context.Context) error) error
}

type directExecutor struct{}

func (directExecutor) Do(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

func (directExecutor) DoOnce(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type Option func(*Client)

// WithExecutor routes every request through e.
func WithExecutor(e Executor) Option {
	return func(c *Client) { c.exec = e }
}

// Client wraps the Twist REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	exec       Executor
}

func NewClient(baseURL string, httpClient *http.Client, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		token:      token,
		exec:       directExecutor{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	return c.exec.Do(ctx, func(ctx context.Context) error {
		u := c.baseURL + "/" + path
		if len(params) > 0 {
			u += "?" + params.Encode()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		return c.send(req, target)
	})
}

// post sends an idempotent write with params form-encoded. target may be
// nil when the response body is not needed.
func (c *Client) post(ctx context.Context, path string, params url.Values, target any) error {
	return c.exec.Do(ctx, c.postFunc(path, params, target))
}

// create is post for writes that add content, such as comments, messages
// and reactions.
func (c *Client) create(ctx context.Context, path string, params url.Values, target any) error {
	return c.exec.DoOnce(ctx, c.postFunc(path, params, target))
}

func (c *Client) postFunc(path string, params url.Values, target any) func(context.Context) error {
	body := params.Encode()
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+path, strings.NewReader(body))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return c.send(req, target)
	}
}

func (c *Client) send(req *http.Request, target any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return newAPIError(resp.StatusCode, resp.Header.Get("Retry-After"), body)
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
