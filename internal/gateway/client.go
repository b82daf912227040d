// Package gateway is the REST client for the JSON document server that
// persists events, categories and users.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/ZevWepster/eventpage/internal/domain"
)

const DefaultBaseURL = "http://localhost:3001"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default transport, mainly for tests.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(opts.Timeout)
	}
	return &Client{baseURL: baseURL, http: httpClient, log: logger}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent resolves a single event by scanning the full collection; the
// gateway's per-id route is not used. Comparison is string-normalized on
// both sides.
func (c *Client) GetEvent(ctx context.Context, id domain.ID) (domain.Event, error) {
	events, err := c.ListEvents(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	for _, e := range events {
		if e.ID.String() == id.String() {
			return e, nil
		}
	}
	return domain.Event{}, fmt.Errorf("%w: id %s", ErrNotFound, id)
}

func (c *Client) CreateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	var created domain.Event
	if err := c.do(ctx, http.MethodPost, "/events", e, &created); err != nil {
		return domain.Event{}, err
	}
	return created, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id domain.ID, e domain.Event) (domain.Event, error) {
	var updated domain.Event
	path := "/events/" + url.PathEscape(id.String())
	if err := c.do(ctx, http.MethodPut, path, e, &updated); err != nil {
		return domain.Event{}, err
	}
	return updated, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id domain.ID) error {
	path := "/events/" + url.PathEscape(id.String())
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("gateway request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %s %s: %v", ErrUnreachable, method, path, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		c.log.Warn("gateway rejected request", "method", method, "path", path, "status", res.StatusCode)
		return &StatusError{Code: res.StatusCode, Status: res.Status}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
