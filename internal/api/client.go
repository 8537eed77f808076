// Package api binds the time-and-attendance REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/punch/internal/model"
)

// Version is the API version this client speaks.
const Version = -1

// ErrInvalidRange is returned when an entry edit ends before it starts.
var ErrInvalidRange = errors.New("entry must not end before it starts")

// Client is an HTTP client for the clock-in API. Requests carry the session
// token as a bearer token when one was given.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger traces every request to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for baseURL. A nil tok gives an anonymous client,
// enough for /version and /authorize.
func NewClient(ctx context.Context, baseURL string, tok *oauth2.Token, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	if tok != nil {
		c.httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// do sends a request and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)
	c.logf("-> %s %s (%s)", method, path, reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	c.logf("<- %s %s %d (%s)", method, path, resp.StatusCode, reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// Version returns the API version reported by the server.
func (c *Client) Version(ctx context.Context) (int, error) {
	var v int
	err := c.do(ctx, http.MethodGet, "/version", nil, "", &v)
	return v, err
}

// VersionMatches reports whether the server speaks the same API version.
func (c *Client) VersionMatches(ctx context.Context) (bool, error) {
	v, err := c.Version(ctx)
	if err != nil {
		return false, err
	}
	return v == Version, nil
}

// Authorize exchanges credentials for a session id.
func (c *Client) Authorize(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password})
	if err != nil {
		return "", fmt.Errorf("encoding credentials: %w", err)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/authorize", bytes.NewReader(body), "application/json", &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("authorize: server returned an empty token")
	}
	return resp.Token, nil
}

// Status fetches the caller's clock status.
func (c *Client) Status(ctx context.Context) (model.Status, error) {
	var s model.Status
	err := c.do(ctx, http.MethodGet, "/u/status", nil, "", &s)
	return s, err
}

// Entries fetches the caller's entries bucketed by day.
func (c *Client) Entries(ctx context.Context) (model.Collection, error) {
	var entries model.Collection
	err := c.do(ctx, http.MethodGet, "/u/entries", nil, "", &entries)
	return entries, err
}

// ClockIn starts a session. Clocking in twice is a no-op on the server.
func (c *Client) ClockIn(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/u/clock/in", nil, "", nil)
}

// ClockOut closes the running session into a valid entry.
func (c *Client) ClockOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/u/clock/out", nil, "", nil)
}

// OnlineCount returns how many users are clocked in.
func (c *Client) OnlineCount(ctx context.Context) (int, error) {
	var n int
	err := c.do(ctx, http.MethodGet, "/u/users/online/count", nil, "", &n)
	return n, err
}

// OnlineUsers lists clocked-in users. Admin only.
func (c *Client) OnlineUsers(ctx context.Context) ([]model.OnlineUser, error) {
	users := []model.OnlineUser{}
	err := c.do(ctx, http.MethodGet, "/a/users/online/list", nil, "", &users)
	return users, err
}

// EditEntry moves an entry to [from, to] (epoch seconds). Admin only.
func (c *Client) EditEntry(ctx context.Context, eid, from, to int64) error {
	if to < from {
		return ErrInvalidRange
	}
	form := url.Values{
		"from": {strconv.FormatInt(from, 10)},
		"to":   {strconv.FormatInt(to, 10)},
	}
	return c.do(ctx, http.MethodPut, entryPath(eid), strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", nil)
}

// DeleteEntry removes an entry. Admin only.
func (c *Client) DeleteEntry(ctx context.Context, eid int64) error {
	return c.do(ctx, http.MethodDelete, entryPath(eid), nil, "", nil)
}

func entryPath(eid int64) string {
	return "/a/entries/" + strconv.FormatInt(eid, 10)
}
