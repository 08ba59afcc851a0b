package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/suhaib93102/CLM-Frontend/config"
	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
)

// APIV1 is the versioned prefix for most CLM resources.
const APIV1 = "/api/v1"

const (
	// ErrUnauthorized is the envelope error for a 401 that could not be recovered.
	ErrUnauthorized = "Unauthorized - Please log in again"
	// ErrRequestFailed is used when a non-2xx body carries no message.
	ErrRequestFailed = "Request failed"
)

// maxResponseBytes caps how much of a backend response body is read.
const maxResponseBytes = 10 << 20

// refreshTimeout bounds a shared refresh call once it no longer follows
// the first caller's cancellation.
const refreshTimeout = 15 * time.Second

// Client calls the CLM backend. It never returns Go errors to callers:
// every call yields a Response envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	refreshes  *singleflight.Group
}

func NewClient(cfg *config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		tokens:    &MemoryTokens{},
		refreshes: &singleflight.Group{},
	}
}

// WithTokens returns a copy of c that authenticates with ts. The HTTP
// client is shared.
func (c *Client) WithTokens(ts TokenStore) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// Tokens returns the store the client authenticates with.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

type requestOptions struct {
	noAuth  bool
	headers map[string]string
}

// Option adjusts a single request.
type Option func(*requestOptions)

// WithoutAuth sends the request without the bearer token and disables the refresh retry.
func WithoutAuth() Option {
	return func(o *requestOptions) { o.noAuth = true }
}

// WithHeader adds a custom header to the request.
func WithHeader(key, value string) Option {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// send issues a JSON request. Bodies are only encoded for POST, PUT and PATCH.
func send[T any](ctx context.Context, c *Client, method, endpoint string, body any, opts ...Option) Response[T] {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	var payload []byte
	if body != nil && hasBody(method) {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return Fail[T](err.Error(), 0)
		}
	}

	build := func() (*http.Request, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		forwardRequestID(ctx, req)
		for k, v := range o.headers {
			req.Header.Set(k, v)
		}
		return req, nil
	}

	return execute[T](ctx, c, method, endpoint, build, !o.noAuth, true)
}

// sendMultipart uploads one file. The content is buffered so a retry after
// a token refresh can resend it.
func sendMultipart[T any](ctx context.Context, c *Client, method, endpoint, field, filename string, content io.Reader) Response[T] {
	data, err := io.ReadAll(content)
	if err != nil {
		return Fail[T](err.Error(), 0)
	}

	build := func() (*http.Request, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile(field, filename)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, &buf)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
		forwardRequestID(ctx, req)
		return req, nil
	}

	return execute[T](ctx, c, method, endpoint, build, true, true)
}

// execute performs one attempt. A 401 on an authenticated request triggers
// at most one refresh and one more attempt with retry disabled.
func execute[T any](ctx context.Context, c *Client, method, endpoint string, build func() (*http.Request, error), useAuth, allowRetry bool) Response[T] {
	req, err := build()
	if err != nil {
		return Fail[T](err.Error(), 0)
	}
	if useAuth {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn(ctx, "backend request failed", "method", method, "endpoint", endpoint, "error", err)
		return Fail[T](err.Error(), 0)
	}
	raw, err := readBody(resp)
	if err != nil {
		logger.Warn(ctx, "backend response unreadable", "method", method, "endpoint", endpoint, "error", err)
		return Fail[T](err.Error(), 0)
	}

	logger.Debug(ctx, "backend request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
		"retry", !allowRetry,
	)

	if resp.StatusCode == http.StatusUnauthorized {
		if useAuth && allowRetry && c.refresh(ctx) {
			return execute[T](ctx, c, method, endpoint, build, useAuth, false)
		}
		return Fail[T](ErrUnauthorized, http.StatusUnauthorized)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Fail[T](errorMessage(raw), resp.StatusCode)
	}

	return OK(decodeData[T](raw), resp.StatusCode)
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// refresh exchanges the refresh token for a new access token. It reports
// whether a usable access token was stored. Concurrent 401s sharing one
// refresh token make a single refresh call.
func (c *Client) refresh(ctx context.Context) bool {
	refreshToken := c.tokens.RefreshToken()
	if refreshToken == "" {
		return false
	}

	// Callers joining the flight must not inherit the first caller's cancellation.
	v, err, _ := c.refreshes.Do(refreshToken, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return c.requestRefresh(shared, refreshToken)
	})
	if err != nil {
		logger.Warn(ctx, "token refresh failed", "error", err)
		return false
	}

	pair := v.(tokenPair)
	c.tokens.SetTokens(pair.Access, pair.Refresh)
	logger.Info(ctx, "access token refreshed")
	return true
}

func (c *Client) requestRefresh(ctx context.Context, refreshToken string) (tokenPair, error) {
	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return tokenPair{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/refresh/", bytes.NewReader(payload))
	if err != nil {
		return tokenPair{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tokenPair{}, err
	}
	raw, err := readBody(resp)
	if err != nil {
		return tokenPair{}, fmt.Errorf("read refresh response: %w", err)
	}

	var pair tokenPair
	_ = json.Unmarshal(raw, &pair)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || pair.Access == "" {
		return tokenPair{}, fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}
	return pair, nil
}

// readBody reads and closes resp.Body. Bodies over maxResponseBytes are an error.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > maxResponseBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxResponseBytes)
	}
	return raw, nil
}

// errorMessage picks message, detail or error from a JSON error body.
func errorMessage(raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return ErrRequestFailed
	}
	for _, key := range []string{"message", "detail", "error"} {
		if s, ok := body[key].(string); ok && s != "" {
			return s
		}
	}
	return ErrRequestFailed
}

// decodeData never returns nil. An empty or malformed success body yields the zero value.
func decodeData[T any](raw []byte) *T {
	data := new(T)
	if len(bytes.TrimSpace(raw)) == 0 {
		return data
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return new(T)
	}
	return data
}

func forwardRequestID(ctx context.Context, req *http.Request) {
	if rid, ok := ctx.Value(logger.RequestIDKey).(string); ok && rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}
}

func hasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// withQuery appends params to endpoint when there are any.
func withQuery(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

func esc(s string) string {
	return url.PathEscape(s)
}
