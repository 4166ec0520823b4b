// Package backend implements ports.Backend against the accounting REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	apperrors "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/errors"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
)

var _ ports.Backend = (*Client)(nil)

// RequestIDHeader correlates a backend call with our logs.
const RequestIDHeader = "X-Request-ID"

const maxResponseBytes = 8 << 20

// Config configures the REST client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Transport is the base round tripper; nil uses http.DefaultTransport.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Client sends JSON requests to the backend and normalizes its envelopes.
type Client struct {
	base      *url.URL
	timeout   time.Duration
	userAgent string
	transport http.RoundTripper
	logger    *slog.Logger
}

// NewClient builds a backend client. BaseURL must be absolute.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("backend base url is required")
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend base url must be absolute: %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:      base,
		timeout:   timeout,
		userAgent: cfg.UserAgent,
		transport: transport,
		logger:    logger.With("component", "backend_client"),
	}, nil
}

// Do performs req and returns the selected payload.
// Failures are *errors.AppError values: auth (401), not_found (404),
// rejected (other 4xx or success=false), transport (5xx, network, bad JSON),
// timeout and canceled.
func (c *Client) Do(ctx context.Context, req ports.BackendRequest) (ports.BackendResponse, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return ports.BackendResponse{}, err
	}
	requestID := httpReq.Header.Get(RequestIDHeader)

	start := time.Now()
	resp, err := c.httpClient(req.Token).Do(httpReq)
	if err != nil {
		c.logger.WarnContext(ctx, "backend request failed",
			"method", httpReq.Method,
			"path", req.Path,
			"request_id", requestID,
			"error", err)
		return ports.BackendResponse{}, classifyTransportErr(ctx, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("close backend response body", "error", cerr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ports.BackendResponse{}, classifyTransportErr(ctx, err)
	}

	c.logger.DebugContext(ctx, "backend request",
		"method", httpReq.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", requestID)

	return normalize(resp.StatusCode, body, req.DataPath)
}

func (c *Client) newRequest(ctx context.Context, req ports.BackendRequest) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build backend url")
	}

	var body io.Reader
	if req.Body != nil {
		data, merr := json.Marshal(req.Body)
		if merr != nil {
			return nil, apperrors.Wrap(merr, apperrors.ErrCodeInternal, "encode backend request")
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create backend request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	return httpReq, nil
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", err
	}
	u := c.base.ResolveReference(ref)
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// httpClient attaches the caller's bearer token. Tokens are per session, so
// the oauth2 transport is built per call over the shared base transport.
func (c *Client) httpClient(token string) *http.Client {
	rt := c.transport
	if token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.transport,
		}
	}
	return &http.Client{Timeout: c.timeout, Transport: rt}
}

func classifyTransportErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, apperrors.MsgTimeout)
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "request canceled")
	default:
		var ne interface{ Timeout() bool }
		if errors.As(err, &ne) && ne.Timeout() {
			return apperrors.Wrap(err, apperrors.ErrCodeTimeout, apperrors.MsgTimeout)
		}
		return apperrors.Transport(err, apperrors.MsgUnreachable)
	}
}
