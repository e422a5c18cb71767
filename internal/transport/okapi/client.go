// Package okapi is the HTTP client for the remote inventory backend.
package okapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/metrics"
)

// Request headers understood by the backend gateway.
const (
	HeaderTenant = "X-Okapi-Tenant"
	HeaderToken  = "X-Okapi-Token"
)

const maxErrorBody = 4 << 10

// Config holds the backend client settings.
type Config struct {
	BaseURL    string
	Tenant     string
	Token      string
	Timeout    time.Duration
	RatePerSec float64 // 0 = unlimited
	Burst      int
	UserAgent  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks JSON to the backend. Requests are throttled by a token bucket
// and never retried.
type Client struct {
	base      *url.URL
	tenant    string
	token     string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap maps 404 to domain.ErrNotFound and anything else to domain.ErrFetchFailure.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return domain.ErrFetchFailure
}

// New creates a backend client.
func New(cfg *Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		base:      base,
		tenant:    cfg.Tenant,
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		http:      hc,
		limiter:   rate.NewLimiter(limit, burst),
		logger:    logger.Named("okapi"),
	}, nil
}

// List fetches one page from p, decoding the array under recordsKey.
func (c *Client) List(ctx context.Context, p, recordsKey string, params url.Values) (domain.Page, error) {
	var raw map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, p, params, nil, &raw); err != nil {
		return domain.Page{}, err
	}

	var page domain.Page
	if rec, ok := raw[recordsKey]; ok && len(rec) > 0 && string(rec) != "null" {
		if err := json.Unmarshal(rec, &page.Records); err != nil {
			return domain.Page{}, fmt.Errorf("decode %s.%s: %w: %w", p, recordsKey, domain.ErrFetchFailure, err)
		}
	}
	if total, ok := raw["totalRecords"]; ok {
		if err := json.Unmarshal(total, &page.TotalRecords); err != nil {
			return domain.Page{}, fmt.Errorf("decode %s.totalRecords: %w: %w", p, domain.ErrFetchFailure, err)
		}
		page.TotalKnown = true
	} else {
		page.TotalRecords = len(page.Records)
	}
	if page.Records == nil {
		page.Records = []domain.Record{}
	}
	return page, nil
}

// Get fetches one record.
func (c *Client) Get(ctx context.Context, p string) (domain.Record, error) {
	var rec domain.Record
	if err := c.do(ctx, http.MethodGet, p, nil, nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Post creates a record and returns the backend's copy. When the backend
// answers without a body the id is taken from the Location header.
func (c *Client) Post(ctx context.Context, p string, body any) (domain.Record, error) {
	var rec domain.Record
	if err := c.do(ctx, http.MethodPost, p, nil, body, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Put replaces a record.
func (c *Client) Put(ctx context.Context, p string, body any) error {
	return c.do(ctx, http.MethodPut, p, nil, body, nil)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, p string) error {
	return c.do(ctx, http.MethodDelete, p, nil, nil, nil)
}

// Ping checks that the gateway answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "_/version", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, p string, params url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("backend %s %s: throttle: %w", method, p, err)
	}

	req, err := c.newRequest(ctx, method, p, params, body)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("backend %s %s: %w: %w", method, p, domain.ErrFetchFailure, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body
	metrics.BackendRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		se := &StatusError{Method: method, Path: p, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		c.logger.Debug("backend error response",
			zap.String("method", method),
			zap.String("path", p),
			zap.Int("status", resp.StatusCode),
		)
		return se
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend %s %s: read body: %w: %w", method, p, domain.ErrFetchFailure, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if rec, ok := out.(*domain.Record); ok {
			*rec = domain.Record{}
			if id := locationID(resp.Header.Get("Location")); id != "" {
				(*rec)["id"] = id
			}
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend %s %s: decode: %w: %w", method, p, domain.ErrFetchFailure, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, p string, params url.Values, body any) (*http.Request, error) {
	// p arrives already escaped
	u := c.base.JoinPath(p)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tenant != "" {
		req.Header.Set(HeaderTenant, c.tenant)
	}
	if c.token != "" {
		req.Header.Set(HeaderToken, c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// locationID returns the last path segment of a Location header.
func locationID(loc string) string {
	if loc == "" {
		return ""
	}
	u, err := url.Parse(loc)
	if err != nil {
		return ""
	}
	return path.Base(strings.TrimSuffix(u.Path, "/"))
}

// IsStatus reports whether err is a StatusError with code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
