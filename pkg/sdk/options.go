package inventory

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	backendURL string
	tenant     string
	token      string
	timeout    time.Duration
	ratePerSec float64
	burst      int
	httpClient *http.Client

	driver   string // "memory", "valkey" or "redis"
	addrs    []string
	password string

	pageSize   int
	maxRecords int
	language   string
	env        string
	perms      []string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithBackend sets the inventory backend base URL and tenant. Required.
func WithBackend(baseURL, tenant string) Option {
	return optionFunc(func(c *clientConfig) {
		c.backendURL = baseURL
		c.tenant = tenant
	})
}

// WithToken sets the backend access token.
func WithToken(token string) Option {
	return optionFunc(func(c *clientConfig) {
		c.token = token
	})
}

// WithTimeout bounds each backend request. Default: 60s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRateLimit throttles backend requests to perSec with the given burst.
// Zero perSec disables throttling (default).
func WithRateLimit(perSec float64, burst int) Option {
	return optionFunc(func(c *clientConfig) {
		c.ratePerSec = perSec
		c.burst = burst
	})
}

// WithHTTPClient replaces the HTTP client used to reach the backend.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithValkey caches reference data in a Valkey instance instead of memory.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis caches reference data in a Redis instance instead of memory.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithPageSize sets how many records one report page request asks for.
// Default: 1000.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithMaxRecords caps the records a report may collect. Zero means unbounded (default).
func WithMaxRecords(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRecords = n
	})
}

// WithLanguage sets the language of report headers and notices, as an
// Accept-Language value. Default: English.
func WithLanguage(lang string) Option {
	return optionFunc(func(c *clientConfig) {
		c.language = lang
	})
}

// WithEnv sets the environment mode. In "test" the CQL export is disabled.
func WithEnv(env string) Option {
	return optionFunc(func(c *clientConfig) {
		c.env = env
	})
}

// WithPermissions sets the permissions vocabulary edits run with.
// Default: settings edit and delete.
func WithPermissions(perms ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.perms = perms
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
