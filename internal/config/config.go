package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment modes. EnvTest disables side-effecting artifact exports.
const (
	EnvLocal  = "local"
	EnvDev    = "dev"
	EnvDocker = "docker"
	EnvProd   = "prod"
	EnvTest   = "test"
)

// Config holds the inventory service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Backend BackendConfig `yaml:"backend"`
	Store   StoreConfig   `yaml:"store"`
	Search  SearchConfig  `yaml:"search"`
	Reports ReportsConfig `yaml:"reports"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`

	// Env is filled from the ENV variable by Load, not from the file.
	Env string `yaml:"-"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// BackendConfig describes the remote inventory API.
type BackendConfig struct {
	URL        string  `yaml:"url"`
	Tenant     string  `yaml:"tenant"`
	Token      string  `yaml:"token"`
	TimeoutSec int     `yaml:"timeout_sec"`
	RatePerSec float64 `yaml:"rate_per_sec"` // 0 = unlimited
	Burst      int     `yaml:"burst"`
	PageSize   int     `yaml:"page_size"`
}

// StoreConfig holds the key-value store used for view state and the reference data cache.
type StoreConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey, memory (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
	SessionTTLSec    int      `yaml:"session_ttl_sec"`
	RefDataTTLSec    int      `yaml:"refdata_ttl_sec"`
}

// SearchConfig holds result list paging settings.
type SearchConfig struct {
	InitialResultCount   int `yaml:"initial_result_count"`
	ResultCountIncrement int `yaml:"result_count_increment"`
	MaxPageSize          int `yaml:"max_page_size"`
}

// ReportsConfig holds export settings.
type ReportsConfig struct {
	IDReportNotifyAfterMs int `yaml:"id_report_notify_after_ms"`
	MaxRecords            int `yaml:"max_records"` // 0 = unbounded
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(env, data)
}

// Parse decodes raw YAML, expands ${VAR} references, applies defaults and validates.
func Parse(env string, data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Env = env

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return EnvLocal
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Env == "" {
		c.Env = EnvLocal
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Backend.TimeoutSec <= 0 {
		c.Backend.TimeoutSec = 60
	}
	if c.Backend.Burst <= 0 {
		c.Backend.Burst = 10
	}
	if c.Backend.PageSize <= 0 {
		c.Backend.PageSize = 1000
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "memory"
	}
	if c.Store.ReadinessTimeout <= 0 {
		c.Store.ReadinessTimeout = 10
	}
	if c.Store.KeyPrefix == "" {
		c.Store.KeyPrefix = "inventory:"
	}
	if c.Store.SessionTTLSec <= 0 {
		c.Store.SessionTTLSec = 8 * 60 * 60
	}
	if c.Store.RefDataTTLSec <= 0 {
		c.Store.RefDataTTLSec = 15 * 60
	}
	if c.Search.InitialResultCount <= 0 {
		c.Search.InitialResultCount = 30
	}
	if c.Search.ResultCountIncrement <= 0 {
		c.Search.ResultCountIncrement = 30
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Reports.IDReportNotifyAfterMs <= 0 {
		c.Reports.IDReportNotifyAfterMs = 3000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Backend.URL == "" {
		return fmt.Errorf("backend.url is required")
	}
	if u, err := url.Parse(c.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.url must be an absolute URL, got %q", c.Backend.URL)
	}
	if c.Backend.Tenant == "" {
		return fmt.Errorf("backend.tenant is required")
	}
	if c.Backend.RatePerSec < 0 {
		return fmt.Errorf("backend.rate_per_sec must not be negative")
	}
	switch c.Store.Driver {
	case "memory":
	case "redis", "valkey":
		if len(c.Store.Addrs) == 0 {
			return fmt.Errorf("store.addrs is required for driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("store.driver must be \"redis\", \"valkey\" or \"memory\", got %q", c.Store.Driver)
	}
	if c.Search.InitialResultCount > c.Search.MaxPageSize {
		return fmt.Errorf("search.initial_result_count (%d) exceeds search.max_page_size (%d)",
			c.Search.InitialResultCount, c.Search.MaxPageSize)
	}
	if c.Reports.MaxRecords < 0 {
		return fmt.Errorf("reports.max_records must not be negative")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
