package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"Kalshibot/kalshi"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPriceCents = 50
	DefaultContracts  = 1
	DefaultMaxMarkets = 1
	DefaultTimeout    = 20 * time.Second
)

// Config is built once at startup and passed to whatever needs it.
type Config struct {
	Side         kalshi.Side `yaml:"side"`
	PriceCents   int         `yaml:"price_cents"`
	Contracts    int         `yaml:"contracts"`
	SeriesTicker string      `yaml:"-"`
	MaxMarkets   int         `yaml:"max_markets"`
	DryRun       bool        `yaml:"dry_run"`

	APIKeyID       string        `yaml:"api_key_id"`
	PrivateKeyPath string        `yaml:"private_key_path"`
	Env            string        `yaml:"env"`
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	LogLevel       string        `yaml:"log_level"`
	MetricsAddr    string        `yaml:"metrics_addr"`
	PushGateway    string        `yaml:"metrics_pushgateway"`
	RunMode        string        `yaml:"run_mode"`
}

func DefaultConfig() Config {
	return Config{
		Side:         kalshi.SideYes,
		PriceCents:   DefaultPriceCents,
		Contracts:    DefaultContracts,
		SeriesTicker: BtcUpDownSeries,
		MaxMarkets:   DefaultMaxMarkets,
		Timeout:      DefaultTimeout,
		LogLevel:     "info",
		RunMode:      RunModeTrade,
	}
}

// LoadConfig starts from the defaults, applies the optional YAML file at path,
// then the environment. Only types are checked here; price and contract bounds
// are applied by the quick trade.
func LoadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	}

	env := envReader{getenv: getenv}
	if v := env.str("TRADE_SIDE"); v != "" {
		cfg.Side = kalshi.Side(v)
	}
	env.setInt("PRICE_CENTS", &cfg.PriceCents)
	env.setInt("CONTRACTS", &cfg.Contracts)
	env.setInt("MAX_MARKETS", &cfg.MaxMarkets)
	env.setBool("DRY_RUN", &cfg.DryRun)
	env.setString("KALSHI_API_KEY_ID", &cfg.APIKeyID)
	env.setString("KALSHI_PRIVATE_KEY_PATH", &cfg.PrivateKeyPath)
	env.setString("KALSHI_ENV", &cfg.Env)
	env.setString("KALSHI_BASE_URL", &cfg.BaseURL)
	env.setDuration("HTTP_TIMEOUT", &cfg.Timeout)
	env.setString("LOG_LEVEL", &cfg.LogLevel)
	env.setString("METRICS_ADDR", &cfg.MetricsAddr)
	env.setString("METRICS_PUSHGATEWAY", &cfg.PushGateway)
	env.setString("RUN_MODE", &cfg.RunMode)
	if env.err != nil {
		return Config{}, env.err
	}

	side, err := kalshi.ParseSide(string(cfg.Side))
	if err != nil {
		return Config{}, fmt.Errorf("TRADE_SIDE: %w", err)
	}
	cfg.Side = side

	switch cfg.RunMode {
	case RunModeTrade, RunModeFills:
	default:
		return Config{}, fmt.Errorf("RUN_MODE: unknown mode %q", cfg.RunMode)
	}
	return cfg, nil
}

// Endpoint resolves the REST base URL, preferring an explicit base URL over
// the named environment.
func (c Config) Endpoint() (string, error) {
	if c.BaseURL != "" {
		return c.BaseURL, nil
	}
	return kalshi.EndpointFor(c.Env)
}

// envReader keeps the first parse error so LoadConfig can report it once.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) str(key string) string {
	return strings.TrimSpace(e.getenv(key))
}

func (e *envReader) setString(key string, dst *string) {
	if v := e.str(key); v != "" {
		*dst = v
	}
}

func (e *envReader) setInt(key string, dst *int) {
	v := e.str(key)
	if v == "" || e.err != nil {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = n
}

func (e *envReader) setBool(key string, dst *bool) {
	v := e.str(key)
	if v == "" || e.err != nil {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = b
}

func (e *envReader) setDuration(key string, dst *time.Duration) {
	v := e.str(key)
	if v == "" || e.err != nil {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = d
}
