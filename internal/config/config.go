package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Transport string

const (
	TransportStdio      Transport = "stdio"
	TransportSSE        Transport = "sse"
	TransportStreamable Transport = "streamable"
)

const envPrefix = "GRIDSITE"

type Config struct {
	NodesSource           string    `mapstructure:"nodes_source"`
	NodesTable            string    `mapstructure:"nodes_table"`
	NodesQuery            string    `mapstructure:"nodes_query"`
	Transport             Transport `mapstructure:"transport"`
	HTTPAddr              string    `mapstructure:"http_addr"`
	HTTPPort              int       `mapstructure:"http_port"`
	HTTPPath              string    `mapstructure:"http_path"`
	MetricsPath           string    `mapstructure:"metrics_path"`
	LogLevel              string    `mapstructure:"log_level"`
	DefaultTopN           int       `mapstructure:"default_top_n"`
	MaxTopN               int       `mapstructure:"max_top_n"`
	PointRadiusKM         float64   `mapstructure:"point_radius_km"`
	EnableCaching         bool      `mapstructure:"enable_caching"`
	CacheTTLSeconds       int       `mapstructure:"cache_ttl_seconds"`
	WatchSource           bool      `mapstructure:"watch_source"`
	ConnectTimeoutSeconds int       `mapstructure:"connect_timeout_seconds"`
	StatementTimeoutMs    int       `mapstructure:"statement_timeout_ms"`
	AppName               string    `mapstructure:"app_name"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("nodes_source", "")
	v.SetDefault("nodes_table", "nodes")
	v.SetDefault("nodes_query", "")
	v.SetDefault("transport", string(TransportStdio))
	v.SetDefault("http_addr", "127.0.0.1")
	v.SetDefault("http_port", 8080)
	v.SetDefault("http_path", "/mcp")
	v.SetDefault("metrics_path", "/metrics")
	v.SetDefault("log_level", "info")
	v.SetDefault("default_top_n", 10)
	v.SetDefault("max_top_n", 500)
	v.SetDefault("point_radius_km", 100.0)
	v.SetDefault("enable_caching", true)
	v.SetDefault("cache_ttl_seconds", 300)
	v.SetDefault("watch_source", false)
	v.SetDefault("connect_timeout_seconds", 5)
	v.SetDefault("statement_timeout_ms", 30000)
	v.SetDefault("app_name", "gridsite")
}

// RegisterFlags declares every config flag on fs. Flag names use dashes;
// they bind to the underscore keys of Config.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Config file path (yaml|json|toml)")
	fs.StringP("nodes-source", "s", "", "Node dataset: CSV path, postgres:// DSN or sqlite:// path")
	fs.String("nodes-table", "nodes", "Table holding node rows for database sources")
	fs.String("nodes-query", "", "Read-only SELECT overriding nodes-table for PostgreSQL sources")
	fs.String("transport", string(TransportStdio), "MCP transport: stdio|sse|streamable")
	fs.String("http-addr", "127.0.0.1", "HTTP listen address for sse/streamable")
	fs.Int("http-port", 8080, "HTTP listen port for sse/streamable")
	fs.String("http-path", "/mcp", "HTTP path for the MCP endpoint")
	fs.String("metrics-path", "/metrics", "HTTP path for Prometheus metrics (empty disables)")
	fs.String("log-level", "info", "Log level")
	fs.Int("default-top-n", 10, "Results returned when a request sets no top_n")
	fs.Int("max-top-n", 500, "Upper bound on top_n")
	fs.Float64("point-radius-km", 100, "Radius applied to each selected point in frontend requests")
	fs.Bool("enable-caching", true, "Cache the loaded node table")
	fs.Int("cache-ttl-seconds", 300, "Node table cache TTL in seconds (0 keeps until reload)")
	fs.Bool("watch-source", false, "Reload CSV/SQLite sources when the file changes")
	fs.Int("connect-timeout-seconds", 5, "Connection timeout in seconds")
	fs.Int("statement-timeout-ms", 30000, "Statement timeout in milliseconds")
	fs.String("app-name", "gridsite", "Application name")
}

// Load reads configuration from os.Args. A positional argument names the
// node source when --nodes-source is not given.
func Load() (Config, error) {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	RegisterFlags(fs)
	// pflag -> std flag compatibility
	_ = fs.Parse(os.Args[1:])
	// positional source fallback
	if !fs.Changed("nodes-source") && fs.NArg() > 0 && fs.Arg(0) != "" {
		_ = fs.Set("nodes-source", fs.Arg(0))
	}
	return LoadWithFlags(fs)
}

// LoadWithFlags resolves defaults, config file, environment and the
// already-parsed flags in fs, in increasing precedence.
func LoadWithFlags(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Config file resolution
	var cfgPath string
	if fs != nil {
		cfgPath, _ = fs.GetString("config")
	}
	if cfgPath == "" {
		cfgPath = os.Getenv(envPrefix + "_CONFIG")
	}
	if cfgPath != "" {
		if err := readConfigFile(v, cfgPath); err != nil {
			return Config{}, err
		}
	} else {
		_ = readDefaultConfig(v) // best-effort
	}

	// Flags override config; only flags the user set win over env.
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) {
			if f.Name == "config" {
				return
			}
			v.Set(flagKey(f.Name), f.Value.String())
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func flagKey(name string) string { return strings.ReplaceAll(name, "-", "_") }

func validate(cfg Config) error {
	if cfg.NodesSource == "" {
		return errors.New("config: nodes_source is required")
	}
	switch cfg.Transport {
	case TransportStdio, TransportSSE, TransportStreamable:
	default:
		return fmt.Errorf("config: transport must be one of [%s,%s,%s]", TransportStdio, TransportSSE, TransportStreamable)
	}
	if cfg.Transport != TransportStdio {
		if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
			return errors.New("config: http_port must be within 1..65535")
		}
		if !strings.HasPrefix(cfg.HTTPPath, "/") {
			return errors.New("config: http_path must start with /")
		}
		if cfg.MetricsPath != "" && (!strings.HasPrefix(cfg.MetricsPath, "/") || cfg.MetricsPath == cfg.HTTPPath) {
			return errors.New("config: metrics_path must start with / and differ from http_path")
		}
	}
	if cfg.NodesTable == "" && cfg.NodesQuery == "" {
		return errors.New("config: nodes_table must not be empty")
	}
	if cfg.DefaultTopN <= 0 {
		return errors.New("config: default_top_n must be > 0")
	}
	if cfg.MaxTopN < cfg.DefaultTopN {
		return errors.New("config: max_top_n must be >= default_top_n")
	}
	if cfg.PointRadiusKM <= 0 {
		return errors.New("config: point_radius_km must be > 0")
	}
	if cfg.CacheTTLSeconds < 0 {
		return errors.New("config: cache_ttl_seconds must be >= 0")
	}
	if cfg.ConnectTimeoutSeconds <= 0 {
		return errors.New("config: connect_timeout_seconds must be > 0")
	}
	if cfg.StatementTimeoutMs <= 0 {
		return errors.New("config: statement_timeout_ms must be > 0")
	}
	return nil
}

// ClampTopN applies the default and the upper bound to a requested top_n.
func (c Config) ClampTopN(n int) int {
	if n <= 0 {
		return c.DefaultTopN
	}
	if n > c.MaxTopN {
		return c.MaxTopN
	}
	return n
}

// Addr is the HTTP listen address for the network transports.
func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.HTTPAddr, c.HTTPPort) }

func readConfigFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func readDefaultConfig(v *viper.Viper) error {
	paths := defaultConfigCandidates()
	exts := []string{"yaml", "yml", "json", "toml"}
	for _, base := range paths {
		for _, ext := range exts {
			candidate := base + "." + ext
			if _, err := os.Stat(candidate); err == nil {
				v.SetConfigFile(candidate)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read default config %s: %w", candidate, err)
				}
				return nil
			}
		}
	}
	return nil
}

func defaultConfigCandidates() []string {
	var out []string
	cwd, _ := os.Getwd()
	if cwd != "" {
		out = append(out,
			filepath.Join(cwd, "gridsite"),
			filepath.Join(cwd, "config", "gridsite"),
		)
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			xdg = filepath.Join(home, ".config")
		}
	}
	if xdg != "" {
		out = append(out, filepath.Join(xdg, "gridsite", "config"))
	}
	return out
}
