package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/gradecalc/internal/platform/envutil"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"

	DefaultFeedbackURL = "https://formspree.io/f/mdkzpdnj"
)

// UnmarshalYAML accepts "5s"-style strings or integer nanoseconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	s := strings.TrimSpace(node.Value)
	if s == "" || s == "null" || s == "~" {
		d.Duration = 0
		return nil
	}
	if dd, err := time.ParseDuration(s); err == nil {
		d.Duration = dd
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a string like \"5s\" or an int nanoseconds, got %q", s)
	}
	d.Duration = time.Duration(n)
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Env:     "development",
		Version: "dev",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
			CORSOrigins:       []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			DSN:        "gradecalc.db",
			ProfileKey: "default",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "gradecalc",
			},
		},
		Feedback: FeedbackConfig{
			URL:        DefaultFeedbackURL,
			Timeout:    Duration{Duration: 10 * time.Second},
			MaxRetries: 2,
		},
		Statement: StatementConfig{
			CacheTTL:     Duration{Duration: 10 * time.Minute},
			BucketPrefix: "statements/",
		},
		Telemetry: TelemetryConfig{
			SampleRatio: 0.1,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order. A .env file in the working directory is loaded
// first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("GRADECALC_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.Version = envutil.String("GRADECALC_VERSION", cfg.Version)
	cfg.HTTP.Addr = envutil.String("GRADECALC_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.ShutdownTimeout.Duration = envutil.Duration("GRADECALC_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout.Duration)
	if v := strings.TrimSpace(os.Getenv("GRADECALC_CORS_ORIGINS")); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}

	cfg.Storage.Driver = envutil.String("GRADECALC_STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.DSN = envutil.String("GRADECALC_STORAGE_DSN", cfg.Storage.DSN)
	cfg.Storage.ProfileKey = envutil.String("GRADECALC_PROFILE_KEY", cfg.Storage.ProfileKey)
	cfg.Storage.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Storage.Redis.Addr)
	cfg.Storage.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Storage.Redis.Password)
	cfg.Storage.Redis.DB = envutil.Int("REDIS_DB", cfg.Storage.Redis.DB)

	cfg.Feedback.URL = envutil.String("GRADECALC_FEEDBACK_URL", cfg.Feedback.URL)
	cfg.Feedback.MaxRetries = envutil.Int("GRADECALC_FEEDBACK_MAX_RETRIES", cfg.Feedback.MaxRetries)

	cfg.Statement.OutputDir = envutil.String("GRADECALC_STATEMENT_DIR", cfg.Statement.OutputDir)
	cfg.Statement.Bucket = envutil.String("GRADECALC_STATEMENT_BUCKET", cfg.Statement.Bucket)
	cfg.Statement.CredentialsFile = envutil.String("GOOGLE_APPLICATION_CREDENTIALS", cfg.Statement.CredentialsFile)
	cfg.Statement.FontPath = envutil.String("GRADECALC_STATEMENT_FONT", cfg.Statement.FontPath)

	cfg.Telemetry.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Telemetry.Insecure)
	if v := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")); v != "" {
		cfg.Telemetry.Headers = parseHeaders(v)
	}
	if v := strings.TrimSpace(os.Getenv("OTEL_SAMPLER_RATIO")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Telemetry.SampleRatio = f
		}
	}
}

func (cfg *Config) normalize() error {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 1 << 20
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch cfg.Storage.Driver {
	case "", DriverSQLite:
		cfg.Storage.Driver = DriverSQLite
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			cfg.Storage.DSN = "gradecalc.db"
		}
	case DriverPostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return errors.New("storage.dsn is required for the postgres driver")
		}
	case DriverRedis:
		if strings.TrimSpace(cfg.Storage.Redis.Addr) == "" {
			return errors.New("storage.redis.addr is required for the redis driver")
		}
		if strings.TrimSpace(cfg.Storage.Redis.Prefix) == "" {
			cfg.Storage.Redis.Prefix = "gradecalc"
		}
	case DriverMemory:
	default:
		return fmt.Errorf("invalid storage.driver=%q", cfg.Storage.Driver)
	}
	if strings.TrimSpace(cfg.Storage.ProfileKey) == "" {
		cfg.Storage.ProfileKey = "default"
	}

	cfg.Feedback.URL = strings.TrimSpace(cfg.Feedback.URL)
	if cfg.Feedback.URL == "" {
		cfg.Feedback.URL = DefaultFeedbackURL
	}
	if cfg.Feedback.MaxRetries < 0 {
		return fmt.Errorf("invalid feedback.max_retries=%d", cfg.Feedback.MaxRetries)
	}
	if cfg.Feedback.Timeout.Duration <= 0 {
		cfg.Feedback.Timeout = Duration{Duration: 10 * time.Second}
	}
	if cfg.Statement.CacheTTL.Duration < 0 {
		return errors.New("statement.cache_ttl must not be negative")
	}
	if cfg.Telemetry.SampleRatio < 0 {
		cfg.Telemetry.SampleRatio = 0
	}
	if cfg.Telemetry.SampleRatio > 1 {
		cfg.Telemetry.SampleRatio = 1
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseHeaders reads "k1=v1,k2=v2" pairs, skipping malformed ones.
func parseHeaders(raw string) map[string]string {
	headers := map[string]string{}
	for _, part := range splitList(raw) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key, val := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		if key == "" || val == "" {
			continue
		}
		headers[key] = val
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}
