package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `yaml:"max_request_bytes"`

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string `yaml:"cors_origins"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type StorageConfig struct {
	// Driver is one of sqlite, postgres, redis or memory.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`

	// ProfileKey names the single local profile record.
	ProfileKey string `yaml:"profile_key"`

	Redis RedisConfig `yaml:"redis"`
}

type FeedbackConfig struct {
	URL        string   `yaml:"url"`
	Timeout    Duration `yaml:"timeout"`
	MaxRetries int      `yaml:"max_retries"`
}

type StatementConfig struct {
	CacheTTL Duration `yaml:"cache_ttl"`

	// FontPath replaces the built-in Go font, e.g. with one that has Arabic
	// glyphs.
	FontPath string `yaml:"font_path"`

	// OutputDir, when set, receives a copy of every rendered statement.
	OutputDir string `yaml:"output_dir"`

	// Bucket, when set, receives a copy in Google Cloud Storage.
	Bucket          string `yaml:"bucket"`
	BucketPrefix    string `yaml:"bucket_prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

type TelemetryConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Endpoint    string            `yaml:"endpoint"`
	Insecure    bool              `yaml:"insecure"`
	Headers     map[string]string `yaml:"headers"`
	SampleRatio float64           `yaml:"sample_ratio"`
}

type Config struct {
	Env       string          `yaml:"env"`
	Version   string          `yaml:"version"`
	HTTP      HTTPConfig      `yaml:"http"`
	Storage   StorageConfig   `yaml:"storage"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
	Statement StatementConfig `yaml:"statement"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}
