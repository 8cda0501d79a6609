package config

import (
	"slices"
	"time"
)

// Model backends understood by ModelConfig.Backend.
const (
	BackendRemote = "remote"
	BackendHugot  = "hugot"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Model    ModelConfig    `yaml:"model"`
	Datasets DatasetsConfig `yaml:"datasets"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ModelConfig selects and configures the pretrained ATEPC model backend.
type ModelConfig struct {
	Backend    string        `yaml:"backend"     env:"MODEL_BACKEND"     env-default:"remote"`
	BaseURL    string        `yaml:"base_url"    env:"MODEL_BASE_URL"    env-default:"http://127.0.0.1:8501"`
	Checkpoint string        `yaml:"checkpoint"  env:"MODEL_CHECKPOINT"  env-default:"multilingual"`
	Timeout    time.Duration `yaml:"timeout"     env:"MODEL_TIMEOUT"     env-default:"30s"`
	// ModelPath is the directory holding the exported ONNX checkpoint (hugot backend).
	ModelPath    string `yaml:"model_path"    env:"MODEL_PATH"`
	OnnxFilename string `yaml:"onnx_filename" env:"MODEL_ONNX_FILENAME" env-default:"model.onnx"`
}

// DatasetsConfig holds example dataset settings.
type DatasetsConfig struct {
	Root     string `yaml:"root"  env:"DATASETS_ROOT"  env-default:"./integrated_datasets"`
	NamesRaw string `yaml:"names" env:"DATASETS_NAMES" env-default:"Laptop14,Restaurant14,SemEval,Twitter,TShirt"`

	// Names is parsed from NamesRaw during validation.
	Names []string `yaml:"-" env:"-"`
}

// AnalysisConfig holds inference request settings.
type AnalysisConfig struct {
	MaxInputRunes      int `yaml:"max_input_runes"       env:"ANALYSIS_MAX_INPUT_RUNES"       env-default:"2000"`
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"ANALYSIS_RATE_LIMIT_PER_MINUTE" env-default:"60"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// KnownBackends returns the model backends the application can build.
func KnownBackends() []string {
	return []string{BackendRemote, BackendHugot}
}

// IsBackendKnown reports whether b names a supported model backend.
func (c ModelConfig) IsBackendKnown() bool {
	return slices.Contains(KnownBackends(), c.Backend)
}
