package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/showatlas/showatlas/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Fetch     FetchConfig     `yaml:"fetch" mapstructure:"fetch"`
	Chunk     ChunkConfig     `yaml:"chunk" mapstructure:"chunk"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Geocode   GeocodeConfig   `yaml:"geocode" mapstructure:"geocode"`
	Sources   []model.Source  `yaml:"sources" mapstructure:"sources"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// FetchConfig configures document fetching.
type FetchConfig struct {
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MinBodyBytes int    `yaml:"min_body_bytes" mapstructure:"min_body_bytes"`
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ChunkConfig configures document chunking for AI extraction.
type ChunkConfig struct {
	MaxSize   int `yaml:"max_size" mapstructure:"max_size"`
	MaxChunks int `yaml:"max_chunks" mapstructure:"max_chunks"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ExtractConfig configures the AI extraction budget and retry policy.
type ExtractConfig struct {
	MaxRequestsPerRun int `yaml:"max_requests_per_run" mapstructure:"max_requests_per_run"`
	RequestDelayMs    int `yaml:"request_delay_ms" mapstructure:"request_delay_ms"`
	OverloadRetries   int `yaml:"overload_retries" mapstructure:"overload_retries"`
	OverloadDelaySecs int `yaml:"overload_delay_secs" mapstructure:"overload_delay_secs"`
}

// GeocodeConfig configures the geocoding budget.
type GeocodeConfig struct {
	Key            string `yaml:"key" mapstructure:"key"`
	TimeoutSecs    int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxCallsPerRun int    `yaml:"max_calls_per_run" mapstructure:"max_calls_per_run"`
	CallDelayMs    int    `yaml:"call_delay_ms" mapstructure:"call_delay_ms"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SHOWATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("fetch.timeout_secs", 20)
	v.SetDefault("fetch.min_body_bytes", 256)
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	v.SetDefault("chunk.max_size", 12000)
	v.SetDefault("chunk.max_chunks", 3)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("extract.max_requests_per_run", 6)
	v.SetDefault("extract.request_delay_ms", 1500)
	v.SetDefault("extract.overload_retries", 3)
	v.SetDefault("extract.overload_delay_secs", 5)
	v.SetDefault("geocode.timeout_secs", 10)
	v.SetDefault("geocode.max_calls_per_run", 20)
	v.SetDefault("geocode.call_delay_ms", 1100)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
