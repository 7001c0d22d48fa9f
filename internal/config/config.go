package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Crawl      CrawlConfig      `yaml:"crawl" mapstructure:"crawl"`
	Fetch      FetchConfig      `yaml:"fetch" mapstructure:"fetch"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Jina       JinaConfig       `yaml:"jina" mapstructure:"jina"`
	Perplexity PerplexityConfig `yaml:"perplexity" mapstructure:"perplexity"`
	Translate  TranslateConfig  `yaml:"translate" mapstructure:"translate"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// CrawlConfig configures page discovery.
type CrawlConfig struct {
	MaxPages int `yaml:"max_pages" mapstructure:"max_pages"`
}

// FetchConfig configures the page fetcher.
type FetchConfig struct {
	TimeoutSecs   int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries    int `yaml:"max_retries" mapstructure:"max_retries"`
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// SearchConfig configures the search fallback chain.
type SearchConfig struct {
	MaxPrimaryQueries   int    `yaml:"max_primary_queries" mapstructure:"max_primary_queries"`
	MaxSecondaryQueries int    `yaml:"max_secondary_queries" mapstructure:"max_secondary_queries"`
	MaxResultLinks      int    `yaml:"max_result_links" mapstructure:"max_result_links"`
	TierConfigPath      string `yaml:"tier_config" mapstructure:"tier_config"`
}

// JinaConfig holds Jina AI Reader settings. An empty key disables the
// reader fallback in the fetch chain.
type JinaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// PerplexityConfig holds the premium search API settings. An empty key
// disables the premium fallback tier.
type PerplexityConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// TranslateConfig holds the translation backend settings. An empty URL
// disables translation; queries fall back to English.
type TranslateConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
	Key string `yaml:"key" mapstructure:"key"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("REVENUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("crawl.max_pages", 10)
	v.SetDefault("fetch.timeout_secs", 15)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.max_concurrent", 5)
	v.SetDefault("search.max_primary_queries", 3)
	v.SetDefault("search.max_secondary_queries", 2)
	v.SetDefault("search.max_result_links", 3)
	v.SetDefault("jina.base_url", "https://r.jina.ai")
	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("perplexity.model", "sonar-pro")

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
