// Package config loads application configuration and the tunable
// heuristic tables the extraction engine runs on.
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
	Shards     ShardsConfig `yaml:"shards" mapstructure:"shards"`
	Roster     RosterConfig `yaml:"roster" mapstructure:"roster"`
	Output     OutputConfig `yaml:"output" mapstructure:"output"`
	Store      StoreConfig  `yaml:"store" mapstructure:"store"`
	Server     ServerConfig `yaml:"server" mapstructure:"server"`
	Log        LogConfig    `yaml:"log" mapstructure:"log"`
	Heuristics string       `yaml:"heuristics" mapstructure:"heuristics"` // optional YAML overrides file
}

// ShardsConfig locates the bio corpus.
type ShardsConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// RosterConfig configures the master roster source.
type RosterConfig struct {
	URL         string  `yaml:"url" mapstructure:"url"`
	File        string  `yaml:"file" mapstructure:"file"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// OutputConfig configures where result workbooks are written.
type OutputConfig struct {
	ResultsDir  string `yaml:"results_dir" mapstructure:"results_dir"`
	RejectedDir string `yaml:"rejected_dir" mapstructure:"rejected_dir"`
}

// StoreConfig configures the search-run log database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the search API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("ROSTERSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("shards.dir", "db_chunks")
	v.SetDefault("roster.file", "master_roster.csv")
	v.SetDefault("roster.timeout_secs", 10)
	v.SetDefault("roster.rate_per_sec", 1.0)
	v.SetDefault("output.results_dir", "Search_Results")
	v.SetDefault("output.rejected_dir", "Rejected_Bios")
	v.SetDefault("store.path", "roster-scout.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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
