// Package config loads the settings of the reactions command and service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zephyrtronium/reactions"
)

// EnvPrefix is the prefix of environment variables that override settings.
// REACTIONS_BATCH_WORKERS sets batch.workers.
const EnvPrefix = "REACTIONS"

// Config holds the entire configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Balance BalanceConfig `mapstructure:"balance" yaml:"balance"`
	Batch   BatchConfig   `mapstructure:"batch" yaml:"batch"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
}

// LoggerConfig configures the application logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	// LogFile, if not empty, receives JSON logs in addition to the console.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// BalanceConfig selects how equations are balanced.
type BalanceConfig struct {
	// Method is "algebraic" or "matrix".
	Method string `mapstructure:"method" yaml:"method"`
	// Substitution enables treating polyatomic ions as single units.
	Substitution bool `mapstructure:"substitution" yaml:"substitution"`
	// Trace logs the solver's steps at debug level.
	Trace bool `mapstructure:"trace" yaml:"trace"`
}

// BatchConfig configures balancing many equations at once.
type BatchConfig struct {
	Workers  int  `mapstructure:"workers" yaml:"workers"`
	FailFast bool `mapstructure:"fail_fast" yaml:"fail_fast"`
}

// CacheConfig configures the memo of balanced equations.
type CacheConfig struct {
	Size int `mapstructure:"size" yaml:"size"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	// MaxEquations bounds the equations in one balance request.
	MaxEquations int `mapstructure:"max_equations" yaml:"max_equations"`
}

// SetDefaults sets the default value of every setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "reactions")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("balance.method", "algebraic")
	v.SetDefault("balance.substitution", true)
	v.SetDefault("balance.trace", false)

	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.fail_fast", false)

	v.SetDefault("cache.size", 1024)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.max_equations", 1000)
}

// Load reads the configuration into v and decodes it. If file is empty,
// reactions.yaml in the working directory is used when it exists. Settings in
// the environment take precedence over the file.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("reactions")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, not %q", c.Logger.Format)
	}
	if _, ok := reactions.ParseMethod(c.Balance.Method); !ok {
		return fmt.Errorf("balance.method must be algebraic or matrix, not %q", c.Balance.Method)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch.workers must be a positive integer")
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be a positive integer")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ReadHeaderTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive durations")
	}
	if c.Server.MaxEquations <= 0 {
		return fmt.Errorf("server.max_equations must be a positive integer")
	}
	return nil
}
