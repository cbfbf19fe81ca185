package config

import (
	"log/slog"
	"net"
	"strings"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	SQLLevelInfo  = "info"
	SQLLevelDebug = "debug"
	SQLLevelError = "error"
)

type ServerConfig struct {
	Address     string `mapstructure:"address"`
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	AddSource bool   `mapstructure:"add_source"`
}

type MethodLoggingConfig struct {
	BasePackage    string `mapstructure:"base_package"`
	ExcludePackage string `mapstructure:"exclude_package"`
}

type SQLLoggingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	MethodLogging MethodLoggingConfig `mapstructure:"method_logging"`
	SQLLogging    SQLLoggingConfig    `mapstructure:"sql_logging"`
	Database      DatabaseConfig      `mapstructure:"database"`
}

func Load() (*Config, error) {
	viper.SetDefault("server.environment", EnvDev)
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("logging.level", LogLevelInfo)
	viper.SetDefault("logging.add_source", false)
	viper.SetDefault("method_logging.base_package", "")
	viper.SetDefault("method_logging.exclude_package", "")
	viper.SetDefault("sql_logging.enabled", false)
	viper.SetDefault("sql_logging.level", SQLLevelInfo)
	viper.SetDefault("database.path", "calllog.db")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", viper.ConfigFileUsed()))
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

// Watch re-reads the loaded config file on change and delivers the new
// configuration when it unmarshals and validates cleanly. Invalid edits
// are logged and dropped, keeping the previous settings live.
func Watch(onChange func(*Config)) {
	viper.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		if err := viper.Unmarshal(&cfg); err != nil {
			slog.Error("failed to unmarshal reloaded config", slog.String("error", err.Error()))
			return
		}
		if err := cfg.Validate(); err != nil {
			slog.Error("reloaded configuration invalid, keeping previous", slog.String("error", err.Error()))
			return
		}
		onChange(&cfg)
	})
	viper.WatchConfig()
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.SQLLogging,
			validation.By(func(value interface{}) error {
				slc, ok := value.(SQLLoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a SQLLoggingConfig")
				}
				return validation.ValidateStruct(&slc,
					validation.Field(&slc.Level,
						validation.Required,
						validation.In(SQLLevelInfo, SQLLevelDebug, SQLLevelError),
					),
				)
			}),
		),
		validation.Field(&c.Database,
			validation.By(func(value interface{}) error {
				dc, ok := value.(DatabaseConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a DatabaseConfig")
				}
				return validation.ValidateStruct(&dc,
					validation.Field(&dc.Path, validation.Required),
				)
			}),
		),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}
