// Package config loads the service configuration from configs/config.yml,
// with KILN_* environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "KILN"

type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Tables    TablesConfig    `mapstructure:"tables"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Builder   BuilderConfig   `mapstructure:"builder"`
	Server    ServerConfig    `mapstructure:"server"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type TablesConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type SimulatorConfig struct {
	Tick  time.Duration `mapstructure:"tick"`
	Speed float64       `mapstructure:"speed"` // programmed minutes per wall-clock minute
}

type BuilderConfig struct {
	MaxHeatingVelocity   int `mapstructure:"max_heating_velocity"`
	FinalCoolingVelocity int `mapstructure:"final_cooling_velocity"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("tables.path", "configs/tables.yml")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("simulator.tick", time.Second)
	v.SetDefault("simulator.speed", 60.0)
	v.SetDefault("builder.max_heating_velocity", 999)
	v.SetDefault("builder.final_cooling_velocity", -20)
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
}

// Load reads the config file at path. An empty path searches ./configs for
// config.yml; a missing file there is not an error and defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.Simulator.Tick <= 0 {
		return fmt.Errorf("simulator.tick must be positive, got %s", c.Simulator.Tick)
	}
	if c.Simulator.Speed <= 0 {
		return fmt.Errorf("simulator.speed must be positive, got %v", c.Simulator.Speed)
	}
	if c.Builder.MaxHeatingVelocity <= 0 {
		return fmt.Errorf("builder.max_heating_velocity must be positive, got %d", c.Builder.MaxHeatingVelocity)
	}
	if c.Builder.FinalCoolingVelocity >= 0 {
		return fmt.Errorf("builder.final_cooling_velocity must be negative, got %d", c.Builder.FinalCoolingVelocity)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}
