package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type SessionConfig struct {
	Secret      string `mapstructure:"secret"`
	CookieName  string `mapstructure:"cookie_name"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type UploadConfig struct {
	Dir     string `mapstructure:"dir"`
	MaxSize int64  `mapstructure:"max_size"` // bytes, per request
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type AppSubConfig struct {
	PageSize     int  `mapstructure:"page_size"`
	StrictSearch bool `mapstructure:"strict_search"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppSubConfig   `mapstructure:"app"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. BOARD_SERVER_PORT=9000
		v.SetEnvPrefix("BOARD")
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		applyDefaults(&c)
		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

func applyDefaults(c *Config) {
	if c.Session.CookieName == "" {
		c.Session.CookieName = "board_token"
	}
	if c.Session.ExpireHours <= 0 {
		c.Session.ExpireHours = 24
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = "data/upload"
	}
	if c.Upload.MaxSize <= 0 {
		c.Upload.MaxSize = 32 << 20
	}
	if c.App.PageSize <= 0 {
		c.App.PageSize = 10
	}
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
