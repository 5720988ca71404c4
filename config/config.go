package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

const (
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

type Config struct {
	Mode string `mapstructure:"mode"`
	API  struct {
		BaseURL   string        `mapstructure:"base_url"`
		Timeout   time.Duration `mapstructure:"timeout"`
		PageSize  int           `mapstructure:"page_size"`
		CacheTTL  time.Duration `mapstructure:"cache_ttl"`
		UserAgent string        `mapstructure:"user_agent"`
	} `mapstructure:"api"`
	Tokens struct {
		Store string `mapstructure:"store"`
		File  string `mapstructure:"file"`
		Redis struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
			Prefix   string `mapstructure:"prefix"`
		} `mapstructure:"redis"`
	} `mapstructure:"tokens"`
	Mock struct {
		Addr           string        `mapstructure:"addr"`
		JWTSecret      string        `mapstructure:"jwt_secret"`
		Issuer         string        `mapstructure:"issuer"`
		Audience       string        `mapstructure:"audience"`
		TokenTTL       time.Duration `mapstructure:"token_ttl"`
		Seed           bool          `mapstructure:"seed"`
		Metrics        bool          `mapstructure:"metrics"`
		AllowedOrigins []string      `mapstructure:"allowed_origins"`
	} `mapstructure:"mock"`
}

// Validate rejects settings that would only fail later, mid-command.
func (c Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.API.PageSize <= 0 {
		errs = append(errs, errors.New("api.page_size must be positive"))
	}
	switch c.Tokens.Store {
	case TokenStoreFile, TokenStoreMemory:
	case TokenStoreRedis:
		if c.Tokens.Redis.Addr == "" {
			errs = append(errs, errors.New("tokens.redis.addr is required for the redis token store"))
		}
	default:
		errs = append(errs, fmt.Errorf("tokens.store %q is not one of file, redis, memory", c.Tokens.Store))
	}
	return errors.Join(errs...)
}

// InitConfig loads config.yml from the search paths (or path, when set),
// falling back to the embedded defaults. RENTAL_* environment variables
// override any key, e.g. RENTAL_API_BASE_URL.
func InitConfig(path string) (Config, error) {
	var config Config
	v := viper.New()

	v.SetEnvPrefix("RENTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yml")

	// Defaults come from the embedded file so env overrides work for every key.
	if err := v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
		return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		v.AddConfigPath("$HOME/.rentalctl")
		v.SetConfigName("config")
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}
