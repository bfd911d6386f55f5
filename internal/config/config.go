package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Bluepen/wallet-topup/internal/cache"
	"github.com/Bluepen/wallet-topup/internal/checkout"
	"github.com/Bluepen/wallet-topup/internal/gateway"
	"github.com/Bluepen/wallet-topup/internal/validator"
	"github.com/Bluepen/wallet-topup/pkg/walletapi"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "WALLET"

var ErrConfiguration = errors.New("CONFIGURATION_ERROR")

type Config struct {
	API      walletapi.Config `mapstructure:"api"`
	Gateway  gateway.Config   `mapstructure:"gateway"`
	Checkout checkout.Config  `mapstructure:"checkout"`
	Cache    cache.Config     `mapstructure:"cache"`
	Log      Log              `mapstructure:"log"`
}

type Log struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// ValidationError lists every config key that is missing or malformed.
type ValidationError struct {
	Fields []validator.Error
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + validator.Message(e.Fields, "%s (%s)")
}

func (e *ValidationError) Unwrap() error {
	return ErrConfiguration
}

func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads config.yml from paths, then .env and WALLET_* variables on top.
// A missing config file is fine as long as the environment supplies the required keys.
func LoadFrom(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Validate(cfg *Config) error {
	if errs := validator.NewXValidator(nil).Validate(cfg); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	return nil
}

// Every key needs a default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.max_retries", 2)
	v.SetDefault("api.retry_backoff", 500*time.Millisecond)
	v.SetDefault("api.session_cookie", "")
	v.SetDefault("api.session_token", "")

	v.SetDefault("gateway.script_url", gateway.DefaultScriptURL)
	v.SetDefault("gateway.load_timeout", 20*time.Second)

	v.SetDefault("checkout.listen_addr", "127.0.0.1:0")
	v.SetDefault("checkout.public_key", "")
	v.SetDefault("checkout.merchant_name", "Wallet")
	v.SetDefault("checkout.description", "Add funds to wallet")
	v.SetDefault("checkout.theme_color", "#3399cc")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.key", "wallet:snapshot")
	v.SetDefault("cache.ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}
