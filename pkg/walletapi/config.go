package walletapi

import "time"

type Config struct {
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries    int           `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	RetryBackoff  time.Duration `mapstructure:"retry_backoff"`
	SessionCookie string        `mapstructure:"session_cookie"`
	SessionToken  string        `mapstructure:"session_token"`
}
