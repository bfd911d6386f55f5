package cache

import "time"

type Config struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"gte=0"`
	Key      string        `mapstructure:"key" validate:"required_if=Enabled true"`
	TTL      time.Duration `mapstructure:"ttl"`
}
