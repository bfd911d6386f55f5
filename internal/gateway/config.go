package gateway

import "time"

const DefaultScriptURL = "https://checkout.razorpay.com/v1/checkout.js"

type Config struct {
	ScriptURL   string        `mapstructure:"script_url" validate:"required,url"`
	LoadTimeout time.Duration `mapstructure:"load_timeout" validate:"gt=0"`
}
