package checkout

type Config struct {
	ListenAddr   string `mapstructure:"listen_addr" validate:"required,listenaddr"`
	PublicKey    string `mapstructure:"public_key" validate:"required"`
	MerchantName string `mapstructure:"merchant_name"`
	Description  string `mapstructure:"description"`
	ThemeColor   string `mapstructure:"theme_color" validate:"omitempty,hexcolor"`
}
