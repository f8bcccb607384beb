package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	FrontendURL  string `mapstructure:"FRONTEND_URL"`
	EnableCORS   bool   `mapstructure:"ENABLE_CORS"`

	// Campus SSO (any OAuth2 provider exposing a userinfo endpoint).
	SSOClientID      string `mapstructure:"SSO_CLIENT_ID"`
	SSOClientSecret  string `mapstructure:"SSO_CLIENT_SECRET"`
	SSORedirectURL   string `mapstructure:"SSO_REDIRECT_URL"`
	SSOAuthURL       string `mapstructure:"SSO_AUTH_URL"`
	SSOTokenURL      string `mapstructure:"SSO_TOKEN_URL"`
	SSOUserInfoURL   string `mapstructure:"SSO_USERINFO_URL"`
	SSOAllowedDomain string `mapstructure:"SSO_ALLOWED_DOMAIN"`

	// Notifications. Either channel is optional.
	SendgridKey           string `mapstructure:"SENDGRID_KEY"`
	SendgridFromEmail     string `mapstructure:"SENDGRID_FROM_EMAIL"`
	AppName               string `mapstructure:"APP_NAME"`
	DiscordBotToken       string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordStaffChannelID string `mapstructure:"DISCORD_STAFF_CHANNEL_ID"`

	// Directory where generated order-of-payment and certificate PDFs
	// are written.
	OrdersDir string `mapstructure:"ORDERS_DIR"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "campus.db")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:4000")
	viper.SetDefault("SSO_REDIRECT_URL", "http://127.0.0.1:8080/auth/sso/callback")
	viper.SetDefault("APP_NAME", "Campus Events")
	viper.SetDefault("ORDERS_DIR", "orders")

	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("SSO_CLIENT_ID")
	viper.BindEnv("SSO_CLIENT_SECRET")
	viper.BindEnv("SSO_REDIRECT_URL")
	viper.BindEnv("SSO_AUTH_URL")
	viper.BindEnv("SSO_TOKEN_URL")
	viper.BindEnv("SSO_USERINFO_URL")
	viper.BindEnv("SSO_ALLOWED_DOMAIN")
	viper.BindEnv("SENDGRID_KEY")
	viper.BindEnv("SENDGRID_FROM_EMAIL")
	viper.BindEnv("APP_NAME")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_STAFF_CHANNEL_ID")
	viper.BindEnv("ORDERS_DIR")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
