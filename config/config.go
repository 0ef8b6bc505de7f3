package config

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	ServerStartPort = ":8080"

	// DefaultCurrency is the only currency the storefront sells in.
	DefaultCurrency = "GBP"
)

type Config struct {
	Backend      BackendConfig
	Organization OrganizationConfig
	Checkout     CheckoutConfig
	Stripe       StripeConfig
	Redis        RedisConfig
}

type BackendConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIToken string `mapstructure:"api_token"`
}

type OrganizationConfig struct {
	ID string `mapstructure:"id"`
}

type CheckoutConfig struct {
	// Domain is the public base of the hosted payment page; a newly
	// created session redirects to <Domain>/<uuid>.
	Domain string `mapstructure:"domain"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
}

func ProvideApplicationConfig() (*Config, error) {

	viper.SetConfigFile("./config.yaml")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend.base_url is required")
	}
	if config.Organization.ID == "" {
		return nil, fmt.Errorf("organization.id is required")
	}

	return &config, nil
}

func ProvideRedisClient(appConfig *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     appConfig.Redis.Addr,
		Password: appConfig.Redis.Password,
		DB:       0,
	})
}

func NewLogger() *zap.Logger {

	logger, _ := zap.NewProduction()
	return logger
}
