package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBSource      string        `mapstructure:"DB_SOURCE"`
	ServerAddress string        `mapstructure:"SERVER_ADDRESS" validate:"required"`
	AddyBaseURL   string        `mapstructure:"ADDY_BASE_URL" validate:"required,url"`
	AddyAPIKey    string        `mapstructure:"ADDY_API_KEY"`
	AddyAPISecret string        `mapstructure:"ADDY_API_SECRET"`
	AddyTimeout   time.Duration `mapstructure:"ADDY_TIMEOUT" validate:"gt=0"`
	LogLevel      string        `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	LogPretty     bool          `mapstructure:"LOG_PRETTY"`
}

var keys = []string{
	"DB_SOURCE",
	"SERVER_ADDRESS",
	"ADDY_BASE_URL",
	"ADDY_API_KEY",
	"ADDY_API_SECRET",
	"ADDY_TIMEOUT",
	"LOG_LEVEL",
	"LOG_PRETTY",
}

// LoadConfig reads configuration from app.env in path, if present, and from the environment.
// Environment variables win over the file; .env and .env.local in the working directory are loaded first.
func LoadConfig(path string) (Config, error) {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("ADDY_BASE_URL", "https://api.addy.co.nz/")
	v.SetDefault("ADDY_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("config: failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("config: failed to decode: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("config: invalid: %w", err)
	}

	return config, nil
}

// RequireAddyCredentials reports an error unless both Addy credentials are set.
func (c Config) RequireAddyCredentials() error {
	validate := validator.New()
	if err := validate.Var(c.AddyAPIKey, "required"); err != nil {
		return fmt.Errorf("config: ADDY_API_KEY is required")
	}
	if err := validate.Var(c.AddyAPISecret, "required"); err != nil {
		return fmt.Errorf("config: ADDY_API_SECRET is required")
	}
	return nil
}
