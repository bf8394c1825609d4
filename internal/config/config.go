package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Settings is a typed snapshot of the viper configuration.
type Settings struct {
	Env                string
	SessionBackend     string
	SessionFile        string
	SessionDBPath      string
	LogFile            string
	LogLevel           string
	RequestTimeout     time.Duration
	StrictAddressCheck bool
	StrictPhraseCheck  bool

	MockAddr      string
	MockJWTSecret string
	MockTokenTTL  time.Duration
	AllowedOrigin string
	ContactEmail  string
}

// LoadConfig loads the configuration and sets default values for development/production
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("wallet")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createDefaultConfig()
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	setDefaults()

	return nil
}

// setDefaults sets default configuration values based on the environment
func setDefaults() {
	env := viper.GetString("ENV")
	if env == "" {
		env = "development"
		viper.Set("ENV", env)
	}

	if env == "production" {
		viper.SetDefault("session_backend", "sqlite")
		viper.SetDefault("log_level", "info")
		viper.SetDefault("strict_address_check", true)
	} else {
		viper.SetDefault("session_backend", "file")
		viper.SetDefault("log_level", "debug")
		viper.SetDefault("strict_address_check", false)
	}

	viper.SetDefault("session_file", "./wallet_session.env")
	viper.SetDefault("session_db_path", "./wallet_session.db")
	viper.SetDefault("log_file", "wallet.log")
	viper.SetDefault("request_timeout", "15s")
	viper.SetDefault("strict_phrase_check", false)

	viper.SetDefault("mock_addr", "127.0.0.1:5000")
	viper.SetDefault("mock_jwt_secret", "")
	viper.SetDefault("mock_token_ttl", "15m")
	viper.SetDefault("allowed_origin", "http://localhost:3000")
	viper.SetDefault("contact_email", "support@trustwallet.local")
}

// createDefaultConfig creates a new configuration file if it doesn't exist
func createDefaultConfig() error {
	setDefaults()

	err := viper.SafeWriteConfig()
	if err != nil {
		if os.IsExist(err) {
			if err = viper.WriteConfig(); err != nil {
				return fmt.Errorf("error writing config file: %w", err)
			}
		} else {
			return fmt.Errorf("error creating config file: %w", err)
		}
	}

	return nil
}

// Current returns the settings viper holds right now. Defaults are applied
// first so a caller that skipped LoadConfig still gets usable values.
func Current() Settings {
	setDefaults()
	return Settings{
		Env:                viper.GetString("ENV"),
		SessionBackend:     viper.GetString("session_backend"),
		SessionFile:        viper.GetString("session_file"),
		SessionDBPath:      viper.GetString("session_db_path"),
		LogFile:            viper.GetString("log_file"),
		LogLevel:           viper.GetString("log_level"),
		RequestTimeout:     viper.GetDuration("request_timeout"),
		StrictAddressCheck: viper.GetBool("strict_address_check"),
		StrictPhraseCheck:  viper.GetBool("strict_phrase_check"),
		MockAddr:           viper.GetString("mock_addr"),
		MockJWTSecret:      viper.GetString("mock_jwt_secret"),
		MockTokenTTL:       viper.GetDuration("mock_token_ttl"),
		AllowedOrigin:      viper.GetString("allowed_origin"),
		ContactEmail:       viper.GetString("contact_email"),
	}
}
