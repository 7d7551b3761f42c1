package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// RulesPath points at the YAML classification rules file.
	RulesPath string

	// Fallback classification applied when no rule matches. Both codes must
	// exist in the chart of accounts.
	FallbackDebitAccount  string
	FallbackCreditAccount string
	FallbackConfidence    float64

	// RateLimit is an ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RULES_PATH", "rules.yaml")
	viper.SetDefault("FALLBACK_DEBIT_ACCOUNT", "9999")
	viper.SetDefault("FALLBACK_CREDIT_ACCOUNT", "9999")
	viper.SetDefault("FALLBACK_CONFIDENCE", 0.05)
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:           viper.GetString("PGSQL_URL"),
		Port:                  viper.GetString("PORT"),
		IsProduction:          viper.GetBool("IS_PRODUCTION"),
		RulesPath:             viper.GetString("RULES_PATH"),
		FallbackDebitAccount:  viper.GetString("FALLBACK_DEBIT_ACCOUNT"),
		FallbackCreditAccount: viper.GetString("FALLBACK_CREDIT_ACCOUNT"),
		FallbackConfidence:    viper.GetFloat64("FALLBACK_CONFIDENCE"),
		RateLimit:             viper.GetString("RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	return cfg, nil
}
