package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port             string
	DBConn           string
	LogLevel         string
	JWTSecret        string
	MigrationsPath   string
	ECBURL           string
	BaseCurrency     string
	SchedulerEnabled bool
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SenderEmail      string
}

// NewConfig loads configuration from an optional config file and from
// environment variables prefixed with FINANCE_ (e.g. FINANCE_DB_CONN).
func NewConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("db_conn", "host=localhost port=5432 user=finance password=finance dbname=finance sslmode=disable")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("ecb_url", "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml")
	v.SetDefault("base_currency", "EUR")
	v.SetDefault("scheduler_enabled", true)
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", "587")
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("sender_email", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("FINANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// config file is optional
	_ = v.ReadInConfig()

	cfg := &Config{
		Port:             v.GetString("port"),
		DBConn:           v.GetString("db_conn"),
		LogLevel:         v.GetString("log_level"),
		JWTSecret:        v.GetString("jwt_secret"),
		MigrationsPath:   v.GetString("migrations_path"),
		ECBURL:           v.GetString("ecb_url"),
		BaseCurrency:     strings.ToUpper(v.GetString("base_currency")),
		SchedulerEnabled: v.GetBool("scheduler_enabled"),
		SMTPHost:         v.GetString("smtp_host"),
		SMTPPort:         v.GetString("smtp_port"),
		SMTPUsername:     v.GetString("smtp_username"),
		SMTPPassword:     v.GetString("smtp_password"),
		SenderEmail:      v.GetString("sender_email"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("db_conn is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}

	return cfg, nil
}
