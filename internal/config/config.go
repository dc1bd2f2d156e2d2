package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string   `mapstructure:"PORT"`
	Env                  string   `mapstructure:"ENV"`
	DatabaseURL          string   `mapstructure:"DATABASE_URL"`
	DBMaxConns           int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns           int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret            string   `mapstructure:"JWT_SECRET"`
	CORSOrigins          []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS         float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst       int      `mapstructure:"RATE_LIMIT_BURST"`
	BootstrapAdminEmails []string `mapstructure:"BOOTSTRAP_ADMIN_EMAILS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("BOOTSTRAP_ADMIN_EMAILS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}
	if cfg.BootstrapAdminEmails == nil {
		if admins := v.GetString("BOOTSTRAP_ADMIN_EMAILS"); admins != "" {
			cfg.BootstrapAdminEmails = strings.Split(admins, ",")
		}
	}
	for i, email := range cfg.BootstrapAdminEmails {
		cfg.BootstrapAdminEmails[i] = strings.ToLower(strings.TrimSpace(email))
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: Set ENV=production and a strong JWT_SECRET for production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// a JWT secret must be configured so that real authentication is enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q", c.Env)
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes in production, got %d", len(c.JWTSecret))
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

// IsBootstrapAdmin reports whether the given email is on the configured
// bootstrap administrator allow-list. Matching is case-insensitive.
func (c *Config) IsBootstrapAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range c.BootstrapAdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}
