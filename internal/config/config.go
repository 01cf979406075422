package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Modos de autenticación del servicio.
const (
	AuthModeDev      = "dev"      // sin verifier, header X-Debug-User-ID
	AuthModeJWT      = "jwt"      // HS256 local con secreto compartido
	AuthModeIdentity = "identity" // verificación remota contra el servicio de identidad
)

type Config struct {
	Port  string `mapstructure:"PORT"`
	DBDSN string `mapstructure:"DB_DSN"`

	AuthMode        string `mapstructure:"AUTH_MODE"`
	AuthJWTSecret   string `mapstructure:"AUTH_JWT_SECRET"`
	IdentityBaseURL string `mapstructure:"IDENTITY_BASE_URL"`
	IdentityAPIKey  string `mapstructure:"IDENTITY_API_KEY"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("AUTH_MODE", AuthModeDev)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "med-reminder")

	// Bind explícito para que Unmarshal levante las env vars
	v.BindEnv("PORT")
	v.BindEnv("DB_DSN")
	v.BindEnv("AUTH_MODE")
	v.BindEnv("AUTH_JWT_SECRET")
	v.BindEnv("IDENTITY_BASE_URL")
	v.BindEnv("IDENTITY_API_KEY")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("LOG_FORMAT")
	v.BindEnv("APP_NAME")

	// .env es opcional; si no está, seguimos con env + defaults.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.AuthMode {
	case AuthModeDev:
		// nada que validar; sin DB_DSN cae a repos in-memory
	case AuthModeJWT:
		if cfg.AuthJWTSecret == "" {
			return nil, fmt.Errorf("AUTH_MODE=jwt requires AUTH_JWT_SECRET")
		}
	case AuthModeIdentity:
		if cfg.IdentityBaseURL == "" || cfg.IdentityAPIKey == "" {
			return nil, fmt.Errorf("AUTH_MODE=identity requires IDENTITY_BASE_URL and IDENTITY_API_KEY")
		}
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
