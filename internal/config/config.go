package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	PostgresURL string
	CORSOrigins []string

	SessionTTL  time.Duration
	MaxSessions int

	AppName    string
	AppBaseURL string

	SMTP  SMTP
	PayOS PayOS
}

type SMTP struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool
	RequireTLS bool
}

type PayOS struct {
	ClientID    string
	APIKey      string
	ChecksumKey string
	ReturnURL   string
	CancelURL   string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("SESSION_MAX", 10000)
	v.SetDefault("APP_NAME", "Chair Yoga")
	v.SetDefault("APP_BASE_URL", "http://localhost:5173")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587) // 587 STARTTLS, 465 with SMTP_USE_SSL=true
	v.SetDefault("SMTP_USE_SSL", false)
	v.SetDefault("SMTP_REQUIRE_TLS", true)
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	ttl := v.GetDuration("SESSION_TTL")
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}

	baseURL := strings.TrimRight(v.GetString("APP_BASE_URL"), "/")
	returnURL := v.GetString("PAYOS_RETURN_URL")
	if returnURL == "" {
		returnURL = baseURL + "/success"
	}
	cancelURL := v.GetString("PAYOS_CANCEL_URL")
	if cancelURL == "" {
		cancelURL = baseURL + "/checkout"
	}

	var origins []string
	for _, o := range strings.Split(v.GetString("CORS_ALLOW_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:        v.GetString("PORT"),
		GinMode:     v.GetString("GIN_MODE"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		PostgresURL: v.GetString("POSTGRES_URL"),
		CORSOrigins: origins,
		SessionTTL:  ttl,
		MaxSessions: v.GetInt("SESSION_MAX"),
		AppName:     v.GetString("APP_NAME"),
		AppBaseURL:  baseURL,
		SMTP: SMTP{
			Host:       v.GetString("SMTP_HOST"),
			Port:       v.GetInt("SMTP_PORT"),
			Username:   v.GetString("SMTP_USERNAME"),
			Password:   v.GetString("SMTP_PASSWORD"),
			From:       v.GetString("SMTP_FROM"),
			FromName:   v.GetString("SMTP_FROM_NAME"),
			UseSSL:     v.GetBool("SMTP_USE_SSL"),
			RequireTLS: v.GetBool("SMTP_REQUIRE_TLS"),
		},
		PayOS: PayOS{
			ClientID:    v.GetString("PAYOS_CLIENT_ID"),
			APIKey:      v.GetString("PAYOS_API_KEY"),
			ChecksumKey: v.GetString("PAYOS_CHECKSUM_KEY"),
			ReturnURL:   returnURL,
			CancelURL:   cancelURL,
		},
	}
}
