package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/soulful-academy/chakra-report/internal/notifications"
	"github.com/soulful-academy/chakra-report/pkg/reporting"
)

// Defaults for the report service.
const (
	DefaultListenAddr = ":8080"
	DefaultOutputDir  = "."
	DefaultLogoURL    = "https://ik.imagekit.io/86edsgbur/Untitled%20design%20(73)%20(3)%20(1).jpg?updatedAt=1759258123716"
	DefaultLogoPath   = "soulful_logo.jpg"
	DefaultLogoFetch  = 10 * time.Second
)

// Config holds runtime configuration for the report service.
type Config struct {
	LogLevel   string
	LogFormat  string
	ListenAddr string
	TrustProxy bool
	OutputDir  string
	Variant    reporting.Variant

	LogoURL  string
	LogoPath string

	Email notifications.EmailConfig
}

// LoadConfig loads configuration from environment variables.
// A .env file is loaded if present but not required.
func LoadConfig() (*Config, error) {
	// Best-effort .env loading (not required)
	_ = godotenv.Load()

	variant, err := reporting.ParseVariant(os.Getenv("CHAKRA_VARIANT"))
	if err != nil {
		return nil, fmt.Errorf("CHAKRA_VARIANT: %w", err)
	}
	smtpPort, err := envOrDefaultInt("CHAKRA_SMTP_PORT", notifications.DefaultSMTPPort)
	if err != nil {
		return nil, err
	}
	trustProxy, err := envOrDefaultBool("CHAKRA_TRUST_PROXY", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:   envOrDefault("CHAKRA_LOG_LEVEL", "info"),
		LogFormat:  envOrDefault("CHAKRA_LOG_FORMAT", "auto"),
		ListenAddr: envOrDefault("CHAKRA_LISTEN_ADDR", DefaultListenAddr),
		TrustProxy: trustProxy,
		OutputDir:  envOrDefault("CHAKRA_OUTPUT_DIR", DefaultOutputDir),
		Variant:    variant,
		LogoURL:    envOrDefault("CHAKRA_LOGO_URL", DefaultLogoURL),
		LogoPath:   envOrDefault("CHAKRA_LOGO_PATH", DefaultLogoPath),
		Email: notifications.EmailConfig{
			SMTPHost: envOrDefault("CHAKRA_SMTP_HOST", notifications.DefaultSMTPHost),
			SMTPPort: smtpPort,
			Username: strings.TrimSpace(os.Getenv("CHAKRA_EMAIL_USER")),
			Password: strings.TrimSpace(os.Getenv("CHAKRA_EMAIL_PASSWORD")),
			From:     strings.TrimSpace(os.Getenv("CHAKRA_EMAIL_FROM")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate report config: %w", err)
	}
	if (cfg.Email.Username == "") != (cfg.Email.Password == "") {
		log.Warn().
			Bool("user_set", cfg.Email.Username != "").
			Bool("password_set", cfg.Email.Password != "").
			Msg("CHAKRA_EMAIL_USER and CHAKRA_EMAIL_PASSWORD must both be set; email delivery disabled")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Email.SMTPPort < 1 || c.Email.SMTPPort > 65535 {
		return fmt.Errorf("CHAKRA_SMTP_PORT must be between 1 and 65535, got %d", c.Email.SMTPPort)
	}
	if c.LogoURL != "" {
		parsed, err := url.Parse(c.LogoURL)
		if err != nil {
			return fmt.Errorf("CHAKRA_LOGO_URL must be a valid URL: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("CHAKRA_LOGO_URL must use http or https scheme")
		}
		if parsed.Host == "" {
			return fmt.Errorf("CHAKRA_LOGO_URL must include a host")
		}
	}
	if c.LogoURL != "" && c.LogoPath == "" {
		return fmt.Errorf("CHAKRA_LOGO_PATH is required when CHAKRA_LOGO_URL is set")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) (int, error) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
		}
		return n, nil
	}
	return fallback, nil
}

func envOrDefaultBool(key string, fallback bool) (bool, error) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%s must be a boolean: %w", key, err)
		}
		return b, nil
	}
	return fallback, nil
}
