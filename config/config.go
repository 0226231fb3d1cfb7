package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultSMTPPort is the STARTTLS submission port used when SMTP_PORT is unset or invalid
	DefaultSMTPPort = 587
	// ImplicitTLSPort is compared literally against the raw SMTP_PORT value
	ImplicitTLSPort = "465"
)

var whitespace = regexp.MustCompile(`\s+`)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// SMTP relay (Gmail app password by default)
	SMTPHost   string
	SMTPPort   int
	SMTPSecure bool // implicit TLS, only when SMTP_PORT is exactly "465"
	SMTPUser   string
	SMTPPass   string // whitespace already stripped
	SMTPFrom   string
	SMTPTo     string
	SMTPCC     string
	// Raw password stats for the startup diagnostic line; the value itself is never logged
	SMTPPassRawLength  int
	SMTPPassSpaceCount int
	// Mandatory SMTP variables that were absent at startup
	MissingSMTP []string
	// HTTP
	BodyLimitBytes int64
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	rawPort, _ := os.LookupEnv("SMTP_PORT")
	rawPass := getEnv("SMTP_PASS", "")

	cfg := &Config{
		Port:     getEnv("PORT", "4000"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		// SMTP Configuration
		SMTPHost:   getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:   getEnvInt("SMTP_PORT", DefaultSMTPPort),
		SMTPSecure: rawPort == ImplicitTLSPort,
		SMTPUser:   getEnv("SMTP_USER", ""),
		SMTPPass:   whitespace.ReplaceAllString(rawPass, ""),
		SMTPFrom:   getEnv("SMTP_FROM", ""),
		SMTPTo:     getEnv("SMTP_TO", ""),
		SMTPCC:     getEnv("SMTP_CC", ""),
		// Password diagnostics
		SMTPPassRawLength:  len(rawPass),
		SMTPPassSpaceCount: len(whitespace.FindAllString(rawPass, -1)),
		// HTTP Configuration
		BodyLimitBytes: int64(getEnvInt("BODY_LIMIT_BYTES", 1<<20)),
	}

	// Port 0 behaves like an unset port
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = DefaultSMTPPort
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	if cfg.BodyLimitBytes <= 0 {
		cfg.BodyLimitBytes = 1 << 20
	}

	if cfg.SMTPUser == "" {
		cfg.MissingSMTP = append(cfg.MissingSMTP, "SMTP_USER")
	}
	if rawPass == "" {
		cfg.MissingSMTP = append(cfg.MissingSMTP, "SMTP_PASS")
	}

	return cfg, nil
}

// SMTPConfigured reports whether both mandatory SMTP credentials were supplied
func (c *Config) SMTPConfigured() bool {
	return len(c.MissingSMTP) == 0
}

// SenderAddress is SMTP_FROM or, when unset, the SMTP account itself
func (c *Config) SenderAddress() string {
	if c.SMTPFrom != "" {
		return c.SMTPFrom
	}
	return c.SMTPUser
}

// RecipientAddresses is SMTP_TO (comma separated) or, when unset, the SMTP account itself
func (c *Config) RecipientAddresses() []string {
	if c.SMTPTo != "" {
		return splitAddresses(c.SMTPTo)
	}
	if c.SMTPUser == "" {
		return nil
	}
	return []string{c.SMTPUser}
}

// CCAddresses is SMTP_CC split on commas, nil when unset
func (c *Config) CCAddresses() []string {
	return splitAddresses(c.SMTPCC)
}

func splitAddresses(list string) []string {
	var out []string
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// getEnv returns the variable's value, or fallback when it is unset or empty
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
