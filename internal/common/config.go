package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	Classify ClassifyConfig
	SMTP     SMTPConfig
	OTP      OTPConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// OCRConfig holds the document-intelligence provider configuration
type OCRConfig struct {
	Endpoint     string
	APIKey       string
	APIVersion   string
	PollInterval time.Duration
	Timeout      time.Duration
}

// ClassifyConfig holds the currency/category classifier configuration
type ClassifyConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// OTPConfig holds one-time-password issuance configuration
type OTPConfig struct {
	TTL time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":" + getEnv("PORT", "5001"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		OCR: OCRConfig{
			Endpoint:     getEnv("AZURE_DOCINT_ENDPOINT", ""),
			APIKey:       getEnv("AZURE_DOCINT_KEY", ""),
			APIVersion:   getEnv("AZURE_DOCINT_API_VERSION", "2023-07-31"),
			PollInterval: getEnvAsDuration("AZURE_DOCINT_POLL_INTERVAL", time.Second),
			Timeout:      getEnvAsDuration("AZURE_DOCINT_TIMEOUT", 60*time.Second),
		},
		Classify: ClassifyConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 30*time.Second),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_SERVER", ""),
			Port: getEnvAsInt("SMTP_PORT", 587),
			User: getEnv("SMTP_USER", ""),
			Pass: getEnv("SMTP_PASS", ""),
			From: getEnv("SMTP_FROM", getEnv("SMTP_USER", "")),
		},
		OTP: OTPConfig{
			TTL: getEnvAsDuration("OTP_TTL", 10*time.Minute),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.Endpoint == "" {
		return NewAppError("CONFIG_ERROR", "AZURE_DOCINT_ENDPOINT is required", ErrInvalidInput)
	}
	if c.OCR.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "AZURE_DOCINT_KEY is required", ErrInvalidInput)
	}
	if c.Classify.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
	}
	return nil
}
