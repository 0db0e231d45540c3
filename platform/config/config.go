// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
}

// WebhookConfig provides settings for webhook verification.
type WebhookConfig interface {
	GetVerifyToken() string
}

// GeminiConfig provides settings for the Gemini completion model.
type GeminiConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
}

// SMTPConfig provides settings for outbound email.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// WhatsAppConfig provides settings for the Meta Graph API reply client.
type WhatsAppConfig interface {
	GetMetaAccessToken() string
	GetPhoneNumberID() string
	GetGraphAPIBaseURL() string
}

// DocumentConfig provides settings for the Gotenberg HTML-to-PDF service.
type DocumentConfig interface {
	GetGotenbergURL() string
	GetGotenbergUsername() string
	GetGotenbergPassword() string
	IsGotenbergEnabled() bool
	GetQuoteOutputDir() string
}

// QuoteConfig provides letterhead settings for generated quotations.
type QuoteConfig interface {
	GetCompanyName() string
	GetSignatoryName() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	GeminiAPIKey      string
	GeminiModel       string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	EmailFromName     string
	EmailFromAddress  string
	MetaAccessToken   string
	PhoneNumberID     string
	MetaVerifyToken   string
	GraphAPIBaseURL   string
	GotenbergURL      string
	GotenbergUsername string
	GotenbergPassword string
	QuoteOutputDir    string
	QuoteCompanyName  string
	QuoteSignatory    string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string { return c.HTTPAddr }

// WebhookConfig implementation
func (c *Config) GetVerifyToken() string { return c.MetaVerifyToken }

// GeminiConfig implementation
func (c *Config) GetGeminiAPIKey() string { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string  { return c.GeminiModel }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// WhatsAppConfig implementation
func (c *Config) GetMetaAccessToken() string { return c.MetaAccessToken }
func (c *Config) GetPhoneNumberID() string   { return c.PhoneNumberID }
func (c *Config) GetGraphAPIBaseURL() string { return c.GraphAPIBaseURL }

// DocumentConfig implementation
func (c *Config) GetGotenbergURL() string      { return c.GotenbergURL }
func (c *Config) GetGotenbergUsername() string { return c.GotenbergUsername }
func (c *Config) GetGotenbergPassword() string { return c.GotenbergPassword }
func (c *Config) IsGotenbergEnabled() bool     { return c.GotenbergURL != "" }
func (c *Config) GetQuoteOutputDir() string    { return c.QuoteOutputDir }

// QuoteConfig implementation
func (c *Config) GetCompanyName() string   { return c.QuoteCompanyName }
func (c *Config) GetSignatoryName() string { return c.QuoteSignatory }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	fromAddress := getEnv("EMAIL_FROM_ADDRESS", "")
	if fromAddress == "" {
		fromAddress = getEnv("SMTP_USERNAME", "")
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-pro-latest"),
		SMTPHost:          getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Quotation Assistant"),
		EmailFromAddress:  fromAddress,
		MetaAccessToken:   getEnv("META_ACCESS_TOKEN", ""),
		PhoneNumberID:     getEnv("PHONE_NUMBER_ID", ""),
		MetaVerifyToken:   getEnv("META_VERIFY_TOKEN", ""),
		GraphAPIBaseURL:   getEnv("GRAPH_API_BASE_URL", "https://graph.facebook.com/v19.0"),
		GotenbergURL:      getEnv("GOTENBERG_URL", ""),
		GotenbergUsername: getEnv("GOTENBERG_USERNAME", ""),
		GotenbergPassword: getEnv("GOTENBERG_PASSWORD", ""),
		QuoteOutputDir:    getEnv("QUOTE_OUTPUT_DIR", os.TempDir()),
		QuoteCompanyName:  getEnv("QUOTE_COMPANY_NAME", "NIVEE METAL PRODUCTS PVT LTD"),
		QuoteSignatory:    getEnv("QUOTE_SIGNATORY", "Harsh Bhandari"),
	}

	return cfg, nil
}

// MissingCritical returns the names of required environment variables that are
// unset. The process still starts without them; callers log each one so a
// misconfigured deployment is visible immediately.
func (c *Config) MissingCritical() []string {
	var missing []string
	checks := []struct {
		name  string
		value string
	}{
		{"GEMINI_API_KEY", c.GeminiAPIKey},
		{"SMTP_USERNAME", c.SMTPUsername},
		{"SMTP_PASSWORD", c.SMTPPassword},
		{"META_ACCESS_TOKEN", c.MetaAccessToken},
		{"PHONE_NUMBER_ID", c.PhoneNumberID},
		{"META_VERIFY_TOKEN", c.MetaVerifyToken},
	}
	for _, check := range checks {
		if check.value == "" {
			missing = append(missing, check.name)
		}
	}
	return missing
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}
