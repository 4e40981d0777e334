package config

import (
	"fmt"
	"os"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	WhatsApp WhatsAppConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type WhatsAppConfig struct {
	VerifyToken   string
	APIToken      string
	GraphBaseURL  string
	PhoneNumberID string
	TemplateName  string
	TemplateLang  string
}

// MessagesURL builds the Graph API send endpoint for the configured business
// phone number.
func (w WhatsAppConfig) MessagesURL() string {
	return fmt.Sprintf("%s/%s/messages", w.GraphBaseURL, w.PhoneNumberID)
}

var AppConfig *Config

func Load() *Config {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DB_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "sales_feedback_db"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		WhatsApp: WhatsAppConfig{
			VerifyToken:   getEnv("WEBHOOK_VERIFY_TOKEN", "my_secure_verify_token"),
			APIToken:      getEnv("WHATSAPP_API_TOKEN", ""),
			GraphBaseURL:  getEnv("WHATSAPP_GRAPH_BASE_URL", "https://graph.facebook.com/v20.0"),
			PhoneNumberID: getEnv("WHATSAPP_PHONE_NUMBER_ID", "350164481523962"),
			TemplateName:  getEnv("WHATSAPP_TEMPLATE_NAME", "tvs_sales"),
			TemplateLang:  getEnv("WHATSAPP_TEMPLATE_LANG", "en"),
		},
	}
	return AppConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
