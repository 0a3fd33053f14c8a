package service

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/loganlanou/blindquote/internal/templates"
)

type Config struct {
	Environment string
	Port        string
	DBPath      string

	// AdminAPIKey guards the template administration routes. Empty disables
	// them.
	AdminAPIKey string
	// AllowedOrigins is the CORS allow list for the quote routes.
	AllowedOrigins []string

	Templates struct {
		// Source is one of "embedded", "dir", "http" or "sqlite".
		Source      string
		Dir         string
		BaseURL     string
		LoadTimeout time.Duration
		Keys        map[templates.Name]string
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		DBPath:      getEnv("DB_PATH", "./db/quotes.db"),
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			config.AllowedOrigins = append(config.AllowedOrigins, origin)
		}
	}

	config.Templates.Source = getEnv("TEMPLATE_SOURCE", "embedded")
	config.Templates.Dir = getEnv("TEMPLATE_DIR", "./partials")
	config.Templates.BaseURL = getEnv("TEMPLATE_BASE_URL", "")

	timeout := getEnv("TEMPLATE_LOAD_TIMEOUT", "30")
	if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
		config.Templates.LoadTimeout = time.Duration(secs) * time.Second
	} else {
		config.Templates.LoadTimeout = 30 * time.Second
	}

	config.Templates.Keys = map[templates.Name]string{
		templates.Quote:   getEnv("QUOTE_TEMPLATE_PATH", templates.DefaultKeys[templates.Quote]),
		templates.Details: getEnv("DETAILS_TEMPLATE_PATH", templates.DefaultKeys[templates.Details]),
		templates.Gmail:   getEnv("GMAIL_TEMPLATE_PATH", templates.DefaultKeys[templates.Gmail]),
	}

	switch config.Templates.Source {
	case "embedded", "dir", "sqlite":
	case "http":
		if config.Templates.BaseURL == "" {
			return nil, fmt.Errorf("TEMPLATE_BASE_URL is required when TEMPLATE_SOURCE=http")
		}
	default:
		return nil, fmt.Errorf("unknown TEMPLATE_SOURCE %q", config.Templates.Source)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
