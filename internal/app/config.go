package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration
type Config struct {
	APIBaseURL      string
	SeasonsFile     string
	CacheDBPath     string
	OutputDir       string
	LogoBaseURL     string
	SpreadsheetID   string
	CredentialsFile string
	DeployURL       string
	DeployKeyFile   string
	// DeployKnownHosts is an OpenSSH known_hosts file; empty skips host key checks
	DeployKnownHosts string
	// CacheTTL is how long the current season's payload is served from the cache
	CacheTTL       time.Duration
	UpdateInterval time.Duration
}

// SheetsEnabled reports whether the standings table should be exported to Google Sheets.
func (c *Config) SheetsEnabled() bool {
	return c.SpreadsheetID != ""
}

// DeployEnabled reports whether generated files should be published over SSH.
func (c *Config) DeployEnabled() bool {
	return c.DeployURL != ""
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found; proceeding with existing environment variables.")
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	apiBaseURL := strings.TrimRight(os.Getenv("STANDINGS_API_URL"), "/")
	if apiBaseURL == "" {
		return nil, fmt.Errorf("STANDINGS_API_URL environment variable is required")
	}

	cacheTTL := time.Hour
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid CACHE_TTL %q: expected a positive duration", raw)
		}
		cacheTTL = parsed
	}

	return &Config{
		APIBaseURL:       apiBaseURL,
		SeasonsFile:      envOrDefault("SEASONS_FILE", "seasons.yaml"),
		CacheDBPath:      envOrDefault("CACHE_DB", "standings_cache.db"),
		OutputDir:        envOrDefault("OUTPUT_DIR", "."),
		LogoBaseURL:      strings.TrimRight(envOrDefault("LOGO_BASE_URL", "/logos"), "/"),
		SpreadsheetID:    os.Getenv("SPREADSHEET_ID"),
		CredentialsFile:  envOrDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		DeployURL:        os.Getenv("DEPLOY_URL"),
		DeployKeyFile:    envOrDefault("DEPLOY_KEY_FILE", "deploy.pem"),
		DeployKnownHosts: os.Getenv("DEPLOY_KNOWN_HOSTS"),
		CacheTTL:         cacheTTL,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
