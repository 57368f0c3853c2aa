package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	SessionSecret    string
	GeocodeBaseURL   string
	GeocodeUserAgent string
	UploadDir        string
	PublicBaseURL    string
}

// DriverName maps the configured database type to a database/sql driver.
func (c Config) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("sign-tracker", flag.ContinueOnError)

	// Network and database config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session cookie secret (prefer env)")

	// Collaborators
	fs.StringVar(&cfg.GeocodeBaseURL, "geocode-url", "", "Reverse geocoder base URL")
	fs.StringVar(&cfg.GeocodeUserAgent, "geocode-agent", "", "User-Agent sent to the geocoder")
	fs.StringVar(&cfg.UploadDir, "uploads", "", "Photo upload directory")
	fs.StringVar(&cfg.PublicBaseURL, "base-url", "", "Public base URL for photo links")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8340 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:signs.db"
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.GeocodeBaseURL == "" {
		cfg.GeocodeBaseURL = os.Getenv("GEOCODE_BASE_URL")
		if cfg.GeocodeBaseURL == "" {
			cfg.GeocodeBaseURL = "https://nominatim.openstreetmap.org"
		}
	}
	if cfg.GeocodeUserAgent == "" {
		cfg.GeocodeUserAgent = os.Getenv("GEOCODE_USER_AGENT")
		if cfg.GeocodeUserAgent == "" {
			// Nominatim requires a distinguishing client identifier
			cfg.GeocodeUserAgent = "sign-tracker/1.0"
		}
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = os.Getenv("UPLOAD_DIR")
		if cfg.UploadDir == "" {
			cfg.UploadDir = "uploads"
		}
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = os.Getenv("PUBLIC_BASE_URL")
	}

	return cfg, nil
}
