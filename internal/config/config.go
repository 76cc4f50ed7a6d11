package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	SessionTTL    time.Duration
	DraftTTL      time.Duration
}

const (
	defaultPort       = "8080"
	defaultSessionTTL = 24 * time.Hour
	defaultDraftTTL   = 15 * time.Minute
)

// Load lee variables de entorno y valida lo mínimo indispensable.
// SESSION_SECRET es obligatorio: firma sesiones y borradores de compra.
func Load() (Config, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = defaultPort
	}
	// Normalizamos por si alguien manda ":8080"
	port = strings.TrimPrefix(port, ":")

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return Config{}, fmt.Errorf("missing required env var: DATABASE_URL")
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		return Config{}, fmt.Errorf("missing required env var: SESSION_SECRET")
	}

	sessionTTL, err := parseDuration("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return Config{}, err
	}
	draftTTL, err := parseDuration("DRAFT_TTL", defaultDraftTTL)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:          port,
		DatabaseURL:   databaseURL,
		SessionSecret: sessionSecret,
		SessionTTL:    sessionTTL,
		DraftTTL:      draftTTL,
	}, nil
}

func parseDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return value, nil
}
