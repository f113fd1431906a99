package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

// Config is the deployment-provided configuration for the API process.
type Config struct {
	Port           string
	StorageBackend string // "memory" or "postgres"
	DatabaseURL    string

	// Debounce windows for the auto-save scheduler: short for discrete field
	// edits, long for free-text/long-form fields.
	AutosaveShortWindow time.Duration
	AutosaveLongWindow  time.Duration

	Currency string
	Markup   domain.MarkupConfig
}

// LoadFromEnv reads configuration from environment variables, applying
// defaults that make local/dev/test behavior predictable.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		Port:                getenv("PORT", "8080"),
		StorageBackend:      getenv("STORAGE_BACKEND", "memory"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		AutosaveShortWindow: 2 * time.Second,
		AutosaveLongWindow:  10 * time.Second,
		Currency:            getenv("PRICING_CURRENCY", "USD"),
		Markup: domain.MarkupConfig{
			Type:       domain.MarkupTypePercentage,
			Percentage: 15,
		},
	}

	if v := os.Getenv("AUTOSAVE_SHORT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("AUTOSAVE_SHORT_WINDOW must be a duration (e.g. 2s): %w", err)
		}
		cfg.AutosaveShortWindow = d
	}
	if v := os.Getenv("AUTOSAVE_LONG_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("AUTOSAVE_LONG_WINDOW must be a duration (e.g. 10s): %w", err)
		}
		cfg.AutosaveLongWindow = d
	}
	if cfg.AutosaveShortWindow > cfg.AutosaveLongWindow {
		return Config{}, fmt.Errorf("AUTOSAVE_SHORT_WINDOW (%s) exceeds AUTOSAVE_LONG_WINDOW (%s)", cfg.AutosaveShortWindow, cfg.AutosaveLongWindow)
	}

	switch t := getenv("PRICING_MARKUP_TYPE", string(domain.MarkupTypePercentage)); domain.MarkupType(t) {
	case domain.MarkupTypePercentage:
		cfg.Markup.Type = domain.MarkupTypePercentage
		if v := os.Getenv("PRICING_MARKUP_PERCENTAGE"); v != "" {
			p, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Config{}, fmt.Errorf("PRICING_MARKUP_PERCENTAGE must be a number: %w", err)
			}
			cfg.Markup.Percentage = p
		}
	case domain.MarkupTypeFixed:
		cfg.Markup = domain.MarkupConfig{Type: domain.MarkupTypeFixed}
		if v := os.Getenv("PRICING_MARKUP_FIXED"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Config{}, fmt.Errorf("PRICING_MARKUP_FIXED must be a number: %w", err)
			}
			cfg.Markup.FixedAmount = f
		}
	default:
		return Config{}, fmt.Errorf("unsupported PRICING_MARKUP_TYPE %q (slab config is per-deployment wiring, not env)", t)
	}

	if cfg.StorageBackend == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("STORAGE_BACKEND=postgres requires DATABASE_URL")
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
