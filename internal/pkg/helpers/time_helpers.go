package helpers

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // embedded zoneinfo for viewer timezones

	"github.com/rs/zerolog/log"
	"github.com/yigit/coursewindow/internal/pkg/apperrors"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// LoadLocation resolves an IANA timezone name. An empty name falls back to fallback.
func LoadLocation(name string, fallback *time.Location) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if fallback == nil {
			return time.Local, nil
		}
		return fallback, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidTimezone, name)
	}
	return loc, nil
}
