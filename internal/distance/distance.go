package distance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// ErrMissingAPIKey is returned when no Google Maps credential is configured.
var ErrMissingAPIKey = errors.New("GOOGLE_MAPS_API_KEY is not set")

// Matrix is the slice of the Google Maps client the ranker needs.
type Matrix interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

type Config struct {
	APIKey  string
	BaseURL string // overrides the Google endpoint, empty for the default
}

// NewMatrix builds a Maps client. It never touches the network.
func NewMatrix(cfg Config) (Matrix, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts := []maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return c, nil
}

// ParseUnits maps DISTANCE_UNITS to the request value. Empty leaves the
// service default.
func ParseUnits(s string) (maps.Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "imperial":
		return maps.UnitsImperial, nil
	case "metric":
		return maps.UnitsMetric, nil
	default:
		return "", fmt.Errorf("unknown distance units %q", s)
	}
}
