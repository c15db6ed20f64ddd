package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	DefaultRosterPath = "AdministrationSites.csv"
	DefaultPort       = "9595"
	DefaultLogLevel   = "info"
)

type Config struct {
	GoogleMapsAPIKey string
	MapsBaseURL      string
	DistanceUnits    string
	RosterPath       string
	RosterSheet      string
	Port             string
	LogLevel         string
}

// Load reads .env files (if any) into the environment and builds the Config.
// It reports whether a .env file was found; a missing file is not an error.
func Load(files ...string) (*Config, bool) {
	envLoaded := godotenv.Load(files...) == nil
	return FromEnv(os.Getenv), envLoaded
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) *Config {
	return &Config{
		GoogleMapsAPIKey: getenv("GOOGLE_MAPS_API_KEY"),
		MapsBaseURL:      getenv("MAPS_BASE_URL"),
		DistanceUnits:    getenv("DISTANCE_UNITS"),
		RosterPath:       getEnvOrDefault(getenv, "ROSTER_PATH", DefaultRosterPath),
		RosterSheet:      getenv("ROSTER_SHEET"),
		Port:             getEnvOrDefault(getenv, "PORT", DefaultPort),
		LogLevel:         getEnvOrDefault(getenv, "LOG_LEVEL", DefaultLogLevel),
	}
}

func getEnvOrDefault(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}
