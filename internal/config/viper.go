// Package config bridges Viper configuration and plain environment
// variables for the CLI and provider adapters.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/greenfolio/bankmap/pkg/catalogs"
)

// Configuration keys understood across the CLI.
const (
	KeyDataDir = "data_dir"
)

// DefaultDataDir is the catalog directory used when nothing is configured.
const DefaultDataDir = "./data"

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// DataDir returns the catalog data directory, falling back to the
// default when unconfigured.
func DataDir() string {
	if dir := GetString(KeyDataDir); dir != "" {
		return dir
	}
	return DefaultDataDir
}

// EndpointFor returns the configured base URL for a provider's API, or
// "" when the provider has no endpoint configured. Keys follow the
// BANKMAP_<PROVIDER>_URL convention, e.g. BANKMAP_BANKTRACK_URL.
func EndpointFor(p catalogs.Provider) string {
	return GetString("BANKMAP_" + strings.ToUpper(p.String()) + "_URL")
}
