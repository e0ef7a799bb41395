// Package config resolves fredclient settings from flags, environment and
// config files through viper.
package config

import (
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"

	"github.com/arbaizam/fredclient/pkg/constants"
	"github.com/arbaizam/fredclient/pkg/errors"
)

// Viper keys. Flags are bound to these names and env vars map onto them.
const (
	KeyAPIKey    = "api_key"
	KeyBaseURL   = "base_url"
	KeyTimeout   = "timeout"
	KeyEndpoints = "endpoints"
)

// FRED issues 32-character lower-case alphanumeric keys.
var apiKeyPattern = regexp.MustCompile(`^[a-z0-9]{32}$`)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

func lookup(key, env string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return GetString(env)
}

// APIKey returns the configured FRED API key, or ErrAPIKeyRequired.
func APIKey() (string, error) {
	key := lookup(KeyAPIKey, constants.EnvAPIKey)
	if key == "" {
		return "", errors.NewConfigError("api_key",
			"set "+constants.EnvAPIKey+" or pass --api-key", errors.ErrAPIKeyRequired)
	}
	return key, nil
}

// CheckAPIKeyFormat reports whether key has the shape of a FRED API key.
// FRED is the authority on validity; this only catches obvious paste errors.
func CheckAPIKeyFormat(key string) error {
	if !apiKeyPattern.MatchString(key) {
		return errors.NewValidationError("api_key", len(key), "expected 32 lower-case alphanumeric characters")
	}
	return nil
}

// BaseURL returns the configured FRED root URL or the public default.
func BaseURL() string {
	if v := lookup(KeyBaseURL, constants.EnvBaseURL); v != "" {
		return v
	}
	return constants.DefaultBaseURL
}

// Timeout returns the configured per-request timeout.
// Values are Go durations ("45s") or whole seconds ("45").
func Timeout() (time.Duration, error) {
	raw := lookup(KeyTimeout, constants.EnvTimeout)
	if raw == "" {
		return constants.DefaultHTTPTimeout, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		d, err = time.ParseDuration(raw + "s")
	}
	if err != nil || d <= 0 {
		return 0, errors.NewValidationError("timeout", raw, "must be a positive duration")
	}
	return d, nil
}

// EndpointsFile returns the path of a custom registry file, or "".
func EndpointsFile() string {
	return lookup(KeyEndpoints, constants.EnvEndpoints)
}
