package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/arbaizam/fredclient/internal/config"
	"github.com/arbaizam/fredclient/pkg/constants"
	"github.com/arbaizam/fredclient/pkg/errors"
)

// Config holds the CLI presentation settings. FRED connection settings
// (API key, base URL, timeout, endpoints file) live in viper and are read
// through internal/config when the client is built.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// EnvLogLevel comes from LOG_LEVEL and ranks below -v/-q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// Flags holds the raw values of the global flags.
type Flags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Format     string
	LogLevel   string
	APIKey     string
	BaseURL    string
	Timeout    string
	Endpoints  string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.fred.yaml or ./.fred.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	if err := bindEnv(); err != nil {
		return nil, err
	}

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName(".fred")

	// A missing default config file is fine.
	_ = viper.ReadInConfig()

	return &Config{
		Format:      viper.GetString("format"),
		ConfigFile:  viper.ConfigFileUsed(),
		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
		NoColor:     os.Getenv("NO_COLOR") != "",
	}, nil
}

// ReadConfigFile loads an explicitly named config file. Unlike the default
// search, a missing or unreadable file is an error.
func (c *Config) ReadConfigFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return errors.NewConfigError("config", "cannot read "+path, err)
	}
	c.ConfigFile = viper.ConfigFileUsed()
	if f := viper.GetString("format"); f != "" && c.Format == "" {
		c.Format = f
	}
	return nil
}

// UpdateFromFlags applies parsed flag values. Connection flags are pushed
// into viper so internal/config sees them ahead of env and file values.
func (c *Config) UpdateFromFlags(f Flags) {
	c.Verbose = f.Verbose
	c.Quiet = f.Quiet
	c.NoColor = c.NoColor || f.NoColor
	if f.Format != "" {
		c.Format = f.Format
	}
	c.LogLevel = f.LogLevel

	setIfNotEmpty(config.KeyAPIKey, f.APIKey)
	setIfNotEmpty(config.KeyBaseURL, f.BaseURL)
	setIfNotEmpty(config.KeyTimeout, f.Timeout)
	setIfNotEmpty(config.KeyEndpoints, f.Endpoints)
}

func setIfNotEmpty(key, value string) {
	if value != "" {
		viper.Set(key, value)
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment win, and .env wins over .env.local.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// bindEnv maps the FRED_* environment variables onto viper keys.
func bindEnv() error {
	bindings := map[string]string{
		config.KeyAPIKey:    constants.EnvAPIKey,
		config.KeyBaseURL:   constants.EnvBaseURL,
		config.KeyTimeout:   constants.EnvTimeout,
		config.KeyEndpoints: constants.EnvEndpoints,
		"gateway_token":     constants.EnvGatewayToken,
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return errors.NewConfigError("env", "bind "+env, err)
		}
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
