// Package appcontext provides the shared application context interface
// used by all fred commands. Commands accept this interface rather than the
// concrete App so they can be tested against a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/arbaizam/fredclient"
	"github.com/arbaizam/fredclient/pkg/endpoints"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Registry returns the endpoint registry: the built-in FRED table, or
	// the file named by --endpoints. It needs no API key.
	Registry() (*endpoints.Registry, error)

	// Client returns the FRED client, creating it lazily from the resolved
	// API key, base URL and timeout.
	Client() (*fredclient.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
