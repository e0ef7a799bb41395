// Package constants provides shared constants used throughout the fredclient codebase.
// This includes the FRED wire constants, timeouts, and file permissions that
// should be consistent across the library, the CLI and the gateway.
package constants

import "time"

// FRED wire constants
const (
	// DefaultBaseURL is the root every endpoint path is appended to
	DefaultBaseURL = "https://api.stlouisfed.org/fred"

	// APIKeyParam is the query parameter carrying the credential
	APIKeyParam = "api_key"

	// FileTypeParam is the query parameter selecting the response format
	FileTypeParam = "file_type"

	// DefaultFileType is the response format requested unless the caller overrides it
	DefaultFileType = "json"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the FRED API
	DefaultHTTPTimeout = 30 * time.Second

	// ServerRequestTimeout bounds a single gateway request, upstream call included
	ServerRequestTimeout = 60 * time.Second

	// ServerReadHeaderTimeout guards the gateway against slow clients
	ServerReadHeaderTimeout = 10 * time.Second

	// ShutdownTimeout is how long the CLI waits for graceful shutdown
	ShutdownTimeout = 5 * time.Second
)

// FilePermissions is the mode used for log files and test fixtures (rw-r--r--)
const FilePermissions = 0644

// Limit constants
const (
	// MaxErrorBodySize caps how much of an upstream body is kept in error details
	MaxErrorBodySize = 4096
)

// Environment variable names recognized by the CLI and the gateway
const (
	// EnvAPIKey holds the FRED API key
	EnvAPIKey = "FRED_API_KEY"

	// EnvBaseURL overrides DefaultBaseURL
	EnvBaseURL = "FRED_BASE_URL"

	// EnvTimeout overrides DefaultHTTPTimeout (Go duration syntax)
	EnvTimeout = "FRED_TIMEOUT"

	// EnvEndpoints points at a YAML endpoint registry replacing the built-in table
	EnvEndpoints = "FRED_ENDPOINTS"

	// EnvGatewayToken is the access token required by "fred serve" when set
	EnvGatewayToken = "FRED_GATEWAY_TOKEN"
)
