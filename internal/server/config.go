package server

import (
	"net"
	"strconv"
	"time"

	"github.com/arbaizam/fredclient/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Gateway access token; empty disables the check
	AuthToken  string
	AuthHeader string

	// HTTP timeouts
	RequestTimeout    time.Duration
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:              "localhost",
		Port:              8080,
		PathPrefix:        "/api/v1",
		CORSOrigins:       []string{},
		AuthHeader:        "X-Gateway-Token",
		RequestTimeout:    constants.ServerRequestTimeout,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   constants.ShutdownTimeout,
	}
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ParseAddr sets Host and Port from a listen address such as ":8080".
func (c *Config) ParseAddr(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return err
	}
	c.Host, c.Port = host, p
	return nil
}
