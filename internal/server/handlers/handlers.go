// Package handlers provides HTTP request handlers for the FRED gateway.
package handlers

import (
	"time"

	"github.com/arbaizam/fredclient"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	client    *fredclient.Client
	startTime time.Time
}

// New creates a new Handlers instance.
func New(client *fredclient.Client, startTime time.Time) *Handlers {
	return &Handlers{
		client:    client,
		startTime: startTime,
	}
}
