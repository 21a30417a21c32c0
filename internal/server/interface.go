package server

import (
	"context"
	"net/http"
)

// Server exposes the transcription pipeline over HTTP.
type Server interface {
	// Start binds the listener and serves in the background.
	Start(ctx context.Context) error
	// Stop drains in-flight requests within the configured shutdown timeout.
	Stop(ctx context.Context) error
	Handler() http.Handler
}
