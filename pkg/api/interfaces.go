// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"go.uber.org/zap"
)

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves source until ctx is cancelled
	StartServer(ctx context.Context, source RecordSource, config ServerConfig, logger *zap.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
