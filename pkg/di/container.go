// Package di provides dependency injection container
package di

import (
	"go.uber.org/zap"

	"github.com/cqusn/smartcar/pkg/api" //nolint:depguard
	"github.com/cqusn/smartcar/pkg/archive"
	"github.com/cqusn/smartcar/pkg/store"
)

// StoreFactory creates the record file store
type StoreFactory func(config store.FileStoreConfig, logger *zap.Logger) *store.FileStore

// ArchiveOpener opens the snapshot archive
type ArchiveOpener func(opts archive.Options) (*archive.Archive, error)

// Container holds all the dependencies for the application
type Container struct {
	storeFactory  StoreFactory
	archiveOpener ArchiveOpener
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		storeFactory:  store.NewFileStore,
		archiveOpener: archive.Open,
		serverFactory: api.NewServerFactory(),
	}
}

// NewStore creates a file store with the container's factory
func (c *Container) NewStore(config store.FileStoreConfig, logger *zap.Logger) *store.FileStore {
	return c.storeFactory(config, logger)
}

// OpenArchive opens the archive with the container's opener
func (c *Container) OpenArchive(opts archive.Options) (*archive.Archive, error) {
	return c.archiveOpener(opts)
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// SetArchiveOpener allows overriding the archive opener (for testing)
func (c *Container) SetArchiveOpener(opener ArchiveOpener) {
	c.archiveOpener = opener
}
