// Package di provides dependency injection configuration for the tagdesk server.
package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/tagdesk/tagdesk-server/internal/config"
	"github.com/tagdesk/tagdesk-server/internal/di/providers"
	"github.com/tagdesk/tagdesk-server/internal/export"
	"github.com/tagdesk/tagdesk-server/internal/logger"
	"github.com/tagdesk/tagdesk-server/internal/service"
)

// NewContainer creates and configures the DI container for the HTTP server.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Events
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideEventEmitter)

	registerDataLayer(injector)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// NewCLIContainer creates a container for one-shot commands. The caller
// supplies the already-parsed config and a logger that must stay off stdout.
// Tag events go nowhere since no SSE clients can be connected.
func NewCLIContainer(cfg *config.Config, log *logger.Logger) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, log)
	do.ProvideValue[service.EventEmitter](injector, service.NoopEmitter{})

	registerDataLayer(injector)

	return injector
}

func registerDataLayer(injector do.Injector) {
	// Database layer
	do.Provide(injector, providers.ProvideSeeder)
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideExporter)
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) (err error) {
	// Providers report failures through MustInvoke panics.
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()

	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*export.Exporter](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
