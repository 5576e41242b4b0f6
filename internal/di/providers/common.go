package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second
)

// Version is reported in the OpenAPI document. Set at build time with
// -ldflags "-X github.com/tagdesk/tagdesk-server/internal/di/providers.Version=...".
var Version = "dev"
