package api

import (
	"github.com/tagdesk/tagdesk-server/internal/export"
	"github.com/tagdesk/tagdesk-server/internal/service"
)

// Services groups the business logic the API server calls into.
type Services struct {
	Tag    *service.TagService
	Export *export.Exporter
}
