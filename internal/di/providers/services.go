package providers

import (
	"github.com/samber/do/v2"

	"github.com/tagdesk/tagdesk-server/internal/logger"
	"github.com/tagdesk/tagdesk-server/internal/service"
)

// ProvideTagService provides the tag query and creation service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	events := do.MustInvoke[service.EventEmitter](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, events, log.Logger), nil
}
