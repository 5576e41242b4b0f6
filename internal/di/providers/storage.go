package providers

import (
	"github.com/samber/do/v2"

	"github.com/tagdesk/tagdesk-server/internal/config"
	"github.com/tagdesk/tagdesk-server/internal/export"
	"github.com/tagdesk/tagdesk-server/internal/logger"
)

// ProvideExporter provides the tag exporter. Uploads are enabled only when
// an object storage endpoint is configured.
func ProvideExporter(i do.Injector) (*export.Exporter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	var uploader *export.Uploader
	if cfg.Export.Enabled() {
		var err error
		uploader, err = export.NewUploader(cfg.Export, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Export uploads enabled",
			"endpoint", cfg.Export.Endpoint,
			"bucket", cfg.Export.Bucket,
		)
	}

	return export.NewExporter(storeHandle.Store, uploader, log.Logger), nil
}
