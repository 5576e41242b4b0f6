package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
)

// TagSource supplies the collection to export.
type TagSource interface {
	All(ctx context.Context) ([]domain.Tag, error)
}

// Document is an encoded export ready to download or upload.
type Document struct {
	Format   Format
	Filename string
	Body     []byte
	Count    int
}

// Upload describes a stored export object.
type Upload struct {
	Bucket string `json:"bucket" yaml:"bucket"`
	Object string `json:"object" yaml:"object"`
	Size   int64  `json:"size" yaml:"size"`
	ETag   string `json:"etag,omitempty" yaml:"etag,omitempty"`
	Count  int    `json:"count" yaml:"count"`
}

// Exporter builds export documents from a TagSource.
type Exporter struct {
	tags     TagSource
	uploader *Uploader
	logger   *slog.Logger
	now      func() time.Time
}

// NewExporter creates an Exporter. uploader may be nil, which disables Upload.
func NewExporter(tags TagSource, uploader *Uploader, logger *slog.Logger) *Exporter {
	return &Exporter{
		tags:     tags,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

// CanUpload reports whether object storage is configured.
func (e *Exporter) CanUpload() bool {
	return e.uploader != nil
}

// Export encodes the whole collection in insertion order.
func (e *Exporter) Export(ctx context.Context, f Format) (*Document, error) {
	tags, err := e.tags.All(ctx)
	if err != nil {
		return nil, err
	}

	body, err := Marshal(f, tags)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to encode export")
	}

	return &Document{
		Format:   f,
		Filename: fmt.Sprintf("tags-%s.%s", e.now().UTC().Format("20060102T150405Z"), f.Extension()),
		Body:     body,
		Count:    len(tags),
	}, nil
}

// Upload exports the collection and stores it under exports/ in the bucket.
func (e *Exporter) Upload(ctx context.Context, f Format) (*Upload, error) {
	if e.uploader == nil {
		return nil, domainerrors.Validation("Export upload is not configured.")
	}

	doc, err := e.Export(ctx, f)
	if err != nil {
		return nil, err
	}

	object := "exports/" + doc.Filename
	info, err := e.uploader.Put(ctx, object, f.ContentType(), doc.Body)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorageWriteFailed, "failed to upload export")
	}

	e.logger.Info("export uploaded",
		"bucket", e.uploader.Bucket(),
		"object", object,
		"tags", doc.Count,
		"size", len(doc.Body))

	return &Upload{
		Bucket: e.uploader.Bucket(),
		Object: object,
		Size:   int64(len(doc.Body)),
		ETag:   info.ETag,
		Count:  doc.Count,
	}, nil
}
