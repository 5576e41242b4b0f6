package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tagdesk/tagdesk-server/internal/export"
)

func (s *Server) registerExportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "exportTags",
		Method:      http.MethodGet,
		Path:        "/tags/export",
		Summary:     "Export tags",
		Description: "Downloads every tag in insertion order as JSON, YAML or CSV",
		Tags:        []string{"Export"},
	}, s.handleExportTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "uploadTagExport",
		Method:        http.MethodPost,
		Path:          "/tags/export",
		Summary:       "Upload export",
		Description:   "Exports every tag and stores the file in the configured object storage bucket",
		Tags:          []string{"Export"},
		DefaultStatus: http.StatusCreated,
	}, s.handleUploadExport)
}

// ExportTagsInput selects the export format.
type ExportTagsInput struct {
	Format string `query:"format" enum:"json,yaml,yml,csv" doc:"Export format (default json)"`
}

// ExportTagsOutput is the raw export document.
type ExportTagsOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// UploadExportOutput describes the stored object.
type UploadExportOutput struct {
	Body *export.Upload
}

func (s *Server) handleExportTags(ctx context.Context, input *ExportTagsInput) (*ExportTagsOutput, error) {
	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}

	doc, err := s.services.Export.Export(ctx, format)
	if err != nil {
		return nil, err
	}

	return &ExportTagsOutput{
		ContentType:        format.ContentType(),
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", doc.Filename),
		Body:               doc.Body,
	}, nil
}

func (s *Server) handleUploadExport(ctx context.Context, input *ExportTagsInput) (*UploadExportOutput, error) {
	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}

	upload, err := s.services.Export.Upload(ctx, format)
	if err != nil {
		return nil, err
	}
	return &UploadExportOutput{Body: upload}, nil
}
