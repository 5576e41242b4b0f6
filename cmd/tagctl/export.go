package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
	"github.com/tagdesk/tagdesk-server/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
		upload bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every tag as JSON, YAML or CSV",
		Long: `Export every tag in insertion order.

The document goes to stdout unless --out names a file. With --upload it is
stored in the configured S3-compatible bucket instead (EXPORT_S3_* settings).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			return a.withSession(func(s *session) error {
				if upload {
					if !s.exporter.CanUpload() {
						return domainerrors.Validation("Export upload is not configured.").
							WithDetails(map[string]string{"EXPORT_S3_ENDPOINT": "Set the bucket endpoint to enable uploads."})
					}
					res, err := s.exporter.Upload(cmd.Context(), f)
					if err != nil {
						return err
					}
					return a.write(res, func() string {
						return fmt.Sprintf("Uploaded %d tags to `%s/%s` (%d bytes).\n", res.Count, res.Bucket, res.Object, res.Size)
					})
				}

				doc, err := s.exporter.Export(cmd.Context(), f)
				if err != nil {
					return err
				}
				if out == "" {
					_, err = a.stdout.Write(doc.Body)
					return err
				}
				if err := os.WriteFile(out, doc.Body, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(a.stderr, "Wrote %d tags to %s\n", doc.Count, out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "Document format: json, yaml, csv")
	cmd.Flags().StringVar(&out, "out", "", "Write the document to this file")
	cmd.Flags().BoolVar(&upload, "upload", false, "Upload to the configured bucket")
	cmd.MarkFlagsMutuallyExclusive("out", "upload")

	return cmd
}
