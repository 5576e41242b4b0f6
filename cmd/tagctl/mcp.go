package main

import (
	"github.com/spf13/cobra"

	"github.com/tagdesk/tagdesk-server/internal/mcp"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tag tools to an MCP client over stdio",
		Long: `Start an MCP server on stdin/stdout exposing tags_list, tags_create and tags_slug.

Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.withSession(func(s *session) error {
				return mcp.Serve(s.tags, s.log.Logger)
			})
		},
	}
}
