package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagdesk/tagdesk-server/internal/domain"
)

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title>",
		Short: "Create a tag",
		Long:  fmt.Sprintf("Create a tag with the given title. Titles need at least %d characters.", domain.MinTitleLength),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *session) error {
				tag, err := s.tags.Create(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.write(tag, func() string {
					return fmt.Sprintf("Created tag **%s** (`%s`) with slug `%s`.\n", escapeCell(tag.Title), tag.ID, tag.Slug)
				})
			})
		},
	}
}
