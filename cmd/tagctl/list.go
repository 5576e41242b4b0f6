package main

import (
	"github.com/spf13/cobra"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	"github.com/tagdesk/tagdesk-server/internal/store"
)

func newListCmd(a *app) *cobra.Command {
	var (
		page   int
		rows   int
		search string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List one page of tags",
		Long: `List one page of tags, optionally filtered by a case-insensitive title search.

A page past the end is clamped to the last page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := store.PaginationParams{Page: page, RowsPerPage: rows}
			if err := params.Validate(); err != nil {
				return err
			}

			return a.withSession(func(s *session) error {
				result, err := s.tags.Query(cmd.Context(), domain.TagQuery{
					Page:        params.Page,
					RowsPerPage: params.RowsPerPage,
					Search:      search,
				})
				if err != nil {
					return err
				}
				return a.write(result, func() string {
					if len(result.Data) == 0 {
						return "No tags found.\n"
					}
					return tagTable(result.Data) + pageSummary(result, currentPage(result))
				})
			})
		},
	}

	defaults := store.DefaultPaginationParams()
	cmd.Flags().IntVarP(&page, "page", "p", defaults.Page, "Page number, starting at 1")
	cmd.Flags().IntVarP(&rows, "rows", "n", defaults.RowsPerPage, "Rows per page")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only tags whose title contains this text")

	return cmd
}
