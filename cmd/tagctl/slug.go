package main

import (
	"github.com/spf13/cobra"

	"github.com/tagdesk/tagdesk-server/internal/slug"
)

type slugResult struct {
	Title string `json:"title" yaml:"title"`
	Slug  string `json:"slug" yaml:"slug"`
}

func newSlugCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slug <title>",
		Short: "Print the slug a title would get",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			res := slugResult{Title: args[0], Slug: slug.Derive(args[0])}
			return a.write(res, func() string { return res.Slug + "\n" })
		},
	}
}
