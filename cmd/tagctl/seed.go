package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type seedResult struct {
	Path  string `json:"path" yaml:"path"`
	Tags  int    `json:"tags" yaml:"tags"`
	Count int    `json:"seedCount" yaml:"seedCount"`
}

func newSeedCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty store with sample tags",
		Long: `Open the store and fill it with sample tags if it holds none.

A store that already has tags is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}
			return a.withSession(func(s *session) error {
				res := seedResult{Path: s.cfg.Data.BasePath, Tags: s.count, Count: count}
				return a.write(res, func() string {
					return fmt.Sprintf("Store at `%s` holds %d tags.\n", res.Path, res.Tags)
				})
			}, "-seed-count", strconv.Itoa(count))
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", 100, "Number of sample tags to write")

	return cmd
}
