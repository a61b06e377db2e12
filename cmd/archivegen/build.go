package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/archivegen"
)

func newBuildCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Write category archive pages, feeds and sitemap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			src, closeSrc, err := openSource(cfg)
			if err != nil {
				return err
			}
			defer closeSrc()

			w, err := archivegen.NewWriter(cfg.Destination, cfg.Concurrency)
			if err != nil {
				return err
			}
			site := archivegen.NewSite(cfg, defaultTemplates(), src, newLogger(opts))
			res, err := site.Build(cmd.Context(), w)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d category archives from %d posts into %s\n", res.Pages, res.Posts, cfg.Destination)
			return nil
		},
	}
}
