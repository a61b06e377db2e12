package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/archivegen"
	"github.com/eringen/archivegen/content"
)

func newImportCmd(opts *options) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Sync published markdown posts into the SQLite post store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.DatabasePath
			}
			if dbPath == "" {
				return fmt.Errorf("no database: set database_path or pass --db")
			}

			posts, err := content.NewDir(cfg.ContentDir).ListPosts(cmd.Context())
			if err != nil {
				return err
			}
			store, err := archivegen.NewStore(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			res, err := store.Sync(cmd.Context(), posts)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d posts from %s into %s (%d new, %d updated, %d removed)\n",
				len(posts), cfg.ContentDir, dbPath, res.Added, res.Updated, res.Deleted)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default database_path from config)")
	return cmd
}
