package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/archivegen"
)

func newServeCmd(opts *options) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview category archives, regenerated from the post source",
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

			app := archivegen.NewApp(cfg, defaultTemplates(), src,
				archivegen.WithLogger(newLogger(opts)),
				archivegen.WithCacheTTL(ttl),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- app.Start() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return app.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().DurationVar(&ttl, "cache-ttl", 5*time.Second, "how long generated archives are reused")
	return cmd
}
