package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/archivegen/scaffold"
)

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <dir>",
		Short: "Create a starter site with a config file and a first post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			fmt.Fprintf(cmd.OutOrStdout(), "Creating new archivegen site: %s\n\n", dir)
			created, err := scaffold.Create(dir, scaffold.NewData(dir, time.Now()))
			if err != nil {
				return err
			}
			for _, f := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "  created %s\n", f)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "Done! Next steps:")
			fmt.Fprintf(cmd.OutOrStdout(), "  cd %s\n", dir)
			fmt.Fprintln(cmd.OutOrStdout(), "  archivegen build")
			fmt.Fprintln(cmd.OutOrStdout(), "  archivegen serve")
			return nil
		},
	}
}
