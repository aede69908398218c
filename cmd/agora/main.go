package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "agora",
		Short:         "Account and session daemon for the marketplace UI",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())

	return cmd
}
