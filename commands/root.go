package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the forum CLI
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forum",
		Short: "A minimal discussion forum",
		Long:  "Serve a minimal discussion forum where registered users post topics and messages.",
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewCreateMigrationCommand())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
