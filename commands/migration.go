package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/umakantv/go-utils/db/migrations"
)

// MigrationOptions holds flags for the create-migration command.
type MigrationOptions struct {
	Name string
	Dir  string
}

// NewCreateMigrationCommand creates the create-migration command.
func NewCreateMigrationCommand() *cobra.Command {
	opts := &MigrationOptions{}

	cmd := &cobra.Command{
		Use:   "create-migration",
		Short: "Create an empty timestamped .sql migration",
		Long: `Create an empty timestamped .sql migration.

Migrations in the directory named by database.migrations are applied by
"forum serve" after the base schema.

Example:
  forum create-migration --name add_topic_created_at --dir ./migrations`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Name == "" {
				return fmt.Errorf("--name is required")
			}
			migrations.CreateMigration(&opts.Name, &opts.Dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "migration name (alphanum+underscore only)")
	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "target directory for the new .sql file (e.g. ./migrations)")

	return cmd
}
