package commands

import (
	"forum/config"
	"forum/server"

	"github.com/spf13/cobra"
)

// ServeOptions holds flags for the serve command. Empty flags leave the
// loaded configuration alone.
type ServeOptions struct {
	ConfigPath string
	Addr       string
	DBDriver   string
	DBDSN      string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the forum HTTP server",
		Long: `Start the forum HTTP server.

Configuration is read from defaults, the optional YAML file, a .env file
and FORUM_* environment variables, in that order. Flags win over all of them.

Example:
  forum serve --addr :8080 --db-dsn ./forum.db
  forum serve --config forum.yaml --db-driver pgx --db-dsn postgres://localhost/forum`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			server.InitLogger()
			return server.Start(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&opts.DBDriver, "db-driver", "", "database driver (sqlite3|pgx)")
	cmd.Flags().StringVar(&opts.DBDSN, "db-dsn", "", "database DSN or sqlite file path")

	return cmd
}

func (o *ServeOptions) config() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return cfg, err
	}

	if o.Addr != "" {
		cfg.Addr = o.Addr
	}
	if o.DBDriver != "" {
		cfg.Database.Driver = o.DBDriver
	}
	if o.DBDSN != "" {
		cfg.Database.DSN = o.DBDSN
	}
	return cfg, cfg.Validate()
}
