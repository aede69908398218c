package main

import (
	"fmt"
	"strconv"

	"agora/config"
	"agora/internal/errors"
	"agora/internal/infra/persistence/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *migrate.Migrate) error {
				if err := migrations.Up(m); err != nil {
					return err
				}

				return printVersion(cmd, m)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back the given number of migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return errors.Wrapf(err, "invalid steps %q", args[0])
				}
				steps = n
			}

			return withMigrator(func(m *migrate.Migrate) error {
				if err := migrations.Down(m, steps); err != nil {
					return err
				}

				return printVersion(cmd, m)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(func(m *migrate.Migrate) error {
				return printVersion(cmd, m)
			})
		},
	})

	return cmd
}

func withMigrator(run func(m *migrate.Migrate) error) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if cfg.Migrations.DatabaseURL == "" {
		return errors.New("migrations.databaseUrl is not configured")
	}

	m, err := migrations.NewMigrator(cfg.Migrations.DatabaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	return run(m)
}

func printVersion(cmd *cobra.Command, m *migrate.Migrate) error {
	version, dirty, err := migrations.Version(m)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)

	return errors.WithStack(err)
}
