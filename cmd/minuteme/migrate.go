package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/database"
)

var (
	migrateDir   string
	migrateSteps int
)

// newMigrateCommand creates the 'migrate' command group.
func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
		Long: `Apply, roll back or inspect SQL migrations.

Migrations are read from the migrations/ directory unless --dir is given.
Connection settings come from the DB_* environment variables.

Examples:
  minuteme migrate up
  minuteme migrate down --steps 2
  minuteme migrate status --dir ./migrations`,
	}

	cmd.PersistentFlags().StringVar(&migrateDir, "dir", database.DefaultMigrationsDir, "Directory holding .sql migrations")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				n, err := database.MigrateUp(db, migrateDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Applied %d migration(s)\n", n)
				return nil
			})
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if migrateSteps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			return withDB(func(db *gorm.DB) error {
				n, err := database.MigrateDown(db, migrateDir, migrateSteps)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Rolled back %d migration(s)\n", n)
				return nil
			})
		},
	}
	down.Flags().IntVar(&migrateSteps, "steps", 1, "Number of migrations to roll back")

	status := &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				records, err := database.MigrationStatus(db, migrateDir)
				if err != nil {
					return err
				}
				return printMigrationStatus(cmd.OutOrStdout(), records)
			})
		},
	}

	cmd.AddCommand(up, down, status)
	return cmd
}

func withDB(fn func(db *gorm.DB) error) error {
	db, err := database.NewPostgresDB(cfg, newLogger())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.CloseDB(db)
	return fn(db)
}

func printMigrationStatus(out io.Writer, records []database.MigrationRecord) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tAPPLIED")
	for _, r := range records {
		applied := "no"
		if r.Applied {
			applied = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\n", r.ID, applied)
	}
	return w.Flush()
}
