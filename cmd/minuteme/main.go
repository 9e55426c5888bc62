// Package main provides the minuteme operator CLI.
// It runs database migrations, previews agenda plans and mints development tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

var (
	verbose bool

	// cfg holds the loaded configuration.
	cfg *config.Config
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "minuteme",
		Short:         "Operator tooling for the MinuteMe backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable development logging")

	root.AddCommand(newMigrateCommand())
	root.AddCommand(newAgendaCommand())
	root.AddCommand(newTokenCommand())
	return root
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
