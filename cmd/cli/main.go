package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pokedex/pkg/database"
	"pokedex/pkg/logging"
	"pokedex/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logging.Default().Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "pokedex",
		Short:         "Manage the pokedex catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetDefault(logging.Default().Level(zerolog.DebugLevel))
			}
			utils.Load()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newMigrateCommand(),
		newSeedCommand(),
		newImportCommand(),
		newTokenCommand(),
	)
	return root
}

// openDB opens and migrates the configured database.
func openDB(ctx context.Context) (*sql.DB, error) {
	db, err := database.Open(database.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := database.MigrateContext(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			logging.Default().Info().Str("db", database.DefaultConfig().Path).Msg("database up to date")
			return nil
		},
	}
}
