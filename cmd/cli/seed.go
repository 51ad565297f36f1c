package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"pokedex/internal/catalog"
	"pokedex/internal/ingest"
)

func newSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog with the records of a seed file",
		Long: `Reads a JSON (or YAML) array of upstream records, clears every roster
membership and catalog record, then inserts the records one by one.`,
		Example: `  pokedex seed --file pokemons.json
  pokedex seed --file fixtures/starters.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := ingest.NewSeeder(catalog.NewRepo(db), afero.NewOsFs()).SeedFile(cmd.Context(), file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d records\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "pokemons.json", "seed file (.json, .yaml or .yml)")
	return cmd
}
