package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"pokedex/internal/assets"
	"pokedex/internal/catalog"
	"pokedex/internal/ingest"
	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/logging"
	"pokedex/pkg/utils"
)

func newImportCommand() *cobra.Command {
	var downloadAssets bool

	cmd := &cobra.Command{
		Use:   "import <id|name>",
		Short: "Fetch one record from the upstream API and upsert it",
		Example: `  pokedex import pikachu
  pokedex import 25 --download-assets`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			upstream := utils.LoadUpstreamConfig()
			var resolver ingest.AssetResolver
			if downloadAssets {
				resolver = newAssetResolver()
			}

			imp := ingest.NewImporter(
				ingest.NewClient(upstream.BaseURL, upstream.Timeout),
				catalog.NewRepo(db),
				resolver,
			)
			res, err := imp.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			action := "updated"
			if res.Created {
				action = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", action, res.Record.ID, res.Record.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&downloadAssets, "download-assets", false, "copy sprites into the assets dir")
	return cmd
}

func newAssetResolver() *assets.Resolver {
	cfg := utils.LoadAssetConfig()
	log := logging.Component("assets")

	r := assets.NewResolver(
		assets.NewHTTPFetcher(),
		assets.NewFSStore(afero.NewOsFs(), cfg.Dir, cfg.PublicPrefix),
		cfg.FetchTimeout,
	)
	r.OnFailure = func(err *pkgerrors.AssetError) {
		log.Warn().Err(err.Err).Int("id", err.RecordID).Str("slot", err.Slot).Str("url", err.URL).
			Msg("asset download failed, keeping remote url")
	}
	return r
}
