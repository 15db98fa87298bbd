package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/loadout-efficiency/internal/clients/catalogfile"
	"github.com/KirkDiggler/loadout-efficiency/internal/orchestrators/analysis"
)

var importRedisAddr string

var importCmd = &cobra.Command{
	Use:   "import <catalog.yaml>",
	Short: "Store a catalog file in Redis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogfile.Load(args[0])
		if err != nil {
			return err
		}

		service, closeDeps, err := newAnalysisService(cmd.Context(), override(importRedisAddr, cfg.RedisAddr), "")
		if err != nil {
			return err
		}
		defer closeDeps()

		output, err := service.ImportCatalog(cmd.Context(), analysis.NewImportCatalogInput(cat))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %d models, %d weapons, %d loadouts\n",
			output.ModelsStored, output.WeaponsStored, output.LoadoutsStored)
		return err
	},
}

func init() {
	importCmd.Flags().StringVar(&importRedisAddr, "redis", "", "redis address (default $LOADOUT_REDIS_ADDR)")
}
