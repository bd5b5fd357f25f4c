package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"chilume_backend/internals/configs"
	database "chilume_backend/internals/databases"
	"chilume_backend/internals/logger"
	"chilume_backend/internals/seeds"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create schema, sample events and the default admin",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := configs.LoadEnv()
		if cfg.DocumentStore == configs.StoreMemory {
			logger.LogW("DOCUMENT_STORE is memory, seeded data will not outlive this process")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		store, err := database.OpenStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open document store: %w", err)
		}
		defer store.Close(context.Background())

		if err := seeds.RunAllSeeds(ctx, store, cfg); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.LogI("seed completed", "document_store", cfg.DocumentStore)
		return nil
	},
}
