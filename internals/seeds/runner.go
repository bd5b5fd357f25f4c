package seeds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chilume_backend/internals/configs"
	"chilume_backend/internals/docstore"
	"chilume_backend/internals/logger"
	"chilume_backend/internals/seeds/admins"
	"chilume_backend/internals/seeds/events"
)

// RunAllSeeds prepares the schema, fills an empty event collection and
// provisions the default admin when a password is configured.
func RunAllSeeds(ctx context.Context, store docstore.Store, cfg configs.AppConfig) error {
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if _, err := events.SeedEvents(ctx, store, time.Now()); err != nil {
		return err
	}

	_, err := admins.SeedDefaultAdmin(ctx, store, cfg.AdminDefaultEmail, cfg.AdminDefaultName, cfg.AdminDefaultPassword)
	if errors.Is(err, admins.ErrMissingPassword) {
		logger.LogW("ADMIN_DEFAULT_PASSWORD is empty, default admin not provisioned")
		return nil
	}
	return err
}
