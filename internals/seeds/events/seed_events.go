package events

import (
	"context"
	"fmt"
	"time"

	"chilume_backend/internals/docstore"
	eventService "chilume_backend/internals/features/events/service"
	"chilume_backend/internals/logger"
)

// SeedEvents inserts the built-in catalog with empty rosters into an empty
// event collection. It returns how many events were written.
func SeedEvents(ctx context.Context, store docstore.EventStore, now time.Time) (int, error) {
	existing, err := store.ListEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("list events: %w", err)
	}
	if len(existing) > 0 {
		logger.LogI("events already present, skipping seed", "count", len(existing))
		return 0, nil
	}

	seeds := eventService.SeedEvents(now)
	for i := range seeds {
		if _, err := store.InsertEvent(ctx, &seeds[i]); err != nil {
			return i, fmt.Errorf("insert event %q: %w", seeds[i].EventName, err)
		}
	}
	logger.LogI("seeded events", "count", len(seeds))
	return len(seeds), nil
}
