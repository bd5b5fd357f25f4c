package service

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/events/model"
	"chilume_backend/internals/logger"
)

const (
	keyAll         = "events:all"
	keyEventPrefix = "event:"
)

// Catalog is the locally held event snapshot shared by the read endpoints
// and the registration flow. Entries are copies; callers may mutate them.
type Catalog struct {
	store docstore.EventStore
	cache *gocache.Cache
	now   func() time.Time
}

func NewCatalog(store docstore.EventStore, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Catalog{
		store: store,
		cache: gocache.New(ttl, 2*ttl),
		now:   time.Now,
	}
}

// List returns every stored event, from the snapshot when it is fresh.
func (c *Catalog) List(ctx context.Context) ([]model.EventModel, error) {
	if v, ok := c.cache.Get(keyAll); ok {
		return cloneAll(v.([]model.EventModel)), nil
	}
	events, err := c.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(keyAll, cloneAll(events))
	for i := range events {
		c.cache.SetDefault(keyEventPrefix+events[i].EventID, events[i].Clone())
	}
	return events, nil
}

// ListForDisplay never fails: a store error or an empty collection yields
// the built-in sample events with sample=true.
func (c *Catalog) ListForDisplay(ctx context.Context) (events []model.EventModel, sample bool) {
	events, err := c.List(ctx)
	if err != nil {
		logger.LogW("event list unavailable, serving sample events", "error", err)
		return SampleEvents(c.now()), true
	}
	if len(events) == 0 {
		return SampleEvents(c.now()), true
	}
	return events, false
}

// Snapshot returns one event. Misses go to the store; sample events are
// never returned here.
func (c *Catalog) Snapshot(ctx context.Context, id string) (*model.EventModel, error) {
	if v, ok := c.cache.Get(keyEventPrefix + id); ok {
		ev := v.(model.EventModel).Clone()
		return &ev, nil
	}
	ev, err := c.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(keyEventPrefix+id, ev.Clone())
	cp := ev.Clone()
	return &cp, nil
}

// Detail is Snapshot with the sample fallback used by the read endpoints.
func (c *Catalog) Detail(ctx context.Context, id string) (ev *model.EventModel, sample bool, err error) {
	ev, err = c.Snapshot(ctx, id)
	if err == nil {
		return ev, false, nil
	}
	if errors.Is(err, docstore.ErrNotFound) {
		if s, ok := SampleEvent(id, c.now()); ok {
			return s, true, nil
		}
		return nil, false, err
	}
	return nil, false, err
}

// Refresh stores ev as the newest snapshot after a write.
func (c *Catalog) Refresh(ev *model.EventModel) {
	if ev == nil {
		return
	}
	c.cache.SetDefault(keyEventPrefix+ev.EventID, ev.Clone())
	c.cache.Delete(keyAll)
}

func (c *Catalog) Invalidate(id string) {
	c.cache.Delete(keyEventPrefix + id)
	c.cache.Delete(keyAll)
}

func cloneAll(in []model.EventModel) []model.EventModel {
	out := make([]model.EventModel, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
