package service

import (
	"strings"

	"chilume_backend/internals/features/events/model"
)

const TypeAll = "all"

type Filter struct {
	Query string
	Type  string
}

// Normalize lower-cases the type and maps unknown values to "all".
func (f Filter) Normalize() Filter {
	f.Query = strings.TrimSpace(f.Query)
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	if !model.EventType(f.Type).Valid() {
		f.Type = TypeAll
	}
	return f
}

// Apply keeps the input order.
func (f Filter) Apply(events []model.EventModel) []model.EventModel {
	f = f.Normalize()
	out := make([]model.EventModel, 0, len(events))
	for _, ev := range events {
		if f.Type != TypeAll && string(ev.EventType) != f.Type {
			continue
		}
		if !ev.Matches(f.Query) {
			continue
		}
		out = append(out, ev)
	}
	return out
}
