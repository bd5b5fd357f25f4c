package service

import (
	"context"
	"math/rand"

	"chilume_backend/internals/docstore"
	eventModel "chilume_backend/internals/features/events/model"
	eventService "chilume_backend/internals/features/events/service"
	"chilume_backend/internals/logger"
)

const FeaturedCount = 3

var placeLabels = []string{"1st Place", "2nd Place", "3rd Place"}

type Stats struct {
	TotalEvents       int   `json:"total_events"`
	TotalParticipants int   `json:"total_participants"`
	TotalFunds        int64 `json:"total_funds"`
}

type Placement struct {
	Place  string                        `json:"place"`
	Winner eventModel.ParticipantSummary `json:"winner"`
}

type EventWinners struct {
	EventID    string      `json:"event_id"`
	EventName  string      `json:"event_name"`
	EventType  string      `json:"event_type"`
	Placements []Placement `json:"placements"`
}

type Home struct {
	Featured []eventModel.EventModel
	Stats    Stats
	Winners  []EventWinners
	Sample   bool
}

type Service struct {
	catalog      *eventService.Catalog
	participants docstore.ParticipantStore
	shuffle      func(n int, swap func(i, j int))
}

func NewService(catalog *eventService.Catalog, participants docstore.ParticipantStore) *Service {
	return &Service{catalog: catalog, participants: participants, shuffle: rand.Shuffle}
}

// Load builds the landing page. A failing participant fetch degrades the
// participant count to the roster sum.
func (s *Service) Load(ctx context.Context) Home {
	events, sample := s.catalog.ListForDisplay(ctx)

	participantCount := 0
	if !sample {
		list, err := s.participants.ListParticipants(ctx)
		if err != nil {
			logger.LogW("participant list unavailable, counting rosters", "error", err)
		} else {
			participantCount = len(list)
		}
	}

	return Home{
		Featured: PickFeatured(events, FeaturedCount, s.shuffle),
		Stats:    ComputeStats(events, participantCount),
		Winners:  WinnersOf(events),
		Sample:   sample,
	}
}

// ComputeStats totals events, participants and collected fees. participantCount
// wins when positive; otherwise roster lengths are summed.
func ComputeStats(events []eventModel.EventModel, participantCount int) Stats {
	st := Stats{TotalEvents: len(events)}
	rosterSum := 0
	for i := range events {
		n := events[i].RegisteredCount()
		rosterSum += n
		st.TotalFunds += int64(n) * events[i].EventFee
	}
	st.TotalParticipants = rosterSum
	if participantCount > 0 {
		st.TotalParticipants = participantCount
	}
	return st
}

// PickFeatured returns up to n events in random order without repeats.
func PickFeatured(events []eventModel.EventModel, n int, shuffle func(int, func(i, j int))) []eventModel.EventModel {
	idx := make([]int, len(events))
	for i := range idx {
		idx[i] = i
	}
	if shuffle != nil {
		shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	}
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]eventModel.EventModel, 0, n)
	for _, i := range idx[:n] {
		out = append(out, events[i])
	}
	return out
}

func WinnersOf(events []eventModel.EventModel) []EventWinners {
	out := []EventWinners{}
	for i := range events {
		ev := &events[i]
		if len(ev.EventWinners) == 0 {
			continue
		}
		ew := EventWinners{
			EventID:   ev.EventID,
			EventName: ev.EventName,
			EventType: string(ev.EventType),
		}
		for pos, w := range ev.EventWinners {
			if pos >= len(placeLabels) {
				break
			}
			ew.Placements = append(ew.Placements, Placement{Place: placeLabels[pos], Winner: w})
		}
		out = append(out, ew)
	}
	return out
}
