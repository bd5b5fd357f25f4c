package service

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"chilume_backend/internals/features/events/model"
)

type sampleDef struct {
	id          string
	name        string
	kind        model.EventType
	description string
	fee         int64
	venue       string
	max         int
	teamSize    int
	registered  int
	namePrefix  string
	college     string
	winners     []string
}

var samples = []sampleDef{
	{"8a3f2c1e-0001-4c4f-9b1a-000000000001", "Chess Championship", model.EventTypeSports,
		"Compete in our annual chess tournament and show your strategic skills.",
		200, "Main Hall", 32, 1, 15, "Participant", "Example College", []string{"Rohit Sharma"}},
	{"8a3f2c1e-0002-4c4f-9b1a-000000000002", "Badminton Tournament", model.EventTypeSports,
		"Singles and doubles badminton competition for all skill levels.",
		300, "Sports Complex", 48, 2, 22, "Player", "Sports Academy", nil},
	{"8a3f2c1e-0003-4c4f-9b1a-000000000003", "Cultural Dance Competition", model.EventTypeCultural,
		"Showcase your dance skills representing various cultural traditions.",
		250, "Auditorium", 20, 5, 8, "Dancer", "Arts College", nil},
	{"8a3f2c1e-0004-4c4f-9b1a-000000000004", "Singing Competition", model.EventTypeCultural,
		"Show your vocal talent in our popular singing contest.",
		150, "Music Hall", 30, 1, 12, "Singer", "Music Academy", nil},
	{"8a3f2c1e-0005-4c4f-9b1a-000000000005", "Table Tennis Tournament", model.EventTypeSports,
		"Fast-paced table tennis competition for singles and doubles.",
		250, "Indoor Sports Hall", 40, 1, 18, "TT Player", "Sports Institute", nil},
}

// SampleEvents is the demo catalog shown when the store has nothing to
// offer. Every roster phone is distinct.
func SampleEvents(now time.Time) []model.EventModel {
	now = now.UTC()
	out := make([]model.EventModel, 0, len(samples))
	for i, s := range samples {
		out = append(out, s.build(i, now, true))
	}
	return out
}

// SeedEvents is the sample catalog with empty rosters, for provisioning a
// fresh store.
func SeedEvents(now time.Time) []model.EventModel {
	now = now.UTC()
	out := make([]model.EventModel, 0, len(samples))
	for i, s := range samples {
		out = append(out, s.build(i, now, false))
	}
	return out
}

func SampleEvent(id string, now time.Time) (*model.EventModel, bool) {
	for _, ev := range SampleEvents(now) {
		if ev.EventID == id {
			ev := ev
			return &ev, true
		}
	}
	return nil, false
}

func (s sampleDef) build(idx int, now time.Time, withRoster bool) model.EventModel {
	ev := model.EventModel{
		EventID:              s.id,
		EventName:            s.name,
		EventType:            s.kind,
		EventDescription:     s.description,
		EventFee:             s.fee,
		EventDate:            now.AddDate(0, 0, 14+idx).Truncate(time.Hour),
		EventVenue:           s.venue,
		EventMaxParticipants: s.max,
		EventTeamSize:        s.teamSize,
		EventParticipants:    datatypes.JSONSlice[model.ParticipantSummary]{},
		EventCreatedAt:       now,
		EventUpdatedAt:       now,
	}
	if !withRoster {
		return ev
	}

	for i := 0; i < s.registered; i++ {
		ev.EventParticipants = append(ev.EventParticipants, model.ParticipantSummary{
			ID:           fmt.Sprintf("sample-%d-%d", idx+1, i+1),
			Name:         fmt.Sprintf("%s %d", s.namePrefix, i+1),
			College:      s.college,
			Phone:        fmt.Sprintf("98765%d%04d", idx+1, i+1),
			RegisteredAt: now,
		})
	}
	for i, name := range s.winners {
		ev.EventWinners = append(ev.EventWinners, model.ParticipantSummary{
			ID:           fmt.Sprintf("sample-winner-%d-%d", idx+1, i+1),
			Name:         name,
			College:      "Engineering College",
			Phone:        fmt.Sprintf("91234%d%04d", idx+1, i+1),
			RegisteredAt: now,
		})
	}
	return ev
}

// IsSampleID reports whether id belongs to the built-in catalog.
func IsSampleID(id string) bool {
	for _, s := range samples {
		if strings.EqualFold(s.id, id) {
			return true
		}
	}
	return false
}
