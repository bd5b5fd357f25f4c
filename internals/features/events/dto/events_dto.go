package dto

import (
	"strings"
	"time"

	"chilume_backend/internals/features/events/model"
)

/* ===============================
   Responses
=================================*/

type EventResponse struct {
	EventID              string    `json:"event_id"`
	EventName            string    `json:"event_name"`
	EventType            string    `json:"event_type"`
	EventDescription     string    `json:"event_description"`
	EventFee             int64     `json:"event_fee"`
	EventDate            time.Time `json:"event_date"`
	EventVenue           string    `json:"event_venue"`
	EventMaxParticipants int       `json:"event_max_participants"`
	EventTeamSize        int       `json:"event_team_size"`
	TeamSizeLabel        string    `json:"team_size_label"`
	RegisteredCount      int       `json:"registered_count"`
	AvailableSlots       int       `json:"available_slots"`
	IsFull               bool      `json:"is_full"`
}

type EventDetailResponse struct {
	EventResponse
	Rules string `json:"rules"`
}

// EventAdminResponse exposes the roster; only served behind admin auth.
type EventAdminResponse struct {
	EventResponse
	EventRules        *string                    `json:"event_rules,omitempty"`
	EventParticipants []model.ParticipantSummary `json:"event_participants"`
	EventWinners      []model.ParticipantSummary `json:"event_winners"`
	EventCreatedAt    time.Time                  `json:"event_created_at"`
	EventUpdatedAt    time.Time                  `json:"event_updated_at"`
}

func ToEventResponse(m *model.EventModel) EventResponse {
	return EventResponse{
		EventID:              m.EventID,
		EventName:            m.EventName,
		EventType:            string(m.EventType),
		EventDescription:     m.EventDescription,
		EventFee:             m.EventFee,
		EventDate:            m.EventDate,
		EventVenue:           m.EventVenue,
		EventMaxParticipants: m.EventMaxParticipants,
		EventTeamSize:        m.EventTeamSize,
		TeamSizeLabel:        m.TeamSizeLabel(),
		RegisteredCount:      m.RegisteredCount(),
		AvailableSlots:       m.AvailableSlots(),
		IsFull:               m.IsFull(),
	}
}

func ToEventResponseList(list []model.EventModel) []EventResponse {
	out := make([]EventResponse, 0, len(list))
	for i := range list {
		out = append(out, ToEventResponse(&list[i]))
	}
	return out
}

func ToEventAdminResponse(m *model.EventModel) EventAdminResponse {
	participants := append([]model.ParticipantSummary{}, m.EventParticipants...)
	winners := append([]model.ParticipantSummary{}, m.EventWinners...)
	return EventAdminResponse{
		EventResponse:     ToEventResponse(m),
		EventRules:        m.EventRules,
		EventParticipants: participants,
		EventWinners:      winners,
		EventCreatedAt:    m.EventCreatedAt,
		EventUpdatedAt:    m.EventUpdatedAt,
	}
}

/* ===============================
   Requests
=================================*/

type CreateEventRequest struct {
	EventName            string    `json:"event_name" validate:"required,max=255"`
	EventType            string    `json:"event_type" validate:"required,oneof=sports cultural"`
	EventDescription     string    `json:"event_description" validate:"max=5000"`
	EventFee             int64     `json:"event_fee" validate:"gte=0"`
	EventDate            time.Time `json:"event_date" validate:"required"`
	EventVenue           string    `json:"event_venue" validate:"required,max=255"`
	EventMaxParticipants int       `json:"event_max_participants" validate:"required,gt=0"`
	EventTeamSize        int       `json:"event_team_size" validate:"omitempty,gte=1"`
	EventRules           *string   `json:"event_rules" validate:"omitempty,max=10000"`
}

func (r *CreateEventRequest) Normalize() {
	r.EventName = strings.TrimSpace(r.EventName)
	r.EventType = strings.ToLower(strings.TrimSpace(r.EventType))
	r.EventDescription = strings.TrimSpace(r.EventDescription)
	r.EventVenue = strings.TrimSpace(r.EventVenue)
	if r.EventTeamSize == 0 {
		r.EventTeamSize = 1
	}
}

func (r *CreateEventRequest) ToModel() *model.EventModel {
	return &model.EventModel{
		EventName:            r.EventName,
		EventType:            model.EventType(r.EventType),
		EventDescription:     r.EventDescription,
		EventFee:             r.EventFee,
		EventDate:            r.EventDate.UTC(),
		EventVenue:           r.EventVenue,
		EventMaxParticipants: r.EventMaxParticipants,
		EventTeamSize:        r.EventTeamSize,
		EventRules:           r.EventRules,
	}
}

// UpdateEventRequest is a PATCH body; absent fields are left alone.
type UpdateEventRequest struct {
	EventName            *string    `json:"event_name" validate:"omitnil,min=1,max=255"`
	EventType            *string    `json:"event_type" validate:"omitempty,oneof=sports cultural"`
	EventDescription     *string    `json:"event_description" validate:"omitempty,max=5000"`
	EventFee             *int64     `json:"event_fee" validate:"omitempty,gte=0"`
	EventDate            *time.Time `json:"event_date"`
	EventVenue           *string    `json:"event_venue" validate:"omitnil,min=1,max=255"`
	EventMaxParticipants *int       `json:"event_max_participants" validate:"omitempty,gt=0"`
	EventTeamSize        *int       `json:"event_team_size" validate:"omitempty,gte=1"`
	EventRules           *string    `json:"event_rules" validate:"omitempty,max=10000"`
}

// Normalize trims text fields; call it before validation so blank values
// fail the min length checks.
func (r *UpdateEventRequest) Normalize() {
	r.EventName = trimPtr(r.EventName)
	r.EventDescription = trimPtr(r.EventDescription)
	r.EventVenue = trimPtr(r.EventVenue)
	if r.EventType != nil {
		t := strings.ToLower(strings.TrimSpace(*r.EventType))
		r.EventType = &t
	}
}

func (r *UpdateEventRequest) ToPatch() model.EventPatch {
	p := model.EventPatch{
		Name:            r.EventName,
		Description:     r.EventDescription,
		Fee:             r.EventFee,
		Venue:           r.EventVenue,
		MaxParticipants: r.EventMaxParticipants,
		TeamSize:        r.EventTeamSize,
		Rules:           r.EventRules,
	}
	if r.EventType != nil {
		t := model.EventType(*r.EventType)
		p.Type = &t
	}
	if r.EventDate != nil {
		d := r.EventDate.UTC()
		p.Date = &d
	}
	return p
}

// SetWinnersRequest lists roster participant ids in placing order.
type SetWinnersRequest struct {
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,max=3,dive,required"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
