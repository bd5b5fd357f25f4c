package dto

import (
	"net/url"
	"strconv"

	eventDTO "chilume_backend/internals/features/events/dto"
	"chilume_backend/internals/features/events/model"
	"chilume_backend/internals/features/registrations/service"
)

type RegistrationRequest struct {
	EventID string `json:"event_id" form:"event_id"`
	Name    string `json:"name" form:"name"`
	College string `json:"college" form:"college"`
	Phone   string `json:"phone" form:"phone"`
	Email   string `json:"email" form:"email"`
}

func (r RegistrationRequest) Info() service.ParticipantInfo {
	return service.ParticipantInfo{Name: r.Name, College: r.College, Phone: r.Phone, Email: r.Email}
}

type RegistrationResponse struct {
	ParticipantID string `json:"participant_id"`
	EventID       string `json:"event_id"`
	RedirectTo    string `json:"redirect_to"`
}

func NewRegistrationResponse(participantID, eventID string) RegistrationResponse {
	return RegistrationResponse{
		ParticipantID: participantID,
		EventID:       eventID,
		RedirectTo:    "/registration-success?eventId=" + url.QueryEscape(eventID),
	}
}

// EventOption is one entry of the event picker on the form.
type EventOption struct {
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	EventType string `json:"event_type"`
	EventFee  int64  `json:"event_fee"`
	IsFull    bool   `json:"is_full"`
}

type SelectedEvent struct {
	eventDTO.EventResponse
	SlotsLabel string `json:"slots_label"`
}

type FormContextResponse struct {
	Events   []EventOption  `json:"events"`
	Selected *SelectedEvent `json:"selected_event"`
	Sample   bool           `json:"sample"`
}

func ToEventOptions(events []model.EventModel) []EventOption {
	out := make([]EventOption, 0, len(events))
	for i := range events {
		ev := &events[i]
		out = append(out, EventOption{
			EventID:   ev.EventID,
			EventName: ev.EventName,
			EventType: string(ev.EventType),
			EventFee:  ev.EventFee,
			IsFull:    ev.IsFull(),
		})
	}
	return out
}

func ToSelectedEvent(ev *model.EventModel) *SelectedEvent {
	if ev == nil {
		return nil
	}
	return &SelectedEvent{
		EventResponse: eventDTO.ToEventResponse(ev),
		SlotsLabel:    slotsLabel(ev),
	}
}

func slotsLabel(ev *model.EventModel) string {
	return strconv.Itoa(ev.AvailableSlots()) + " of " + strconv.Itoa(ev.EventMaxParticipants)
}
