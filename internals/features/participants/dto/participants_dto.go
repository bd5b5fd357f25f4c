package dto

import (
	"time"

	"chilume_backend/internals/features/participants/model"
)

type ParticipantResponse struct {
	ParticipantID           string    `json:"participant_id"`
	ParticipantName         string    `json:"participant_name"`
	ParticipantCollege      string    `json:"participant_college"`
	ParticipantPhone        string    `json:"participant_phone"`
	ParticipantEmail        string    `json:"participant_email,omitempty"`
	ParticipantEventIDs     []string  `json:"participant_event_ids"`
	ParticipantRegisteredAt time.Time `json:"participant_registered_at"`
}

func ToParticipantResponse(m *model.ParticipantModel) ParticipantResponse {
	r := ParticipantResponse{
		ParticipantID:           m.ParticipantID,
		ParticipantName:         m.ParticipantName,
		ParticipantCollege:      m.ParticipantCollege,
		ParticipantPhone:        m.ParticipantPhone,
		ParticipantEventIDs:     append([]string{}, m.ParticipantEventIDs...),
		ParticipantRegisteredAt: m.ParticipantRegisteredAt,
	}
	if m.ParticipantEmail != nil {
		r.ParticipantEmail = *m.ParticipantEmail
	}
	return r
}

func ToParticipantResponseList(list []model.ParticipantModel) []ParticipantResponse {
	out := make([]ParticipantResponse, 0, len(list))
	for i := range list {
		out = append(out, ToParticipantResponse(&list[i]))
	}
	return out
}
