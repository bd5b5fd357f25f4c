package model

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type EventType string

const (
	EventTypeSports   EventType = "sports"
	EventTypeCultural EventType = "cultural"
)

func (t EventType) Valid() bool {
	return t == EventTypeSports || t == EventTypeCultural
}

// ParticipantSummary is the roster entry embedded on an event.
type ParticipantSummary struct {
	ID           string    `json:"id" bson:"id"`
	Name         string    `json:"name" bson:"name"`
	College      string    `json:"college" bson:"college"`
	Phone        string    `json:"phone" bson:"phone"`
	RegisteredAt time.Time `json:"registered_at" bson:"registered_at"`
}

type EventModel struct {
	EventID              string                                  `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id" bson:"_id"`
	EventName            string                                  `gorm:"column:event_name;type:varchar(255);not null" json:"event_name" bson:"event_name"`
	EventType            EventType                               `gorm:"column:event_type;type:varchar(20);not null;index" json:"event_type" bson:"event_type"`
	EventDescription     string                                  `gorm:"column:event_description;type:text" json:"event_description" bson:"event_description"`
	EventFee             int64                                   `gorm:"column:event_fee;not null;default:0" json:"event_fee" bson:"event_fee"`
	EventDate            time.Time                               `gorm:"column:event_date;type:timestamptz;not null" json:"event_date" bson:"event_date"`
	EventVenue           string                                  `gorm:"column:event_venue;type:varchar(255)" json:"event_venue" bson:"event_venue"`
	EventMaxParticipants int                                     `gorm:"column:event_max_participants;not null" json:"event_max_participants" bson:"event_max_participants"`
	EventTeamSize        int                                     `gorm:"column:event_team_size;not null;default:1" json:"event_team_size" bson:"event_team_size"`
	EventRules           *string                                 `gorm:"column:event_rules;type:text" json:"event_rules,omitempty" bson:"event_rules,omitempty"`
	EventParticipants    datatypes.JSONSlice[ParticipantSummary] `gorm:"column:event_participants;type:jsonb;not null;default:'[]'" json:"event_participants" bson:"event_participants"`
	EventWinners         datatypes.JSONSlice[ParticipantSummary] `gorm:"column:event_winners;type:jsonb" json:"event_winners,omitempty" bson:"event_winners,omitempty"`
	EventCreatedAt       time.Time                               `gorm:"column:event_created_at;type:timestamptz;not null" json:"event_created_at" bson:"event_created_at"`
	EventUpdatedAt       time.Time                               `gorm:"column:event_updated_at;type:timestamptz;not null" json:"event_updated_at" bson:"event_updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

func (m *EventModel) RegisteredCount() int {
	return len(m.EventParticipants)
}

// AvailableSlots never goes below zero, even for rosters seeded past the limit.
func (m *EventModel) AvailableSlots() int {
	if n := m.EventMaxParticipants - len(m.EventParticipants); n > 0 {
		return n
	}
	return 0
}

func (m *EventModel) IsFull() bool {
	return len(m.EventParticipants) >= m.EventMaxParticipants
}

func (m *EventModel) HasPhone(phone string) bool {
	for _, p := range m.EventParticipants {
		if p.Phone == phone {
			return true
		}
	}
	return false
}

func (m *EventModel) TeamSizeLabel() string {
	if m.EventTeamSize <= 1 {
		return "Individual"
	}
	return strconv.Itoa(m.EventTeamSize) + " members"
}

func (m *EventModel) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.EventName), q) ||
		strings.Contains(strings.ToLower(m.EventDescription), q)
}

// Clone returns a copy that shares no slices with m.
func (m EventModel) Clone() EventModel {
	cp := m
	if m.EventParticipants != nil {
		cp.EventParticipants = append(datatypes.JSONSlice[ParticipantSummary]{}, m.EventParticipants...)
	}
	if m.EventWinners != nil {
		cp.EventWinners = append(datatypes.JSONSlice[ParticipantSummary]{}, m.EventWinners...)
	}
	if m.EventRules != nil {
		r := *m.EventRules
		cp.EventRules = &r
	}
	return cp
}

// EventPatch carries a partial update. Nil fields are left untouched.
type EventPatch struct {
	Name            *string
	Type            *EventType
	Description     *string
	Fee             *int64
	Date            *time.Time
	Venue           *string
	MaxParticipants *int
	TeamSize        *int
	Rules           *string
	Winners         *[]ParticipantSummary
}

func (p EventPatch) Empty() bool {
	return p.Name == nil && p.Type == nil && p.Description == nil && p.Fee == nil &&
		p.Date == nil && p.Venue == nil && p.MaxParticipants == nil && p.TeamSize == nil &&
		p.Rules == nil && p.Winners == nil
}

func (p EventPatch) Apply(m *EventModel) {
	if p.Name != nil {
		m.EventName = *p.Name
	}
	if p.Type != nil {
		m.EventType = *p.Type
	}
	if p.Description != nil {
		m.EventDescription = *p.Description
	}
	if p.Fee != nil {
		m.EventFee = *p.Fee
	}
	if p.Date != nil {
		m.EventDate = *p.Date
	}
	if p.Venue != nil {
		m.EventVenue = *p.Venue
	}
	if p.MaxParticipants != nil {
		m.EventMaxParticipants = *p.MaxParticipants
	}
	if p.TeamSize != nil {
		m.EventTeamSize = *p.TeamSize
	}
	if p.Rules != nil {
		r := *p.Rules
		m.EventRules = &r
	}
	if p.Winners != nil {
		m.EventWinners = append(datatypes.JSONSlice[ParticipantSummary]{}, (*p.Winners)...)
	}
}
