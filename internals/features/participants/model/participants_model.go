package model

import (
	"time"

	"github.com/lib/pq"
)

// ParticipantModel is written once at registration and never mutated.
type ParticipantModel struct {
	ParticipantID           string         `gorm:"column:participant_id;type:uuid;primaryKey" json:"participant_id" bson:"_id"`
	ParticipantName         string         `gorm:"column:participant_name;type:varchar(255);not null" json:"participant_name" bson:"participant_name"`
	ParticipantCollege      string         `gorm:"column:participant_college;type:varchar(255);not null" json:"participant_college" bson:"participant_college"`
	ParticipantPhone        string         `gorm:"column:participant_phone;type:varchar(10);not null;index" json:"participant_phone" bson:"participant_phone"`
	ParticipantEmail        *string        `gorm:"column:participant_email;type:varchar(255)" json:"participant_email,omitempty" bson:"participant_email,omitempty"`
	ParticipantEventIDs     pq.StringArray `gorm:"column:participant_event_ids;type:text[];not null" json:"participant_event_ids" bson:"participant_event_ids"`
	ParticipantRegisteredAt time.Time      `gorm:"column:participant_registered_at;type:timestamptz;not null" json:"participant_registered_at" bson:"participant_registered_at"`
}

func (ParticipantModel) TableName() string {
	return "participants"
}
