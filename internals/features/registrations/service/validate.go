package service

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidPhone accepts exactly ten ASCII digits.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

type ParticipantInfo struct {
	Name    string
	College string
	Phone   string
	Email   string
}

func (in ParticipantInfo) trimmed() ParticipantInfo {
	return ParticipantInfo{
		Name:    strings.TrimSpace(in.Name),
		College: strings.TrimSpace(in.College),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
	}
}

// Validate runs the input checks in order; the first failure wins. It never
// touches the store.
func Validate(eventID string, in ParticipantInfo) error {
	in = in.trimmed()
	switch {
	case in.Name == "":
		return &ValidationError{Field: "name", Reason: ReasonMissing}
	case in.College == "":
		return &ValidationError{Field: "college", Reason: ReasonMissing}
	case in.Phone == "":
		return &ValidationError{Field: "phone", Reason: ReasonMissing}
	case strings.TrimSpace(eventID) == "":
		return &ValidationError{Field: "event_id", Reason: ReasonMissing}
	case !ValidPhone(in.Phone):
		return &ValidationError{Field: "phone", Reason: ReasonBadPhone}
	case in.Email != "" && !ValidEmail(in.Email):
		return &ValidationError{Field: "email", Reason: ReasonBadEmail}
	}
	return nil
}
