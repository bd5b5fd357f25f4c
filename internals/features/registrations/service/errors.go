package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("invalid registration")
	ErrNotFound   = errors.New("event not found")
	ErrCapacity   = errors.New("event is fully booked")
	ErrDuplicate  = errors.New("phone number already registered for this event")
)

const (
	ReasonMissing  = "missing field"
	ReasonBadPhone = "bad phone"
	ReasonBadEmail = "bad email"
)

// ValidationError names the first offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Message is the text shown next to the field.
func (e *ValidationError) Message() string {
	switch e.Reason {
	case ReasonBadPhone:
		return "Please enter a valid 10-digit phone number"
	case ReasonBadEmail:
		return "Please enter a valid email address"
	default:
		return "Please fill all required fields"
	}
}

// NetworkError wraps a store failure that happened before anything was written.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// PartialFailureError means the participant record exists but the roster
// append did not happen. Nothing is rolled back.
type PartialFailureError struct {
	ParticipantID string
	Cause         error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("participant %s saved but not added to roster: %v", e.ParticipantID, e.Cause)
}

func (e *PartialFailureError) Unwrap() error { return e.Cause }
