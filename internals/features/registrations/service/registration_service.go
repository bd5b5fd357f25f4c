package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"chilume_backend/internals/docstore"
	eventModel "chilume_backend/internals/features/events/model"
	participantModel "chilume_backend/internals/features/participants/model"
	"chilume_backend/internals/logger"
)

// Snapshots is the event snapshot the checks run against.
type Snapshots interface {
	Snapshot(ctx context.Context, id string) (*eventModel.EventModel, error)
	Refresh(ev *eventModel.EventModel)
	Invalidate(id string)
}

type Notifier interface {
	RegistrationConfirmed(ctx context.Context, ev eventModel.EventModel, p participantModel.ParticipantModel) error
}

type Recorder interface {
	ObserveRegistration(result string)
}

// Outcome labels used by Recorder.
const (
	ResultOK             = "ok"
	ResultValidation     = "validation"
	ResultNotFound       = "not_found"
	ResultCapacity       = "capacity"
	ResultDuplicate      = "duplicate"
	ResultPartialFailure = "partial_failure"
	ResultNetwork        = "network"
)

type Service struct {
	snapshots    Snapshots
	participants docstore.ParticipantStore
	events       docstore.EventStore
	notifier     Notifier
	recorder     Recorder
	now          func() time.Time
	notifyTTL    time.Duration
}

type Option func(*Service)

func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }
func WithRecorder(r Recorder) Option { return func(s *Service) { s.recorder = r } }
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(snapshots Snapshots, participants docstore.ParticipantStore, events docstore.EventStore, opts ...Option) *Service {
	s := &Service{
		snapshots:    snapshots,
		participants: participants,
		events:       events,
		now:          time.Now,
		notifyTTL:    10 * time.Second,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register validates info, checks the event snapshot, writes the participant
// record and appends it to the event roster. On success it returns the new
// participant id. A *PartialFailureError also carries the id.
func (s *Service) Register(ctx context.Context, eventID string, info ParticipantInfo) (string, error) {
	id, err := s.register(ctx, eventID, info)
	if s.recorder != nil {
		s.recorder.ObserveRegistration(Result(err))
	}
	return id, err
}

func (s *Service) register(ctx context.Context, eventID string, info ParticipantInfo) (string, error) {
	if err := Validate(eventID, info); err != nil {
		return "", err
	}
	eventID = strings.TrimSpace(eventID)
	info = info.trimmed()

	ev, err := s.snapshots.Snapshot(ctx, eventID)
	if errors.Is(err, docstore.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", &NetworkError{Op: "load event", Err: err}
	}
	if ev.IsFull() {
		return "", ErrCapacity
	}
	if ev.HasPhone(info.Phone) {
		return "", ErrDuplicate
	}

	now := s.now().UTC()
	p := participantModel.ParticipantModel{
		ParticipantName:         info.Name,
		ParticipantCollege:      info.College,
		ParticipantPhone:        info.Phone,
		ParticipantEventIDs:     []string{eventID},
		ParticipantRegisteredAt: now,
	}
	if info.Email != "" {
		email := info.Email
		p.ParticipantEmail = &email
	}

	pid, err := s.participants.InsertParticipant(ctx, &p)
	if err != nil {
		return "", &NetworkError{Op: "insert participant", Err: err}
	}
	p.ParticipantID = pid

	updated, err := s.events.AppendParticipant(ctx, eventID, eventModel.ParticipantSummary{
		ID:           pid,
		Name:         info.Name,
		College:      info.College,
		Phone:        info.Phone,
		RegisteredAt: now,
	}, now)
	if err != nil {
		s.snapshots.Invalidate(eventID)
		cause := rosterCause(err)
		logger.LogE("participant saved but roster append failed",
			"event_id", eventID, "participant_id", pid, "error", err)
		return pid, &PartialFailureError{ParticipantID: pid, Cause: cause}
	}

	s.snapshots.Refresh(updated)
	s.notify(*updated, p)
	logger.LogI("registration accepted", "event_id", eventID, "participant_id", pid)
	return pid, nil
}

func (s *Service) notify(ev eventModel.EventModel, p participantModel.ParticipantModel) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTTL)
		defer cancel()
		if err := s.notifier.RegistrationConfirmed(ctx, ev, p); err != nil {
			logger.LogW("registration notification failed", "event_id", ev.EventID, "participant_id", p.ParticipantID, "error", err)
		}
	}()
}

func rosterCause(err error) error {
	switch {
	case errors.Is(err, docstore.ErrRosterFull):
		return ErrCapacity
	case errors.Is(err, docstore.ErrDuplicatePhone):
		return ErrDuplicate
	case errors.Is(err, docstore.ErrNotFound):
		return ErrNotFound
	}
	return &NetworkError{Op: "append participant", Err: err}
}

// Result maps an error from Register to its metrics label.
func Result(err error) string {
	var (
		partial *PartialFailureError
		network *NetworkError
	)
	switch {
	case err == nil:
		return ResultOK
	case errors.As(err, &partial):
		return ResultPartialFailure
	case errors.Is(err, ErrValidation):
		return ResultValidation
	case errors.Is(err, ErrNotFound):
		return ResultNotFound
	case errors.Is(err, ErrCapacity):
		return ResultCapacity
	case errors.Is(err, ErrDuplicate):
		return ResultDuplicate
	case errors.As(err, &network):
		return ResultNetwork
	}
	return ResultNetwork
}
