// Package memory is an in-process docstore backend for local runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"chilume_backend/internals/docstore"
	eventModel "chilume_backend/internals/features/events/model"
	expenseModel "chilume_backend/internals/features/expenses/model"
	participantModel "chilume_backend/internals/features/participants/model"
	adminModel "chilume_backend/internals/features/users/admins/model"
)

type Store struct {
	mu sync.RWMutex

	events       map[string]eventModel.EventModel
	eventOrder   []string
	participants map[string]participantModel.ParticipantModel
	partOrder    []string
	expenses     []expenseModel.ExpenseModel
	admins       map[string]adminModel.AdminModel // keyed by lower-cased email

	now func() time.Time
}

var _ docstore.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		events:       make(map[string]eventModel.EventModel),
		participants: make(map[string]participantModel.ParticipantModel),
		admins:       make(map[string]adminModel.AdminModel),
		now:          time.Now,
	}
}

func (s *Store) Migrate(ctx context.Context) error { return ctx.Err() }
func (s *Store) Health(ctx context.Context) error  { return ctx.Err() }
func (s *Store) Close(ctx context.Context) error   { return nil }

/* ===============================
   Events
=================================*/

func (s *Store) ListEvents(ctx context.Context) ([]eventModel.EventModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]eventModel.EventModel, 0, len(s.eventOrder))
	for _, id := range s.eventOrder {
		out = append(out, s.events[id].Clone())
	}
	return out, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*eventModel.EventModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	cp := ev.Clone()
	return &cp, nil
}

func (s *Store) InsertEvent(ctx context.Context, ev *eventModel.EventModel) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	ev.EventID = strings.Clone(ev.EventID)
	if ev.EventParticipants == nil {
		ev.EventParticipants = datatypes.JSONSlice[eventModel.ParticipantSummary]{}
	}
	now := s.now().UTC()
	if ev.EventCreatedAt.IsZero() {
		ev.EventCreatedAt = now
	}
	ev.EventUpdatedAt = now
	rec := ev.Clone()

	if _, exists := s.events[rec.EventID]; !exists {
		s.eventOrder = append(s.eventOrder, rec.EventID)
	}
	s.events[rec.EventID] = rec
	return rec.EventID, nil
}

func (s *Store) UpdateEvent(ctx context.Context, id string, patch eventModel.EventPatch, at time.Time) (*eventModel.EventModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// ids often alias a request buffer; map assignment would keep that memory as the key
	id = strings.Clone(id)
	ev, ok := s.events[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	ev = ev.Clone()
	patch.Apply(&ev)
	ev.EventUpdatedAt = at
	s.events[id] = ev

	cp := ev.Clone()
	return &cp, nil
}

func (s *Store) AppendParticipant(ctx context.Context, eventID string, entry eventModel.ParticipantSummary, at time.Time) (*eventModel.EventModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	eventID = strings.Clone(eventID)
	ev, ok := s.events[eventID]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	if ev.IsFull() {
		return nil, docstore.ErrRosterFull
	}
	if ev.HasPhone(entry.Phone) {
		return nil, docstore.ErrDuplicatePhone
	}

	ev = ev.Clone()
	ev.EventParticipants = append(ev.EventParticipants, entry)
	ev.EventUpdatedAt = at
	s.events[eventID] = ev

	cp := ev.Clone()
	return &cp, nil
}

/* ===============================
   Participants
=================================*/

func (s *Store) ListParticipants(ctx context.Context) ([]participantModel.ParticipantModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]participantModel.ParticipantModel, 0, len(s.partOrder))
	for _, id := range s.partOrder {
		out = append(out, cloneParticipant(s.participants[id]))
	}
	return out, nil
}

func (s *Store) GetParticipant(ctx context.Context, id string) (*participantModel.ParticipantModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	cp := cloneParticipant(p)
	return &cp, nil
}

func (s *Store) InsertParticipant(ctx context.Context, p *participantModel.ParticipantModel) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ParticipantID == "" {
		p.ParticipantID = uuid.NewString()
	}
	p.ParticipantID = strings.Clone(p.ParticipantID)
	rec := cloneParticipant(*p)
	if _, exists := s.participants[rec.ParticipantID]; !exists {
		s.partOrder = append(s.partOrder, rec.ParticipantID)
	}
	s.participants[rec.ParticipantID] = rec
	return rec.ParticipantID, nil
}

func cloneParticipant(p participantModel.ParticipantModel) participantModel.ParticipantModel {
	cp := p
	cp.ParticipantEventIDs = append([]string(nil), p.ParticipantEventIDs...)
	if p.ParticipantEmail != nil {
		e := *p.ParticipantEmail
		cp.ParticipantEmail = &e
	}
	return cp
}

/* ===============================
   Expenses
=================================*/

func (s *Store) ListExpenses(ctx context.Context) ([]expenseModel.ExpenseModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]expenseModel.ExpenseModel{}, s.expenses...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpenseDate.After(out[j].ExpenseDate) })
	return out, nil
}

func (s *Store) InsertExpense(ctx context.Context, e *expenseModel.ExpenseModel) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ExpenseID == "" {
		e.ExpenseID = uuid.NewString()
	}
	if e.ExpenseCreatedAt.IsZero() {
		e.ExpenseCreatedAt = s.now().UTC()
	}
	s.expenses = append(s.expenses, *e)
	return e.ExpenseID, nil
}

/* ===============================
   Admins
=================================*/

func (s *Store) FindAdminByEmail(ctx context.Context, email string) (*adminModel.AdminModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.admins[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return &a, nil
}

func (s *Store) UpsertAdmin(ctx context.Context, a *adminModel.AdminModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.Clone(strings.ToLower(strings.TrimSpace(a.AdminEmail)))
	rec := *a
	now := s.now().UTC()
	if prev, ok := s.admins[key]; ok {
		rec.AdminID = prev.AdminID
		rec.AdminCreatedAt = prev.AdminCreatedAt
	}
	if rec.AdminID == "" {
		rec.AdminID = uuid.NewString()
	}
	if rec.AdminCreatedAt.IsZero() {
		rec.AdminCreatedAt = now
	}
	rec.AdminUpdatedAt = now
	s.admins[key] = rec
	*a = rec
	return nil
}
