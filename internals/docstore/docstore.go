// Package docstore is the document store collaborator: typed collections for
// events, participants, expenses and admins, with interchangeable backends.
package docstore

import (
	"context"
	"errors"
	"time"

	eventModel "chilume_backend/internals/features/events/model"
	expenseModel "chilume_backend/internals/features/expenses/model"
	participantModel "chilume_backend/internals/features/participants/model"
	adminModel "chilume_backend/internals/features/users/admins/model"
)

var (
	ErrNotFound       = errors.New("docstore: record not found")
	ErrRosterFull     = errors.New("docstore: roster is full")
	ErrDuplicatePhone = errors.New("docstore: phone already on roster")
)

type EventStore interface {
	ListEvents(ctx context.Context) ([]eventModel.EventModel, error)
	GetEvent(ctx context.Context, id string) (*eventModel.EventModel, error)
	// InsertEvent stores ev and returns its id, generating one when ev.EventID is empty.
	InsertEvent(ctx context.Context, ev *eventModel.EventModel) (string, error)
	UpdateEvent(ctx context.Context, id string, patch eventModel.EventPatch, at time.Time) (*eventModel.EventModel, error)
	// AppendParticipant adds entry to the roster only if the roster is below
	// capacity and holds no entry with the same phone, as one atomic step.
	// It returns ErrRosterFull or ErrDuplicatePhone when the condition fails.
	AppendParticipant(ctx context.Context, eventID string, entry eventModel.ParticipantSummary, at time.Time) (*eventModel.EventModel, error)
}

type ParticipantStore interface {
	ListParticipants(ctx context.Context) ([]participantModel.ParticipantModel, error)
	GetParticipant(ctx context.Context, id string) (*participantModel.ParticipantModel, error)
	InsertParticipant(ctx context.Context, p *participantModel.ParticipantModel) (string, error)
}

type ExpenseStore interface {
	ListExpenses(ctx context.Context) ([]expenseModel.ExpenseModel, error)
	InsertExpense(ctx context.Context, e *expenseModel.ExpenseModel) (string, error)
}

type AdminStore interface {
	FindAdminByEmail(ctx context.Context, email string) (*adminModel.AdminModel, error)
	UpsertAdmin(ctx context.Context, a *adminModel.AdminModel) error
}

type Store interface {
	EventStore
	ParticipantStore
	ExpenseStore
	AdminStore

	// Migrate prepares tables, collections and indexes.
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error
	Close(ctx context.Context) error
}
