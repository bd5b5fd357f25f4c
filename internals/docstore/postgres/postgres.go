// Package postgres is the GORM-backed docstore. Rosters and winners live in
// JSONB columns on the events table.
package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chilume_backend/internals/docstore"
	eventModel "chilume_backend/internals/features/events/model"
	expenseModel "chilume_backend/internals/features/expenses/model"
	participantModel "chilume_backend/internals/features/participants/model"
	adminModel "chilume_backend/internals/features/users/admins/model"
)

type Store struct {
	db *gorm.DB
}

var _ docstore.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&eventModel.EventModel{},
		&participantModel.ParticipantModel{},
		&expenseModel.ExpenseModel{},
		&adminModel.AdminModel{},
	)
}

func (s *Store) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ids are uuid columns; anything else can never match a row
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return docstore.ErrNotFound
	}
	return err
}

/* ===============================
   Events
=================================*/

func (s *Store) ListEvents(ctx context.Context) ([]eventModel.EventModel, error) {
	var out []eventModel.EventModel
	if err := s.db.WithContext(ctx).Order("event_date ASC, event_created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*eventModel.EventModel, error) {
	if !validID(id) {
		return nil, docstore.ErrNotFound
	}
	var ev eventModel.EventModel
	if err := s.db.WithContext(ctx).First(&ev, "event_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ev, nil
}

func (s *Store) InsertEvent(ctx context.Context, ev *eventModel.EventModel) (string, error) {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.EventParticipants == nil {
		ev.EventParticipants = datatypes.JSONSlice[eventModel.ParticipantSummary]{}
	}
	now := time.Now().UTC()
	if ev.EventCreatedAt.IsZero() {
		ev.EventCreatedAt = now
	}
	ev.EventUpdatedAt = now

	if err := s.db.WithContext(ctx).Create(ev).Error; err != nil {
		return "", err
	}
	return ev.EventID, nil
}

func (s *Store) UpdateEvent(ctx context.Context, id string, patch eventModel.EventPatch, at time.Time) (*eventModel.EventModel, error) {
	if !validID(id) {
		return nil, docstore.ErrNotFound
	}
	var ev eventModel.EventModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ev, "event_id = ?", id).Error; err != nil {
			return notFound(err)
		}
		patch.Apply(&ev)
		ev.EventUpdatedAt = at
		return tx.Save(&ev).Error
	})
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// AppendParticipant locks the event row, re-checks capacity and phone
// uniqueness, then writes the roster back in the same transaction.
func (s *Store) AppendParticipant(ctx context.Context, eventID string, entry eventModel.ParticipantSummary, at time.Time) (*eventModel.EventModel, error) {
	if !validID(eventID) {
		return nil, docstore.ErrNotFound
	}
	var ev eventModel.EventModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ev, "event_id = ?", eventID).Error; err != nil {
			return notFound(err)
		}
		if ev.IsFull() {
			return docstore.ErrRosterFull
		}
		if ev.HasPhone(entry.Phone) {
			return docstore.ErrDuplicatePhone
		}

		ev.EventParticipants = append(ev.EventParticipants, entry)
		ev.EventUpdatedAt = at
		return tx.Model(&eventModel.EventModel{}).
			Where("event_id = ?", eventID).
			Updates(map[string]interface{}{
				"event_participants": ev.EventParticipants,
				"event_updated_at":   at,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

/* ===============================
   Participants
=================================*/

func (s *Store) ListParticipants(ctx context.Context) ([]participantModel.ParticipantModel, error) {
	var out []participantModel.ParticipantModel
	if err := s.db.WithContext(ctx).Order("participant_registered_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetParticipant(ctx context.Context, id string) (*participantModel.ParticipantModel, error) {
	if !validID(id) {
		return nil, docstore.ErrNotFound
	}
	var p participantModel.ParticipantModel
	if err := s.db.WithContext(ctx).First(&p, "participant_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) InsertParticipant(ctx context.Context, p *participantModel.ParticipantModel) (string, error) {
	if p.ParticipantID == "" {
		p.ParticipantID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return "", err
	}
	return p.ParticipantID, nil
}

/* ===============================
   Expenses
=================================*/

func (s *Store) ListExpenses(ctx context.Context) ([]expenseModel.ExpenseModel, error) {
	var out []expenseModel.ExpenseModel
	if err := s.db.WithContext(ctx).Order("expense_date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) InsertExpense(ctx context.Context, e *expenseModel.ExpenseModel) (string, error) {
	if e.ExpenseID == "" {
		e.ExpenseID = uuid.NewString()
	}
	if e.ExpenseCreatedAt.IsZero() {
		e.ExpenseCreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return "", err
	}
	return e.ExpenseID, nil
}

/* ===============================
   Admins
=================================*/

func (s *Store) FindAdminByEmail(ctx context.Context, email string) (*adminModel.AdminModel, error) {
	var a adminModel.AdminModel
	err := s.db.WithContext(ctx).
		Where("LOWER(admin_email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *Store) UpsertAdmin(ctx context.Context, a *adminModel.AdminModel) error {
	now := time.Now().UTC()
	a.AdminEmail = strings.ToLower(strings.TrimSpace(a.AdminEmail))
	if a.AdminID == "" {
		a.AdminID = uuid.NewString()
	}
	if a.AdminCreatedAt.IsZero() {
		a.AdminCreatedAt = now
	}
	a.AdminUpdatedAt = now

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "admin_email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"admin_name", "admin_role", "admin_password_hash", "admin_is_active", "admin_updated_at",
		}),
	}).Create(a).Error
	if err != nil {
		return err
	}
	// on conflict the generated id was discarded; reload the stored row
	stored, err := s.FindAdminByEmail(ctx, a.AdminEmail)
	if err != nil {
		return err
	}
	*a = *stored
	return nil
}
