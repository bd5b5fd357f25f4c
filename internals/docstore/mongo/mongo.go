// Package mongo is the MongoDB docstore. Each collection holds one document
// per record; rosters are embedded arrays on the event document.
package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/datatypes"

	"chilume_backend/internals/docstore"
	eventModel "chilume_backend/internals/features/events/model"
	expenseModel "chilume_backend/internals/features/expenses/model"
	participantModel "chilume_backend/internals/features/participants/model"
	adminModel "chilume_backend/internals/features/users/admins/model"
)

const (
	collEvents       = "events"
	collParticipants = "participants"
	collExpenses     = "expenses"
	collAdmins       = "admins"
)

type Store struct {
	db *mongo.Database
}

var _ docstore.Store = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.Collection(collAdmins).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "admin_email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.db.Collection(collEvents).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_type", Value: 1}},
	})
	return err
}

func (s *Store) Health(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docstore.ErrNotFound
	}
	return err
}

func after() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

/* ===============================
   Events
=================================*/

func (s *Store) ListEvents(ctx context.Context) ([]eventModel.EventModel, error) {
	cur, err := s.db.Collection(collEvents).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}, {Key: "event_created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []eventModel.EventModel{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	if err := s.db.Collection(collEvents).FindOne(ctx, bson.M{"_id": id}).Decode(&ev); err != nil {
		return nil, notFound(err)
	}
	return &ev, nil
}

func (s *Store) InsertEvent(ctx context.Context, ev *eventModel.EventModel) (string, error) {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	// $size in the append filter needs an array, never null
	if ev.EventParticipants == nil {
		ev.EventParticipants = datatypes.JSONSlice[eventModel.ParticipantSummary]{}
	}
	now := time.Now().UTC()
	if ev.EventCreatedAt.IsZero() {
		ev.EventCreatedAt = now
	}
	ev.EventUpdatedAt = now

	if _, err := s.db.Collection(collEvents).InsertOne(ctx, ev); err != nil {
		return "", err
	}
	return ev.EventID, nil
}

func patchSet(patch eventModel.EventPatch, at time.Time) bson.M {
	set := bson.M{"event_updated_at": at}
	if patch.Name != nil {
		set["event_name"] = *patch.Name
	}
	if patch.Type != nil {
		set["event_type"] = *patch.Type
	}
	if patch.Description != nil {
		set["event_description"] = *patch.Description
	}
	if patch.Fee != nil {
		set["event_fee"] = *patch.Fee
	}
	if patch.Date != nil {
		set["event_date"] = *patch.Date
	}
	if patch.Venue != nil {
		set["event_venue"] = *patch.Venue
	}
	if patch.MaxParticipants != nil {
		set["event_max_participants"] = *patch.MaxParticipants
	}
	if patch.TeamSize != nil {
		set["event_team_size"] = *patch.TeamSize
	}
	if patch.Rules != nil {
		set["event_rules"] = *patch.Rules
	}
	if patch.Winners != nil {
		set["event_winners"] = *patch.Winners
	}
	return set
}

func (s *Store) UpdateEvent(ctx context.Context, id string, patch eventModel.EventPatch, at time.Time) (*eventModel.EventModel, error) {
	var ev eventModel.EventModel
	err := s.db.Collection(collEvents).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patchSet(patch, at)}, after()).
		Decode(&ev)
	if err != nil {
		return nil, notFound(err)
	}
	return &ev, nil
}

// AppendParticipant pushes entry with a filter that only matches while the
// roster is below capacity and does not contain the phone yet.
func (s *Store) AppendParticipant(ctx context.Context, eventID string, entry eventModel.ParticipantSummary, at time.Time) (*eventModel.EventModel, error) {
	filter := bson.M{
		"_id":                      eventID,
		"event_participants.phone": bson.M{"$ne": entry.Phone},
		"$expr": bson.M{"$lt": bson.A{
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$event_participants", bson.A{}}}},
			"$event_max_participants",
		}},
	}
	update := bson.M{
		"$addToSet": bson.M{"event_participants": entry},
		"$set":      bson.M{"event_updated_at": at},
	}

	var ev eventModel.EventModel
	err := s.db.Collection(collEvents).FindOneAndUpdate(ctx, filter, update, after()).Decode(&ev)
	if err == nil {
		return &ev, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// the filter did not match; find out which condition failed
	current, gerr := s.GetEvent(ctx, eventID)
	if gerr != nil {
		return nil, gerr
	}
	return nil, appendRejection(current, entry.Phone)
}

// appendRejection names the failed append condition, capacity first.
func appendRejection(ev *eventModel.EventModel, phone string) error {
	if ev.IsFull() {
		return docstore.ErrRosterFull
	}
	if ev.HasPhone(phone) {
		return docstore.ErrDuplicatePhone
	}
	// the roster changed between the update and the read; report it as full
	return docstore.ErrRosterFull
}

/* ===============================
   Participants
=================================*/

func (s *Store) ListParticipants(ctx context.Context) ([]participantModel.ParticipantModel, error) {
	cur, err := s.db.Collection(collParticipants).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "participant_registered_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []participantModel.ParticipantModel{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetParticipant(ctx context.Context, id string) (*participantModel.ParticipantModel, error) {
	var p participantModel.ParticipantModel
	if err := s.db.Collection(collParticipants).FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) InsertParticipant(ctx context.Context, p *participantModel.ParticipantModel) (string, error) {
	if p.ParticipantID == "" {
		p.ParticipantID = uuid.NewString()
	}
	if _, err := s.db.Collection(collParticipants).InsertOne(ctx, p); err != nil {
		return "", err
	}
	return p.ParticipantID, nil
}

/* ===============================
   Expenses
=================================*/

func (s *Store) ListExpenses(ctx context.Context) ([]expenseModel.ExpenseModel, error) {
	cur, err := s.db.Collection(collExpenses).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "expense_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := []expenseModel.ExpenseModel{}
	if err := cur.All(ctx, &out); err != nil {
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
	if _, err := s.db.Collection(collExpenses).InsertOne(ctx, e); err != nil {
		return "", err
	}
	return e.ExpenseID, nil
}

/* ===============================
   Admins
=================================*/

func (s *Store) FindAdminByEmail(ctx context.Context, email string) (*adminModel.AdminModel, error) {
	var a adminModel.AdminModel
	err := s.db.Collection(collAdmins).
		FindOne(ctx, bson.M{"admin_email": strings.ToLower(strings.TrimSpace(email))}).
		Decode(&a)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *Store) UpsertAdmin(ctx context.Context, a *adminModel.AdminModel) error {
	now := time.Now().UTC()
	email := strings.ToLower(strings.TrimSpace(a.AdminEmail))
	id := a.AdminID
	if id == "" {
		id = uuid.NewString()
	}

	update := bson.M{
		"$set": bson.M{
			"admin_name":          a.AdminName,
			"admin_role":          a.AdminRole,
			"admin_password_hash": a.AdminPasswordHash,
			"admin_is_active":     a.AdminIsActive,
			"admin_updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"_id":              id,
			"admin_created_at": now,
		},
	}
	var stored adminModel.AdminModel
	err := s.db.Collection(collAdmins).FindOneAndUpdate(ctx,
		bson.M{"admin_email": email}, update,
		after().SetUpsert(true),
	).Decode(&stored)
	if err != nil {
		return err
	}
	*a = stored
	return nil
}
