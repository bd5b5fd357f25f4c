// Package storetest holds behaviour checks shared by every docstore backend.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chilume_backend/internals/docstore"
	eventModel "chilume_backend/internals/features/events/model"
	expenseModel "chilume_backend/internals/features/expenses/model"
	participantModel "chilume_backend/internals/features/participants/model"
	adminModel "chilume_backend/internals/features/users/admins/model"
)

// Opener returns an empty, migrated store.
type Opener func(t *testing.T) docstore.Store

func Run(t *testing.T, open Opener) {
	t.Run("event round trip", func(t *testing.T) { eventRoundTrip(t, open(t)) })
	t.Run("conditional append", func(t *testing.T) { conditionalAppend(t, open(t)) })
	t.Run("concurrent append", func(t *testing.T) { concurrentAppend(t, open(t)) })
	t.Run("update event", func(t *testing.T) { updateEvent(t, open(t)) })
	t.Run("participants", func(t *testing.T) { participants(t, open(t)) })
	t.Run("expenses", func(t *testing.T) { expenses(t, open(t)) })
	t.Run("admins", func(t *testing.T) { admins(t, open(t)) })
}

func newEvent(name string, max int) *eventModel.EventModel {
	return &eventModel.EventModel{
		EventName:            name,
		EventType:            eventModel.EventTypeSports,
		EventDescription:     name + " description",
		EventFee:             200,
		EventDate:            time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		EventVenue:           "Main Hall",
		EventMaxParticipants: max,
		EventTeamSize:        1,
	}
}

func summary(phone string) eventModel.ParticipantSummary {
	return eventModel.ParticipantSummary{
		ID:           uuid.NewString(),
		Name:         "Participant " + phone,
		College:      "City College",
		Phone:        phone,
		RegisteredAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func eventRoundTrip(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	id, err := s.InsertEvent(ctx, newEvent("Chess Championship", 32))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	ev, err := s.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Chess Championship", ev.EventName)
	assert.Equal(t, int64(200), ev.EventFee)
	assert.Empty(t, ev.EventParticipants)

	again, err := s.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ev.EventParticipants, again.EventParticipants)

	list, err := s.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.GetEvent(ctx, uuid.NewString())
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func conditionalAppend(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	id, err := s.InsertEvent(ctx, newEvent("Badminton Tournament", 2))
	require.NoError(t, err)
	at := time.Now().UTC().Truncate(time.Millisecond)

	ev, err := s.AppendParticipant(ctx, id, summary("1111111111"), at)
	require.NoError(t, err)
	assert.Len(t, ev.EventParticipants, 1)

	_, err = s.AppendParticipant(ctx, id, summary("1111111111"), at)
	assert.ErrorIs(t, err, docstore.ErrDuplicatePhone)

	_, err = s.AppendParticipant(ctx, id, summary("2222222222"), at)
	require.NoError(t, err)

	_, err = s.AppendParticipant(ctx, id, summary("3333333333"), at)
	assert.ErrorIs(t, err, docstore.ErrRosterFull)

	// a full roster wins over a repeated phone
	_, err = s.AppendParticipant(ctx, id, summary("1111111111"), at)
	assert.ErrorIs(t, err, docstore.ErrRosterFull)

	_, err = s.AppendParticipant(ctx, uuid.NewString(), summary("4444444444"), at)
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	stored, err := s.GetEvent(ctx, id)
	require.NoError(t, err)
	require.Len(t, stored.EventParticipants, 2)
	assert.Equal(t, "1111111111", stored.EventParticipants[0].Phone)
	assert.Equal(t, "2222222222", stored.EventParticipants[1].Phone)
}

func concurrentAppend(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	const max, attempts = 8, 20
	id, err := s.InsertEvent(ctx, newEvent("Table Tennis Tournament", max))
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.AppendParticipant(ctx, id, summary(fmt.Sprintf("70000000%02d", i)), time.Now().UTC())
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, docstore.ErrRosterFull)
		}(i)
	}
	wg.Wait()

	ev, err := s.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, max, ok)
	assert.Len(t, ev.EventParticipants, max)

	seen := map[string]bool{}
	for _, p := range ev.EventParticipants {
		assert.False(t, seen[p.Phone], "phone %s appears twice", p.Phone)
		seen[p.Phone] = true
	}
}

func updateEvent(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	id, err := s.InsertEvent(ctx, newEvent("Singing Competition", 30))
	require.NoError(t, err)

	venue := "Music Hall"
	winners := []eventModel.ParticipantSummary{summary("5555555555")}
	at := time.Now().UTC().Truncate(time.Millisecond)
	ev, err := s.UpdateEvent(ctx, id, eventModel.EventPatch{Venue: &venue, Winners: &winners}, at)
	require.NoError(t, err)
	assert.Equal(t, "Music Hall", ev.EventVenue)
	assert.Equal(t, "Singing Competition", ev.EventName)
	assert.Len(t, ev.EventWinners, 1)

	_, err = s.UpdateEvent(ctx, uuid.NewString(), eventModel.EventPatch{Venue: &venue}, at)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func participants(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	email := "asha@example.com"
	id, err := s.InsertParticipant(ctx, &participantModel.ParticipantModel{
		ParticipantName:         "Asha",
		ParticipantCollege:      "City College",
		ParticipantPhone:        "9876543210",
		ParticipantEmail:        &email,
		ParticipantEventIDs:     []string{uuid.NewString()},
		ParticipantRegisteredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	p, err := s.GetParticipant(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.ParticipantName)
	require.NotNil(t, p.ParticipantEmail)
	assert.Equal(t, email, *p.ParticipantEmail)
	assert.Len(t, p.ParticipantEventIDs, 1)

	list, err := s.ListParticipants(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.GetParticipant(ctx, uuid.NewString())
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func expenses(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	_, err := s.InsertExpense(ctx, &expenseModel.ExpenseModel{
		ExpenseTitle:    "Stage lights",
		ExpenseAmount:   1500,
		ExpenseCategory: "logistics",
		ExpenseDate:     time.Now().UTC(),
		ExpenseAddedBy:  "admin@chilume.fest",
	})
	require.NoError(t, err)

	list, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1500), list[0].ExpenseAmount)
}

func admins(t *testing.T, s docstore.Store) {
	ctx := context.Background()
	a := &adminModel.AdminModel{
		AdminName:         "Fest Admin",
		AdminEmail:        "admin@chilume.fest",
		AdminRole:         adminModel.RoleAdmin,
		AdminPasswordHash: "hash",
		AdminIsActive:     true,
	}
	require.NoError(t, s.UpsertAdmin(ctx, a))
	require.NotEmpty(t, a.AdminID)

	got, err := s.FindAdminByEmail(ctx, "ADMIN@chilume.fest")
	require.NoError(t, err)
	assert.Equal(t, a.AdminID, got.AdminID)
	assert.True(t, got.AdminIsActive)

	_, err = s.FindAdminByEmail(ctx, "ghost@chilume.fest")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}
