package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/docstore/memory"
	eventModel "chilume_backend/internals/features/events/model"
	eventService "chilume_backend/internals/features/events/service"
	participantModel "chilume_backend/internals/features/participants/model"
)

type harness struct {
	store   *memory.Store
	catalog *eventService.Catalog
	svc     *Service
	eventID string
}

func newHarness(t testing.TB, max int, opts ...Option) harness {
	t.Helper()
	store := memory.New()
	id, err := store.InsertEvent(context.Background(), &eventModel.EventModel{
		EventName:            "E1",
		EventType:            eventModel.EventTypeSports,
		EventFee:             100,
		EventMaxParticipants: max,
		EventTeamSize:        1,
	})
	require.NoError(t, err)
	catalog := eventService.NewCatalog(store, time.Minute)
	return harness{store: store, catalog: catalog, svc: NewService(catalog, store, store, opts...), eventID: id}
}

func info(name, phone string) ParticipantInfo {
	return ParticipantInfo{Name: name, College: "City College", Phone: phone}
}

func (h harness) roster(t testing.TB) []eventModel.ParticipantSummary {
	t.Helper()
	ev, err := h.store.GetEvent(context.Background(), h.eventID)
	require.NoError(t, err)
	return ev.EventParticipants
}

func TestRegisterScenarioE1(t *testing.T) {
	h := newHarness(t, 2)
	ctx := context.Background()

	idA, err := h.svc.Register(ctx, h.eventID, info("A", "1111111111"))
	require.NoError(t, err)
	assert.Len(t, h.roster(t), 1)

	_, err = h.svc.Register(ctx, h.eventID, info("B", "2222222222"))
	require.NoError(t, err)
	assert.Len(t, h.roster(t), 2)

	_, err = h.svc.Register(ctx, h.eventID, info("C", "3333333333"))
	assert.ErrorIs(t, err, ErrCapacity)
	assert.Len(t, h.roster(t), 2)

	p, err := h.store.GetParticipant(ctx, idA)
	require.NoError(t, err)
	assert.Equal(t, []string{h.eventID}, []string(p.ParticipantEventIDs))
	assert.Nil(t, p.ParticipantEmail)

	participants, err := h.store.ListParticipants(ctx)
	require.NoError(t, err)
	assert.Len(t, participants, 2)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	h := newHarness(t, 2)
	ctx := context.Background()

	_, err := h.svc.Register(ctx, h.eventID, info("A", "1111111111"))
	require.NoError(t, err)

	_, err = h.svc.Register(ctx, h.eventID, ParticipantInfo{
		Name: "Someone Else", College: "Other College", Phone: " 1111111111 ", Email: "x@y.io",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Len(t, h.roster(t), 1)
}

func TestRegisterWritesTrimmedRecord(t *testing.T) {
	fixed := time.Date(2026, 3, 10, 8, 30, 0, 0, time.FixedZone("IST", 19800))
	h := newHarness(t, 5, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	id, err := h.svc.Register(ctx, " "+h.eventID+" ", ParticipantInfo{
		Name: "  Asha ", College: " City College ", Phone: "9876543210", Email: " asha@example.com ",
	})
	require.NoError(t, err)

	p, err := h.store.GetParticipant(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.ParticipantName)
	assert.Equal(t, "City College", p.ParticipantCollege)
	require.NotNil(t, p.ParticipantEmail)
	assert.Equal(t, "asha@example.com", *p.ParticipantEmail)
	assert.Equal(t, fixed.UTC(), p.ParticipantRegisteredAt)

	roster := h.roster(t)
	require.Len(t, roster, 1)
	assert.Equal(t, eventModel.ParticipantSummary{
		ID: id, Name: "Asha", College: "City College", Phone: "9876543210", RegisteredAt: fixed.UTC(),
	}, roster[0])

	ev, err := h.catalog.Snapshot(ctx, h.eventID)
	require.NoError(t, err)
	assert.Len(t, ev.EventParticipants, 1)
	assert.Equal(t, fixed.UTC(), ev.EventUpdatedAt)
}

func TestRegisterUnknownEvent(t *testing.T) {
	h := newHarness(t, 2)
	_, err := h.svc.Register(context.Background(), "no-such-event", info("A", "1111111111"))
	assert.ErrorIs(t, err, ErrNotFound)
}

// untouchable fails the test on any store access
type untouchable struct{ t *testing.T }

func (u untouchable) Snapshot(context.Context, string) (*eventModel.EventModel, error) {
	u.t.Fatal("snapshot read during validation")
	return nil, nil
}
func (u untouchable) Refresh(*eventModel.EventModel) { u.t.Fatal("refresh during validation") }
func (u untouchable) Invalidate(string)              { u.t.Fatal("invalidate during validation") }

func TestValidationNeverTouchesStore(t *testing.T) {
	svc := NewService(untouchable{t}, nil, nil)

	tests := []struct {
		name    string
		eventID string
		in      ParticipantInfo
		field   string
		reason  string
	}{
		{"short phone", "ev", info("A", "12345"), "phone", ReasonBadPhone},
		{"missing name", "ev", ParticipantInfo{College: "C", Phone: "1111111111"}, "name", ReasonMissing},
		{"blank college", "ev", ParticipantInfo{Name: "A", College: "   ", Phone: "1111111111"}, "college", ReasonMissing},
		{"missing phone", "ev", ParticipantInfo{Name: "A", College: "C"}, "phone", ReasonMissing},
		{"missing event", " ", info("A", "1111111111"), "event_id", ReasonMissing},
		{"letters in phone", "ev", info("A", "11111o1111"), "phone", ReasonBadPhone},
		{"bad email", "ev", ParticipantInfo{Name: "A", College: "C", Phone: "1111111111", Email: "a@b"}, "email", ReasonBadEmail},
		{"missing field beats bad phone", "ev", ParticipantInfo{College: "C", Phone: "12"}, "name", ReasonMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.eventID, tt.in)
			require.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.reason, ve.Reason)
		})
	}
}

type flakySnapshots struct{ err error }

func (f flakySnapshots) Snapshot(context.Context, string) (*eventModel.EventModel, error) {
	return nil, f.err
}
func (flakySnapshots) Refresh(*eventModel.EventModel) {}
func (flakySnapshots) Invalidate(string)              {}

func TestRegisterNetworkErrorBeforeWrite(t *testing.T) {
	cause := errors.New("deadline exceeded")
	svc := NewService(flakySnapshots{err: cause}, nil, nil)

	_, err := svc.Register(context.Background(), "ev", info("A", "1111111111"))
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ResultNetwork, Result(err))
}

type failingInsert struct{ docstore.ParticipantStore }

func (failingInsert) InsertParticipant(context.Context, *participantModel.ParticipantModel) (string, error) {
	return "", errors.New("connection reset")
}

func TestRegisterInsertFailureWritesNothing(t *testing.T) {
	h := newHarness(t, 2)
	svc := NewService(h.catalog, failingInsert{h.store}, h.store)

	id, err := svc.Register(context.Background(), h.eventID, info("A", "1111111111"))
	assert.Empty(t, id)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "insert participant", ne.Op)
	assert.Empty(t, h.roster(t))
}

type failingAppend struct {
	docstore.EventStore
	err error
}

func (f failingAppend) AppendParticipant(context.Context, string, eventModel.ParticipantSummary, time.Time) (*eventModel.EventModel, error) {
	return nil, f.err
}

func TestRegisterPartialFailure(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		cause error
	}{
		{"lost capacity race", docstore.ErrRosterFull, ErrCapacity},
		{"lost duplicate race", docstore.ErrDuplicatePhone, ErrDuplicate},
		{"store down", errors.New("socket closed"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 2)
			svc := NewService(h.catalog, h.store, failingAppend{EventStore: h.store, err: tt.err})

			id, err := svc.Register(context.Background(), h.eventID, info("A", "1111111111"))
			require.NotEmpty(t, id)

			var pf *PartialFailureError
			require.True(t, errors.As(err, &pf))
			assert.Equal(t, id, pf.ParticipantID)
			assert.Equal(t, ResultPartialFailure, Result(err))
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			} else {
				var ne *NetworkError
				assert.True(t, errors.As(err, &ne))
			}

			// the participant record stays, the roster does not change
			_, gerr := h.store.GetParticipant(context.Background(), id)
			assert.NoError(t, gerr)
			assert.Empty(t, h.roster(t))
		})
	}
}

func TestRegisterConcurrentWithinCapacity(t *testing.T) {
	const n = 30
	h := newHarness(t, n)

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.svc.Register(context.Background(), h.eventID, info(fmt.Sprint("P", i), fmt.Sprintf("90000000%02d", i)))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	roster := h.roster(t)
	assert.Len(t, roster, n)
	phones := map[string]bool{}
	for _, p := range roster {
		phones[p.Phone] = true
	}
	assert.Len(t, phones, n)
}

func TestRegisterConcurrentOverCapacity(t *testing.T) {
	const max, n = 5, 20
	h := newHarness(t, max)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := h.svc.Register(context.Background(), h.eventID, info("P", fmt.Sprintf("80000000%02d", i)))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			assert.ErrorIs(t, err, ErrCapacity)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, max, ok)
	assert.Len(t, h.roster(t), max)
}

type recorder struct {
	mu      sync.Mutex
	results []string
}

func (r *recorder) ObserveRegistration(result string) {
	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()
}

type notifier struct{ got chan participantModel.ParticipantModel }

func (n notifier) RegistrationConfirmed(_ context.Context, _ eventModel.EventModel, p participantModel.ParticipantModel) error {
	n.got <- p
	return nil
}

func TestRegisterRecordsAndNotifies(t *testing.T) {
	rec := &recorder{}
	n := notifier{got: make(chan participantModel.ParticipantModel, 1)}
	h := newHarness(t, 1, WithRecorder(rec), WithNotifier(n))
	ctx := context.Background()

	id, err := h.svc.Register(ctx, h.eventID, info("A", "1111111111"))
	require.NoError(t, err)
	_, _ = h.svc.Register(ctx, h.eventID, info("B", "2222222222"))
	_, _ = h.svc.Register(ctx, h.eventID, info("C", "123"))

	select {
	case p := <-n.got:
		assert.Equal(t, id, p.ParticipantID)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
	assert.Equal(t, []string{ResultOK, ResultCapacity, ResultValidation}, rec.results)
}

func TestValidPhoneProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.OneOf(
			rapid.StringMatching(`[0-9]{10}`),
			rapid.StringMatching(`[0-9]{0,14}`),
			rapid.String(),
		).Draw(t, "phone")

		want := len(s) == 10
		for i := 0; i < len(s) && want; i++ {
			want = s[i] >= '0' && s[i] <= '9'
		}
		if got := ValidPhone(s); got != want {
			t.Fatalf("ValidPhone(%q) = %v, want %v", s, got, want)
		}
	})
}

func TestRosterInvariantProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		max := rapid.IntRange(1, 6).Draw(rt, "max")
		phones := rapid.SliceOfN(
			rapid.SampledFrom([]string{"1111111111", "2222222222", "3333333333", "4444444444", "5555555555", "6666666666", "7777777777", "8888888888"}),
			0, 15,
		).Draw(rt, "phones")

		h := newHarness(t, max)
		distinct := map[string]bool{}
		for _, phone := range phones {
			_, err := h.svc.Register(context.Background(), h.eventID, info("P", phone))
			switch {
			case err == nil:
				distinct[phone] = true
			case errors.Is(err, ErrDuplicate):
				if !distinct[phone] {
					rt.Fatalf("duplicate reported for unseen phone %s", phone)
				}
			case errors.Is(err, ErrCapacity):
				if len(distinct) < max {
					rt.Fatalf("capacity reported with %d/%d", len(distinct), max)
				}
			default:
				rt.Fatalf("unexpected error: %v", err)
			}
		}

		roster := h.roster(t)
		if len(roster) > max {
			rt.Fatalf("roster %d exceeds max %d", len(roster), max)
		}
		if len(roster) != len(distinct) {
			rt.Fatalf("roster %d, accepted %d", len(roster), len(distinct))
		}
	})
}
