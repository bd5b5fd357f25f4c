package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chilume_backend/internals/configs"
	"chilume_backend/internals/docstore/memory"
	eventModel "chilume_backend/internals/features/events/model"
	"chilume_backend/internals/features/users/auth/identity"
	"chilume_backend/internals/metrics"
	"chilume_backend/internals/seeds/admins"
)

const (
	adminEmail  = "admin@chilume.fest"
	adminSecret = "fest-organizer-key"
)

type harness struct {
	app   *fiber.App
	store *memory.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.New()
	_, err := admins.SeedDefaultAdmin(context.Background(), store, adminEmail, "Organizer", adminSecret)
	require.NoError(t, err)

	cfg := configs.AppConfig{
		DocumentStore:     configs.StoreMemory,
		AdminDefaultEmail: adminEmail,
		SnapshotTTL:       time.Minute,
	}
	app := fiber.New()
	SetupRoutes(app, Deps{
		Config:   cfg,
		Store:    store,
		Identity: identity.NewLocalProvider(store, "test-secret", time.Hour),
		Metrics:  metrics.New(),
	})
	return &harness{app: app, store: store}
}

func (h *harness) addEvent(t *testing.T, name string, max int, fee int64) string {
	t.Helper()
	id, err := h.store.InsertEvent(context.Background(), &eventModel.EventModel{
		EventName:            name,
		EventType:            eventModel.EventTypeSports,
		EventDescription:     name + " for everyone",
		EventFee:             fee,
		EventDate:            time.Now().Add(72 * time.Hour),
		EventVenue:           "Main Ground",
		EventMaxParticipants: max,
		EventTeamSize:        1,
	})
	require.NoError(t, err)
	return id
}

type envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
	Data      json.RawMessage     `json:"data"`
}

func (h *harness) do(t *testing.T, method, path string, body any, token string) (*http.Response, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	} else {
		env.Data = raw
	}
	return resp, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func register(name, phone, eventID string) map[string]string {
	return map[string]string{
		"event_id": eventID,
		"name":     name,
		"college":  "RV College",
		"phone":    phone,
	}
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	resp, err := h.app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHomeFallsBackToSamples(t *testing.T) {
	h := newHarness(t)
	resp, env := h.do(t, "GET", "/api/public/home", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decode[struct {
		Featured []map[string]any `json:"featured"`
		Stats    struct {
			TotalEvents int `json:"total_events"`
		} `json:"stats"`
		Sample bool `json:"sample"`
	}](t, env.Data)
	assert.True(t, data.Sample)
	assert.Len(t, data.Featured, 3)
	assert.Equal(t, 5, data.Stats.TotalEvents)
}

func TestRegistrationFlow(t *testing.T) {
	h := newHarness(t)
	eventID := h.addEvent(t, "Chess Championship", 2, 200)

	t.Run("form preselects the event", func(t *testing.T) {
		resp, env := h.do(t, "GET", "/api/public/register?eventId="+eventID, nil, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := decode[struct {
			Events   []map[string]any `json:"events"`
			Selected struct {
				SlotsLabel string `json:"slots_label"`
			} `json:"selected_event"`
		}](t, env.Data)
		assert.Len(t, data.Events, 1)
		assert.Equal(t, "2 of 2", data.Selected.SlotsLabel)
	})

	t.Run("bad phone is rejected", func(t *testing.T) {
		resp, env := h.do(t, "POST", "/api/public/registrations", register("Asha", "12345", eventID), "")
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, env.Errors, "phone")
	})

	t.Run("unknown event", func(t *testing.T) {
		resp, _ := h.do(t, "POST", "/api/public/registrations", register("Asha", "1111111111", "missing"), "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("fills up then rejects", func(t *testing.T) {
		resp, env := h.do(t, "POST", "/api/public/registrations", register("Asha", "1111111111", eventID), "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		created := decode[map[string]string](t, env.Data)
		assert.NotEmpty(t, created["participant_id"])
		assert.Equal(t, "/registration-success?eventId="+eventID, created["redirect_to"])

		resp, env = h.do(t, "POST", "/api/public/registrations", register("Asha Again", "1111111111", eventID), "")
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "ALREADY_REGISTERED", env.ErrorCode)

		resp, _ = h.do(t, "POST", "/api/public/registrations", register("Bala", "2222222222", eventID), "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp, env = h.do(t, "POST", "/api/public/registrations", register("Chitra", "3333333333", eventID), "")
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "EVENT_FULL", env.ErrorCode)
	})

	t.Run("detail reflects the roster", func(t *testing.T) {
		resp, env := h.do(t, "GET", "/api/public/events/"+eventID, nil, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := decode[struct {
			Event map[string]any `json:"event"`
		}](t, env.Data)
		assert.Equal(t, float64(2), data.Event["registered_count"])
		assert.Equal(t, true, data.Event["is_full"])
		assert.NotContains(t, data.Event, "event_participants")
	})

	t.Run("success page", func(t *testing.T) {
		resp, _ := h.do(t, "GET", "/api/public/registration-success?eventId="+eventID, nil, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp, _ = h.do(t, "GET", "/api/public/registration-success?eventId=nope", nil, "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("listing filters", func(t *testing.T) {
		resp, env := h.do(t, "GET", "/api/public/events?type=cultural", nil, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := decode[struct {
			Events []map[string]any `json:"events"`
			Total  int              `json:"total"`
		}](t, env.Data)
		assert.Equal(t, 0, data.Total)

		_, env = h.do(t, "GET", "/api/public/events?q=CHESS", nil, "")
		data = decode[struct {
			Events []map[string]any `json:"events"`
			Total  int              `json:"total"`
		}](t, env.Data)
		assert.Equal(t, 1, data.Total)
	})

	resp, env := h.do(t, "GET", "/metrics", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `chilume_registrations_total{result="ok"} 2`)
	assert.Contains(t, string(env.Data), `chilume_registrations_total{result="capacity"} 1`)
}

func login(t *testing.T, h *harness) string {
	t.Helper()
	resp, env := h.do(t, "POST", "/api/auth/login", map[string]string{"password": adminSecret}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
	data := decode[struct {
		AccessToken string `json:"access_token"`
	}](t, env.Data)
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func TestAuth(t *testing.T) {
	h := newHarness(t)

	t.Run("admin routes need a token", func(t *testing.T) {
		resp, env := h.do(t, "GET", "/api/a/dashboard", nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, string(identity.CodeMissingToken), env.ErrorCode)
	})

	t.Run("admin guard stays inside its segment", func(t *testing.T) {
		tests := []struct {
			path string
			want int
		}{
			{"/api/auth/unknown", fiber.StatusNotFound},
			{"/api/abc", fiber.StatusNotFound},
			{"/api/a", fiber.StatusUnauthorized},
			{"/api/a/nothing-here", fiber.StatusUnauthorized},
			{"/API/A/dashboard", fiber.StatusUnauthorized},
		}
		for _, tt := range tests {
			resp, _ := h.do(t, "GET", tt.path, nil, "")
			assert.Equal(t, tt.want, resp.StatusCode, tt.path)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		resp, env := h.do(t, "POST", "/api/auth/login", map[string]string{"password": "nope"}, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, string(identity.CodeIncorrectPassword), env.ErrorCode)
	})

	t.Run("unknown admin", func(t *testing.T) {
		resp, env := h.do(t, "POST", "/api/auth/login",
			map[string]string{"email": "ghost@chilume.fest", "password": adminSecret}, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, string(identity.CodeUserNotFound), env.ErrorCode)
	})

	t.Run("login, me, logout", func(t *testing.T) {
		token := login(t, h)

		resp, env := h.do(t, "GET", "/api/auth/me", nil, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		me := decode[struct {
			Admin map[string]any `json:"admin"`
		}](t, env.Data)
		assert.Equal(t, adminEmail, me.Admin["admin_email"])
		assert.NotContains(t, me.Admin, "admin_password_hash")

		resp, _ = h.do(t, "POST", "/api/auth/logout", nil, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, env = h.do(t, "GET", "/api/a/dashboard", nil, token)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, string(identity.CodeTokenRevoked), env.ErrorCode)
	})
}

func TestAdminFlow(t *testing.T) {
	h := newHarness(t)
	token := login(t, h)

	resp, env := h.do(t, "POST", "/api/a/events", map[string]any{
		"event_name":             "Badminton Doubles",
		"event_type":             "sports",
		"event_description":      "Doubles knockout",
		"event_fee":              300,
		"event_date":             time.Now().Add(96 * time.Hour).UTC().Format(time.RFC3339),
		"event_venue":            "Indoor Court",
		"event_max_participants": 8,
		"event_team_size":        2,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	created := decode[map[string]any](t, env.Data)
	eventID, _ := created["event_id"].(string)
	require.NotEmpty(t, eventID)
	assert.Equal(t, "2 members", created["team_size_label"])

	resp, env = h.do(t, "POST", "/api/a/events", map[string]any{"event_name": "x"}, token)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "event_type")

	resp, env = h.do(t, "POST", "/api/public/registrations", register("Deepa", "4444444444", eventID), "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
	participantID := decode[map[string]string](t, env.Data)["participant_id"]

	t.Run("update event", func(t *testing.T) {
		resp, env := h.do(t, "PATCH", "/api/a/events/"+eventID, map[string]any{"event_venue": "Court 2"}, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
		assert.Equal(t, "Court 2", decode[map[string]any](t, env.Data)["event_venue"])

		resp, _ = h.do(t, "PATCH", "/api/a/events/missing", map[string]any{"event_venue": "x"}, token)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("patched event stays reachable", func(t *testing.T) {
		// the path buffer is reused by the next request
		resp, _ := h.do(t, "GET", "/api/public/events?q=zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", nil, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		stored, err := h.store.GetEvent(context.Background(), eventID)
		require.NoError(t, err)
		assert.Equal(t, "Court 2", stored.EventVenue)

		resp, env := h.do(t, "POST", "/api/public/registrations", register("Esha", "5555555555", eventID), "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)

		resp, env = h.do(t, "GET", "/api/public/events/"+eventID, nil, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := decode[struct {
			Event map[string]any `json:"event"`
		}](t, env.Data)
		assert.Equal(t, float64(2), data.Event["registered_count"])
		assert.Equal(t, "Court 2", data.Event["event_venue"])
	})

	t.Run("participants list", func(t *testing.T) {
		resp, env := h.do(t, "GET", "/api/a/participants?event_id="+eventID, nil, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		list := decode[[]map[string]any](t, env.Data)
		require.Len(t, list, 2)
		phones := []any{list[0]["participant_phone"], list[1]["participant_phone"]}
		assert.ElementsMatch(t, []any{"4444444444", "5555555555"}, phones)
	})

	t.Run("winners", func(t *testing.T) {
		resp, env := h.do(t, "PUT", "/api/a/events/"+eventID+"/winners",
			map[string]any{"participant_ids": []string{"not-on-roster"}}, token)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, env.Errors, "participant_ids")

		resp, env = h.do(t, "PUT", "/api/a/events/"+eventID+"/winners",
			map[string]any{"participant_ids": []string{participantID}}, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)
		winners := decode[struct {
			Winners []map[string]any `json:"event_winners"`
		}](t, env.Data)
		require.Len(t, winners.Winners, 1)
		assert.Equal(t, "Deepa", winners.Winners[0]["name"])
	})

	t.Run("roster csv", func(t *testing.T) {
		resp, env := h.do(t, "GET", "/api/a/events/"+eventID+"/roster.csv", nil, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "badminton-doubles-roster.csv")
		assert.Contains(t, string(env.Data), "4444444444")
	})

	t.Run("expenses and dashboard", func(t *testing.T) {
		resp, env := h.do(t, "POST", "/api/a/expenses", map[string]any{
			"expense_title":    "Shuttlecocks",
			"expense_amount":   120,
			"expense_category": "Equipment",
			"expense_date":     time.Now().UTC().Format(time.RFC3339),
		}, token)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)
		exp := decode[map[string]any](t, env.Data)
		assert.Equal(t, adminEmail, exp["expense_added_by"])
		assert.Equal(t, "equipment", exp["expense_category"])

		resp, env = h.do(t, "POST", "/api/a/expenses", map[string]any{"expense_title": "Nothing", "expense_amount": 0}, token)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, env.Errors, "expense_amount")

		resp, env = h.do(t, "GET", "/api/a/expenses", nil, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(120), decode[map[string]any](t, env.Data)["total"])

		resp, env = h.do(t, "GET", "/api/a/dashboard", nil, token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		dash := decode[map[string]any](t, env.Data)
		assert.Equal(t, float64(1), dash["total_events"])
		assert.Equal(t, float64(2), dash["total_participants"])
		assert.Equal(t, float64(600), dash["funds_collected"])
		assert.Equal(t, float64(120), dash["total_expenses"])
		assert.Equal(t, float64(480), dash["net_balance"])
	})
}
