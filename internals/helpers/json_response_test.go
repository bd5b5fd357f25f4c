package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return JsonOK(c, "", fiber.Map{"a": 1}) })
	app.Get("/created", func(c *fiber.Ctx) error { return JsonCreated(c, "event created", nil) })
	app.Get("/full", func(c *fiber.Ctx) error {
		return JsonErrorCode(c, fiber.StatusConflict, "EVENT_FULL", "event is full", nil)
	})
	app.Get("/missing", func(c *fiber.Ctx) error { return JsonError(c, fiber.StatusNotFound, "event not found") })
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return JsonValidationError(c, map[string][]string{"phone": {"bad phone"}})
	})

	status, body := decode(t, app, "/ok")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])

	status, body = decode(t, app, "/created")
	assert.Equal(t, 201, status)
	assert.Equal(t, "event created", body["message"])

	status, body = decode(t, app, "/full")
	assert.Equal(t, 409, status)
	assert.Equal(t, "EVENT_FULL", body["error_code"])

	status, body = decode(t, app, "/missing")
	assert.Equal(t, 404, status)
	assert.Equal(t, "NOT_FOUND", body["error_code"])

	status, body = decode(t, app, "/invalid")
	assert.Equal(t, 422, status)
	assert.Equal(t, map[string]any{"phone": []any{"bad phone"}}, body["errors"])
}

func TestResolvePagingAndPageOf(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p := ResolvePaging(c, 2, 50)
		items, pg := PageOf([]int{1, 2, 3, 4, 5}, p)
		return JsonList(c, "", items, &pg)
	})

	_, body := decode(t, app, "/?page=3")
	assert.Equal(t, []any{float64(5)}, body["data"])
	pg := body["pagination"].(map[string]any)
	assert.Equal(t, float64(3), pg["total_pages"])
	assert.Equal(t, false, pg["has_next"])
	assert.Equal(t, true, pg["has_prev"])

	_, body = decode(t, app, "/?page=9&limit=1000")
	assert.Equal(t, []any{}, body["data"])
}

type expenseInput struct {
	Title  string `json:"title" validate:"required"`
	Amount int64  `json:"amount" validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(expenseInput{Title: "Lights", Amount: 10}))

	errs := ValidateStruct(expenseInput{})
	assert.Equal(t, []string{"is required"}, errs["title"])
	assert.Equal(t, []string{"must be greater than 0"}, errs["amount"])
}

func TestFiberErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FiberErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/boom", func(c *fiber.Ctx) error { return io.ErrUnexpectedEOF })

	status, body := decode(t, app, "/nowhere")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["error_code"])
	assert.Equal(t, false, body["success"])

	status, body = decode(t, app, "/teapot")
	assert.Equal(t, fiber.StatusTeapot, status)
	assert.Equal(t, "short and stout", body["message"])

	status, body = decode(t, app, "/boom")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body["error_code"])
}
