package controller

import (
	"encoding/csv"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"chilume_backend/internals/docstore"
	helper "chilume_backend/internals/helpers"
	"chilume_backend/internals/logger"
)

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// GET /api/a/events/:id/roster.csv
func (ctrl *EventAdminController) ExportRosterCSV(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	ev, err := ctrl.Store.GetEvent(c.UserContext(), id)
	if errors.Is(err, docstore.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	if err != nil {
		logger.LogE("roster export failed", "event_id", id, "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to load roster")
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"No", "Participant ID", "Name", "College", "Phone", "Registered At"})
	for i, p := range ev.EventParticipants {
		_ = w.Write([]string{
			fmt.Sprint(i + 1),
			p.ID,
			p.Name,
			p.College,
			p.Phone,
			p.RegisteredAt.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build CSV")
	}

	name := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(ev.EventName), "-"), "-")
	if name == "" {
		name = "event"
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-roster.csv"`, name))
	return c.SendString(b.String())
}
