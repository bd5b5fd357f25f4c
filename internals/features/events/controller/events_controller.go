package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/events/dto"
	"chilume_backend/internals/features/events/service"
	helper "chilume_backend/internals/helpers"
	"chilume_backend/internals/logger"
)

type EventController struct {
	Catalog *service.Catalog
}

func NewEventController(catalog *service.Catalog) *EventController {
	return &EventController{Catalog: catalog}
}

// GET /api/public/events?q=&type=
func (ctrl *EventController) ListEvents(c *fiber.Ctx) error {
	filter := service.Filter{Query: c.Query("q"), Type: c.Query("type", service.TypeAll)}.Normalize()

	events, sample := ctrl.Catalog.ListForDisplay(c.UserContext())
	filtered := filter.Apply(events)

	return helper.JsonOK(c, "events fetched", fiber.Map{
		"events": dto.ToEventResponseList(filtered),
		"filters": fiber.Map{
			"q":    filter.Query,
			"type": filter.Type,
		},
		"total":  len(filtered),
		"sample": sample,
	})
}

// GET /api/public/events/:id
func (ctrl *EventController) GetEventByID(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	ev, sample, err := ctrl.Catalog.Detail(c.UserContext(), id)
	if errors.Is(err, docstore.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	if err != nil {
		logger.LogE("event detail failed", "event_id", id, "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to load event details")
	}

	return helper.JsonOK(c, "event fetched", fiber.Map{
		"event": dto.EventDetailResponse{
			EventResponse: dto.ToEventResponse(ev),
			Rules:         service.RulesFor(ev),
		},
		"sample": sample,
	})
}

func now() time.Time { return time.Now().UTC() }
