package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/events/dto"
	"chilume_backend/internals/features/events/model"
	"chilume_backend/internals/features/events/service"
	helper "chilume_backend/internals/helpers"
	"chilume_backend/internals/logger"
)

type EventAdminController struct {
	Store   docstore.EventStore
	Catalog *service.Catalog
}

func NewEventAdminController(store docstore.EventStore, catalog *service.Catalog) *EventAdminController {
	return &EventAdminController{Store: store, Catalog: catalog}
}

// POST /api/a/events
func (ctrl *EventAdminController) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	ev := req.ToModel()
	if _, err := ctrl.Store.InsertEvent(c.UserContext(), ev); err != nil {
		logger.LogE("create event failed", "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to create event")
	}
	ctrl.Catalog.Refresh(ev)

	return helper.JsonCreated(c, "Event created", dto.ToEventAdminResponse(ev))
}

// PATCH /api/a/events/:id
func (ctrl *EventAdminController) UpdateEvent(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	patch := req.ToPatch()
	if patch.Empty() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	ev, err := ctrl.Store.UpdateEvent(c.UserContext(), id, patch, now())
	return ctrl.respondWrite(c, id, ev, err, "Event updated")
}

// PUT /api/a/events/:id/winners
func (ctrl *EventAdminController) SetWinners(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))

	var req dto.SetWinnersRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := helper.ValidateStruct(req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	ev, err := ctrl.Store.GetEvent(c.UserContext(), id)
	if err != nil {
		return ctrl.respondWrite(c, id, nil, err, "")
	}

	winners, missing := pickWinners(ev.EventParticipants, req.ParticipantIDs)
	if len(missing) > 0 {
		return helper.JsonValidationError(c, map[string][]string{
			"participant_ids": {"not on the roster: " + strings.Join(missing, ", ")},
		})
	}

	updated, err := ctrl.Store.UpdateEvent(c.UserContext(), id, model.EventPatch{Winners: &winners}, now())
	return ctrl.respondWrite(c, id, updated, err, "Winners updated")
}

func (ctrl *EventAdminController) respondWrite(c *fiber.Ctx, id string, ev *model.EventModel, err error, msg string) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	if err != nil {
		logger.LogE("event write failed", "event_id", id, "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to save event")
	}
	ctrl.Catalog.Refresh(ev)
	return helper.JsonUpdated(c, msg, dto.ToEventAdminResponse(ev))
}

// pickWinners keeps the requested order; repeated ids count once.
func pickWinners(roster []model.ParticipantSummary, ids []string) (winners []model.ParticipantSummary, missing []string) {
	byID := make(map[string]model.ParticipantSummary, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}
	seen := map[string]bool{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		seen[id] = true
		p, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		winners = append(winners, p)
	}
	return winners, missing
}
