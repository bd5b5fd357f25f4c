package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	eventDTO "chilume_backend/internals/features/events/dto"
	eventService "chilume_backend/internals/features/events/service"
	"chilume_backend/internals/features/registrations/dto"
	"chilume_backend/internals/features/registrations/service"
	helper "chilume_backend/internals/helpers"
	"chilume_backend/internals/logger"
)

type RegistrationController struct {
	Service *service.Service
	Catalog *eventService.Catalog
}

func NewRegistrationController(svc *service.Service, catalog *eventService.Catalog) *RegistrationController {
	return &RegistrationController{Service: svc, Catalog: catalog}
}

// GET /api/public/register?eventId=
func (ctrl *RegistrationController) FormContext(c *fiber.Ctx) error {
	ctx := c.UserContext()
	events, sample := ctrl.Catalog.ListForDisplay(ctx)

	resp := dto.FormContextResponse{
		Events: dto.ToEventOptions(events),
		Sample: sample,
	}

	if id := strings.TrimSpace(c.Query("eventId")); id != "" {
		ev, _, err := ctrl.Catalog.Detail(ctx, id)
		switch {
		case err == nil:
			resp.Selected = dto.ToSelectedEvent(ev)
		case !errors.Is(err, docstore.ErrNotFound):
			logger.LogW("preselected event unavailable", "event_id", id, "error", err)
		}
	}

	return helper.JsonOK(c, "registration form", resp)
}

// POST /api/public/registrations
func (ctrl *RegistrationController) Submit(c *fiber.Ctx) error {
	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	id, err := ctrl.Service.Register(c.UserContext(), req.EventID, req.Info())
	if err != nil {
		return respondRegistrationError(c, err)
	}

	return helper.JsonCreated(c, "Registration successful!",
		dto.NewRegistrationResponse(id, strings.TrimSpace(req.EventID)))
}

// GET /api/public/registration-success?eventId=
func (ctrl *RegistrationController) Success(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Query("eventId"))
	if id == "" {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}

	ev, _, err := ctrl.Catalog.Detail(c.UserContext(), id)
	if errors.Is(err, docstore.ErrNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	}
	if err != nil {
		logger.LogE("success page event lookup failed", "event_id", id, "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to load event")
	}

	return helper.JsonOK(c, "registration confirmed", fiber.Map{
		"event": eventDTO.ToEventResponse(ev),
	})
}

func respondRegistrationError(c *fiber.Ctx, err error) error {
	var (
		ve      *service.ValidationError
		partial *service.PartialFailureError
		network *service.NetworkError
	)
	switch {
	case errors.As(err, &partial):
		return helper.JsonErrorCode(c, fiber.StatusInternalServerError, "PARTIAL_FAILURE",
			"Your details were saved but the registration could not be completed. Please contact the organizers.",
			fiber.Map{"participant_id": partial.ParticipantID})
	case errors.As(err, &ve):
		return helper.JsonValidationError(c, map[string][]string{ve.Field: {ve.Message()}})
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
	case errors.Is(err, service.ErrCapacity):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "EVENT_FULL",
			"Sorry, this event is already full", nil)
	case errors.Is(err, service.ErrDuplicate):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "ALREADY_REGISTERED",
			"You have already registered for this event with this phone number", nil)
	case errors.As(err, &network):
		logger.LogE("registration store failure", "op", network.Op, "error", network.Err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Registration failed. Please try again.")
	}
	logger.LogE("registration failed", "error", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Registration failed. Please try again.")
}
