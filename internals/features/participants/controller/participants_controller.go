package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/participants/dto"
	"chilume_backend/internals/features/participants/model"
	helper "chilume_backend/internals/helpers"
	"chilume_backend/internals/logger"
)

type ParticipantController struct {
	Store docstore.ParticipantStore
}

func NewParticipantController(store docstore.ParticipantStore) *ParticipantController {
	return &ParticipantController{Store: store}
}

// GET /api/a/participants?event_id=&q=&page=&per_page=
func (ctrl *ParticipantController) ListParticipants(c *fiber.Ctx) error {
	list, err := ctrl.Store.ListParticipants(c.UserContext())
	if err != nil {
		logger.LogE("list participants failed", "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to load participants")
	}

	eventID := strings.TrimSpace(c.Query("event_id"))
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	filtered := make([]model.ParticipantModel, 0, len(list))
	for _, p := range list {
		if eventID != "" && !contains(p.ParticipantEventIDs, eventID) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.ParticipantName), q) &&
			!strings.Contains(strings.ToLower(p.ParticipantCollege), q) &&
			!strings.Contains(p.ParticipantPhone, q) {
			continue
		}
		filtered = append(filtered, p)
	}

	page, pagination := helper.PageOf(filtered, helper.ResolvePaging(c, 20, 100))
	return helper.JsonList(c, "participants fetched", dto.ToParticipantResponseList(page), &pagination)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
