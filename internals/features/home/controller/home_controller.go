package controller

import (
	"github.com/gofiber/fiber/v2"

	eventDTO "chilume_backend/internals/features/events/dto"
	"chilume_backend/internals/features/home/service"
	helper "chilume_backend/internals/helpers"
)

type HomeController struct {
	Service *service.Service
}

func NewHomeController(svc *service.Service) *HomeController {
	return &HomeController{Service: svc}
}

// GET /api/public/home
func (ctrl *HomeController) GetHome(c *fiber.Ctx) error {
	home := ctrl.Service.Load(c.UserContext())

	// Public winner cards carry name and college only.
	type winnerCard struct {
		Place   string `json:"place"`
		Name    string `json:"name"`
		College string `json:"college"`
	}
	type eventWinners struct {
		EventID    string       `json:"event_id"`
		EventName  string       `json:"event_name"`
		EventType  string       `json:"event_type"`
		Placements []winnerCard `json:"placements"`
	}
	winners := make([]eventWinners, 0, len(home.Winners))
	for _, ew := range home.Winners {
		row := eventWinners{EventID: ew.EventID, EventName: ew.EventName, EventType: ew.EventType}
		for _, p := range ew.Placements {
			row.Placements = append(row.Placements, winnerCard{
				Place:   p.Place,
				Name:    p.Winner.Name,
				College: p.Winner.College,
			})
		}
		winners = append(winners, row)
	}

	return helper.JsonOK(c, "home fetched", fiber.Map{
		"featured": eventDTO.ToEventResponseList(home.Featured),
		"stats":    home.Stats,
		"winners":  winners,
		"sample":   home.Sample,
	})
}
