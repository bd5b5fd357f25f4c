package controller

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	eventService "chilume_backend/internals/features/events/service"
	expenseDTO "chilume_backend/internals/features/expenses/dto"
	homeService "chilume_backend/internals/features/home/service"
	helper "chilume_backend/internals/helpers"
	"chilume_backend/internals/logger"
	authMiddleware "chilume_backend/internals/middlewares/auth"
)

type DashboardController struct {
	Catalog      *eventService.Catalog
	Participants docstore.ParticipantStore
	Expenses     docstore.ExpenseStore
}

func NewDashboardController(catalog *eventService.Catalog, participants docstore.ParticipantStore, expenses docstore.ExpenseStore) *DashboardController {
	return &DashboardController{Catalog: catalog, Participants: participants, Expenses: expenses}
}

type dashboardResponse struct {
	TotalEvents       int    `json:"total_events"`
	TotalParticipants int    `json:"total_participants"`
	FundsCollected    int64  `json:"funds_collected"`
	TotalExpenses     int64  `json:"total_expenses"`
	NetBalance        int64  `json:"net_balance"`
	AdminName         string `json:"admin_name"`
	AdminEmail        string `json:"admin_email"`
	AdminRole         string `json:"admin_role"`
}

// GET /api/a/dashboard
// Organizer figures come from the store only; sample events never count.
func (ctrl *DashboardController) GetDashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	events, err := ctrl.Catalog.List(ctx)
	if err != nil {
		logger.LogE("dashboard events failed", "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to load events")
	}
	participants, err := ctrl.Participants.ListParticipants(ctx)
	if err != nil {
		logger.LogE("dashboard participants failed", "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to load participants")
	}
	expenses, err := ctrl.Expenses.ListExpenses(ctx)
	if err != nil {
		logger.LogE("dashboard expenses failed", "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to load expenses")
	}

	stats := homeService.ComputeStats(events, len(participants))
	spent := expenseDTO.Total(expenses)

	resp := dashboardResponse{
		TotalEvents:       stats.TotalEvents,
		TotalParticipants: stats.TotalParticipants,
		FundsCollected:    stats.TotalFunds,
		TotalExpenses:     spent,
		NetBalance:        stats.TotalFunds - spent,
	}
	if admin := authMiddleware.CurrentAdmin(c); admin != nil {
		resp.AdminName = admin.AdminName
		resp.AdminEmail = admin.AdminEmail
		resp.AdminRole = admin.AdminRole
	}
	return helper.JsonOK(c, "dashboard fetched", resp)
}
