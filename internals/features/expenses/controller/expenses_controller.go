package controller

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/expenses/dto"
	helper "chilume_backend/internals/helpers"
	"chilume_backend/internals/logger"
	authMiddleware "chilume_backend/internals/middlewares/auth"
)

type ExpenseController struct {
	Store docstore.ExpenseStore
}

func NewExpenseController(store docstore.ExpenseStore) *ExpenseController {
	return &ExpenseController{Store: store}
}

// GET /api/a/expenses
func (ctrl *ExpenseController) ListExpenses(c *fiber.Ctx) error {
	list, err := ctrl.Store.ListExpenses(c.UserContext())
	if err != nil {
		logger.LogE("list expenses failed", "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to load expenses")
	}
	return helper.JsonOK(c, "expenses fetched", fiber.Map{
		"expenses": dto.ToExpenseResponseList(list),
		"total":    dto.Total(list),
	})
}

// POST /api/a/expenses
func (ctrl *ExpenseController) CreateExpense(c *fiber.Ctx) error {
	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if errs := helper.ValidateStruct(req); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	admin := authMiddleware.CurrentAdmin(c)
	if admin == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	exp := req.ToModel(admin.AdminEmail)
	if _, err := ctrl.Store.InsertExpense(c.UserContext(), exp); err != nil {
		logger.LogE("create expense failed", "error", err)
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Failed to record expense")
	}
	return helper.JsonCreated(c, "Expense recorded", dto.ToExpenseResponse(exp))
}
