package route

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/expenses/controller"
)

func ExpenseAdminRoutes(admin fiber.Router, store docstore.ExpenseStore) {
	ctrl := controller.NewExpenseController(store)

	expenses := admin.Group("/expenses")
	expenses.Get("/", ctrl.ListExpenses)
	expenses.Post("/", ctrl.CreateExpense)
}
