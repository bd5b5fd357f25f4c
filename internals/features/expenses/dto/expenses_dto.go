package dto

import (
	"strings"
	"time"

	"chilume_backend/internals/features/expenses/model"
)

type CreateExpenseRequest struct {
	ExpenseTitle    string    `json:"expense_title" validate:"required,max=255"`
	ExpenseAmount   int64     `json:"expense_amount" validate:"gt=0"`
	ExpenseCategory string    `json:"expense_category" validate:"required,max=100"`
	ExpenseDate     time.Time `json:"expense_date" validate:"required"`
}

func (r *CreateExpenseRequest) Normalize() {
	r.ExpenseTitle = strings.TrimSpace(r.ExpenseTitle)
	r.ExpenseCategory = strings.ToLower(strings.TrimSpace(r.ExpenseCategory))
}

func (r *CreateExpenseRequest) ToModel(addedBy string) *model.ExpenseModel {
	return &model.ExpenseModel{
		ExpenseTitle:    r.ExpenseTitle,
		ExpenseAmount:   r.ExpenseAmount,
		ExpenseCategory: r.ExpenseCategory,
		ExpenseDate:     r.ExpenseDate.UTC(),
		ExpenseAddedBy:  addedBy,
	}
}

type ExpenseResponse struct {
	ExpenseID       string    `json:"expense_id"`
	ExpenseTitle    string    `json:"expense_title"`
	ExpenseAmount   int64     `json:"expense_amount"`
	ExpenseCategory string    `json:"expense_category"`
	ExpenseDate     time.Time `json:"expense_date"`
	ExpenseAddedBy  string    `json:"expense_added_by"`
}

func ToExpenseResponse(m *model.ExpenseModel) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:       m.ExpenseID,
		ExpenseTitle:    m.ExpenseTitle,
		ExpenseAmount:   m.ExpenseAmount,
		ExpenseCategory: m.ExpenseCategory,
		ExpenseDate:     m.ExpenseDate,
		ExpenseAddedBy:  m.ExpenseAddedBy,
	}
}

func ToExpenseResponseList(list []model.ExpenseModel) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(list))
	for i := range list {
		out = append(out, ToExpenseResponse(&list[i]))
	}
	return out
}

// Total sums amounts; the ledger is additive only.
func Total(list []model.ExpenseModel) int64 {
	var sum int64
	for _, e := range list {
		sum += e.ExpenseAmount
	}
	return sum
}
