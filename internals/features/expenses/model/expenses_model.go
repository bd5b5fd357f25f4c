package model

import "time"

type ExpenseModel struct {
	ExpenseID        string    `gorm:"column:expense_id;type:uuid;primaryKey" json:"expense_id" bson:"_id"`
	ExpenseTitle     string    `gorm:"column:expense_title;type:varchar(255);not null" json:"expense_title" bson:"expense_title"`
	ExpenseAmount    int64     `gorm:"column:expense_amount;not null" json:"expense_amount" bson:"expense_amount"`
	ExpenseCategory  string    `gorm:"column:expense_category;type:varchar(100);not null" json:"expense_category" bson:"expense_category"`
	ExpenseDate      time.Time `gorm:"column:expense_date;type:timestamptz;not null" json:"expense_date" bson:"expense_date"`
	ExpenseAddedBy   string    `gorm:"column:expense_added_by;type:varchar(255);not null" json:"expense_added_by" bson:"expense_added_by"`
	ExpenseCreatedAt time.Time `gorm:"column:expense_created_at;type:timestamptz;not null" json:"expense_created_at" bson:"expense_created_at"`
}

func (ExpenseModel) TableName() string {
	return "expenses"
}
