package model

import "github.com/google/uuid"

// Expense is a named spending category with a target amount. The ID is
// stable for the expense's lifetime; renaming keeps identity.
type Expense struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// NewExpense mints an expense with a fresh ID.
func NewExpense(name string, amount float64) Expense {
	return Expense{ID: uuid.NewString(), Name: name, Amount: amount}
}
