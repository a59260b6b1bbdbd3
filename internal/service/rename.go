package service

import (
	"fmt"

	"github.com/jask/moneyflow/internal/ledger"
	"github.com/jask/moneyflow/internal/model"
)

// RenameExpense changes an expense's display name and rewrites every
// allocation that targeted the old name. The allocation rewrite is batched
// in one transaction: no subscriber can observe the old-named allocation
// gone without the new-named one present.
func RenameExpense(expenses *ledger.Expenses, allocations *ledger.Allocations, id, newName string) error {
	var expense model.Expense
	found := false
	for _, e := range expenses.Items() {
		if e.ID == id {
			expense, found = e, true
			break
		}
	}
	if !found {
		return fmt.Errorf("rename expense: no expense with id %s", id)
	}
	oldName := expense.Name
	if oldName == newName {
		return nil
	}

	expense.Name = newName
	expenses.Upsert(expense)

	allocations.Begin()
	for _, a := range allocations.Items() {
		if a.To != oldName {
			continue
		}
		allocations.Remove(a)
		a.To = newName
		allocations.Upsert(a)
	}
	allocations.Commit()
	return nil
}
