package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/moneyflow/internal/ledger"
	"github.com/jask/moneyflow/internal/model"
)

func TestRenameExpenseCascadesToAllocations(t *testing.T) {
	t.Parallel()
	food := model.Expense{ID: "food", Name: "Food", Amount: 600}
	expenses := ledger.NewExpenses([]model.Expense{food})
	allocations := ledger.NewAllocations([]model.Allocation{
		{From: model.SourceSalaryTakeHome, To: "Food", Value: 400},
		{From: model.SourceIrregular, To: "Food", Value: 100},
		{From: model.SourceIrregular, To: "Rent", Value: 50},
	})

	// the rewrite lands as a single committed change
	fired := 0
	allocations.Subscribe(func() {
		fired++
		require.Zero(t, allocations.AllocatedAmount("Food"))
		require.InDelta(t, 500, allocations.AllocatedAmount("Groceries"), 1e-9)
	})

	require.NoError(t, RenameExpense(expenses, allocations, "food", "Groceries"))

	require.Equal(t, 1, fired)
	require.Equal(t, "Groceries", expenses.At(0).Name)
	require.Equal(t, food.ID, expenses.At(0).ID)
	require.InDelta(t, 50, allocations.AllocatedAmount("Rent"), 1e-9)
	require.Equal(t, 3, allocations.Len())
}

func TestRenameExpenseUnknownID(t *testing.T) {
	t.Parallel()
	expenses := ledger.NewExpenses(nil)
	allocations := ledger.NewAllocations(nil)
	require.Error(t, RenameExpense(expenses, allocations, "missing", "X"))
}

func TestRenameExpenseSameNameIsNoOp(t *testing.T) {
	t.Parallel()
	expenses := ledger.NewExpenses([]model.Expense{{ID: "1", Name: "Rent", Amount: 10}})
	allocations := ledger.NewAllocations(nil)

	fired := 0
	expenses.Subscribe(func() { fired++ })

	require.NoError(t, RenameExpense(expenses, allocations, "1", "Rent"))
	require.Zero(t, fired)
}
