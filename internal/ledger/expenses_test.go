package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/moneyflow/internal/model"
)

func TestExpensesKeyedByID(t *testing.T) {
	t.Parallel()
	food := model.NewExpense("Food", 600)
	rent := model.NewExpense("Rent", 2000)
	c := NewExpenses([]model.Expense{food, rent})

	// rename keeps identity and position
	food.Name = "Groceries"
	c.Upsert(food)

	require.Equal(t, 2, c.Len())
	require.Equal(t, []string{"Groceries", "Rent"}, c.Names())
	require.InDelta(t, 2600, c.Total(), 1e-9)
}

func TestExpensesByName(t *testing.T) {
	t.Parallel()
	rent := model.NewExpense("Rent", 2000)
	c := NewExpenses([]model.Expense{rent})

	got, ok := c.ByName("Rent")
	require.True(t, ok)
	require.Equal(t, rent.ID, got.ID)

	_, ok = c.ByName("Utilities")
	require.False(t, ok)
}

func TestExpensesFlowGraph(t *testing.T) {
	t.Parallel()
	c := NewExpenses([]model.Expense{
		model.NewExpense("Rent", 2000),
		model.NewExpense("Food", 600),
	})

	flows := c.FlowGraph().Flows()
	require.Len(t, flows, 2)
	require.Equal(t, "Expenses", flows[0].Source)
	require.Equal(t, "Rent", flows[0].Target)
	require.InDelta(t, 2000, flows[0].Value, 1e-9)
	require.Equal(t, "Food", flows[1].Target)
}

func TestAllocationsKeyedByPair(t *testing.T) {
	t.Parallel()
	c := NewAllocations(nil)

	c.Upsert(model.Allocation{From: model.SourceSalaryTakeHome, To: "Rent", Value: 1800})
	c.Upsert(model.Allocation{From: model.SourceSalaryTakeHome, To: "Rent", Value: 2000})
	c.Upsert(model.Allocation{From: model.SourceIrregular, To: "Rent", Value: 300})

	require.Equal(t, 2, c.Len())
	require.InDelta(t, 2300, c.Total(), 1e-9)
	require.InDelta(t, 2000, c.SalaryTotal(), 1e-9)
	require.InDelta(t, 300, c.IrregularTotal(), 1e-9)
	require.InDelta(t, 2300, c.AllocatedAmount("Rent"), 1e-9)
	require.Zero(t, c.AllocatedAmount("Food"))
}

func TestAllocationsFlowGraph(t *testing.T) {
	t.Parallel()
	c := NewAllocations([]model.Allocation{
		{From: model.SourceSalaryTakeHome, To: "Rent", Value: 2000},
	})

	flows := c.FlowGraph().Flows()
	require.Len(t, flows, 1)
	require.Equal(t, "Salary Take-Home", flows[0].Source)
	require.Equal(t, "Rent", flows[0].Target)
}
