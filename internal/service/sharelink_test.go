package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/moneyflow/internal/ledger"
	"github.com/jask/moneyflow/internal/model"
)

func TestShareLinkRoundTrip(t *testing.T) {
	t.Parallel()
	paychecks := ledger.NewPaychecks([]model.Paycheck{
		{Date: "2026-01-15", GrossPay: 5000, NetPay: 3600, Salary: model.Float(4500)},
	})
	expenses := ledger.NewExpenses([]model.Expense{{ID: "1", Name: "Rent", Amount: 2000}})
	allocations := ledger.NewAllocations([]model.Allocation{
		{From: model.SourceSalaryTakeHome, To: "Rent", Value: 2000},
	})

	token, err := EncodeShareLink(Snapshot(paychecks, expenses, allocations))
	require.NoError(t, err)
	require.NotContains(t, token, "+")
	require.NotContains(t, token, "/")
	require.NotContains(t, token, "=")

	state, err := DecodeShareLink(token)
	require.NoError(t, err)
	require.Equal(t, paychecks.Items(), state.Paychecks)
	require.Equal(t, expenses.Items(), state.Expenses)
	require.Equal(t, allocations.Items(), state.Allocations)
}

func TestDecodeShareLinkRejectsGarbage(t *testing.T) {
	t.Parallel()
	_, err := DecodeShareLink("not base64!!")
	require.Error(t, err)

	// valid base64, not valid deflate
	_, err = DecodeShareLink("AAAA")
	require.Error(t, err)
}

func TestSideloadReplacesAllCollections(t *testing.T) {
	t.Parallel()
	paychecks := ledger.NewPaychecks([]model.Paycheck{{Date: "2025-12-31", NetPay: 1}})
	expenses := ledger.NewExpenses([]model.Expense{{ID: "old", Name: "Old", Amount: 1}})
	allocations := ledger.NewAllocations([]model.Allocation{
		{From: model.SourceIrregular, To: "Old", Value: 1},
	})

	state := State{
		Paychecks: []model.Paycheck{{Date: "2026-01-15", NetPay: 3600}},
		Expenses:  []model.Expense{{ID: "1", Name: "Rent", Amount: 2000}},
	}
	Sideload(state, paychecks, expenses, allocations)

	require.Equal(t, 1, paychecks.Len())
	require.Equal(t, "2026-01-15", paychecks.At(0).Date)
	require.Equal(t, 1, expenses.Len())
	require.Equal(t, "Rent", expenses.At(0).Name)
	require.Zero(t, allocations.Len())
}
