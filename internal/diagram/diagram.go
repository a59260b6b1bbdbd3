// Package diagram assembles collection aggregates into the flow graph a
// renderer consumes, and reconciles planned allocations against available
// income. Reconciliation errors are advisory: they ride alongside the graph
// and never block its construction. An over-allocated category simply draws
// sub-edges that outweigh their parent edge, and that visual inconsistency
// is the signal.
package diagram

import (
	"fmt"
	"math"

	"github.com/agnivade/levenshtein"

	"github.com/jask/moneyflow/internal/ledger"
	"github.com/jask/moneyflow/internal/model"
	"github.com/jask/moneyflow/internal/sankey"
)

// Mode selects which view of the data the graph represents.
type Mode string

const (
	ModeIncome     Mode = "income"
	ModeExpenses   Mode = "expenses"
	ModeAllocation Mode = "allocation"
)

// Shortfall/surplus display colors.
const (
	shortfallColor = "#d62728" // red
	surplusColor   = "#2ca02c" // green
)

// Result pairs the assembled graph with the ordered advisory error list.
type Result struct {
	Graph  *sankey.Graph
	Errors []string
}

// Options tweaks allocation-mode assembly. Focused drops the income
// breakdown and shows only allocation flows.
type Options struct {
	Focused bool
}

// Build assembles the graph for a mode from the current collection state.
func Build(mode Mode, paychecks *ledger.Paychecks, expenses *ledger.Expenses, allocations *ledger.Allocations, opts Options) Result {
	switch mode {
	case ModeExpenses:
		return Result{Graph: expenses.FlowGraph()}
	case ModeAllocation:
		return buildAllocation(paychecks, expenses, allocations, opts)
	default:
		return Result{Graph: paychecks.FlowGraph()}
	}
}

func buildAllocation(paychecks *ledger.Paychecks, expenses *ledger.Expenses, allocations *ledger.Allocations, opts Options) Result {
	g := sankey.NewGraph()
	var errs []string

	if !opts.Focused {
		g.Merge(paychecks.FlowGraph())
	}

	if allocations.SalaryTotal() > paychecks.NonBonusNetPay() {
		errs = append(errs, "Salary allocation exceeds salary take-home pay.")
	}
	if allocations.IrregularTotal() > paychecks.IrregularIncome() {
		errs = append(errs, "Irregular income allocation exceeds irregular income.")
	}

	g.Merge(allocations.FlowGraph())
	errs = append(errs, danglingTargets(expenses, allocations)...)

	g.Append(
		sankey.Flow{
			Source: string(model.SourceIrregular),
			Target: model.UnallocatedSpending,
			Value:  paychecks.IrregularIncome() - allocations.IrregularTotal(),
		},
		sankey.Flow{
			Source: string(model.SourceSalaryTakeHome),
			Target: model.UnallocatedSpending,
			Value:  paychecks.NonBonusNetPay() - allocations.SalaryTotal(),
		},
	)

	for _, expense := range expenses.Items() {
		allocated := allocations.AllocatedAmount(expense.Name)
		if allocated > expense.Amount {
			errs = append(errs, fmt.Sprintf("Allocation for %s exceeds the total amount of %g.", expense.Name, expense.Amount))
		}
		if unallocated := expense.Amount - allocated; unallocated > 0 {
			g.Append(sankey.Flow{
				Source: model.UnallocatedSpending,
				Target: expense.Name,
				Value:  unallocated,
			})
		}
	}

	diff := (paychecks.IrregularIncome() + paychecks.NonBonusNetPay()) - expenses.Total()
	if diff < 0 {
		g.Append(sankey.Flow{
			Source:      "Shortfall",
			Target:      model.UnallocatedSpending,
			Value:       math.Abs(diff),
			SourceColor: shortfallColor,
		})
	} else if diff > 0 {
		g.Append(sankey.Flow{
			Source:      model.UnallocatedSpending,
			Target:      "Surplus",
			Value:       diff,
			TargetColor: surplusColor,
		})
	}

	return Result{Graph: g, Errors: errs}
}

// danglingTargets flags allocations pointing at names no expense carries,
// which happens after renames sideloaded from a share link or hand-edited
// state. The nearest expense name by edit distance is suggested.
func danglingTargets(expenses *ledger.Expenses, allocations *ledger.Allocations) []string {
	names := expenses.Names()
	known := make(map[string]bool, len(names)+1)
	known[model.UnallocatedSpending] = true
	for _, n := range names {
		known[n] = true
	}

	var errs []string
	for _, a := range allocations.Items() {
		if known[a.To] {
			continue
		}
		if closest, ok := closestName(a.To, names); ok {
			errs = append(errs, fmt.Sprintf("Allocation target %q does not match any expense (closest: %q).", a.To, closest))
		} else {
			errs = append(errs, fmt.Sprintf("Allocation target %q does not match any expense.", a.To))
		}
	}
	return errs
}

func closestName(target string, names []string) (string, bool) {
	best, bestDist := "", -1
	for _, n := range names {
		d := levenshtein.ComputeDistance(target, n)
		if bestDist == -1 || d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, bestDist != -1
}
