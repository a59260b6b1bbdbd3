package ledger

import (
	"fmt"

	"github.com/jask/moneyflow/internal/collection"
	"github.com/jask/moneyflow/internal/model"
	"github.com/jask/moneyflow/internal/sankey"
)

// Allocations keys by the (from, to) pair: re-upserting a pair replaces its
// value rather than adding a parallel edge.
type Allocations struct {
	*collection.Collection[model.Allocation]
}

// NewAllocations builds the allocation collection over initial items.
func NewAllocations(items []model.Allocation) *Allocations {
	return &Allocations{collection.New(items,
		func(a model.Allocation) string { return string(a.From) + "\x00" + a.To },
		func(a model.Allocation) string { return fmt.Sprintf("%s:%s:%g", a.From, a.To, a.Value) },
	)}
}

// Total is the sum of all allocated values.
func (c *Allocations) Total() float64 {
	return c.Sum(func(a model.Allocation) (float64, bool) { return a.Value, true })
}

func (c *Allocations) fromTotal(src model.Source) float64 {
	return c.Sum(func(a model.Allocation) (float64, bool) {
		if a.From != src {
			return 0, false
		}
		return a.Value, true
	})
}

// IrregularTotal sums allocations drawn from irregular income.
func (c *Allocations) IrregularTotal() float64 {
	return c.fromTotal(model.SourceIrregular)
}

// SalaryTotal sums allocations drawn from salary take-home.
func (c *Allocations) SalaryTotal() float64 {
	return c.fromTotal(model.SourceSalaryTakeHome)
}

// AllocatedAmount sums values targeting one expense name across both
// sources.
func (c *Allocations) AllocatedAmount(name string) float64 {
	return c.Sum(func(a model.Allocation) (float64, bool) {
		if a.To != name {
			return 0, false
		}
		return a.Value, true
	})
}

// FlowGraph emits each allocation as a from -> to edge.
func (c *Allocations) FlowGraph() *sankey.Graph {
	g := sankey.NewGraph()
	for _, a := range c.Items() {
		g.Append(sankey.Flow{Source: string(a.From), Target: a.To, Value: a.Value})
	}
	return g
}
