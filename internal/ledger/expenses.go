package ledger

import (
	"fmt"

	"github.com/jask/moneyflow/internal/collection"
	"github.com/jask/moneyflow/internal/model"
	"github.com/jask/moneyflow/internal/sankey"
)

// Expenses keys by the expense's stable ID, never its name, so renames
// preserve identity.
type Expenses struct {
	*collection.Collection[model.Expense]
}

// NewExpenses builds the expense collection over initial items.
func NewExpenses(items []model.Expense) *Expenses {
	return &Expenses{collection.New(items,
		func(e model.Expense) string { return e.ID },
		func(e model.Expense) string { return fmt.Sprintf("%s:%g", e.Name, e.Amount) },
	)}
}

// Total is the sum of all expense amounts.
func (c *Expenses) Total() float64 {
	return c.Sum(func(e model.Expense) (float64, bool) { return e.Amount, true })
}

// Names lists display names in collection order.
func (c *Expenses) Names() []string {
	items := c.Items()
	names := make([]string, len(items))
	for i, e := range items {
		names[i] = e.Name
	}
	return names
}

// ByName finds the first expense with the given display name.
func (c *Expenses) ByName(name string) (model.Expense, bool) {
	for _, e := range c.Items() {
		if e.Name == name {
			return e, true
		}
	}
	return model.Expense{}, false
}

// FlowGraph emits one Expenses -> name edge per expense.
func (c *Expenses) FlowGraph() *sankey.Graph {
	g := sankey.NewGraph()
	for _, e := range c.Items() {
		g.Append(sankey.Flow{Source: "Expenses", Target: e.Name, Value: e.Amount})
	}
	return g
}
