package tui

import (
	"fmt"
	"strings"

	"github.com/jask/moneyflow/internal/diagram"
	"github.com/jask/moneyflow/internal/sankey"
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewExpenses:
		body = a.renderExpenses()
	case viewAllocation:
		body = a.renderAllocation()
	case viewDiagram:
		body = a.renderDiagram()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderIncome()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		body += "\n" + dimStyle.Render(a.status)
	}
	return body
}

func (a *App) money(v float64) string {
	return fmt.Sprintf("%s%.2f", a.currency, v)
}

func (a *App) optMoney(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return a.money(v)
}

func (a *App) renderIncome() string {
	title := titleStyle.Render("Income")
	pc := a.cols.Paychecks
	if pc.Len() == 0 {
		return title + "\nNo paychecks. Press i to paste a payroll table.\n[i] Paste  [L] Share link  [I] Import link  [tab] Next view  [q] Quit"
	}
	out := title + "\n"
	out += fmt.Sprintf("%-12s %12s %10s %10s %10s %12s %12s\n",
		"Date", "Gross", "Salary", "Bonus", "Stock", "Net", "Irregular")
	for i, p := range pc.Items() {
		marker := " "
		if i == a.payCursor {
			marker = "▶"
		}
		bonus, bonusOK := p.Bonus()
		out += fmt.Sprintf("%s %-11s %12s %10s %10s %10s %12s %12s\n",
			marker, p.Date,
			a.money(p.GrossPay),
			a.optMoney(deref(p.Salary), p.Salary != nil),
			a.optMoney(bonus, bonusOK),
			a.money(p.StockVesting()),
			a.money(p.NetPay),
			a.money(p.ESPP()+p.NetStockVestings()+p.BonusNetPay()))
	}
	out += fmt.Sprintf("\nGross (incl. stock): %s  Net: %s  Salary take-home: %s  Irregular income: %s\n",
		a.money(pc.GrossPayIncludingStock()), a.money(pc.NetPay()),
		a.money(pc.NonBonusNetPay()), a.money(pc.IrregularIncome()))
	out += "[i] Paste table  [s] Salary  [p] Perks  [x] Stock taxes  [L] Share link  [I] Import link  [tab] Next view  [q] Quit"
	return out
}

func (a *App) renderExpenses() string {
	title := titleStyle.Render("Expenses")
	out := title + "\n"
	if a.cols.Expenses.Len() == 0 {
		out += "No expenses yet.\n"
	}
	for i, e := range a.cols.Expenses.Items() {
		marker := " "
		if i == a.expenseCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-30s %12s\n", marker, e.Name, a.money(e.Amount))
	}
	out += fmt.Sprintf("Total: %s\n", a.money(a.cols.Expenses.Total()))
	out += "[n] New  [enter] Rename  [a] Amount  [d] Delete  [tab] Next view  [q] Quit"
	return out
}

func (a *App) renderAllocation() string {
	title := titleStyle.Render("Allocation")
	pc, al := a.cols.Paychecks, a.cols.Allocations

	out := title + "\n"
	out += a.renderBudgetLine("Salary Take-Home", al.SalaryTotal(), pc.NonBonusNetPay())
	out += a.renderBudgetLine("Irregular Income", al.IrregularTotal(), pc.IrregularIncome())
	out += "\n"
	if al.Len() == 0 {
		out += "No allocations yet.\n"
	}
	for i, alloc := range al.Items() {
		marker := " "
		if i == a.allocCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-18s → %-30s %12s\n", marker, alloc.From, alloc.To, a.money(alloc.Value))
	}
	out += "[n] New  [f] Toggle source  [t] Cycle target  [enter] Value  [d] Delete  [tab] Next view  [q] Quit"
	return out
}

// renderBudgetLine shows allocated/total, flagging over-allocation.
func (a *App) renderBudgetLine(label string, allocated, total float64) string {
	line := fmt.Sprintf("%s: %s / %s", label, a.money(allocated), a.money(total))
	if allocated > total {
		return errorStyle.Render(line) + "\n"
	}
	return line + "\n"
}

func (a *App) renderDiagram() string {
	key := fmt.Sprintf("%s|%s|%s|%s|%v",
		a.cols.Paychecks.Hash(), a.cols.Expenses.Hash(), a.cols.Allocations.Hash(),
		a.diagramMode, a.focused)
	if key == a.diagramKey {
		return a.diagramView
	}

	title := titleStyle.Render(fmt.Sprintf("Diagram (%s)", a.diagramMode))
	res := diagram.Build(a.diagramMode, a.cols.Paychecks, a.cols.Expenses, a.cols.Allocations,
		diagram.Options{Focused: a.focused})

	out := title + "\n"
	for _, e := range res.Errors {
		out += errorStyle.Render("Error: "+e) + "\n"
	}
	out += renderFlows(res.Graph, a.currency)
	out += fmt.Sprintf("\n%d nodes, %d flows", len(res.Graph.Nodes()), res.Graph.Len())
	if a.diagramMode == diagram.ModeAllocation {
		focus := "off"
		if a.focused {
			focus = "on"
		}
		out += "  focused: " + focus
	}
	out += "\n[m] Cycle mode  [f] Toggle focused  [tab] Next view  [q] Quit"
	a.diagramKey, a.diagramView = key, out
	return out
}

// renderFlows draws each edge with a bar proportional to its share of the
// largest flow.
func renderFlows(g *sankey.Graph, currency string) string {
	flows := g.Flows()
	if len(flows) == 0 {
		return "(empty graph)\n"
	}
	maxAbs := 0.0
	for _, f := range flows {
		if v := abs(f.Value); v > maxAbs {
			maxAbs = v
		}
	}
	var b strings.Builder
	for _, f := range flows {
		bar := ""
		if maxAbs > 0 {
			n := int(abs(f.Value) / maxAbs * 24)
			bar = strings.Repeat("█", n)
		}
		line := fmt.Sprintf("%-22s → %-22s %12s  %s", f.Source, f.Target,
			fmt.Sprintf("%s%.2f", currency, f.Value), bar)
		switch {
		case f.SourceColor != "":
			line = errorStyle.Render(line)
		case f.TargetColor != "":
			line = positiveStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (a *App) renderSettings() string {
	title := titleStyle.Render("Settings: income constants")
	c := a.cfg.Constants
	values := []string{
		a.money(c.DisabilityInsuranceDeduction),
		a.money(c.LegalPlanDeduction),
		a.money(c.GivingDeduction),
		fmt.Sprintf("%.2f%%", c.ESPPRate*100),
	}
	out := title + "\n"
	out += "Applied to paychecks pasted after the change.\n"
	for i, f := range constantFields {
		marker := " "
		if i == a.settingsCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-34s %s\n", marker, f, values[i])
	}
	out += "[enter] Edit  [tab] Next view  [q] Quit"
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalPaste:
		return titleStyle.Render("Paste payroll table") + "\n" + a.paste.View() + "\n[ctrl+d] Apply  [esc] Cancel"
	case modalNewExpense:
		return titleStyle.Render("New expense (name=amount)") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalRenameExpense:
		return titleStyle.Render("Rename expense") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalExpenseAmount:
		return titleStyle.Render("Expense amount") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalAllocValue:
		return titleStyle.Render("Allocation value") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalPaycheckField:
		return titleStyle.Render("Set "+a.editField) + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalConstant:
		return titleStyle.Render("Set "+a.editField) + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalShareLink:
		return titleStyle.Render("Share link payload") + "\n" + a.inputBuffer + "\n[esc] Close"
	case modalImportLink:
		return titleStyle.Render("Import share link (replaces current state)") + fmt.Sprintf("\n%s\n[enter] Import  [esc] Cancel", a.inputBuffer)
	default:
		return ""
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
