// Package tui is the terminal front end. It owns no entity state: every
// mutation goes through the collections, and views re-read aggregates after
// each committed change, using collection hashes as the cheap re-render
// signal.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/moneyflow/internal/config"
	"github.com/jask/moneyflow/internal/diagram"
	"github.com/jask/moneyflow/internal/ledger"
	"github.com/jask/moneyflow/internal/model"
	"github.com/jask/moneyflow/internal/service"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d62728"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ca02c"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Collections groups the three entity collections the app operates on.
type Collections struct {
	Paychecks   *ledger.Paychecks
	Expenses    *ledger.Expenses
	Allocations *ledger.Allocations
}

type appState string

const (
	viewIncome     appState = "income"
	viewExpenses   appState = "expenses"
	viewAllocation appState = "allocation"
	viewDiagram    appState = "diagram"
	viewSettings   appState = "settings"
)

var tabOrder = []appState{viewIncome, viewExpenses, viewAllocation, viewDiagram, viewSettings}

type modalState string

const (
	modalNone          modalState = ""
	modalPaste         modalState = "paste"
	modalNewExpense    modalState = "newExpense"
	modalRenameExpense modalState = "renameExpense"
	modalExpenseAmount modalState = "expenseAmount"
	modalAllocValue    modalState = "allocValue"
	modalPaycheckField modalState = "paycheckField"
	modalShareLink     modalState = "shareLink"
	modalImportLink    modalState = "importLink"
	modalConstant      modalState = "constant"
)

// App ties together views.
type App struct {
	cols Collections
	cfg  config.Config

	state       appState
	modal       modalState
	status      string
	currency    string
	diagramMode diagram.Mode
	focused     bool

	payCursor      int
	expenseCursor  int
	allocCursor    int
	settingsCursor int

	inputBuffer  string
	editTargetID string // expense id or paycheck date under edit
	editField    string // which paycheck field / constant is under edit

	// diagram render cache, keyed by collection hashes + mode + focus
	diagramKey  string
	diagramView string

	paste textarea.Model
}

// New builds the app over already-restored collections.
func New(cfg config.Config, cols Collections) *App {
	ta := textarea.New()
	ta.Placeholder = "paste the payroll table here"
	ta.SetWidth(100)
	ta.SetHeight(10)
	return &App{
		cols:        cols,
		cfg:         cfg,
		state:       viewIncome,
		diagramMode: diagram.ModeIncome,
		currency:    cfg.UI.CurrencySymbol,
		paste:       ta,
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	if a.modal != modalNone {
		return a.handleModalKey(m)
	}
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab":
		a.state = nextTab(a.state, 1)
		a.status = ""
	case "shift+tab":
		a.state = nextTab(a.state, -1)
		a.status = ""
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	default:
		return a.handleViewKey(m)
	}
	return a, nil
}

func nextTab(s appState, step int) appState {
	for i, t := range tabOrder {
		if t == s {
			return tabOrder[(i+step+len(tabOrder))%len(tabOrder)]
		}
	}
	return tabOrder[0]
}

func (a *App) moveCursor(step int) {
	clamp := func(cur *int, n int) {
		*cur += step
		if *cur < 0 {
			*cur = 0
		}
		if *cur > n-1 {
			*cur = n - 1
		}
		if n == 0 {
			*cur = 0
		}
	}
	switch a.state {
	case viewIncome:
		clamp(&a.payCursor, a.cols.Paychecks.Len())
	case viewExpenses:
		clamp(&a.expenseCursor, a.cols.Expenses.Len())
	case viewAllocation:
		clamp(&a.allocCursor, a.cols.Allocations.Len())
	case viewSettings:
		clamp(&a.settingsCursor, len(constantFields))
	}
}

func (a *App) handleViewKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case viewIncome:
		return a.handleIncomeKey(m)
	case viewExpenses:
		return a.handleExpensesKey(m)
	case viewAllocation:
		return a.handleAllocationKey(m)
	case viewDiagram:
		return a.handleDiagramKey(m)
	case viewSettings:
		return a.handleSettingsKey(m)
	}
	return a, nil
}

func (a *App) handleIncomeKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "i":
		a.modal = modalPaste
		a.paste.Reset()
		a.paste.Focus()
	case "s", "p", "x":
		if a.cols.Paychecks.Len() == 0 {
			a.status = "no paychecks yet; press i to paste a payroll table"
			return a, nil
		}
		p := a.cols.Paychecks.At(a.payCursor)
		a.editTargetID = p.Date
		a.editField = map[string]string{"s": "salary", "p": "perks plus", "x": "stock award taxes"}[m.String()]
		a.inputBuffer = ""
		a.modal = modalPaycheckField
	case "L":
		link, err := service.EncodeShareLink(service.Snapshot(a.cols.Paychecks, a.cols.Expenses, a.cols.Allocations))
		if err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		a.inputBuffer = link
		a.modal = modalShareLink
	case "I":
		a.inputBuffer = ""
		a.modal = modalImportLink
	}
	return a, nil
}

func (a *App) handleExpensesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "n":
		a.inputBuffer = ""
		a.modal = modalNewExpense
	case "enter":
		if e, ok := a.expenseUnderCursor(); ok {
			a.editTargetID = e.ID
			a.inputBuffer = e.Name
			a.modal = modalRenameExpense
		}
	case "a":
		if e, ok := a.expenseUnderCursor(); ok {
			a.editTargetID = e.ID
			a.inputBuffer = ""
			a.modal = modalExpenseAmount
		}
	case "delete", "backspace", "d":
		if e, ok := a.expenseUnderCursor(); ok {
			a.cols.Expenses.Remove(e)
			a.status = "expense removed"
		}
	}
	return a, nil
}

func (a *App) handleAllocationKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "n":
		a.cols.Allocations.Upsert(model.Allocation{
			From:  model.SourceSalaryTakeHome,
			To:    model.UnallocatedSpending,
			Value: 0,
		})
		a.status = "allocation added"
	case "f":
		if al, ok := a.allocationUnderCursor(); ok {
			a.cols.Allocations.Remove(al)
			if al.From == model.SourceSalaryTakeHome {
				al.From = model.SourceIrregular
			} else {
				al.From = model.SourceSalaryTakeHome
			}
			a.cols.Allocations.Upsert(al)
		}
	case "t":
		if al, ok := a.allocationUnderCursor(); ok {
			a.cols.Allocations.Remove(al)
			al.To = a.nextTarget(al.To)
			a.cols.Allocations.Upsert(al)
		}
	case "enter":
		if _, ok := a.allocationUnderCursor(); ok {
			a.inputBuffer = ""
			a.modal = modalAllocValue
		}
	case "delete", "d":
		if al, ok := a.allocationUnderCursor(); ok {
			a.cols.Allocations.Remove(al)
			a.status = "allocation removed"
		}
	}
	return a, nil
}

// nextTarget cycles an allocation's target through the sink plus all
// expense names.
func (a *App) nextTarget(current string) string {
	targets := append([]string{model.UnallocatedSpending}, a.cols.Expenses.Names()...)
	for i, t := range targets {
		if t == current {
			return targets[(i+1)%len(targets)]
		}
	}
	return targets[0]
}

func (a *App) handleDiagramKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "m":
		switch a.diagramMode {
		case diagram.ModeIncome:
			a.diagramMode = diagram.ModeExpenses
		case diagram.ModeExpenses:
			a.diagramMode = diagram.ModeAllocation
		default:
			a.diagramMode = diagram.ModeIncome
		}
	case "f":
		a.focused = !a.focused
	}
	return a, nil
}

var constantFields = []string{
	"disability insurance deduction",
	"legal plan deduction",
	"giving deduction",
	"espp rate",
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "enter" {
		a.editField = constantFields[a.settingsCursor]
		a.inputBuffer = ""
		a.modal = modalConstant
	}
	return a, nil
}

func (a *App) expenseUnderCursor() (model.Expense, bool) {
	if a.cols.Expenses.Len() == 0 {
		return model.Expense{}, false
	}
	if a.expenseCursor >= a.cols.Expenses.Len() {
		a.expenseCursor = a.cols.Expenses.Len() - 1
	}
	return a.cols.Expenses.At(a.expenseCursor), true
}

func (a *App) allocationUnderCursor() (model.Allocation, bool) {
	if a.cols.Allocations.Len() == 0 {
		return model.Allocation{}, false
	}
	if a.allocCursor >= a.cols.Allocations.Len() {
		a.allocCursor = a.cols.Allocations.Len() - 1
	}
	return a.cols.Allocations.At(a.allocCursor), true
}

// ---------------------------------------------------------------------------
// Modal input
// ---------------------------------------------------------------------------

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal == modalPaste {
		switch m.String() {
		case "esc":
			a.modal = modalNone
			return a, nil
		case "ctrl+d":
			a.applyPaste()
			return a, nil
		}
		var cmd tea.Cmd
		a.paste, cmd = a.paste.Update(m)
		return a, cmd
	}

	switch m.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		return a, nil
	case tea.KeyEnter:
		a.commitModal()
		return a, nil
	case tea.KeyBackspace:
		if len(a.inputBuffer) > 0 {
			a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
		}
		return a, nil
	case tea.KeyRunes, tea.KeySpace:
		if a.modal != modalShareLink {
			a.inputBuffer += string(m.Runes)
			if m.Type == tea.KeySpace {
				a.inputBuffer += " "
			}
		}
		return a, nil
	}
	return a, nil
}

func (a *App) applyPaste() {
	res := service.ParsePaycheckTable(a.paste.Value(), a.cfg.Constants.IncomeConstants())
	service.ApplyPaycheckTable(a.cols.Paychecks, res.Paychecks)
	a.status = fmt.Sprintf("applied %d paychecks, dropped %d rows", len(res.Paychecks), res.Dropped)
	a.modal = modalNone
}

func (a *App) commitModal() {
	defer func() { a.modal = modalNone }()
	input := strings.TrimSpace(a.inputBuffer)

	switch a.modal {
	case modalNewExpense:
		name, amountText, ok := strings.Cut(input, "=")
		if !ok {
			a.status = "use name=amount"
			return
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
		if err != nil || amount < 0 {
			a.status = "bad amount"
			return
		}
		a.cols.Expenses.Upsert(model.NewExpense(strings.TrimSpace(name), amount))
		a.status = "expense added"
	case modalRenameExpense:
		if input == "" {
			a.status = "name required"
			return
		}
		if err := service.RenameExpense(a.cols.Expenses, a.cols.Allocations, a.editTargetID, input); err != nil {
			a.status = "error: " + err.Error()
			return
		}
		a.status = "expense renamed"
	case modalExpenseAmount:
		amount, err := strconv.ParseFloat(input, 64)
		if err != nil || amount < 0 {
			a.status = "bad amount"
			return
		}
		for _, e := range a.cols.Expenses.Items() {
			if e.ID == a.editTargetID {
				e.Amount = amount
				a.cols.Expenses.Upsert(e)
				a.status = "amount updated"
				return
			}
		}
	case modalAllocValue:
		value, err := strconv.ParseFloat(input, 64)
		if err != nil || value < 0 {
			a.status = "bad value"
			return
		}
		if al, ok := a.allocationUnderCursor(); ok {
			al.Value = value
			a.cols.Allocations.Upsert(al)
			a.status = "allocation updated"
		}
	case modalPaycheckField:
		value, err := strconv.ParseFloat(input, 64)
		if err != nil {
			a.status = "bad value"
			return
		}
		a.setPaycheckField(value)
	case modalConstant:
		value, err := strconv.ParseFloat(input, 64)
		if err != nil {
			a.status = "bad value"
			return
		}
		a.setConstant(value)
	case modalImportLink:
		state, err := service.DecodeShareLink(input)
		if err != nil {
			a.status = "error: " + err.Error()
			return
		}
		service.Sideload(state, a.cols.Paychecks, a.cols.Expenses, a.cols.Allocations)
		a.status = "shared state imported"
	}
}

// setPaycheckField replaces the whole record: partial mutation is never
// visible across the collection boundary.
func (a *App) setPaycheckField(value float64) {
	for _, p := range a.cols.Paychecks.Items() {
		if p.Date != a.editTargetID {
			continue
		}
		switch a.editField {
		case "salary":
			p.Salary = model.Float(value)
		case "perks plus":
			p.PerksPlus = model.Float(value)
		case "stock award taxes":
			p.StockAwardTaxes = model.Float(value)
		}
		a.cols.Paychecks.Upsert(p)
		a.status = a.editField + " updated"
		return
	}
}

func (a *App) setConstant(value float64) {
	switch a.editField {
	case constantFields[0]:
		a.cfg.Constants.DisabilityInsuranceDeduction = value
	case constantFields[1]:
		a.cfg.Constants.LegalPlanDeduction = value
	case constantFields[2]:
		a.cfg.Constants.GivingDeduction = value
	case constantFields[3]:
		a.cfg.Constants.ESPPRate = value
	}
	if err := config.Save(a.cfg); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.status = a.editField + " saved"
}
