// Package ledger holds the typed entity collections and their derived
// totals. Aggregates are computed fresh on every call; nothing here caches
// across mutations.
package ledger

import (
	"encoding/json"

	"github.com/jask/moneyflow/internal/collection"
	"github.com/jask/moneyflow/internal/model"
	"github.com/jask/moneyflow/internal/sankey"
)

// total lifts a plain projection into the optional shape Sum expects.
func total(f func(model.Paycheck) float64) func(model.Paycheck) (float64, bool) {
	return func(p model.Paycheck) (float64, bool) { return f(p), true }
}

// Paychecks keys by pay date: at most one paycheck per distinct date.
type Paychecks struct {
	*collection.Collection[model.Paycheck]
}

// NewPaychecks builds the paycheck collection over initial items.
func NewPaychecks(items []model.Paycheck) *Paychecks {
	return &Paychecks{collection.New(items,
		func(p model.Paycheck) string { return p.Date },
		func(p model.Paycheck) string {
			b, _ := json.Marshal(p)
			return string(b)
		},
	)}
}

func (c *Paychecks) GrossPay() float64 {
	return c.Sum(total(func(p model.Paycheck) float64 { return p.GrossPay }))
}

func (c *Paychecks) Adjustments() float64 {
	return c.Sum(total(func(p model.Paycheck) float64 { return p.Adjustments }))
}

// Bonus totals defined bonuses; paychecks without a salary contribute zero.
func (c *Paychecks) Bonus() float64 {
	return c.Sum(model.Paycheck.Bonus)
}

func (c *Paychecks) TaxableEarnings() float64 {
	return c.Sum(total(func(p model.Paycheck) float64 { return p.TaxableEarnings }))
}

func (c *Paychecks) TaxesWithheld() float64 {
	return c.Sum(total(func(p model.Paycheck) float64 { return p.TaxesWithheld }))
}

func (c *Paychecks) AfterTaxDeductions() float64 {
	return c.Sum(total(func(p model.Paycheck) float64 { return p.AfterTaxDeductions }))
}

func (c *Paychecks) NetPay() float64 {
	return c.Sum(total(func(p model.Paycheck) float64 { return p.NetPay }))
}

func (c *Paychecks) BonusNetPay() float64 {
	return c.Sum(total(model.Paycheck.BonusNetPay))
}

func (c *Paychecks) NonBonusNetPay() float64 {
	return c.Sum(total(model.Paycheck.NonBonusNetPay))
}

func (c *Paychecks) StockVesting() float64 {
	return c.Sum(total(model.Paycheck.StockVesting))
}

func (c *Paychecks) NetStockVestings() float64 {
	return c.Sum(total(model.Paycheck.NetStockVestings))
}

func (c *Paychecks) ESPP() float64 {
	return c.Sum(total(model.Paycheck.ESPP))
}

func (c *Paychecks) RothIRA() float64 {
	return c.Sum(total(model.Paycheck.RothIRA))
}

// Salary sums entered salaries; unset salaries contribute zero.
func (c *Paychecks) Salary() float64 {
	return c.Sum(func(p model.Paycheck) (float64, bool) {
		if p.Salary == nil {
			return 0, false
		}
		return *p.Salary, true
	})
}

func (c *Paychecks) PaycheckTaxesWithheld() float64 {
	return c.Sum(total(model.Paycheck.PaycheckTaxesWithheld))
}

func (c *Paychecks) StockAwardTaxes() float64 {
	return c.Sum(func(p model.Paycheck) (float64, bool) {
		if p.StockAwardTaxes == nil {
			return 0, false
		}
		return *p.StockAwardTaxes, true
	})
}

func (c *Paychecks) DisabilityInsuranceDeduction() float64 {
	return c.Sum(total(func(p model.Paycheck) float64 {
		return p.Constants.DisabilityInsuranceDeduction
	}))
}

func (c *Paychecks) LegalPlanDeduction() float64 {
	return c.Sum(total(func(p model.Paycheck) float64 {
		return p.Constants.LegalPlanDeduction
	}))
}

func (c *Paychecks) GivingDeduction() float64 {
	return c.Sum(total(func(p model.Paycheck) float64 {
		return p.Constants.GivingDeduction
	}))
}

func (c *Paychecks) GrossPayIncludingStock() float64 {
	return c.GrossPay() + c.StockVesting()
}

// IrregularIncome is income not arriving via the regular salary paycheck:
// ESPP contributions, net stock vesting proceeds and bonus net pay.
func (c *Paychecks) IrregularIncome() float64 {
	return c.ESPP() + c.NetStockVestings() + c.BonusNetPay()
}

// FlowGraph emits the canonical payroll breakdown. Inflow equals outflow at
// every interior node by the arithmetic identities on Paycheck.
func (c *Paychecks) FlowGraph() *sankey.Graph {
	return sankey.NewGraph(
		sankey.Flow{Source: "Salary", Target: "Pre-tax", Value: c.Salary()},
		sankey.Flow{Source: "Stock", Target: "Pre-tax", Value: c.StockVesting()},
		sankey.Flow{Source: "Bonus", Target: "Pre-tax", Value: c.Bonus()},
		sankey.Flow{Source: "Pre-tax", Target: "Taxes", Value: c.TaxesWithheld()},
		sankey.Flow{Source: "Pre-tax", Target: "Net Income", Value: c.GrossPayIncludingStock() - c.TaxesWithheld()},
		sankey.Flow{Source: "Taxes", Target: "Paycheck Taxes", Value: c.PaycheckTaxesWithheld()},
		sankey.Flow{Source: "Taxes", Target: "Stock Taxes", Value: c.StockAwardTaxes()},
		sankey.Flow{Source: "Net Income", Target: "Deducted Services", Value: c.DisabilityInsuranceDeduction() + c.LegalPlanDeduction()},
		sankey.Flow{Source: "Net Income", Target: "Deducted Giving", Value: c.GivingDeduction()},
		sankey.Flow{Source: "Net Income", Target: "Deducted Investments", Value: c.RothIRA() + c.ESPP()},
		sankey.Flow{Source: "Net Income", Target: "Stock Vestings", Value: c.NetStockVestings()},
		sankey.Flow{Source: "Net Income", Target: "Paycheck", Value: c.NonBonusNetPay() + c.BonusNetPay()},
		sankey.Flow{Source: "Deducted Investments", Target: "Roth IRA", Value: c.RothIRA()},
		sankey.Flow{Source: "Deducted Investments", Target: "ESPP", Value: c.ESPP()},
		sankey.Flow{Source: "ESPP", Target: "Irregular Income", Value: c.ESPP()},
		sankey.Flow{Source: "Stock Vestings", Target: "Irregular Income", Value: c.NetStockVestings()},
		sankey.Flow{Source: "Paycheck", Target: "Bonus Take-Home", Value: c.BonusNetPay()},
		sankey.Flow{Source: "Bonus Take-Home", Target: "Irregular Income", Value: c.BonusNetPay()},
		sankey.Flow{Source: "Paycheck", Target: "Salary Take-Home", Value: c.NonBonusNetPay()},
	)
}
