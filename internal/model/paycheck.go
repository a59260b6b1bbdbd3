package model

// IncomeConstants are the fixed per-paycheck deductions and rates entered
// alongside a batch of paychecks. Each Paycheck carries its own copy so a
// constants change only affects entries made after it.
type IncomeConstants struct {
	DisabilityInsuranceDeduction float64 `json:"disabilityInsuranceDeduction"`
	LegalPlanDeduction           float64 `json:"legalPlanDeduction"`
	GivingDeduction              float64 `json:"givingDeduction"`
	ESPPRate                     float64 `json:"esppRate"`
}

// Paycheck holds one pay period's raw payroll figures. Dates are ISO
// "2006-01-02" strings. Everything else about a paycheck is derived from
// these fields and must be recomputed, never stored.
//
// Salary, PerksPlus and StockAwardTaxes are filled in by hand after import;
// nil means "not entered", which is distinct from zero.
type Paycheck struct {
	Constants          IncomeConstants `json:"constants"`
	Date               string          `json:"date"`
	PayPeriodStart     string          `json:"payPeriodStart"`
	PayPeriodEnd       string          `json:"payPeriodEnd"`
	GrossPay           float64         `json:"grossPay"`
	Adjustments        float64         `json:"adjustments"`
	TaxableEarnings    float64         `json:"taxableEarnings"`
	TaxesWithheld      float64         `json:"taxesWithheld"`
	AfterTaxDeductions float64         `json:"afterTaxDeductions"`
	NetPay             float64         `json:"netPay"`

	Salary          *float64 `json:"salary,omitempty"`
	PerksPlus       *float64 `json:"perksPlus,omitempty"`
	StockAwardTaxes *float64 `json:"stockAwardTaxes,omitempty"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float is a convenience for building optional fields in literals.
func Float(v float64) *float64 { return &v }

// StockVesting is the adjustment amount net of the disability insurance
// deduction, which payroll reports inside adjustments.
func (p Paycheck) StockVesting() float64 {
	return p.Adjustments - p.Constants.DisabilityInsuranceDeduction
}

// Bonus is gross pay beyond salary and perks. Undefined until a salary has
// been entered.
func (p Paycheck) Bonus() (float64, bool) {
	if p.Salary == nil {
		return 0, false
	}
	return p.GrossPay - *p.Salary - deref(p.PerksPlus), true
}

// PaycheckTaxesWithheld excludes taxes withheld against stock awards.
func (p Paycheck) PaycheckTaxesWithheld() float64 {
	return p.TaxesWithheld - deref(p.StockAwardTaxes)
}

// SalaryPaycheckRatio is the salary-plus-perks share of gross pay.
// Undefined without a salary, and undefined when gross pay is zero: the
// degenerate division is reported as absent rather than leaking NaN or Inf
// into downstream sums.
func (p Paycheck) SalaryPaycheckRatio() (float64, bool) {
	if p.Salary == nil || p.GrossPay == 0 {
		return 0, false
	}
	return (*p.Salary + deref(p.PerksPlus)) / p.GrossPay, true
}

// EstSalaryTaxesWithheld apportions paycheck taxes to the salary share.
func (p Paycheck) EstSalaryTaxesWithheld() (float64, bool) {
	ratio, ok := p.SalaryPaycheckRatio()
	if !ok {
		return 0, false
	}
	return ratio * p.PaycheckTaxesWithheld(), true
}

// EstBonusTaxesWithheld is the remainder of paycheck taxes after the salary
// share.
func (p Paycheck) EstBonusTaxesWithheld() (float64, bool) {
	est, ok := p.EstSalaryTaxesWithheld()
	if !ok {
		return 0, false
	}
	return p.PaycheckTaxesWithheld() - est, true
}

// BonusNetPay contributes zero when the bonus is undefined.
func (p Paycheck) BonusNetPay() float64 {
	bonus, ok := p.Bonus()
	if !ok {
		return 0
	}
	est, _ := p.EstBonusTaxesWithheld()
	return bonus - est
}

func (p Paycheck) NonBonusNetPay() float64 {
	return p.NetPay - p.BonusNetPay()
}

func (p Paycheck) NonStockAfterTaxDeductions() float64 {
	return p.AfterTaxDeductions - p.StockVesting() + deref(p.StockAwardTaxes)
}

func (p Paycheck) NonInvestmentAfterTaxDeductions() float64 {
	return p.Constants.DisabilityInsuranceDeduction +
		p.Constants.LegalPlanDeduction +
		p.Constants.GivingDeduction
}

func (p Paycheck) InvestmentAfterTaxDeductions() float64 {
	return p.NonStockAfterTaxDeductions() - p.NonInvestmentAfterTaxDeductions()
}

// ESPP is the employee stock purchase contribution, a fixed rate of gross
// pay excluding perks.
func (p Paycheck) ESPP() float64 {
	return (p.GrossPay - deref(p.PerksPlus)) * p.Constants.ESPPRate
}

func (p Paycheck) RothIRA() float64 {
	return p.InvestmentAfterTaxDeductions() - p.ESPP()
}

func (p Paycheck) NetStockVestings() float64 {
	return p.StockVesting() - deref(p.StockAwardTaxes)
}
