package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConstants() IncomeConstants {
	return IncomeConstants{
		DisabilityInsuranceDeduction: 20,
		LegalPlanDeduction:           10,
		GivingDeduction:              5,
		ESPPRate:                     0.05,
	}
}

func testPaycheck() Paycheck {
	return Paycheck{
		Constants:          testConstants(),
		Date:               "2026-02-13",
		PayPeriodStart:     "2026-01-16",
		PayPeriodEnd:       "2026-01-31",
		GrossPay:           5000,
		Adjustments:        200,
		TaxableEarnings:    4800,
		TaxesWithheld:      1000,
		AfterTaxDeductions: 400,
		NetPay:             3700,
		Salary:             Float(4500),
		PerksPlus:          Float(0),
	}
}

func TestPaycheckDerivations(t *testing.T) {
	t.Parallel()
	p := testPaycheck()

	bonus, ok := p.Bonus()
	require.True(t, ok)
	require.InDelta(t, 500, bonus, 1e-6)

	require.InDelta(t, 180, p.StockVesting(), 1e-6)
	require.InDelta(t, 250, p.ESPP(), 1e-6)
	require.InDelta(t, 180, p.NetStockVestings(), 1e-6)

	ratio, ok := p.SalaryPaycheckRatio()
	require.True(t, ok)
	require.InDelta(t, 0.9, ratio, 1e-6)

	// the deduction chain down to rothIra
	require.InDelta(t, 220, p.NonStockAfterTaxDeductions(), 1e-6)
	require.InDelta(t, 35, p.NonInvestmentAfterTaxDeductions(), 1e-6)
	require.InDelta(t, 185, p.InvestmentAfterTaxDeductions(), 1e-6)
	require.InDelta(t, -65, p.RothIRA(), 1e-6)
	require.False(t, math.IsNaN(p.RothIRA()) || math.IsInf(p.RothIRA(), 0))
}

func TestBonusAndNonBonusNetPaySumToNetPay(t *testing.T) {
	t.Parallel()
	p := testPaycheck()
	require.InDelta(t, p.NetPay, p.BonusNetPay()+p.NonBonusNetPay(), 1e-6)
}

func TestNetStockVestingsIdentity(t *testing.T) {
	t.Parallel()
	p := testPaycheck()
	require.InDelta(t, p.StockVesting(), p.NetStockVestings(), 1e-6)

	p.StockAwardTaxes = Float(40)
	require.InDelta(t, p.StockVesting(), p.NetStockVestings()+40, 1e-6)
}

func TestMissingSalaryPropagatesAsAbsent(t *testing.T) {
	t.Parallel()
	p := testPaycheck()
	p.Salary = nil

	_, ok := p.Bonus()
	require.False(t, ok)
	_, ok = p.SalaryPaycheckRatio()
	require.False(t, ok)
	_, ok = p.EstSalaryTaxesWithheld()
	require.False(t, ok)
	_, ok = p.EstBonusTaxesWithheld()
	require.False(t, ok)

	// undefined bonus contributes zero, not NaN
	require.Zero(t, p.BonusNetPay())
	require.InDelta(t, p.NetPay, p.NonBonusNetPay(), 1e-6)
}

func TestZeroGrossPayWithSalaryIsSurfacedNotNaN(t *testing.T) {
	t.Parallel()
	p := testPaycheck()
	p.GrossPay = 0

	_, ok := p.SalaryPaycheckRatio()
	require.False(t, ok)

	for _, v := range []float64{p.BonusNetPay(), p.NonBonusNetPay(), p.ESPP(), p.RothIRA()} {
		require.False(t, math.IsNaN(v), "derived value must stay finite")
		require.False(t, math.IsInf(v, 0), "derived value must stay finite")
	}
}

func TestPaycheckJSONRoundTrip(t *testing.T) {
	t.Parallel()
	p := testPaycheck()
	p.StockAwardTaxes = Float(12.5)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got Paycheck
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, p, got)

	// optional fields stay absent through a round trip
	p.Salary = nil
	p.PerksPlus = nil
	p.StockAwardTaxes = nil
	data, err = json.Marshal(p)
	require.NoError(t, err)
	require.NotContains(t, string(data), "salary")

	var bare Paycheck
	require.NoError(t, json.Unmarshal(data, &bare))
	require.Nil(t, bare.Salary)
}
