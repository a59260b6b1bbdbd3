// Package service holds the operations that coordinate collections: bulk
// paste import, share-link encoding, and the cascading expense rename.
package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/moneyflow/internal/ledger"
	"github.com/jask/moneyflow/internal/model"
)

// Paste rows carry 9 tab-separated columns:
// payPeriodStart, payPeriodEnd, payDate, grossPay, adjustments,
// taxableEarnings, taxesWithheld, afterTaxDeductions, netPay.
// Payroll exports report the two withholding columns negated.
const paycheckColumns = 9

// ParseResult reports what a paste produced. Dropped counts rows rejected
// for a wrong column count or an unparsable cell; per spec the batch
// proceeds without them.
type ParseResult struct {
	Paychecks []model.Paycheck
	Dropped   int
}

// ParsePaycheckTable parses a pasted tab-separated paycheck table. Every
// paycheck in one paste shares the same constants copy.
func ParsePaycheckTable(table string, constants model.IncomeConstants) ParseResult {
	res := ParseResult{}
	for _, row := range strings.Split(table, "\n") {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		p, err := parsePaycheckRow(row, constants)
		if err != nil {
			res.Dropped++
			continue
		}
		res.Paychecks = append(res.Paychecks, p)
	}
	return res
}

func parsePaycheckRow(row string, constants model.IncomeConstants) (model.Paycheck, error) {
	cols := strings.Split(row, "\t")
	if len(cols) != paycheckColumns {
		return model.Paycheck{}, errColumnCount
	}

	start, err := parseTableDate(cols[0])
	if err != nil {
		return model.Paycheck{}, err
	}
	end, err := parseTableDate(cols[1])
	if err != nil {
		return model.Paycheck{}, err
	}
	date, err := parseTableDate(cols[2])
	if err != nil {
		return model.Paycheck{}, err
	}

	amounts := make([]float64, 6)
	for i, col := range cols[3:] {
		v, err := parseMoney(col)
		if err != nil {
			return model.Paycheck{}, err
		}
		amounts[i] = v
	}

	return model.Paycheck{
		Constants:          constants,
		Date:               date,
		PayPeriodStart:     start,
		PayPeriodEnd:       end,
		GrossPay:           amounts[0],
		Adjustments:        amounts[1],
		TaxableEarnings:    amounts[2],
		TaxesWithheld:      -amounts[3],
		AfterTaxDeductions: -amounts[4],
		NetPay:             amounts[5],
	}, nil
}

type parseError string

func (e parseError) Error() string { return string(e) }

const errColumnCount = parseError("wrong column count")

// parseTableDate handles the payroll export's "Jan 5, 2024" dates as well
// as already-ISO ones, returning ISO.
func parseTableDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"Jan 2, 2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", parseError("unrecognized date " + s)
}

// parseMoney strips currency formatting and parses exactly before the
// value enters float math.
func parseMoney(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// ApplyPaycheckTable syncs a parsed batch into the collection: every parsed
// row is upserted (keyed by pay date) and paychecks absent from the batch
// are removed, all under one transaction so subscribers see a single
// committed change.
func ApplyPaycheckTable(paychecks *ledger.Paychecks, rows []model.Paycheck) {
	inBatch := make(map[string]bool, len(rows))
	for _, row := range rows {
		inBatch[row.Date] = true
	}

	paychecks.Begin()
	for _, row := range rows {
		paychecks.Upsert(row)
	}
	for _, existing := range paychecks.Items() {
		if !inBatch[existing.Date] {
			paychecks.Remove(existing)
		}
	}
	paychecks.Commit()
}
