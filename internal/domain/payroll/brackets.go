package payroll

import "github.com/shopspring/decimal"

// BracketRow is one progressive-table entry: amounts are taxed at Rate with
// a fixed subtractive Deduction. UpperBound is the inclusive upper edge of
// the bracket; the last row of an ascending table applies to any remaining
// amount regardless of its UpperBound.
type BracketRow struct {
	UpperBound decimal.Decimal
	Rate       decimal.Decimal
	Deduction  decimal.Decimal
}

// BracketTable rows are ordered by strictly increasing UpperBound.
type BracketTable []BracketRow

// INSSTable is the social-security contribution table. The last row's
// UpperBound doubles as the contribution ceiling.
var INSSTable = BracketTable{
	{UpperBound: decimal.RequireFromString("1518.00"), Rate: decimal.RequireFromString("0.075"), Deduction: decimal.Zero},
	{UpperBound: decimal.RequireFromString("2793.88"), Rate: decimal.RequireFromString("0.09"), Deduction: decimal.RequireFromString("22.77")},
	{UpperBound: decimal.RequireFromString("4190.83"), Rate: decimal.RequireFromString("0.12"), Deduction: decimal.RequireFromString("106.59")},
	{UpperBound: decimal.RequireFromString("8157.41"), Rate: decimal.RequireFromString("0.14"), Deduction: decimal.RequireFromString("190.40")},
}

// IRRFTable is the income-tax withholding table. The final row has no upper
// bound.
var IRRFTable = BracketTable{
	{UpperBound: decimal.RequireFromString("2428.80"), Rate: decimal.Zero, Deduction: decimal.Zero},
	{UpperBound: decimal.RequireFromString("2826.65"), Rate: decimal.RequireFromString("0.075"), Deduction: decimal.RequireFromString("182.16")},
	{UpperBound: decimal.RequireFromString("3751.05"), Rate: decimal.RequireFromString("0.15"), Deduction: decimal.RequireFromString("394.16")},
	{UpperBound: decimal.RequireFromString("4664.68"), Rate: decimal.RequireFromString("0.225"), Deduction: decimal.RequireFromString("675.49")},
	{UpperBound: decimal.Zero, Rate: decimal.RequireFromString("0.275"), Deduction: decimal.RequireFromString("908.73")},
}

// ContributionFor runs the descending scan used for social security: the
// amount is first capped at the table ceiling, then the highest row whose
// UpperBound is strictly below the amount supplies rate and deduction.
// Amounts at or under the lowest bound pay the lowest rate with no
// deduction.
func (t BracketTable) ContributionFor(amount decimal.Decimal) decimal.Decimal {
	if len(t) == 0 {
		return decimal.Zero
	}
	ceiling := t[len(t)-1].UpperBound
	if amount.GreaterThan(ceiling) {
		amount = ceiling
	}
	for i := len(t) - 1; i >= 0; i-- {
		if amount.GreaterThan(t[i].UpperBound) {
			return amount.Mul(t[i].Rate).Sub(t[i].Deduction)
		}
	}
	return amount.Mul(t[0].Rate)
}

// WithholdingFor runs the ascending scan used for income tax: the first row
// whose UpperBound covers the base applies, the last row catching anything
// above the table. The result never goes below zero.
func (t BracketTable) WithholdingFor(base decimal.Decimal) decimal.Decimal {
	for i, row := range t {
		if i < len(t)-1 && base.GreaterThan(row.UpperBound) {
			continue
		}
		tax := base.Mul(row.Rate).Sub(row.Deduction)
		if tax.IsNegative() {
			return decimal.Zero
		}
		return tax
	}
	return decimal.Zero
}
