package payroll

import "github.com/shopspring/decimal"

// Calculate runs the pipeline for the input's contract type and returns the
// itemized payslip. It is synchronous and side-effect free: the only
// suspension points are the injected prompts, and a cancelled prompt aborts
// the whole calculation with ErrCancelled.
func Calculate(in Input, prompts Prompts) (*Payslip, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	days := DaysInMonth(in.Period.Year, in.Period.Month)

	salary, daysUsed, err := baseSalary(in, prompts, days)
	if err != nil {
		return nil, err
	}

	alimony := alimonyAmount(in.Alimony, salary)

	switch in.Contract {
	case ContractCLT:
		return calcCLT(in, salary, alimony, days, daysUsed)
	case ContractPJ:
		return calcPJ(salary, alimony), nil
	case ContractMEI:
		return calcMEI(salary, alimony, prompts)
	default:
		return nil, invalid("contractType", "unknown contract type")
	}
}

func validate(in Input) error {
	if in.Period.Year < 1000 || in.Period.Year > 9999 {
		return invalid("year", "must be a four digit year")
	}
	if in.Period.Month < 1 || in.Period.Month > 12 {
		return invalid("month", "must be between 1 and 12")
	}
	if in.BaseValue.IsNegative() {
		return invalid("value", "must not be negative")
	}
	if in.Scope == ScopeFromDay && in.PayMode != PayModeDaily {
		return invalid("scope", "start-day scope requires a daily value")
	}
	if in.Contract == ContractCLT {
		if in.OvertimeHours.IsNegative() || in.LatenessHours.IsNegative() ||
			in.LatenessMinutes.IsNegative() || in.AbsenceDays.IsNegative() {
			return invalid("hours", "must not be negative")
		}
		if in.OvertimeHours.IsPositive() && !in.OvertimePercent.IsPositive() {
			return invalid("overtimePercent", "percentage required when overtime hours given")
		}
	}
	if in.Alimony.Mode == AlimonyPercent &&
		(in.Alimony.Value.IsNegative() || in.Alimony.Value.GreaterThan(hundred)) {
		return invalid("alimony", "percent must be between 0 and 100")
	}
	if in.Alimony.Mode == AlimonyFixed && in.Alimony.Value.IsNegative() {
		return invalid("alimony", "amount must not be negative")
	}
	return nil
}

// baseSalary resolves the monthly pay and the day count it covers. The
// start-day prompt only fires for daily pay restricted to part of the month.
func baseSalary(in Input, prompts Prompts, days int) (decimal.Decimal, int, error) {
	if in.PayMode != PayModeDaily {
		return in.BaseValue, days, nil
	}
	if in.Scope != ScopeFromDay {
		return in.BaseValue.Mul(decimal.NewFromInt(int64(days))), days, nil
	}
	if prompts.StartDay == nil {
		return decimal.Zero, 0, ErrCancelled
	}
	start, ok := prompts.StartDay(days)
	if !ok {
		return decimal.Zero, 0, ErrCancelled
	}
	if start < 1 || start > days {
		return decimal.Zero, 0, invalid("startDay", "must be between 1 and the last day of the month")
	}
	used := days - start + 1
	return in.BaseValue.Mul(decimal.NewFromInt(int64(used))), used, nil
}

func alimonyAmount(a Alimony, salary decimal.Decimal) decimal.Decimal {
	switch a.Mode {
	case AlimonyPercent:
		return salary.Mul(a.Value).Div(hundred)
	case AlimonyFixed:
		return a.Value
	default:
		return decimal.Zero
	}
}

func calcCLT(in Input, salary, alimony decimal.Decimal, days, daysUsed int) (*Payslip, error) {
	daily := in.BaseValue
	if in.PayMode == PayModeMonthlyTotal {
		daily = salary.Div(decimal.NewFromInt(int64(daysUsed)))
	}
	hourly := HourlyRate(daily)

	overtime := decimal.Zero
	if in.OvertimeHours.IsPositive() {
		overtime = OvertimeValue(hourly, in.OvertimeHours, in.OvertimePercent)
	}

	lateness := hourly.Mul(in.LatenessHours.Add(in.LatenessMinutes.Div(sixty)))

	// Absences are valued at the full-month daily rate even when the pay
	// covers only part of the month.
	absenceDaily := in.BaseValue
	if in.PayMode == PayModeMonthlyTotal {
		absenceDaily = salary.Div(decimal.NewFromInt(int64(days)))
	}
	absences := absenceDaily.Mul(in.AbsenceDays)

	gross := salary.Add(overtime)
	inss := INSSTable.ContributionFor(gross)
	irrf := IRRFTable.WithholdingFor(gross.Sub(inss))

	transport := transportDeduction(in.Transport, gross)

	businessDays := BusinessDays(in.Period.Year, in.Period.Month, 1)
	meal := voucherDeduction(in.MealVoucher, businessDays)
	food := voucherDeduction(in.FoodVoucher, businessDays)

	slip := &Payslip{}
	slip.addEarning(LabelGrossSalary, gross)
	slip.addEarning(LabelBaseSalary, salary)
	if overtime.IsPositive() {
		slip.addEarning(LabelOvertime, overtime)
	}

	slip.addDeduction(LabelINSS, inss)
	slip.addDeduction(LabelIRRF, irrf)
	if alimony.IsPositive() {
		slip.addDeduction(LabelAlimony, alimony)
	}
	// Transport is always listed, even at zero.
	slip.addDeduction(LabelTransportVoucher, transport)
	if meal.IsPositive() {
		slip.addDeduction(LabelMealVoucher, meal)
	}
	if food.IsPositive() {
		slip.addDeduction(LabelFoodVoucher, food)
	}
	if lateness.IsPositive() {
		slip.addDeduction(LabelLateness, lateness)
	}
	if absences.IsPositive() {
		slip.addDeduction(LabelAbsences, absences)
	}

	slip.TotalEarnings = gross
	slip.TotalDeductions = inss.Add(irrf).Add(alimony).Add(transport).
		Add(meal).Add(food).Add(lateness).Add(absences)
	slip.Net = slip.TotalEarnings.Sub(slip.TotalDeductions)
	return slip, nil
}

func calcPJ(salary, alimony decimal.Decimal) *Payslip {
	irpj := salary.Mul(rateIRPJ)
	csll := salary.Mul(rateCSLL)
	pisCofins := salary.Mul(ratePISCOFINS)
	iss := salary.Mul(rateISS)

	slip := &Payslip{}
	slip.addEarning(LabelRevenue, salary)
	slip.addDeduction(LabelIRPJ, irpj)
	slip.addDeduction(LabelCSLL, csll)
	slip.addDeduction(LabelPISCOFINS, pisCofins)
	slip.addDeduction(LabelISS, iss)
	if alimony.IsPositive() {
		slip.addDeduction(LabelAlimony, alimony)
	}

	slip.TotalEarnings = salary
	slip.TotalDeductions = irpj.Add(csll).Add(pisCofins).Add(iss).Add(alimony)
	slip.Net = slip.TotalEarnings.Sub(slip.TotalDeductions)
	return slip
}

func calcMEI(salary, alimony decimal.Decimal, prompts Prompts) (*Payslip, error) {
	if prompts.MeiActivity == nil {
		return nil, ErrCancelled
	}
	activity, ok := prompts.MeiActivity()
	if !ok {
		return nil, ErrCancelled
	}

	das := meiINSS
	switch activity {
	case ActivityCommerceIndustry:
		das = das.Add(meiICMS)
	case ActivityServices:
		das = das.Add(meiISS)
	case ActivityBoth:
		das = das.Add(meiICMS).Add(meiISS)
	default:
		return nil, invalid("meiActivity", "must be 1, 2 or 3")
	}

	slip := &Payslip{}
	slip.addEarning(LabelRevenue, salary)
	slip.addDeduction(LabelDAS, das)
	if alimony.IsPositive() {
		slip.addDeduction(LabelAlimony, alimony)
	}

	slip.TotalEarnings = salary
	slip.TotalDeductions = das.Add(alimony)
	slip.Net = slip.TotalEarnings.Sub(slip.TotalDeductions)
	return slip, nil
}

func transportDeduction(t TransportElection, gross decimal.Decimal) decimal.Decimal {
	if t.Mode == ElectionFixed {
		return t.FixedAmount
	}
	percent := t.Percent
	if percent.IsZero() || percent.GreaterThan(transportPercentCap) {
		percent = transportPercentCap
	}
	return gross.Mul(percent).Div(hundred)
}

func voucherDeduction(v VoucherElection, businessDays int) decimal.Decimal {
	if v.Mode == ElectionFixed {
		return v.FixedAmount
	}
	return v.DailyValue.
		Mul(decimal.NewFromInt(int64(businessDays))).
		Mul(voucherSplitFactor)
}

func (p *Payslip) addEarning(label string, amount decimal.Decimal) {
	p.Earnings = append(p.Earnings, Line{Label: label, Amount: amount})
}

func (p *Payslip) addDeduction(label string, amount decimal.Decimal) {
	p.Deductions = append(p.Deductions, Line{Label: label, Amount: amount})
}
