package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func june2025() Period {
	return Period{Year: 2025, Month: time.June}
}

func noPrompts() Prompts {
	return Prompts{}
}

func activityPrompt(a Activity) Prompts {
	return Prompts{MeiActivity: func() (Activity, bool) { return a, true }}
}

func startDayPrompt(day int) Prompts {
	return Prompts{StartDay: func(lastDay int) (int, bool) { return day, true }}
}

func labels(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Label)
	}
	return out
}

func amountOf(t *testing.T, lines []Line, label string) decimal.Decimal {
	t.Helper()
	for _, l := range lines {
		if l.Label == label {
			return l.Amount
		}
	}
	t.Fatalf("no line labelled %q", label)
	return decimal.Zero
}

func TestCalculateCLTMonthlyTotalNoExtras(t *testing.T) {
	// R$3000 monthly total in a 30-day month, no extras, default
	// proportional transport voucher.
	in := Input{
		Contract:  ContractCLT,
		PayMode:   PayModeMonthlyTotal,
		Period:    june2025(),
		Scope:     ScopeFullMonth,
		BaseValue: dec("3000"),
	}

	slip, err := Calculate(in, noPrompts())
	require.NoError(t, err)

	assert.Equal(t, []string{LabelGrossSalary, LabelBaseSalary}, labels(slip.Earnings))
	assert.Equal(t, []string{LabelINSS, LabelIRRF, LabelTransportVoucher}, labels(slip.Deductions))

	assert.True(t, amountOf(t, slip.Deductions, LabelINSS).Equal(dec("247.23")))
	assert.True(t, amountOf(t, slip.Deductions, LabelIRRF).Equal(dec("24.29775")))
	assert.True(t, amountOf(t, slip.Deductions, LabelTransportVoucher).Equal(dec("180")))

	assert.True(t, slip.TotalEarnings.Equal(dec("3000")))
	assert.True(t, slip.TotalDeductions.Equal(dec("451.52775")))
	assert.True(t, slip.Net.Equal(dec("2548.47225")))
}

func TestCalculateCLTDailyWithExtras(t *testing.T) {
	in := Input{
		Contract:        ContractCLT,
		PayMode:         PayModeDaily,
		Period:          june2025(),
		Scope:           ScopeFullMonth,
		BaseValue:       dec("240"),
		OvertimeHours:   dec("2"),
		OvertimePercent: dec("50"),
		LatenessHours:   dec("1"),
		LatenessMinutes: dec("30"),
		AbsenceDays:     dec("1"),
	}

	slip, err := Calculate(in, noPrompts())
	require.NoError(t, err)

	// Salary 7200 plus overtime: 2h at 30/h with 50% uplift = 90.
	assert.Equal(t, []string{LabelGrossSalary, LabelBaseSalary, LabelOvertime}, labels(slip.Earnings))
	assert.True(t, amountOf(t, slip.Earnings, LabelGrossSalary).Equal(dec("7290")))
	assert.True(t, amountOf(t, slip.Earnings, LabelBaseSalary).Equal(dec("7200")))
	assert.True(t, amountOf(t, slip.Earnings, LabelOvertime).Equal(dec("90")))

	assert.Equal(t,
		[]string{LabelINSS, LabelIRRF, LabelTransportVoucher, LabelLateness, LabelAbsences},
		labels(slip.Deductions))
	assert.True(t, amountOf(t, slip.Deductions, LabelINSS).Equal(dec("768.21")))
	assert.True(t, amountOf(t, slip.Deductions, LabelLateness).Equal(dec("45")))
	assert.True(t, amountOf(t, slip.Deductions, LabelAbsences).Equal(dec("240")))
	assert.True(t, amountOf(t, slip.Deductions, LabelTransportVoucher).Equal(dec("437.40")))
}

func TestCalculateCLTProportionalVouchers(t *testing.T) {
	// June 2025 has 21 business days; proportional vouchers charge the
	// employee 20% of dailyValue * businessDays.
	in := Input{
		Contract:    ContractCLT,
		PayMode:     PayModeMonthlyTotal,
		Period:      june2025(),
		Scope:       ScopeFullMonth,
		BaseValue:   dec("3000"),
		MealVoucher: VoucherElection{Mode: ElectionProportional, DailyValue: dec("25")},
		FoodVoucher: VoucherElection{Mode: ElectionProportional, DailyValue: dec("20")},
	}

	slip, err := Calculate(in, noPrompts())
	require.NoError(t, err)

	assert.True(t, amountOf(t, slip.Deductions, LabelMealVoucher).Equal(dec("105")))
	assert.True(t, amountOf(t, slip.Deductions, LabelFoodVoucher).Equal(dec("84")))
}

func TestCalculateCLTFixedVouchersIgnoreDailyValues(t *testing.T) {
	// Fixed elections win even when daily values were also supplied.
	in := Input{
		Contract:    ContractCLT,
		PayMode:     PayModeMonthlyTotal,
		Period:      june2025(),
		Scope:       ScopeFullMonth,
		BaseValue:   dec("2000"),
		MealVoucher: VoucherElection{Mode: ElectionFixed, FixedAmount: dec("150"), DailyValue: dec("25")},
		Transport:   TransportElection{Mode: ElectionFixed, FixedAmount: dec("200"), Percent: dec("5")},
	}

	slip, err := Calculate(in, noPrompts())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{LabelINSS, LabelIRRF, LabelTransportVoucher, LabelMealVoucher},
		labels(slip.Deductions))
	assert.True(t, amountOf(t, slip.Deductions, LabelTransportVoucher).Equal(dec("200")))
	assert.True(t, amountOf(t, slip.Deductions, LabelMealVoucher).Equal(dec("150")))
	assert.True(t, amountOf(t, slip.Deductions, LabelINSS).Equal(dec("150")))
	assert.True(t, amountOf(t, slip.Deductions, LabelIRRF).IsZero())
	assert.True(t, slip.Net.Equal(dec("1500")))
}

func TestCalculateCLTTransportPercentCapped(t *testing.T) {
	in := Input{
		Contract:  ContractCLT,
		PayMode:   PayModeMonthlyTotal,
		Period:    june2025(),
		Scope:     ScopeFullMonth,
		BaseValue: dec("1000"),
		Transport: TransportElection{Mode: ElectionProportional, Percent: dec("12")},
	}

	slip, err := Calculate(in, noPrompts())
	require.NoError(t, err)

	// 12% is capped to 6% of gross.
	assert.True(t, amountOf(t, slip.Deductions, LabelTransportVoucher).Equal(dec("60")))
}

func TestCalculateCLTOvertimeRequiresPercent(t *testing.T) {
	in := Input{
		Contract:      ContractCLT,
		PayMode:       PayModeMonthlyTotal,
		Period:        june2025(),
		Scope:         ScopeFullMonth,
		BaseValue:     dec("3000"),
		OvertimeHours: dec("2"),
	}

	slip, err := Calculate(in, noPrompts())
	require.Nil(t, slip)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "overtimePercent", verr.Field)
}

func TestCalculateCLTAlimonyPercent(t *testing.T) {
	in := Input{
		Contract:  ContractCLT,
		PayMode:   PayModeMonthlyTotal,
		Period:    june2025(),
		Scope:     ScopeFullMonth,
		BaseValue: dec("3000"),
		Alimony:   Alimony{Mode: AlimonyPercent, Value: dec("10")},
	}

	slip, err := Calculate(in, noPrompts())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{LabelINSS, LabelIRRF, LabelAlimony, LabelTransportVoucher},
		labels(slip.Deductions))
	assert.True(t, amountOf(t, slip.Deductions, LabelAlimony).Equal(dec("300")))
}

func TestCalculatePJ(t *testing.T) {
	// R$10000 daily over a 30-day month.
	in := Input{
		Contract:  ContractPJ,
		PayMode:   PayModeDaily,
		Period:    june2025(),
		Scope:     ScopeFullMonth,
		BaseValue: dec("10000"),
	}

	slip, err := Calculate(in, noPrompts())
	require.NoError(t, err)

	assert.Equal(t, []string{LabelRevenue}, labels(slip.Earnings))
	assert.True(t, slip.TotalEarnings.Equal(dec("300000")))

	assert.Equal(t, []string{LabelIRPJ, LabelCSLL, LabelPISCOFINS, LabelISS}, labels(slip.Deductions))
	assert.True(t, amountOf(t, slip.Deductions, LabelIRPJ).Equal(dec("45000")))
	assert.True(t, amountOf(t, slip.Deductions, LabelCSLL).Equal(dec("27000")))
	assert.True(t, amountOf(t, slip.Deductions, LabelPISCOFINS).Equal(dec("19500")))
	assert.True(t, amountOf(t, slip.Deductions, LabelISS).Equal(dec("10500")))

	assert.True(t, slip.TotalDeductions.Equal(dec("102000")))
	assert.True(t, slip.Net.Equal(dec("198000")))
}

func TestCalculatePJWithAlimony(t *testing.T) {
	in := Input{
		Contract:  ContractPJ,
		PayMode:   PayModeMonthlyTotal,
		Period:    june2025(),
		Scope:     ScopeFullMonth,
		BaseValue: dec("10000"),
		Alimony:   Alimony{Mode: AlimonyFixed, Value: dec("500")},
	}

	slip, err := Calculate(in, noPrompts())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{LabelIRPJ, LabelCSLL, LabelPISCOFINS, LabelISS, LabelAlimony},
		labels(slip.Deductions))
	assert.True(t, amountOf(t, slip.Deductions, LabelAlimony).Equal(dec("500")))
}

func TestCalculateMEI(t *testing.T) {
	tests := []struct {
		name     string
		activity Activity
		das      string
		net      string
	}{
		{"commerce and industry", ActivityCommerceIndustry, "76.90", "4923.10"},
		{"services", ActivityServices, "80.90", "4919.10"},
		{"both", ActivityBoth, "81.90", "4918.10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := Input{
				Contract:  ContractMEI,
				PayMode:   PayModeMonthlyTotal,
				Period:    june2025(),
				Scope:     ScopeFullMonth,
				BaseValue: dec("5000"),
			}

			slip, err := Calculate(in, activityPrompt(tc.activity))
			require.NoError(t, err)

			assert.Equal(t, []string{LabelRevenue}, labels(slip.Earnings))
			assert.Equal(t, []string{LabelDAS}, labels(slip.Deductions))
			assert.True(t, amountOf(t, slip.Deductions, LabelDAS).Equal(dec(tc.das)))
			assert.True(t, slip.Net.Equal(dec(tc.net)))
		})
	}
}

func TestCalculateMEICancelled(t *testing.T) {
	in := Input{
		Contract:  ContractMEI,
		PayMode:   PayModeMonthlyTotal,
		Period:    june2025(),
		Scope:     ScopeFullMonth,
		BaseValue: dec("5000"),
	}

	cancelled := Prompts{MeiActivity: func() (Activity, bool) { return 0, false }}
	slip, err := Calculate(in, cancelled)
	assert.Nil(t, slip)
	assert.ErrorIs(t, err, ErrCancelled)

	// A missing prompt is the same as a cancelled one.
	slip, err = Calculate(in, noPrompts())
	assert.Nil(t, slip)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestCalculateMEIInvalidActivity(t *testing.T) {
	in := Input{
		Contract:  ContractMEI,
		PayMode:   PayModeMonthlyTotal,
		Period:    june2025(),
		Scope:     ScopeFullMonth,
		BaseValue: dec("5000"),
	}

	slip, err := Calculate(in, activityPrompt(Activity(9)))
	require.Nil(t, slip)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCalculateFromDay(t *testing.T) {
	in := Input{
		Contract:  ContractCLT,
		PayMode:   PayModeDaily,
		Period:    june2025(),
		Scope:     ScopeFromDay,
		BaseValue: dec("100"),
	}

	slip, err := Calculate(in, startDayPrompt(16))
	require.NoError(t, err)

	// 15 remaining days at R$100.
	assert.True(t, amountOf(t, slip.Earnings, LabelBaseSalary).Equal(dec("1500")))
}

func TestCalculateFromDayCancelled(t *testing.T) {
	in := Input{
		Contract:  ContractCLT,
		PayMode:   PayModeDaily,
		Period:    june2025(),
		Scope:     ScopeFromDay,
		BaseValue: dec("100"),
	}

	cancelled := Prompts{StartDay: func(lastDay int) (int, bool) { return 0, false }}
	slip, err := Calculate(in, cancelled)
	assert.Nil(t, slip)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestCalculateFromDayOutOfRange(t *testing.T) {
	in := Input{
		Contract:  ContractCLT,
		PayMode:   PayModeDaily,
		Period:    june2025(),
		Scope:     ScopeFromDay,
		BaseValue: dec("100"),
	}

	slip, err := Calculate(in, startDayPrompt(40))
	require.Nil(t, slip)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "startDay", verr.Field)
}

func TestCalculateFromDayRequiresDailyMode(t *testing.T) {
	in := Input{
		Contract:  ContractCLT,
		PayMode:   PayModeMonthlyTotal,
		Period:    june2025(),
		Scope:     ScopeFromDay,
		BaseValue: dec("3000"),
	}

	slip, err := Calculate(in, startDayPrompt(10))
	require.Nil(t, slip)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "scope", verr.Field)
}

func TestCalculateRejectsBadPeriod(t *testing.T) {
	in := Input{
		Contract:  ContractCLT,
		PayMode:   PayModeMonthlyTotal,
		Scope:     ScopeFullMonth,
		BaseValue: dec("3000"),
	}

	in.Period = Period{Year: 25, Month: time.June}
	_, err := Calculate(in, noPrompts())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "year", verr.Field)

	in.Period = Period{Year: 2025, Month: 13}
	_, err = Calculate(in, noPrompts())
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "month", verr.Field)
}

func TestCalculateIdempotent(t *testing.T) {
	in := Input{
		Contract:        ContractCLT,
		PayMode:         PayModeDaily,
		Period:          june2025(),
		Scope:           ScopeFullMonth,
		BaseValue:       dec("253.17"),
		OvertimeHours:   dec("3.5"),
		OvertimePercent: dec("60"),
		MealVoucher:     VoucherElection{Mode: ElectionProportional, DailyValue: dec("27.30")},
		Alimony:         Alimony{Mode: AlimonyPercent, Value: dec("12.5")},
	}

	first, err := Calculate(in, noPrompts())
	require.NoError(t, err)
	second, err := Calculate(in, noPrompts())
	require.NoError(t, err)

	require.Equal(t, labels(first.Earnings), labels(second.Earnings))
	require.Equal(t, labels(first.Deductions), labels(second.Deductions))
	for i := range first.Earnings {
		assert.True(t, first.Earnings[i].Amount.Equal(second.Earnings[i].Amount))
	}
	for i := range first.Deductions {
		assert.True(t, first.Deductions[i].Amount.Equal(second.Deductions[i].Amount))
	}
	assert.True(t, first.Net.Equal(second.Net))
}
