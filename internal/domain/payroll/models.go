package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	ContractCLT ContractType = "CLT"
	ContractPJ  ContractType = "PJ"
	ContractMEI ContractType = "MEI"
)

type PayMode string

const (
	PayModeDaily        PayMode = "daily"
	PayModeMonthlyTotal PayMode = "total"
)

type Scope string

const (
	ScopeFullMonth Scope = "month"
	ScopeFromDay   Scope = "from_day"
)

// Activity is the MEI activity answered through the prompt, not carried on Input.
type Activity int

const (
	ActivityCommerceIndustry Activity = 1
	ActivityServices         Activity = 2
	ActivityBoth             Activity = 3
)

type Period struct {
	Year  int
	Month time.Month
}

type ElectionMode string

const (
	ElectionFixed        ElectionMode = "fixed"
	ElectionProportional ElectionMode = "proportional"
)

// VoucherElection is a meal or food voucher choice. Exactly one branch is
// active: a fixed deduction amount, or a daily value scaled by business days.
type VoucherElection struct {
	Mode        ElectionMode
	FixedAmount decimal.Decimal
	DailyValue  decimal.Decimal
}

// TransportElection follows the same fixed/proportional split, but the
// proportional branch is a percentage of gross pay.
type TransportElection struct {
	Mode        ElectionMode
	FixedAmount decimal.Decimal
	Percent     decimal.Decimal
}

type AlimonyMode string

const (
	AlimonyNone    AlimonyMode = "none"
	AlimonyPercent AlimonyMode = "percent"
	AlimonyFixed   AlimonyMode = "fixed"
)

type Alimony struct {
	Mode  AlimonyMode
	Value decimal.Decimal
}

// Input is the validated, already-parsed request for one calculation.
// It is built by the transport layer; the engine never sees raw strings.
type Input struct {
	Contract  ContractType
	PayMode   PayMode
	Period    Period
	Scope     Scope
	BaseValue decimal.Decimal

	// CLT only.
	OvertimeHours   decimal.Decimal
	OvertimePercent decimal.Decimal
	LatenessHours   decimal.Decimal
	LatenessMinutes decimal.Decimal
	AbsenceDays     decimal.Decimal
	MealVoucher     VoucherElection
	FoodVoucher     VoucherElection
	Transport       TransportElection

	// All contract types.
	Alimony Alimony
}

type Line struct {
	Label  string
	Amount decimal.Decimal
}

// Payslip is the itemized result. Line order is insertion order and is
// significant for presentation only.
type Payslip struct {
	Earnings        []Line
	Deductions      []Line
	TotalEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
}

// Prompts are the follow-up questions the engine may need answered mid
// calculation. A false second return means the user cancelled; the engine
// then aborts with ErrCancelled and emits nothing.
type Prompts struct {
	StartDay    func(lastDay int) (int, bool)
	MeiActivity func() (Activity, bool)
}
