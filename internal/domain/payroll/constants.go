package payroll

import "github.com/shopspring/decimal"

// Line labels, kept exactly as rendered on the holerite.
const (
	LabelGrossSalary      = "Salário Bruto"
	LabelBaseSalary       = "Salário Base"
	LabelOvertime         = "Horas Extras"
	LabelINSS             = "INSS"
	LabelIRRF             = "IRRF"
	LabelAlimony          = "Pensão Alimentícia"
	LabelTransportVoucher = "Vale Transporte"
	LabelMealVoucher      = "Vale Refeição"
	LabelFoodVoucher      = "Vale Alimentação"
	LabelLateness         = "Atraso"
	LabelAbsences         = "Faltas"
	LabelRevenue          = "Faturamento"
	LabelIRPJ             = "IRPJ (15%)"
	LabelCSLL             = "CSLL (9%)"
	LabelPISCOFINS        = "PIS/COFINS (6,5%)"
	LabelISS              = "ISS (3,5%)"
	LabelDAS              = "DAS (mensal)"
)

const workdayHours = 8

// Policy constants. Exact values are load-bearing for rendered output.
var (
	// Employee share of proportional meal/food voucher cost.
	voucherSplitFactor = decimal.RequireFromString("0.2")

	// Transport voucher percent ceiling; also the default when no percent
	// is supplied.
	transportPercentCap = decimal.NewFromInt(6)
)

// PJ statutory rates applied directly to revenue.
var (
	rateIRPJ      = decimal.RequireFromString("0.15")
	rateCSLL      = decimal.RequireFromString("0.09")
	ratePISCOFINS = decimal.RequireFromString("0.065")
	rateISS       = decimal.RequireFromString("0.035")
)

// MEI fixed monthly DAS components.
var (
	meiINSS = decimal.RequireFromString("75.90")
	meiICMS = decimal.RequireFromString("1.00")
	meiISS  = decimal.RequireFromString("5.00")
)

var (
	hundred = decimal.NewFromInt(100)
	sixty   = decimal.NewFromInt(60)
)
