package payrollhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"holerite/internal/domain/payroll"
	"holerite/internal/transport/http/api"
	"holerite/internal/transport/http/middleware"
	"holerite/internal/transport/http/shared"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Post("/calculate", h.handleCalculate)
		r.Post("/payslip/pdf", h.handlePayslipPDF)
	})
}

// The request mirrors the calculator form: numeric fields arrive as raw
// strings (comma decimals allowed, empty means zero) and the follow-up
// answers (startDay, meiActivity) ride along when the client has them.
// A required answer left out is treated as a cancelled prompt.
type calculateRequest struct {
	ContractType    string            `json:"contractType"`
	PayMode         string            `json:"payMode"`
	Month           string            `json:"month"`
	Year            string            `json:"year"`
	Value           string            `json:"value"`
	Scope           string            `json:"scope"`
	StartDay        *int              `json:"startDay,omitempty"`
	OvertimeHours   string            `json:"overtimeHours"`
	OvertimePercent string            `json:"overtimePercent"`
	LatenessHours   string            `json:"latenessHours"`
	LatenessMinutes string            `json:"latenessMinutes"`
	AbsenceDays     string            `json:"absenceDays"`
	MealVoucher     *voucherPayload   `json:"mealVoucher,omitempty"`
	FoodVoucher     *voucherPayload   `json:"foodVoucher,omitempty"`
	Transport       *transportPayload `json:"transportVoucher,omitempty"`
	Alimony         *alimonyPayload   `json:"alimony,omitempty"`
	MeiActivity     *int              `json:"meiActivity,omitempty"`
}

type voucherPayload struct {
	Fixed       bool   `json:"fixed"`
	FixedAmount string `json:"fixedAmount"`
	DailyValue  string `json:"dailyValue"`
}

type transportPayload struct {
	Fixed       bool   `json:"fixed"`
	FixedAmount string `json:"fixedAmount"`
	Percent     string `json:"percent"`
}

type alimonyPayload struct {
	Mode  string `json:"mode"`
	Value string `json:"value"`
}

type lineDTO struct {
	Label     string `json:"label"`
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
}

type payslipDTO struct {
	Earnings                 []lineDTO `json:"earnings"`
	Deductions               []lineDTO `json:"deductions"`
	TotalEarnings            string    `json:"totalEarnings"`
	TotalEarningsFormatted   string    `json:"totalEarningsFormatted"`
	TotalDeductions          string    `json:"totalDeductions"`
	TotalDeductionsFormatted string    `json:"totalDeductionsFormatted"`
	Net                      string    `json:"net"`
	NetFormatted             string    `json:"netFormatted"`
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	slip, ok := h.calculateFromRequest(w, r, reqID)
	if !ok {
		return
	}

	api.Success(w, toDTO(slip), reqID)
}

func (h *Handler) handlePayslipPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	slip, ok := h.calculateFromRequest(w, r, reqID)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := payroll.RenderPDF(&buf, slip); err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_error", "could not render payslip", reqID)
		return
	}

	filename := fmt.Sprintf("holerite-%s.pdf", uuid.NewString())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(buf.Bytes())
}

// calculateFromRequest parses the body, runs the engine and writes the
// error envelope itself when anything fails. The bool reports success.
func (h *Handler) calculateFromRequest(w http.ResponseWriter, r *http.Request, reqID string) (*payroll.Payslip, bool) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return nil, false
	}

	v := shared.NewValidator()
	in := parseInput(&req, v)
	if v.Reject(w, reqID) {
		return nil, false
	}

	slip, err := payroll.Calculate(in, promptsFrom(&req))
	if err != nil {
		writeCalcError(w, err, reqID)
		return nil, false
	}
	return slip, true
}

func parseInput(req *calculateRequest, v *shared.Validator) payroll.Input {
	v.Required("contractType", req.ContractType, "contract type is required")
	v.Enum("contractType", req.ContractType, []string{"CLT", "PJ", "MEI"}, "must be CLT, PJ or MEI")
	v.Enum("payMode", req.PayMode, []string{"daily", "total"}, "must be daily or total")
	v.Enum("scope", req.Scope, []string{"month", "fromDay"}, "must be month or fromDay")
	v.Required("value", req.Value, "value is required")
	v.Required("month", req.Month, "month is required")
	v.Required("year", req.Year, "year is required")
	if len(req.Year) != 0 && len(req.Year) != 4 {
		v.Add("year", "must be a four digit year")
	}

	in := payroll.Input{
		Contract: payroll.ContractType(req.ContractType),
		PayMode:  payroll.PayModeDaily,
		Scope:    payroll.ScopeFullMonth,
		Period: payroll.Period{
			Year:  v.Int("year", req.Year),
			Month: time.Month(v.Int("month", req.Month)),
		},
		BaseValue:       v.Decimal("value", req.Value),
		OvertimeHours:   v.Decimal("overtimeHours", req.OvertimeHours),
		OvertimePercent: v.Decimal("overtimePercent", req.OvertimePercent),
		LatenessHours:   v.Decimal("latenessHours", req.LatenessHours),
		LatenessMinutes: v.Decimal("latenessMinutes", req.LatenessMinutes),
		AbsenceDays:     v.Decimal("absenceDays", req.AbsenceDays),
	}
	if req.PayMode == "total" {
		in.PayMode = payroll.PayModeMonthlyTotal
	}
	if req.Scope == "fromDay" {
		in.Scope = payroll.ScopeFromDay
	}

	in.MealVoucher = voucherFrom(req.MealVoucher, "mealVoucher", v)
	in.FoodVoucher = voucherFrom(req.FoodVoucher, "foodVoucher", v)
	in.Transport = transportFrom(req.Transport, v)
	in.Alimony = alimonyFrom(req.Alimony, v)
	return in
}

func voucherFrom(p *voucherPayload, field string, v *shared.Validator) payroll.VoucherElection {
	if p == nil {
		return payroll.VoucherElection{Mode: payroll.ElectionProportional}
	}
	if p.Fixed {
		return payroll.VoucherElection{
			Mode:        payroll.ElectionFixed,
			FixedAmount: v.Decimal(field+".fixedAmount", p.FixedAmount),
			DailyValue:  v.Decimal(field+".dailyValue", p.DailyValue),
		}
	}
	return payroll.VoucherElection{
		Mode:       payroll.ElectionProportional,
		DailyValue: v.Decimal(field+".dailyValue", p.DailyValue),
	}
}

func transportFrom(p *transportPayload, v *shared.Validator) payroll.TransportElection {
	if p == nil {
		// The engine applies the 6% default for an unset percent.
		return payroll.TransportElection{Mode: payroll.ElectionProportional}
	}
	if p.Fixed {
		return payroll.TransportElection{
			Mode:        payroll.ElectionFixed,
			FixedAmount: v.Decimal("transportVoucher.fixedAmount", p.FixedAmount),
		}
	}
	return payroll.TransportElection{
		Mode:    payroll.ElectionProportional,
		Percent: v.Decimal("transportVoucher.percent", p.Percent),
	}
}

func alimonyFrom(p *alimonyPayload, v *shared.Validator) payroll.Alimony {
	if p == nil {
		return payroll.Alimony{Mode: payroll.AlimonyNone}
	}
	v.Enum("alimony.mode", p.Mode, []string{"percent", "fixed"}, "must be percent or fixed")
	mode := payroll.AlimonyPercent
	if p.Mode == "fixed" {
		mode = payroll.AlimonyFixed
	}
	return payroll.Alimony{Mode: mode, Value: v.Decimal("alimony.value", p.Value)}
}

func promptsFrom(req *calculateRequest) payroll.Prompts {
	prompts := payroll.Prompts{}
	if req.StartDay != nil {
		day := *req.StartDay
		prompts.StartDay = func(int) (int, bool) { return day, true }
	}
	if req.MeiActivity != nil {
		activity := payroll.Activity(*req.MeiActivity)
		prompts.MeiActivity = func() (payroll.Activity, bool) { return activity, true }
	}
	return prompts
}

func writeCalcError(w http.ResponseWriter, err error, reqID string) {
	var verr *payroll.ValidationError
	switch {
	case errors.As(err, &verr):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{
			{Field: verr.Field, Reason: verr.Reason},
		})
	case errors.Is(err, payroll.ErrCancelled):
		api.Fail(w, http.StatusUnprocessableEntity, "cancelled", "calculation cancelled", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "calculation failed", reqID)
	}
}

func toDTO(slip *payroll.Payslip) payslipDTO {
	return payslipDTO{
		Earnings:                 linesToDTO(slip.Earnings),
		Deductions:               linesToDTO(slip.Deductions),
		TotalEarnings:            slip.TotalEarnings.StringFixed(2),
		TotalEarningsFormatted:   payroll.FormatBRL(slip.TotalEarnings),
		TotalDeductions:          slip.TotalDeductions.StringFixed(2),
		TotalDeductionsFormatted: payroll.FormatBRL(slip.TotalDeductions),
		Net:                      slip.Net.StringFixed(2),
		NetFormatted:             payroll.FormatBRL(slip.Net),
	}
}

func linesToDTO(lines []payroll.Line) []lineDTO {
	out := make([]lineDTO, 0, len(lines))
	for _, line := range lines {
		out = append(out, lineDTO{
			Label:     line.Label,
			Amount:    line.Amount.StringFixed(2),
			Formatted: payroll.FormatBRL(line.Amount),
		})
	}
	return out
}
