package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// HourlyRate derives the hour value from a daily value assuming an
// eight-hour workday.
func HourlyRate(daily decimal.Decimal) decimal.Decimal {
	if daily.IsZero() {
		return decimal.Zero
	}
	return daily.Div(decimal.NewFromInt(workdayHours))
}

// OvertimeValue prices overtime hours at the hourly rate plus the given
// percentage uplift.
func OvertimeValue(hourly, hours, percent decimal.Decimal) decimal.Decimal {
	uplift := decimal.NewFromInt(1).Add(percent.Div(hundred))
	return hourly.Mul(hours).Mul(uplift)
}

// DaysInMonth returns the calendar length of the month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BusinessDays counts Monday to Friday days from startDay through the end
// of the month, both ends inclusive.
func BusinessDays(year int, month time.Month, startDay int) int {
	last := DaysInMonth(year, month)
	count := 0
	for day := startDay; day <= last; day++ {
		switch time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
