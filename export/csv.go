/*
Package export renders a pay run as CSV for download.

MONEY FORMATTING:
  All internal amounts are integer cents; division by 100 into "$X.XX"
  happens here at the boundary and nowhere else. Tips render as three
  separate columns (earned / paid / owed), never a combined figure, so
  the payroll reviewer can see the cash-payout history.
*/
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tably/labor-engine/labor"
	"github.com/tably/labor-engine/payroll"
)

var payrollHeader = []string{
	"Employee",
	"Regular Hours",
	"Overtime Hours",
	"Regular Pay",
	"Overtime Pay",
	"Salary",
	"Contractor Pay",
	"Daily Rate Pay",
	"Manual Payments",
	"Tips Earned",
	"Tips Paid",
	"Tips Owed",
	"Gross Pay",
	"Total Pay",
}

// WritePayrollCSV renders one row per employee plus a totals row. Employee
// names come from the roster; an employee missing from it falls back to
// their ID.
func WritePayrollCSV(w io.Writer, run payroll.PayrollPeriod, roster []labor.Employee) error {
	names := make(map[string]string, len(roster))
	for _, e := range roster {
		names[e.ID] = e.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(payrollHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	var totals labor.EmployeePayResult
	for _, r := range run.Employees {
		name := names[r.EmployeeID]
		if name == "" {
			name = r.EmployeeID
		}
		if err := cw.Write(payrollRow(name, r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}

		totals.RegularHours += r.RegularHours
		totals.OvertimeHours += r.OvertimeHours
		totals.RegularPayCents += r.RegularPayCents
		totals.OvertimePayCents += r.OvertimePayCents
		totals.SalaryPayCents += r.SalaryPayCents
		totals.ContractorPayCents += r.ContractorPayCents
		totals.DailyRatePayCents += r.DailyRatePayCents
		totals.ManualPaymentsTotalCents += r.ManualPaymentsTotalCents
		totals.TotalTipsCents += r.TotalTipsCents
		totals.TipsPaidOutCents += r.TipsPaidOutCents
		totals.TipsOwedCents += r.TipsOwedCents
		totals.GrossPayCents += r.GrossPayCents
		totals.TotalPayCents += r.TotalPayCents
	}

	if err := cw.Write(payrollRow("TOTAL", totals)); err != nil {
		return fmt.Errorf("write csv totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func payrollRow(name string, r labor.EmployeePayResult) []string {
	return []string{
		name,
		formatHours(r.RegularHours),
		formatHours(r.OvertimeHours),
		Dollars(r.RegularPayCents),
		Dollars(r.OvertimePayCents),
		Dollars(r.SalaryPayCents),
		Dollars(r.ContractorPayCents),
		Dollars(r.DailyRatePayCents),
		Dollars(r.ManualPaymentsTotalCents),
		Dollars(r.TotalTipsCents),
		Dollars(r.TipsPaidOutCents),
		Dollars(r.TipsOwedCents),
		Dollars(r.GrossPayCents),
		Dollars(r.TotalPayCents),
	}
}

// Dollars formats integer cents as "$X.XX". Negative amounts keep the sign
// in front of the dollar figure.
func Dollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
