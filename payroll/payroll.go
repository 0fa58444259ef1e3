/*
Package payroll aggregates per-employee pay across a restaurant and a
date range.

PURPOSE:
  Two call sites consume labor cost: the dashboard (actual and scheduled
  cost views) and the payroll pay run. Both are thin shapes over the same
  pipeline — punch parsing, overtime splitting, and the per-compensation
  pay formulas in the labor package — so for the same inputs restated in
  either shape the totals match to the cent.

DAY BUCKETING:
  Every calendar day of the requested range appears in the output, zero
  valued when idle. A work period's cost lands on its start-of-day even
  when the shift crosses midnight. Daily allocations are floored per day
  with the rounding remainder on the last costed day, so the day rows
  always sum exactly to the period totals.

SEE ALSO:
  - daily.go: Per-day cost allocation
*/
package payroll

import (
	"time"

	"github.com/tably/labor-engine/labor"
)

// =============================================================================
// TYPES
// =============================================================================

// Shift is a scheduled (not worked) interval, used for projected cost.
type Shift struct {
	ID           string
	EmployeeID   string
	RestaurantID string
	Start        time.Time
	End          time.Time
}

// EmployeeInputs carries the per-employee data for one pay run.
type EmployeeInputs struct {
	Punches          []labor.TimePunch
	TipsCents        int64
	TipsPaidOutCents int64
	ManualPayments   []labor.ManualPayment
}

// PayrollPeriod is a full pay run: one result per employee plus the
// day-bucketed cost rows. TotalLaborCostCents sums gross pay (tips owed
// excluded; customers fund those); TotalPayCents sums what actually goes
// out the door.
type PayrollPeriod struct {
	Period    labor.Period
	Employees []labor.EmployeePayResult
	Days      []DailyCost

	TotalLaborCostCents int64
	TotalPayCents       int64
	TotalHours          float64
}

// LaborCost is the dashboard view: period totals plus the daily rows,
// without the per-employee pay breakdowns.
type LaborCost struct {
	Period labor.Period
	Days   []DailyCost

	TotalCostCents   int64
	TotalHours       float64
	IncompleteShifts []labor.IncompleteShift
}

// =============================================================================
// PAY RUN
// =============================================================================

// CalculatePayrollPeriod runs the full pay pipeline for every employee and
// buckets the resulting cost by day. Employees with zero punches still
// appear: salary and interval contractors carry their pro-rated allocation
// regardless of punch activity. A nil rules pointer means the federal
// defaults.
func CalculatePayrollPeriod(p labor.Period, employees []labor.Employee, inputs map[string]EmployeeInputs, rules *labor.OvertimeRules) PayrollPeriod {
	out := PayrollPeriod{
		Period:    p,
		Employees: make([]labor.EmployeePayResult, 0, len(employees)),
		Days:      emptyDailyCosts(p),
	}

	for _, emp := range employees {
		in := inputs[emp.ID]
		result := labor.CalculateEmployeePay(labor.PayInput{
			Employee:         emp,
			Punches:          in.Punches,
			Period:           p,
			TipsCents:        in.TipsCents,
			TipsPaidOutCents: in.TipsPaidOutCents,
			ManualPayments:   in.ManualPayments,
			Rules:            rules,
		})
		out.Employees = append(out.Employees, result)

		out.TotalLaborCostCents += result.GrossPayCents
		out.TotalPayCents += result.TotalPayCents
		out.TotalHours += result.RegularHours + result.OvertimeHours

		bucketEmployeeCost(out.Days, p, emp, in.Punches, result)
	}

	return out
}

// =============================================================================
// DASHBOARD CALL SITES
// =============================================================================

// CalculateActualLaborCost computes the punch-driven cost view for the
// dashboard. Punches may cover the whole restaurant; they are grouped by
// employee here and pushed through the same pipeline as the pay run.
func CalculateActualLaborCost(employees []labor.Employee, punches []labor.TimePunch, p labor.Period, rules *labor.OvertimeRules) LaborCost {
	byEmployee := make(map[string]EmployeeInputs)
	for _, punch := range punches {
		in := byEmployee[punch.EmployeeID]
		in.Punches = append(in.Punches, punch)
		byEmployee[punch.EmployeeID] = in
	}
	return laborCostView(CalculatePayrollPeriod(p, employees, byEmployee, rules))
}

// CalculateScheduledLaborCost projects cost from the schedule instead of
// punches. Each shift becomes a synthetic clock_in/clock_out pair, so the
// projection runs through the exact same parser, overtime, and pay math as
// the actual view.
func CalculateScheduledLaborCost(shifts []Shift, employees []labor.Employee, p labor.Period, rules *labor.OvertimeRules) LaborCost {
	byEmployee := make(map[string]EmployeeInputs)
	for _, s := range shifts {
		in := byEmployee[s.EmployeeID]
		in.Punches = append(in.Punches,
			labor.TimePunch{
				ID:         s.ID + ":in",
				EmployeeID: s.EmployeeID,
				Type:       labor.PunchClockIn,
				At:         s.Start,
				ShiftID:    s.ID,
			},
			labor.TimePunch{
				ID:         s.ID + ":out",
				EmployeeID: s.EmployeeID,
				Type:       labor.PunchClockOut,
				At:         s.End,
				ShiftID:    s.ID,
			},
		)
		byEmployee[s.EmployeeID] = in
	}
	return laborCostView(CalculatePayrollPeriod(p, employees, byEmployee, rules))
}

func laborCostView(run PayrollPeriod) LaborCost {
	cost := LaborCost{
		Period:         run.Period,
		Days:           run.Days,
		TotalCostCents: run.TotalLaborCostCents,
		TotalHours:     run.TotalHours,
	}
	for _, result := range run.Employees {
		cost.IncompleteShifts = append(cost.IncompleteShifts, result.IncompleteShifts...)
	}
	return cost
}
