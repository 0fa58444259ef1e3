/*
pay.go - Per-employee pay computation

PURPOSE:
  Combines parsed work periods, overtime rules, and compensation-type
  formulas into a single EmployeePayResult for a period. This is the ONE
  place pay math lives: the dashboard labor-cost view and the payroll
  pay-run view both go through CalculateEmployeePay, which is what makes
  their totals reconcile to the cent.

COMPENSATION FORMULAS:
  hourly:     worked hours -> overtime split -> hours x rate, rounded once
  daily_rate: any day with at least one valid work period costs exactly one
              dailyRateAmount, regardless of hours worked that day
  salary:     salaryAmount pro-rated by active days / period days; hire and
              termination dates truncate to whole days, termination inclusive
  contractor: per_job pays only from manual payments in the window;
              otherwise salary-like using contractorPaymentAmount

TIPS:
  tipsOwed = max(0, totalTips - tipsPaidOut). totalPay = grossPay + tipsOwed;
  tips already paid out in cash never re-enter the payable total.

SEE ALSO:
  - parser.go: Work period parsing and anomaly detection
  - overtime.go: Hour splits
*/
package labor

import "time"

// =============================================================================
// PAY INPUT
// =============================================================================

// PayInput carries everything CalculateEmployeePay needs. ManualPayments,
// TipsPaidOutCents and Rules are optional: absent means no payments, zero
// paid out, and the federal default rules.
type PayInput struct {
	Employee Employee
	Punches  []TimePunch
	Period   Period

	TipsCents        int64
	TipsPaidOutCents int64

	ManualPayments []ManualPayment
	Rules          *OvertimeRules
}

// =============================================================================
// PAY COMPUTATION
// =============================================================================

// CalculateEmployeePay computes the full pay breakdown for one employee
// over one period. It is pure: identical inputs yield identical output.
func CalculateEmployeePay(in PayInput) EmployeePayResult {
	rules := DefaultOvertimeRules()
	if in.Rules != nil {
		rules = *in.Rules
	}

	parsed := ParseWorkPeriods(FilterPunchesToPeriod(in.Punches, in.Period))

	result := EmployeePayResult{
		EmployeeID:       in.Employee.ID,
		TotalTipsCents:   in.TipsCents,
		TipsPaidOutCents: in.TipsPaidOutCents,
		IncompleteShifts: parsed.IncompleteShifts,
	}

	manual := filterPaymentsToPeriod(in.ManualPayments, in.Period)
	result.ManualPayments = manual
	for _, mp := range manual {
		result.ManualPaymentsTotalCents += mp.AmountCents
	}

	switch in.Employee.Compensation {
	case CompHourly:
		split := hourlySplit(parsed.Periods, rules)
		result.RegularHours = split.RegularHours
		result.OvertimeHours = split.TotalOvertimeHours()
		result.RegularPayCents = HoursTimesRate(split.RegularHours, in.Employee.HourlyRateCents, 1)
		result.OvertimePayCents = overtimePayCents(split, in.Employee.HourlyRateCents, rules)

	case CompDailyRate:
		days := countWorkedDays(parsed.Periods, in.Period)
		result.DailyRatePayCents = int64(days) * in.Employee.DailyRateCents

	case CompSalary:
		result.SalaryPayCents = prorateAllocation(in.Employee.SalaryCents, in.Employee, in.Period)

	case CompContractor:
		if in.Employee.ContractorType == ContractorPerJob {
			// Pay comes only from manual payments; hours are irrelevant.
			break
		}
		result.ContractorPayCents = prorateAllocation(in.Employee.ContractorPayCents, in.Employee, in.Period)
	}

	result.TipsOwedCents = TipsOwed(in.TipsCents, in.TipsPaidOutCents)
	result.GrossPayCents = result.RegularPayCents + result.OvertimePayCents +
		result.SalaryPayCents + result.ContractorPayCents + result.DailyRatePayCents +
		result.ManualPaymentsTotalCents
	result.TotalPayCents = result.GrossPayCents + result.TipsOwedCents
	return result
}

// TipsOwed floors tips earned minus tips already paid out at zero.
func TipsOwed(tipsCents, paidOutCents int64) int64 {
	owed := tipsCents - paidOutCents
	if owed < 0 {
		return 0
	}
	return owed
}

// =============================================================================
// HOURLY
// =============================================================================

// hourlySplit buckets worked hours by day, groups days into workweeks, and
// applies the weekly overtime rules per week. Results sum across weeks.
func hourlySplit(periods []WorkPeriod, rules OvertimeRules) WeeklyOvertimeSplit {
	daily := DailyWorkedHours(periods)

	weeks := make(map[string]map[string]float64)
	for dayKey, hours := range daily {
		day, err := ParseDayKey(dayKey)
		if err != nil {
			continue
		}
		weekKey := DayKey(WeekStart(day))
		if weeks[weekKey] == nil {
			weeks[weekKey] = make(map[string]float64)
		}
		weeks[weekKey][dayKey] = hours
	}

	var total WeeklyOvertimeSplit
	for _, week := range weeks {
		split := CalculateWeeklyOvertime(week, rules)
		total.RegularHours += split.RegularHours
		total.WeeklyOvertimeHours += split.WeeklyOvertimeHours
		total.DailyOvertimeHours += split.DailyOvertimeHours
		total.DoubleTimeHours += split.DoubleTimeHours
	}
	return total
}

// overtimePayCents prices each overtime bucket at its own multiplier and
// rounds each bucket once at the final multiplication.
func overtimePayCents(split WeeklyOvertimeSplit, rateCents int64, rules OvertimeRules) int64 {
	var cents int64
	if split.WeeklyOvertimeHours > 0 {
		cents += HoursTimesRate(split.WeeklyOvertimeHours, rateCents, rules.WeeklyOTMultiplier)
	}
	if split.DailyOvertimeHours > 0 {
		cents += HoursTimesRate(split.DailyOvertimeHours, rateCents, rules.DailyOTMultiplier)
	}
	if split.DoubleTimeHours > 0 {
		cents += HoursTimesRate(split.DoubleTimeHours, rateCents, rules.DailyDoubleMultiplier)
	}
	return cents
}

// =============================================================================
// DAILY RATE
// =============================================================================

// countWorkedDays counts the distinct calendar days inside the period that
// have at least one valid (non-break) work period. Multiple shifts on the
// same day still count once; a 1-hour day and a 16-hour day count the same.
func countWorkedDays(periods []WorkPeriod, p Period) int {
	days := make(map[string]bool)
	for _, wp := range periods {
		if wp.IsBreak {
			continue
		}
		if p.ContainsDay(wp.Start) {
			days[DayKey(wp.Start)] = true
		}
	}
	return len(days)
}

// =============================================================================
// SALARY / CONTRACTOR PRO-RATION
// =============================================================================

// prorateAllocation spreads a period allocation evenly across the calendar
// days of the period, paying only the days the employee was active.
// Hire date truncates the front; termination truncates the back, inclusive
// of the termination day itself.
func prorateAllocation(amountCents int64, emp Employee, p Period) int64 {
	total := p.DayCount()
	if total == 0 {
		return 0
	}
	active := ActiveDayCount(emp, p)
	return ProrateCents(amountCents, active, total)
}

// ActiveDayCount counts the days of the period on which the employee is
// within their employment interval.
func ActiveDayCount(emp Employee, p Period) int {
	active := 0
	for _, day := range p.Days() {
		if ActiveOn(emp, day) {
			active++
		}
	}
	return active
}

// ActiveOn reports whether the employee is within their employment interval
// on the given day. Hire truncates the front; termination day itself still
// counts.
func ActiveOn(emp Employee, day time.Time) bool {
	if emp.HireDate != nil && day.Before(StartOfDay(*emp.HireDate)) {
		return false
	}
	if emp.TerminationDate != nil && day.After(StartOfDay(*emp.TerminationDate)) {
		return false
	}
	return true
}

func filterPaymentsToPeriod(payments []ManualPayment, p Period) []ManualPayment {
	var out []ManualPayment
	for _, mp := range payments {
		if p.ContainsInstant(mp.PaidAt) {
			out = append(out, mp)
		}
	}
	return out
}
