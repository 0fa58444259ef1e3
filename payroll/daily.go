/*
daily.go - Per-day cost allocation

PURPOSE:
  Spreads each employee's period-level pay across the calendar days of the
  period so the day rows reconcile exactly with the period totals. The
  weight per day depends on the compensation type:

    hourly:      that day's worked hours
    daily_rate:  1 per day with at least one valid work period
    salary:      1 per employment-active day
    contractor:  1 per active day (interval); per-job has no formula pay
    manual:      attributed directly to the payment's day

  Each day's allocation is floored; the rounding remainder lands on the
  last day that carries weight, which keeps sum(days) == period total.
*/
package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/tably/labor-engine/labor"
)

// DailyCost is one calendar day's aggregate cost. Days with no activity
// stay zero valued but are always present in the output.
type DailyCost struct {
	Day       string // "2006-01-02"
	CostCents int64
	Hours     float64
}

func emptyDailyCosts(p labor.Period) []DailyCost {
	days := p.Days()
	out := make([]DailyCost, len(days))
	for i, day := range days {
		out[i] = DailyCost{Day: labor.DayKey(day)}
	}
	return out
}

// bucketEmployeeCost spreads one employee's pay over the day rows in place.
func bucketEmployeeCost(days []DailyCost, p labor.Period, emp labor.Employee, punches []labor.TimePunch, result labor.EmployeePayResult) {
	index := make(map[string]int, len(days))
	for i, d := range days {
		index[d.Day] = i
	}

	parsed := labor.ParseWorkPeriods(labor.FilterPunchesToPeriod(punches, p))
	dailyHours := labor.DailyWorkedHours(parsed.Periods)

	weights := make([]float64, len(days))
	switch emp.Compensation {
	case labor.CompHourly:
		for key, hours := range dailyHours {
			if i, ok := index[key]; ok {
				weights[i] = hours
			}
		}
	case labor.CompDailyRate:
		for _, wp := range parsed.Periods {
			if wp.IsBreak {
				continue
			}
			if i, ok := index[labor.DayKey(wp.Start)]; ok {
				weights[i] = 1
			}
		}
	case labor.CompSalary, labor.CompContractor:
		// Per-job contractors have no formula pay; the zero weights below
		// allocate zero and their manual payments land by date.
		for i, day := range p.Days() {
			if labor.ActiveOn(emp, day) {
				weights[i] = 1
			}
		}
	}

	formulaCents := result.GrossPayCents - result.ManualPaymentsTotalCents
	for i, cents := range allocateByWeight(formulaCents, weights) {
		days[i].CostCents += cents
	}

	for _, mp := range result.ManualPayments {
		if i, ok := index[labor.DayKey(mp.PaidAt)]; ok {
			days[i].CostCents += mp.AmountCents
		}
	}

	for key, hours := range dailyHours {
		if i, ok := index[key]; ok {
			days[i].Hours += hours
		}
	}
}

// allocateByWeight splits totalCents proportionally to weights, flooring
// each share and giving the remainder to the LAST positive-weight slot so
// the shares always sum to totalCents exactly. All-zero weights only occur
// alongside a zero total.
func allocateByWeight(totalCents int64, weights []float64) []int64 {
	out := make([]int64, len(weights))
	if len(weights) == 0 || totalCents == 0 {
		return out
	}

	var totalWeight float64
	last := -1
	for i, w := range weights {
		totalWeight += w
		if w > 0 {
			last = i
		}
	}
	if totalWeight == 0 {
		return out
	}

	totalDec := decimal.NewFromInt(totalCents)
	weightDec := decimal.NewFromFloat(totalWeight)
	var allocated int64
	for i, w := range weights {
		if w == 0 || i == last {
			continue
		}
		cents := totalDec.
			Mul(decimal.NewFromFloat(w)).
			Div(weightDec).
			Floor().
			IntPart()
		out[i] = cents
		allocated += cents
	}
	out[last] = totalCents - allocated
	return out
}
