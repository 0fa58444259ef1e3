package labor_test

import (
	"testing"
	"time"

	"github.com/tably/labor-engine/labor"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func janPeriod(startDay, endDay int) labor.Period {
	return labor.NewPeriod(
		time.Date(2026, time.January, startDay, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, endDay, 0, 0, 0, 0, time.UTC),
	)
}

func hourlyEmployee(id string, rateCents int64) labor.Employee {
	return labor.Employee{
		ID:              id,
		Status:          labor.StatusActive,
		Compensation:    labor.CompHourly,
		HourlyRateCents: rateCents,
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// =============================================================================
// HOURLY
// =============================================================================

func TestPay_Hourly_RoundsOnceAtFinalMultiplication(t *testing.T) {
	// GIVEN: $10.00/hr, clocked 08:00:00Z to 14:09:43Z on Jan 8 (6.161944h)
	// THEN: round(1000 x 6.161944) = 6162 cents

	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: hourlyEmployee("emp-1", 1000),
		Punches: []labor.TimePunch{
			punch("emp-1", labor.PunchClockIn, time.Date(2026, time.January, 8, 8, 0, 0, 0, time.UTC)),
			punch("emp-1", labor.PunchClockOut, time.Date(2026, time.January, 8, 14, 9, 43, 0, time.UTC)),
		},
		Period: janPeriod(4, 10),
	})

	if result.RegularPayCents != 6162 {
		t.Errorf("expected 6162 cents, got %d", result.RegularPayCents)
	}
	if result.OvertimePayCents != 0 {
		t.Errorf("expected no overtime, got %d", result.OvertimePayCents)
	}
	if result.TotalPayCents != 6162 {
		t.Errorf("expected totalPay 6162, got %d", result.TotalPayCents)
	}
}

func TestPay_Hourly_WeeklyOvertime(t *testing.T) {
	// 45 hours over the week at $10/hr: 40 regular + 5 OT at 1.5x.
	var punches []labor.TimePunch
	for day := 5; day <= 9; day++ {
		punches = append(punches,
			punch("emp-1", labor.PunchClockIn, at(day, 8, 0)),
			punch("emp-1", labor.PunchClockOut, at(day, 17, 0)),
		)
	}

	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: hourlyEmployee("emp-1", 1000),
		Punches:  punches,
		Period:   janPeriod(4, 10),
	})

	if !approx(result.RegularHours, 40) || !approx(result.OvertimeHours, 5) {
		t.Fatalf("expected 40/5 hours, got %v/%v", result.RegularHours, result.OvertimeHours)
	}
	if result.RegularPayCents != 40000 {
		t.Errorf("expected 40000 regular cents, got %d", result.RegularPayCents)
	}
	if result.OvertimePayCents != 7500 {
		t.Errorf("expected 7500 OT cents, got %d", result.OvertimePayCents)
	}
}

func TestPay_Hourly_BreaksUnpaid(t *testing.T) {
	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: hourlyEmployee("emp-1", 1000),
		Punches: []labor.TimePunch{
			punch("emp-1", labor.PunchClockIn, at(8, 9, 0)),
			punch("emp-1", labor.PunchBreakStart, at(8, 12, 0)),
			punch("emp-1", labor.PunchBreakEnd, at(8, 13, 0)),
			punch("emp-1", labor.PunchClockOut, at(8, 17, 0)),
		},
		Period: janPeriod(4, 10),
	})

	// 8h on the clock minus 1h break = 7 paid hours.
	if result.RegularPayCents != 7000 {
		t.Errorf("expected 7000 cents, got %d", result.RegularPayCents)
	}
}

func TestPay_IncompleteShiftsPassThrough(t *testing.T) {
	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: hourlyEmployee("emp-1", 1000),
		Punches: []labor.TimePunch{
			punch("emp-1", labor.PunchClockIn, at(8, 9, 0)),
		},
		Period: janPeriod(4, 10),
	})

	if len(result.IncompleteShifts) != 1 {
		t.Fatalf("expected the anomaly to pass through, got %d", len(result.IncompleteShifts))
	}
	if result.RegularPayCents != 0 {
		t.Errorf("expected no pay for an unpaired clock_in, got %d", result.RegularPayCents)
	}
}

// =============================================================================
// DAILY RATE
// =============================================================================

func TestPay_DailyRate_HoursIrrelevant(t *testing.T) {
	// GIVEN: $150/day employee with a 1-hour day and a 16-hour day
	// THEN: each day costs exactly one dailyRateAmount

	emp := labor.Employee{
		ID:             "emp-2",
		Status:         labor.StatusActive,
		Compensation:   labor.CompDailyRate,
		DailyRateCents: 15000,
	}

	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: emp,
		Punches: []labor.TimePunch{
			punch("emp-2", labor.PunchClockIn, at(5, 9, 0)),
			punch("emp-2", labor.PunchClockOut, at(5, 10, 0)), // 1 hour
			punch("emp-2", labor.PunchClockIn, at(6, 6, 0)),
			punch("emp-2", labor.PunchClockOut, at(6, 22, 0)), // 16 hours
		},
		Period: janPeriod(4, 10),
	})

	if result.DailyRatePayCents != 30000 {
		t.Errorf("expected 2 x 15000 cents, got %d", result.DailyRatePayCents)
	}
}

func TestPay_DailyRate_MultipleShiftsSameDayCountOnce(t *testing.T) {
	emp := labor.Employee{
		ID:             "emp-2",
		Status:         labor.StatusActive,
		Compensation:   labor.CompDailyRate,
		DailyRateCents: 15000,
	}

	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: emp,
		Punches: []labor.TimePunch{
			punch("emp-2", labor.PunchClockIn, at(5, 9, 0)),
			punch("emp-2", labor.PunchClockOut, at(5, 12, 0)),
			punch("emp-2", labor.PunchClockIn, at(5, 17, 0)),
			punch("emp-2", labor.PunchClockOut, at(5, 22, 0)),
		},
		Period: janPeriod(4, 10),
	})

	if result.DailyRatePayCents != 15000 {
		t.Errorf("expected one day counted, got %d cents", result.DailyRatePayCents)
	}
}

// =============================================================================
// SALARY
// =============================================================================

func TestPay_Salary_TerminationTruncatesToWholeDays(t *testing.T) {
	// GIVEN: $700/week salary, terminated Jan 6 inside a Jan 4-10 window
	// THEN: 3 of 7 days (Jan 4, 5, 6 inclusive) = $300

	emp := labor.Employee{
		ID:              "emp-3",
		Status:          labor.StatusTerminated,
		Compensation:    labor.CompSalary,
		SalaryCents:     70000,
		SalaryPeriod:    labor.SalaryWeekly,
		TerminationDate: datePtr(2026, time.January, 6),
	}

	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: emp,
		Period:   janPeriod(4, 10),
	})

	if result.SalaryPayCents != 30000 {
		t.Errorf("expected 30000 cents, got %d", result.SalaryPayCents)
	}
}

func TestPay_Salary_HireDateTruncatesFront(t *testing.T) {
	emp := labor.Employee{
		ID:           "emp-3",
		Status:       labor.StatusActive,
		Compensation: labor.CompSalary,
		SalaryCents:  70000,
		HireDate:     datePtr(2026, time.January, 8),
	}

	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: emp,
		Period:   janPeriod(4, 10),
	})

	// Active Jan 8, 9, 10 = 3 of 7 days.
	if result.SalaryPayCents != 30000 {
		t.Errorf("expected 30000 cents, got %d", result.SalaryPayCents)
	}
}

func TestPay_Salary_NoPunchesStillPaid(t *testing.T) {
	emp := labor.Employee{
		ID:           "emp-3",
		Status:       labor.StatusActive,
		Compensation: labor.CompSalary,
		SalaryCents:  70000,
	}

	result := labor.CalculateEmployeePay(labor.PayInput{Employee: emp, Period: janPeriod(4, 10)})

	if result.SalaryPayCents != 70000 {
		t.Errorf("salary is not punch-driven; expected 70000, got %d", result.SalaryPayCents)
	}
}

// =============================================================================
// CONTRACTOR
// =============================================================================

func TestPay_ContractorPerJob_OnlyManualPayments(t *testing.T) {
	emp := labor.Employee{
		ID:                 "emp-4",
		Status:             labor.StatusActive,
		Compensation:       labor.CompContractor,
		ContractorType:     labor.ContractorPerJob,
		ContractorPayCents: 50000, // ignored for per_job
	}

	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: emp,
		Punches: []labor.TimePunch{
			punch("emp-4", labor.PunchClockIn, at(5, 9, 0)),
			punch("emp-4", labor.PunchClockOut, at(5, 17, 0)),
		},
		Period: janPeriod(4, 10),
		ManualPayments: []labor.ManualPayment{
			{EmployeeID: "emp-4", AmountCents: 12500, PaidAt: at(6, 0, 0)},
			{EmployeeID: "emp-4", AmountCents: 7500, PaidAt: at(9, 0, 0)},
		},
	})

	if result.ContractorPayCents != 0 {
		t.Errorf("per_job has no interval pay, got %d", result.ContractorPayCents)
	}
	if result.ManualPaymentsTotalCents != 20000 {
		t.Errorf("expected 20000 manual total, got %d", result.ManualPaymentsTotalCents)
	}
	if result.GrossPayCents != 20000 {
		t.Errorf("expected gross 20000 from manual payments only, got %d", result.GrossPayCents)
	}
}

func TestPay_ContractorInterval_SalaryLike(t *testing.T) {
	emp := labor.Employee{
		ID:                 "emp-4",
		Status:             labor.StatusActive,
		Compensation:       labor.CompContractor,
		ContractorType:     labor.ContractorInterval,
		ContractorPayCents: 70000,
	}

	result := labor.CalculateEmployeePay(labor.PayInput{Employee: emp, Period: janPeriod(4, 10)})

	if result.ContractorPayCents != 70000 {
		t.Errorf("expected 70000, got %d", result.ContractorPayCents)
	}
}

// =============================================================================
// MANUAL PAYMENTS AND TIPS
// =============================================================================

func TestPay_ManualPaymentsAdditiveForHourly(t *testing.T) {
	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: hourlyEmployee("emp-1", 1000),
		Punches: []labor.TimePunch{
			punch("emp-1", labor.PunchClockIn, at(8, 9, 0)),
			punch("emp-1", labor.PunchClockOut, at(8, 17, 0)),
		},
		Period: janPeriod(4, 10),
		ManualPayments: []labor.ManualPayment{
			{EmployeeID: "emp-1", AmountCents: 5000, PaidAt: at(9, 0, 0)},
		},
	})

	if result.GrossPayCents != 8000+5000 {
		t.Errorf("manual payments are additive; expected 13000, got %d", result.GrossPayCents)
	}
}

func TestPay_ManualPaymentsOutsideWindowExcluded(t *testing.T) {
	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: hourlyEmployee("emp-1", 1000),
		Period:   janPeriod(4, 10),
		ManualPayments: []labor.ManualPayment{
			{EmployeeID: "emp-1", AmountCents: 5000, PaidAt: at(20, 0, 0)},
		},
	})

	if result.ManualPaymentsTotalCents != 0 {
		t.Errorf("expected out-of-window payment excluded, got %d", result.ManualPaymentsTotalCents)
	}
}

func TestPay_TipsOwedClampedAtZero(t *testing.T) {
	// GIVEN: totalTips=4000, tipsPaidOut=6000
	// THEN: tipsOwed=0, never negative; totalTips still reports 4000

	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee:         hourlyEmployee("emp-1", 1000),
		Period:           janPeriod(4, 10),
		TipsCents:        4000,
		TipsPaidOutCents: 6000,
	})

	if result.TipsOwedCents != 0 {
		t.Errorf("expected tipsOwed 0, got %d", result.TipsOwedCents)
	}
	if result.TotalTipsCents != 4000 {
		t.Errorf("totalTips must report earnings in full, got %d", result.TotalTipsCents)
	}
	if result.TotalPayCents != result.GrossPayCents {
		t.Errorf("totalPay must exclude paid-out tips, got %d vs gross %d",
			result.TotalPayCents, result.GrossPayCents)
	}
}

func TestPay_TotalPayIsGrossPlusTipsOwed(t *testing.T) {
	result := labor.CalculateEmployeePay(labor.PayInput{
		Employee: hourlyEmployee("emp-1", 1000),
		Punches: []labor.TimePunch{
			punch("emp-1", labor.PunchClockIn, at(8, 9, 0)),
			punch("emp-1", labor.PunchClockOut, at(8, 17, 0)),
		},
		Period:           janPeriod(4, 10),
		TipsCents:        10000,
		TipsPaidOutCents: 4000,
	})

	if result.TipsOwedCents != 6000 {
		t.Fatalf("expected 6000 owed, got %d", result.TipsOwedCents)
	}
	if result.TotalPayCents != result.GrossPayCents+6000 {
		t.Errorf("totalPay must be gross + tipsOwed, got %d", result.TotalPayCents)
	}
}
