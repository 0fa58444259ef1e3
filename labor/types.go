/*
Package labor is the core time-punch-to-pay calculation engine.

PURPOSE:
  This package contains the pure computation pipeline that turns raw
  clock-in/clock-out/break events into per-employee pay figures: parsing
  punches into work periods, detecting anomalies, applying overtime rules,
  and running compensation-type-specific pay math.

KEY CONCEPTS IN THIS FILE (types.go):
  - TimePunch: A single clock event (the source of truth for worked time)
  - WorkPeriod: A derived, non-overlapping work or break interval
  - IncompleteShift: An anomaly record for punches that could not be paired
  - Employee: Compensation configuration (hourly, salary, daily-rate, contractor)
  - OvertimeRules: Configurable daily/weekly thresholds and multipliers
  - EmployeePayResult: The complete per-period pay breakdown

DESIGN PRINCIPLES:
  1. Purity: Every function is deterministic and side-effect-free over its
     inputs. Callers fetch punches and employees; this package only computes.
  2. Precision: All money is integer cents. Hours stay at full floating
     precision until the final multiplication into cents, which rounds via
     decimal.Decimal to avoid floating-point drift.
  3. Anomalies are data, not errors: unparseable punches produce
     IncompleteShift records alongside whatever valid periods remain.

USAGE:
  result := labor.ParseWorkPeriods(punches)
  split := labor.CalculateWeeklyOvertime(dailyHours, labor.DefaultOvertimeRules())
  pay := labor.CalculateEmployeePay(labor.PayInput{Employee: emp, Punches: punches, Period: period})

SEE ALSO:
  - parser.go: Punch sequence to work periods
  - overtime.go: Daily/weekly overtime splits
  - pay.go: Compensation-type pay formulas
*/
package labor

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PUNCH - A single clock event
// =============================================================================

type PunchType string

const (
	PunchClockIn    PunchType = "clock_in"
	PunchClockOut   PunchType = "clock_out"
	PunchBreakStart PunchType = "break_start"
	PunchBreakEnd   PunchType = "break_end"
)

// TimePunch is a single recorded clock event. Immutable once recorded;
// multiple punches per employee per day are expected.
type TimePunch struct {
	ID           string
	EmployeeID   string
	RestaurantID string
	Type         PunchType
	At           time.Time
	ShiftID      string
	Notes        string
}

// =============================================================================
// WORK PERIOD - Derived interval, never persisted
// =============================================================================

// WorkPeriod is a derived work or break interval. End is always after Start;
// Hours is the raw timestamp delta in hours at full floating precision.
// Intervals are valid across midnight: day bucketing happens in aggregation,
// not here.
type WorkPeriod struct {
	Start   time.Time
	End     time.Time
	Hours   float64
	IsBreak bool
}

// =============================================================================
// INCOMPLETE SHIFT - Anomaly record
// =============================================================================

type AnomalyType string

const (
	AnomalyMissingClockOut AnomalyType = "missing_clock_out"
	AnomalyMissingClockIn  AnomalyType = "missing_clock_in"
	AnomalyShiftTooLong    AnomalyType = "shift_too_long"
)

// IncompleteShift records a punch that could not be paired into a valid
// work period. These are always reported, never silently dropped; the caller
// decides whether to block payroll on them.
type IncompleteShift struct {
	Type       AnomalyType
	PunchType  PunchType
	PunchTime  time.Time
	EmployeeID string
}

// =============================================================================
// TIP ENTRY
// =============================================================================

type TipKind string

const (
	TipEarned  TipKind = "earned"
	TipPaidOut TipKind = "paid_out"
)

// TipEntry is one recorded tip amount for an employee: either tips earned
// (from a pool split or declared directly) or tips already paid out in cash.
type TipEntry struct {
	ID           string
	EmployeeID   string
	RestaurantID string
	Kind         TipKind
	AmountCents  int64
	At           time.Time
}

// TipTotals is the per-employee earned/paid-out aggregate over a window.
type TipTotals struct {
	EarnedCents  int64
	PaidOutCents int64
}

// =============================================================================
// EMPLOYEE - Compensation configuration
// =============================================================================

type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "active"
	StatusInactive   EmployeeStatus = "inactive"
	StatusTerminated EmployeeStatus = "terminated"
)

type CompensationType string

const (
	CompHourly     CompensationType = "hourly"
	CompSalary     CompensationType = "salary"
	CompContractor CompensationType = "contractor"
	CompDailyRate  CompensationType = "daily_rate"
)

type ContractorType string

const (
	ContractorPerJob   ContractorType = "per_job"
	ContractorInterval ContractorType = "interval"
)

type SalaryPeriodType string

const (
	SalaryWeekly   SalaryPeriodType = "weekly"
	SalaryBiweekly SalaryPeriodType = "biweekly"
	SalaryMonthly  SalaryPeriodType = "monthly"
)

// Employee carries the compensation configuration the pay engine needs.
// Monetary fields are integer cents. TipEligible is a tri-state: nil means
// eligible by default.
type Employee struct {
	ID           string
	RestaurantID string
	Name         string
	Status       EmployeeStatus
	Compensation CompensationType

	HourlyRateCents    int64
	SalaryCents        int64
	SalaryPeriod       SalaryPeriodType
	DailyRateCents     int64
	ContractorPayCents int64
	ContractorType     ContractorType

	TipEligible *bool

	HireDate        *time.Time
	TerminationDate *time.Time
}

// IsTipEligible applies the default-eligible rule: only an explicit false
// opts an employee out.
func (e Employee) IsTipEligible() bool {
	return e.TipEligible == nil || *e.TipEligible
}

// =============================================================================
// MANUAL PAYMENT
// =============================================================================

// ManualPayment is an ad-hoc payment recorded against an employee. For
// per-job contractors it is the only source of pay; for everyone else it is
// additive on top of the formula-driven pay.
type ManualPayment struct {
	ID          string
	EmployeeID  string
	AmountCents int64
	PaidAt      time.Time
	Note        string
}

// =============================================================================
// OVERTIME RULES
// =============================================================================

// OvertimeRules configures daily and weekly overtime thresholds. A nil daily
// threshold disables daily overtime entirely; a nil double threshold
// disables double time.
type OvertimeRules struct {
	WeeklyThresholdHours float64
	WeeklyOTMultiplier   float64

	DailyThresholdHours *float64
	DailyOTMultiplier   float64

	DailyDoubleThresholdHours *float64
	DailyDoubleMultiplier     float64

	ExcludeTipsFromOTRate bool
}

// DefaultOvertimeRules returns the federal baseline: weekly 40h at 1.5x,
// no daily overtime, double time at 2.0x when enabled, tips excluded from
// the overtime rate base.
func DefaultOvertimeRules() OvertimeRules {
	return OvertimeRules{
		WeeklyThresholdHours:  40,
		WeeklyOTMultiplier:    1.5,
		DailyOTMultiplier:     1.5,
		DailyDoubleMultiplier: 2.0,
		ExcludeTipsFromOTRate: true,
	}
}

// =============================================================================
// PAY RESULT
// =============================================================================

// EmployeePayResult is the per-employee, per-period pay breakdown.
// All money in cents. TotalPayCents == GrossPayCents + TipsOwedCents:
// tips already paid out in cash are excluded from the payable total even
// though TotalTipsCents still reports the full amount earned.
type EmployeePayResult struct {
	EmployeeID string

	RegularHours  float64
	OvertimeHours float64

	RegularPayCents    int64
	OvertimePayCents   int64
	SalaryPayCents     int64
	ContractorPayCents int64
	DailyRatePayCents  int64

	ManualPayments           []ManualPayment
	ManualPaymentsTotalCents int64

	TotalTipsCents   int64
	TipsPaidOutCents int64
	TipsOwedCents    int64

	GrossPayCents int64
	TotalPayCents int64

	IncompleteShifts []IncompleteShift
}

// =============================================================================
// MONEY HELPERS
// =============================================================================

// RoundCents rounds a decimal cents amount to the nearest whole cent,
// half away from zero.
func RoundCents(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// HoursTimesRate computes round(hours x rateCents x multiplier) in cents.
// Rounding happens exactly once, at this final multiplication.
func HoursTimesRate(hours float64, rateCents int64, multiplier float64) int64 {
	return RoundCents(decimal.NewFromFloat(hours).
		Mul(decimal.NewFromInt(rateCents)).
		Mul(decimal.NewFromFloat(multiplier)))
}

// ProrateCents allocates round(totalCents x part / whole). Guards the
// zero-denominator case by returning 0.
func ProrateCents(totalCents int64, part, whole int) int64 {
	if whole <= 0 {
		return 0
	}
	return RoundCents(decimal.NewFromInt(totalCents).
		Mul(decimal.NewFromInt(int64(part))).
		Div(decimal.NewFromInt(int64(whole))))
}
