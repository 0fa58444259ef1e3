/*
overtime.go - Daily and weekly overtime splits

PURPOSE:
  Applies configurable daily/weekly overtime thresholds and multipliers to
  per-day worked-hour totals. The ordering matters: daily overtime is carved
  out first, and those hours are EXCLUDED from the weekly-threshold
  comparison so a single hour is never counted as both daily and weekly
  overtime.

THRESHOLD SEMANTICS:
  Thresholds are exclusive lower bounds for accrual: exactly 8.0 hours
  against an 8-hour daily threshold yields zero overtime.

EXAMPLE:
  Five 9-hour days with an 8h daily threshold and 40h weekly threshold:
    per day:  8 regular + 1 daily OT
    weekly:   40 daily-regular hours, not over the 40h weekly threshold
    result:   regular=40, dailyOvertime=5, weeklyOvertime=0

SEE ALSO:
  - types.go: OvertimeRules
  - pay.go: Converts hour splits into cents
*/
package labor

// =============================================================================
// DAILY OVERTIME
// =============================================================================

// DailyOvertimeSplit is one day's hours split across the daily thresholds.
type DailyOvertimeSplit struct {
	RegularHours       float64
	DailyOvertimeHours float64
	DoubleTimeHours    float64
}

// CalculateDailyOvertime splits a single day's worked hours against the
// daily and daily-double thresholds. A nil dailyThreshold means no daily
// overtime concept is active: everything is regular.
func CalculateDailyOvertime(hours float64, dailyThreshold, dailyDoubleThreshold *float64) DailyOvertimeSplit {
	if dailyThreshold == nil {
		return DailyOvertimeSplit{RegularHours: hours}
	}

	split := DailyOvertimeSplit{RegularHours: hours}
	if hours <= *dailyThreshold {
		return split
	}

	split.RegularHours = *dailyThreshold
	overage := hours - *dailyThreshold

	if dailyDoubleThreshold != nil && *dailyDoubleThreshold > *dailyThreshold {
		otCap := *dailyDoubleThreshold - *dailyThreshold
		if overage > otCap {
			split.DailyOvertimeHours = otCap
			split.DoubleTimeHours = overage - otCap
			return split
		}
	}
	split.DailyOvertimeHours = overage
	return split
}

// =============================================================================
// WEEKLY OVERTIME
// =============================================================================

// WeeklyOvertimeSplit is a week's hours split across all overtime buckets.
type WeeklyOvertimeSplit struct {
	RegularHours        float64
	WeeklyOvertimeHours float64
	DailyOvertimeHours  float64
	DoubleTimeHours     float64
}

// TotalOvertimeHours sums every overtime bucket.
func (s WeeklyOvertimeSplit) TotalOvertimeHours() float64 {
	return s.WeeklyOvertimeHours + s.DailyOvertimeHours + s.DoubleTimeHours
}

// CalculateWeeklyOvertime applies the daily thresholds per day, then the
// weekly threshold to the summed daily-regular hours only. Daily overtime
// and double time pass through unchanged and never feed the weekly
// comparison.
func CalculateWeeklyOvertime(dailyHours map[string]float64, rules OvertimeRules) WeeklyOvertimeSplit {
	var split WeeklyOvertimeSplit
	for _, hours := range dailyHours {
		day := CalculateDailyOvertime(hours, rules.DailyThresholdHours, rules.DailyDoubleThresholdHours)
		split.RegularHours += day.RegularHours
		split.DailyOvertimeHours += day.DailyOvertimeHours
		split.DoubleTimeHours += day.DoubleTimeHours
	}

	if rules.WeeklyThresholdHours > 0 && split.RegularHours > rules.WeeklyThresholdHours {
		split.WeeklyOvertimeHours = split.RegularHours - rules.WeeklyThresholdHours
		split.RegularHours = rules.WeeklyThresholdHours
	}
	return split
}

// SplitRegularAndOvertime is the simple 40-hour path used where no per-day
// breakdown is available.
func SplitRegularAndOvertime(totalHours float64) (regular, overtime float64) {
	if totalHours > 40 {
		return 40, totalHours - 40
	}
	return totalHours, 0
}

// =============================================================================
// MANUAL ADJUSTMENTS
// =============================================================================

type AdjustmentType string

const (
	AdjustRegularToOvertime AdjustmentType = "regular_to_overtime"
	AdjustOvertimeToRegular AdjustmentType = "overtime_to_regular"
)

// OvertimeAdjustment moves hours between the regular and weekly-overtime
// buckets. Magnitudes are clamped so no bucket goes negative.
type OvertimeAdjustment struct {
	Type  AdjustmentType
	Hours float64
}

// ApplyOvertimeAdjustments applies adjustments in order; each one sees the
// effect of those before it.
func ApplyOvertimeAdjustments(base WeeklyOvertimeSplit, adjustments []OvertimeAdjustment) WeeklyOvertimeSplit {
	out := base
	for _, adj := range adjustments {
		switch adj.Type {
		case AdjustRegularToOvertime:
			moved := minHours(adj.Hours, out.RegularHours)
			out.RegularHours -= moved
			out.WeeklyOvertimeHours += moved
		case AdjustOvertimeToRegular:
			moved := minHours(adj.Hours, out.WeeklyOvertimeHours)
			out.WeeklyOvertimeHours -= moved
			out.RegularHours += moved
		}
	}
	return out
}

func minHours(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
