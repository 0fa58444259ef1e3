/*
parser.go - Punch sequence parsing into work periods

PURPOSE:
  Converts an unordered list of punch events for one employee into disjoint
  work/break intervals, detecting and reporting anomalies instead of
  throwing them away or crashing on them.

ALGORITHM:
  1. Sort punches by time ascending.
  2. Deduplicate consecutive same-type clock punches within a 5-minute
     window; the later punch wins. Same-type punches further apart are two
     independent events (a forgotten clock-out followed by a fresh cycle).
  3. Walk the sequence maintaining open work/break state, emitting a
     WorkPeriod for each closed interval and an IncompleteShift for each
     punch that cannot be paired.

ANOMALY RULES:
  - clock_out with nothing open: missing_clock_in, no period emitted.
  - clock_in still open at end of stream: missing_clock_out, no period.
  - A closed clock_in/clock_out pair spanning more than MaxShiftDuration is
    not trusted: it is reported as missing_clock_out and the interval is
    discarded (a 17-hour "shift" is a missed punch, not a real shift).

EDGE CASES:
  - Sub-minute shifts compute fractional hours with no minimum floor.
  - Shifts crossing midnight are single intervals; day bucketing happens
    later in aggregation.
  - Stray break_start/break_end punches are skipped without fabricating
    an interval.

SEE ALSO:
  - types.go: WorkPeriod and IncompleteShift definitions
  - pay.go: Consumes the parsed periods
*/
package labor

import (
	"sort"
	"time"
)

// =============================================================================
// PARSER CONSTANTS
// =============================================================================

const (
	// DuplicateWindow is the tolerance inside which two consecutive
	// same-type clock punches are treated as one accidental double punch.
	DuplicateWindow = 5 * time.Minute

	// MaxShiftDuration is the ceiling beyond which a closed clock pair is
	// classified as a missed punch rather than a real shift.
	MaxShiftDuration = 16 * time.Hour
)

// ParseResult pairs the valid periods with whatever anomalies were found.
// Anomalies are reported, never thrown: a malformed punch stream still
// yields every interval that could be computed.
type ParseResult struct {
	Periods          []WorkPeriod
	IncompleteShifts []IncompleteShift
}

// TotalWorkedHours sums the non-break hours of the parsed periods.
func (r ParseResult) TotalWorkedHours() float64 {
	var total float64
	for _, wp := range r.Periods {
		if !wp.IsBreak {
			total += wp.Hours
		}
	}
	return total
}

// =============================================================================
// PARSE
// =============================================================================

// ParseWorkPeriods converts the punches of a single employee into disjoint
// work/break intervals plus anomaly records. The input order does not
// matter; punches are sorted by time first.
func ParseWorkPeriods(punches []TimePunch) ParseResult {
	sorted := make([]TimePunch, len(punches))
	copy(sorted, punches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	deduped := dedupeClockPunches(sorted)

	var (
		result    ParseResult
		openWork  *TimePunch
		openBreak *TimePunch
	)

	emitWork := func(start, end time.Time) {
		if !end.After(start) {
			return
		}
		result.Periods = append(result.Periods, WorkPeriod{
			Start: start,
			End:   end,
			Hours: end.Sub(start).Hours(),
		})
	}

	for i := range deduped {
		p := deduped[i]
		switch p.Type {
		case PunchClockIn:
			if openBreak != nil {
				// A fresh clock-in mid-break abandons the break; there is
				// nothing valid to emit for it.
				openBreak = nil
			}
			if openWork != nil {
				// Previous clock-in never closed; more than the duplicate
				// window apart, so this is a forgotten clock-out followed
				// by a new cycle.
				result.IncompleteShifts = append(result.IncompleteShifts, IncompleteShift{
					Type:       AnomalyMissingClockOut,
					PunchType:  PunchClockIn,
					PunchTime:  openWork.At,
					EmployeeID: openWork.EmployeeID,
				})
			}
			openWork = &deduped[i]

		case PunchClockOut:
			switch {
			case openWork != nil:
				span := p.At.Sub(openWork.At)
				if span > MaxShiftDuration {
					// The pair closes, but a 16h+ span is a missed punch,
					// not a shift. Report it and discard the interval.
					result.IncompleteShifts = append(result.IncompleteShifts, IncompleteShift{
						Type:       AnomalyMissingClockOut,
						PunchType:  PunchClockIn,
						PunchTime:  openWork.At,
						EmployeeID: openWork.EmployeeID,
					})
				} else {
					emitWork(openWork.At, p.At)
				}
				openWork = nil
			case openBreak != nil:
				// Clocked out without ending the break. The work before the
				// break was already emitted; the unfinished break segment is
				// skipped rather than fabricated.
				openBreak = nil
			default:
				result.IncompleteShifts = append(result.IncompleteShifts, IncompleteShift{
					Type:       AnomalyMissingClockIn,
					PunchType:  PunchClockOut,
					PunchTime:  p.At,
					EmployeeID: p.EmployeeID,
				})
			}

		case PunchBreakStart:
			if openWork == nil {
				// Break with no open work interval: skip, do not fabricate.
				continue
			}
			emitWork(openWork.At, p.At)
			openWork = nil
			openBreak = &deduped[i]

		case PunchBreakEnd:
			if openBreak == nil {
				continue
			}
			if p.At.After(openBreak.At) {
				result.Periods = append(result.Periods, WorkPeriod{
					Start:   openBreak.At,
					End:     p.At,
					Hours:   p.At.Sub(openBreak.At).Hours(),
					IsBreak: true,
				})
			}
			openBreak = nil
			// Work resumes at break end.
			resumed := deduped[i]
			resumed.Type = PunchClockIn
			openWork = &resumed
		}
	}

	if openWork != nil {
		result.IncompleteShifts = append(result.IncompleteShifts, IncompleteShift{
			Type:       AnomalyMissingClockOut,
			PunchType:  PunchClockIn,
			PunchTime:  openWork.At,
			EmployeeID: openWork.EmployeeID,
		})
	}
	if openBreak != nil {
		result.IncompleteShifts = append(result.IncompleteShifts, IncompleteShift{
			Type:       AnomalyMissingClockOut,
			PunchType:  PunchBreakStart,
			PunchTime:  openBreak.At,
			EmployeeID: openBreak.EmployeeID,
		})
	}

	return result
}

// dedupeClockPunches collapses consecutive same-type clock_in/clock_out
// punches recorded within DuplicateWindow of each other, keeping the LATER
// punch. Break punches are never deduplicated.
func dedupeClockPunches(sorted []TimePunch) []TimePunch {
	var out []TimePunch
	for _, p := range sorted {
		if len(out) > 0 {
			prev := out[len(out)-1]
			sameClockType := prev.Type == p.Type &&
				(p.Type == PunchClockIn || p.Type == PunchClockOut)
			if sameClockType && p.At.Sub(prev.At) <= DuplicateWindow {
				out[len(out)-1] = p
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// FilterPunchesToPeriod keeps only the punches whose timestamp falls inside
// the period (End inclusive through end of day).
func FilterPunchesToPeriod(punches []TimePunch, p Period) []TimePunch {
	var out []TimePunch
	for _, punch := range punches {
		if p.ContainsInstant(punch.At) {
			out = append(out, punch)
		}
	}
	return out
}
