package labor

import "time"

// =============================================================================
// PERIOD - Date range for pay computation
// =============================================================================

// Period is the date range a pay computation covers. Start and End are
// day-granular and inclusive on both ends: a punch at any instant of the
// End date is inside the period.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod builds a period from two dates, normalized to start of day UTC.
func NewPeriod(start, end time.Time) Period {
	return Period{Start: StartOfDay(start), End: StartOfDay(end)}
}

// ContainsInstant reports whether a timestamp falls inside the period,
// treating End as inclusive through end of day.
func (p Period) ContainsInstant(t time.Time) bool {
	return !t.Before(StartOfDay(p.Start)) && t.Before(StartOfDay(p.End).AddDate(0, 0, 1))
}

// ContainsDay reports whether a calendar day is inside the period.
func (p Period) ContainsDay(t time.Time) bool {
	d := StartOfDay(t)
	return !d.Before(StartOfDay(p.Start)) && !d.After(StartOfDay(p.End))
}

// Days returns every calendar day in [Start, End] as start-of-day instants.
func (p Period) Days() []time.Time {
	var days []time.Time
	current := StartOfDay(p.Start)
	end := StartOfDay(p.End)
	for !current.After(end) {
		days = append(days, current)
		current = current.AddDate(0, 0, 1)
	}
	return days
}

// DayCount returns the number of calendar days in the period.
func (p Period) DayCount() int {
	return len(p.Days())
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.Format("2006-01-02") + ", " + p.End.Format("2006-01-02") + "]"
}

// =============================================================================
// DAY AND WEEK KEYS
// =============================================================================

// StartOfDay truncates a timestamp to midnight UTC of its calendar date.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey returns the calendar-date key used for day bucketing.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDayKey converts a DayKey back to a start-of-day instant.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse("2006-01-02", key)
}

// WeekStart returns the Sunday starting the workweek that contains t.
// Weekly overtime thresholds apply per workweek.
func WeekStart(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// DailyWorkedHours buckets the worked (non-break) hours of a set of work
// periods by the calendar date the period STARTS on. A shift crossing
// midnight is attributed entirely to its start day.
func DailyWorkedHours(periods []WorkPeriod) map[string]float64 {
	hours := make(map[string]float64)
	for _, wp := range periods {
		if wp.IsBreak {
			continue
		}
		hours[DayKey(wp.Start)] += wp.Hours
	}
	return hours
}
