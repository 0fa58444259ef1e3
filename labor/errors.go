/*
errors.go - Error types for the labor engine

PURPOSE:
  The calculation pipeline itself cannot fail transiently: data anomalies
  become IncompleteShift records, never errors. What remains are genuine
  caller mistakes (malformed periods, unknown employees) raised by the
  layers around the core.

USAGE:
  if errors.Is(err, labor.ErrInvalidPeriod) { ... }
*/
package labor

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a period end precedes its start.
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrUnknownCompensationType is returned for an unrecognized pay formula.
	ErrUnknownCompensationType = errors.New("unknown compensation type")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// PeriodError carries the offending bounds of a malformed period.
type PeriodError struct {
	Start time.Time
	End   time.Time
}

func (e *PeriodError) Error() string {
	return fmt.Sprintf("invalid period: end %s before start %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

func (e *PeriodError) Unwrap() error { return ErrInvalidPeriod }

// ValidatePeriod rejects a period whose end precedes its start.
func ValidatePeriod(p Period) error {
	if StartOfDay(p.End).Before(StartOfDay(p.Start)) {
		return &PeriodError{Start: p.Start, End: p.End}
	}
	return nil
}

// IsClientError reports whether the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrUnknownCompensationType)
}

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound)
}
