/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY:
  All monetary fields are integer cents, suffixed _cents. Dollar formatting
  is a client (or CSV export) concern.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - server.go: Router setup and middleware
*/
package api

import (
	"time"

	"github.com/tably/labor-engine/labor"
	"github.com/tably/labor-engine/payroll"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID               string `json:"id"`
	RestaurantID     string `json:"restaurant_id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	CompensationType string `json:"compensation_type"`

	HourlyRateCents    int64  `json:"hourly_rate_cents,omitempty"`
	SalaryCents        int64  `json:"salary_cents,omitempty"`
	SalaryPeriodType   string `json:"salary_period_type,omitempty"`
	DailyRateCents     int64  `json:"daily_rate_cents,omitempty"`
	ContractorPayCents int64  `json:"contractor_pay_cents,omitempty"`
	ContractorType     string `json:"contractor_type,omitempty"`

	TipEligible *bool `json:"tip_eligible,omitempty"`

	HireDate        string `json:"hire_date,omitempty"`
	TerminationDate string `json:"termination_date,omitempty"`
}

// CreateEmployeeRequest creates or updates an employee. Dates are
// YYYY-MM-DD.
type CreateEmployeeRequest struct {
	ID               string `json:"id,omitempty"`
	RestaurantID     string `json:"restaurant_id"`
	Name             string `json:"name"`
	Status           string `json:"status,omitempty"`
	CompensationType string `json:"compensation_type"`

	HourlyRateCents    int64  `json:"hourly_rate_cents,omitempty"`
	SalaryCents        int64  `json:"salary_cents,omitempty"`
	SalaryPeriodType   string `json:"salary_period_type,omitempty"`
	DailyRateCents     int64  `json:"daily_rate_cents,omitempty"`
	ContractorPayCents int64  `json:"contractor_pay_cents,omitempty"`
	ContractorType     string `json:"contractor_type,omitempty"`

	TipEligible *bool `json:"tip_eligible,omitempty"`

	HireDate        string `json:"hire_date,omitempty"`
	TerminationDate string `json:"termination_date,omitempty"`
}

// =============================================================================
// PUNCHES / SHIFTS / PAYMENTS
// =============================================================================

// RecordPunchRequest records one time punch. PunchedAt is RFC 3339.
type RecordPunchRequest struct {
	EmployeeID   string `json:"employee_id"`
	RestaurantID string `json:"restaurant_id"`
	PunchType    string `json:"punch_type"`
	PunchedAt    string `json:"punched_at"`
	ShiftID      string `json:"shift_id,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// PunchDTO represents a punch in API responses.
type PunchDTO struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	PunchType  string    `json:"punch_type"`
	PunchedAt  time.Time `json:"punched_at"`
	ShiftID    string    `json:"shift_id,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// CreateShiftRequest schedules a shift. Times are RFC 3339.
type CreateShiftRequest struct {
	ID           string `json:"id,omitempty"`
	EmployeeID   string `json:"employee_id"`
	RestaurantID string `json:"restaurant_id"`
	StartAt      string `json:"start_at"`
	EndAt        string `json:"end_at"`
}

// RecordManualPaymentRequest records an ad-hoc payment.
type RecordManualPaymentRequest struct {
	EmployeeID   string `json:"employee_id"`
	RestaurantID string `json:"restaurant_id"`
	AmountCents  int64  `json:"amount_cents"`
	PaidAt       string `json:"paid_at"`
	Note         string `json:"note,omitempty"`
}

// RecordTipEntryRequest records tips earned or paid out for an employee.
type RecordTipEntryRequest struct {
	EmployeeID   string `json:"employee_id"`
	RestaurantID string `json:"restaurant_id"`
	Kind         string `json:"kind"` // earned | paid_out
	AmountCents  int64  `json:"amount_cents"`
	At           string `json:"at"`
}

// =============================================================================
// TIP SPLITS
// =============================================================================

// SplitTipsRequest runs one split strategy over a pool.
type SplitTipsRequest struct {
	TotalCents int64  `json:"total_cents"`
	Strategy   string `json:"strategy"` // even | by_hours | by_weight

	Participants []TipParticipantDTO `json:"participants"`
}

// TipParticipantDTO is one pool participant. Hours feeds by_hours, Weight
// feeds by_weight; even ignores both.
type TipParticipantDTO struct {
	EmployeeID string  `json:"employee_id"`
	Hours      float64 `json:"hours,omitempty"`
	Weight     float64 `json:"weight,omitempty"`
}

// TipShareDTO is one employee's slice of the pool.
type TipShareDTO struct {
	EmployeeID  string `json:"employee_id"`
	AmountCents int64  `json:"amount_cents"`
}

// RebalanceTipsRequest pins one share and redistributes the rest.
type RebalanceTipsRequest struct {
	TotalCents     int64         `json:"total_cents"`
	Shares         []TipShareDTO `json:"shares"`
	EmployeeID     string        `json:"employee_id"`
	NewAmountCents int64         `json:"new_amount_cents"`
}

// SplitTipsResponse returns the resulting shares; Sum always equals the
// requested total.
type SplitTipsResponse struct {
	Shares   []TipShareDTO `json:"shares"`
	SumCents int64         `json:"sum_cents"`
}

// =============================================================================
// LABOR / PAYROLL
// =============================================================================

// DailyCostDTO is one day row of a labor-cost or payroll response.
type DailyCostDTO struct {
	Day       string  `json:"day"`
	CostCents int64   `json:"cost_cents"`
	Hours     float64 `json:"hours"`
}

// LaborCostResponse is the dashboard labor-cost view (actual or scheduled).
type LaborCostResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`

	TotalCostCents int64          `json:"total_cost_cents"`
	TotalHours     float64        `json:"total_hours"`
	Days           []DailyCostDTO `json:"days"`

	IncompleteShifts []IncompleteShiftDTO `json:"incomplete_shifts"`
}

// IncompleteShiftDTO is a punch anomaly surfaced to the caller.
type IncompleteShiftDTO struct {
	Type       string    `json:"type"`
	PunchType  string    `json:"punch_type"`
	PunchTime  time.Time `json:"punch_time"`
	EmployeeID string    `json:"employee_id,omitempty"`
}

// EmployeePayDTO is the per-employee pay breakdown in a payroll response.
type EmployeePayDTO struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`

	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`

	RegularPayCents    int64 `json:"regular_pay_cents"`
	OvertimePayCents   int64 `json:"overtime_pay_cents"`
	SalaryPayCents     int64 `json:"salary_pay_cents"`
	ContractorPayCents int64 `json:"contractor_pay_cents"`
	DailyRatePayCents  int64 `json:"daily_rate_pay_cents"`

	ManualPaymentsTotalCents int64 `json:"manual_payments_total_cents"`

	TotalTipsCents   int64 `json:"total_tips_cents"`
	TipsPaidOutCents int64 `json:"tips_paid_out_cents"`
	TipsOwedCents    int64 `json:"tips_owed_cents"`

	GrossPayCents int64 `json:"gross_pay_cents"`
	TotalPayCents int64 `json:"total_pay_cents"`

	IncompleteShifts []IncompleteShiftDTO `json:"incomplete_shifts,omitempty"`
}

// PayrollPeriodResponse is the full pay run.
type PayrollPeriodResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`

	Employees []EmployeePayDTO `json:"employees"`
	Days      []DailyCostDTO   `json:"days"`

	TotalLaborCostCents int64   `json:"total_labor_cost_cents"`
	TotalPayCents       int64   `json:"total_pay_cents"`
	TotalHours          float64 `json:"total_hours"`
}

// AmountInWordsResponse spells a cents amount for check printing.
type AmountInWordsResponse struct {
	Cents int64  `json:"cents"`
	Words string `json:"words"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toEmployeeDTO(e labor.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:                 e.ID,
		RestaurantID:       e.RestaurantID,
		Name:               e.Name,
		Status:             string(e.Status),
		CompensationType:   string(e.Compensation),
		HourlyRateCents:    e.HourlyRateCents,
		SalaryCents:        e.SalaryCents,
		SalaryPeriodType:   string(e.SalaryPeriod),
		DailyRateCents:     e.DailyRateCents,
		ContractorPayCents: e.ContractorPayCents,
		ContractorType:     string(e.ContractorType),
		TipEligible:        e.TipEligible,
	}
	if e.HireDate != nil {
		dto.HireDate = labor.DayKey(*e.HireDate)
	}
	if e.TerminationDate != nil {
		dto.TerminationDate = labor.DayKey(*e.TerminationDate)
	}
	return dto
}

func toPunchDTO(p labor.TimePunch) PunchDTO {
	return PunchDTO{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		PunchType:  string(p.Type),
		PunchedAt:  p.At,
		ShiftID:    p.ShiftID,
		Notes:      p.Notes,
	}
}

func toIncompleteShiftDTOs(shifts []labor.IncompleteShift) []IncompleteShiftDTO {
	dtos := make([]IncompleteShiftDTO, 0, len(shifts))
	for _, s := range shifts {
		dtos = append(dtos, IncompleteShiftDTO{
			Type:       string(s.Type),
			PunchType:  string(s.PunchType),
			PunchTime:  s.PunchTime,
			EmployeeID: s.EmployeeID,
		})
	}
	return dtos
}

func toDailyCostDTOs(days []payroll.DailyCost) []DailyCostDTO {
	dtos := make([]DailyCostDTO, 0, len(days))
	for _, d := range days {
		dtos = append(dtos, DailyCostDTO{Day: d.Day, CostCents: d.CostCents, Hours: d.Hours})
	}
	return dtos
}

func toEmployeePayDTO(r labor.EmployeePayResult, name string) EmployeePayDTO {
	return EmployeePayDTO{
		EmployeeID:               r.EmployeeID,
		EmployeeName:             name,
		RegularHours:             r.RegularHours,
		OvertimeHours:            r.OvertimeHours,
		RegularPayCents:          r.RegularPayCents,
		OvertimePayCents:         r.OvertimePayCents,
		SalaryPayCents:           r.SalaryPayCents,
		ContractorPayCents:       r.ContractorPayCents,
		DailyRatePayCents:        r.DailyRatePayCents,
		ManualPaymentsTotalCents: r.ManualPaymentsTotalCents,
		TotalTipsCents:           r.TotalTipsCents,
		TipsPaidOutCents:         r.TipsPaidOutCents,
		TipsOwedCents:            r.TipsOwedCents,
		GrossPayCents:            r.GrossPayCents,
		TotalPayCents:            r.TotalPayCents,
		IncompleteShifts:         toIncompleteShiftDTOs(r.IncompleteShifts),
	}
}
