/*
handlers.go - HTTP API handlers for the labor engine

PURPOSE:
  Exposes the punch-to-pay pipeline via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees               List employees of a restaurant
    POST   /api/employees               Create or update employee
    GET    /api/employees/{id}          Get employee details
    GET    /api/employees/{id}/punches  Punch history for a window

  Time tracking:
    POST   /api/punches                 Record a punch
    POST   /api/shifts                  Schedule a shift
    POST   /api/manual-payments         Record an ad-hoc payment
    POST   /api/tips/entries            Record tips earned / paid out

  Labor cost (dashboard call site):
    GET    /api/labor/actual            Punch-driven cost for a window
    GET    /api/labor/scheduled         Projected cost from shifts

  Payroll (pay-run call site):
    GET    /api/payroll/period          Full pay run for a window
    GET    /api/payroll/period.csv      Same run, rendered as CSV

  Tips:
    POST   /api/tips/split              Split a pool (even/by_hours/by_weight)
    POST   /api/tips/rebalance          Pin one share, redistribute the rest

  Checks:
    GET    /api/checks/amount-in-words  Spell a cents amount

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (labor, tips, payroll)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tably/labor-engine/checks"
	"github.com/tably/labor-engine/export"
	"github.com/tably/labor-engine/labor"
	"github.com/tably/labor-engine/payroll"
	"github.com/tably/labor-engine/store/sqlite"
	"github.com/tably/labor-engine/tips"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// EMPLOYEE ENDPOINTS
// =============================================================================

// ListEmployees returns a restaurant's employees.
// GET /api/employees?restaurant_id=r1
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.URL.Query().Get("restaurant_id")
	if restaurantID == "" {
		writeError(w, http.StatusBadRequest, "restaurant_id is required", nil)
		return
	}

	employees, err := h.Store.ListEmployees(r.Context(), restaurantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, toEmployeeDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates or updates an employee.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.RestaurantID == "" || req.Name == "" || req.CompensationType == "" {
		writeError(w, http.StatusBadRequest, "restaurant_id, name and compensation_type are required", nil)
		return
	}

	emp := labor.Employee{
		ID:                 req.ID,
		RestaurantID:       req.RestaurantID,
		Name:               req.Name,
		Status:             labor.EmployeeStatus(req.Status),
		Compensation:       labor.CompensationType(req.CompensationType),
		HourlyRateCents:    req.HourlyRateCents,
		SalaryCents:        req.SalaryCents,
		SalaryPeriod:       labor.SalaryPeriodType(req.SalaryPeriodType),
		DailyRateCents:     req.DailyRateCents,
		ContractorPayCents: req.ContractorPayCents,
		ContractorType:     labor.ContractorType(req.ContractorType),
		TipEligible:        req.TipEligible,
	}
	if emp.Status == "" {
		emp.Status = labor.StatusActive
	}

	var err error
	if emp.HireDate, err = parseOptionalDate(req.HireDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date format (use YYYY-MM-DD)", err)
		return
	}
	if emp.TerminationDate, err = parseOptionalDate(req.TerminationDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid termination_date format (use YYYY-MM-DD)", err)
		return
	}

	id, err := h.Store.SaveEmployee(r.Context(), emp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	emp.ID = id
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployee returns one employee.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if errors.Is(err, labor.ErrEmployeeNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// GetEmployeePunches returns one employee's punches for a window.
// GET /api/employees/{id}/punches?start=2026-01-04&end=2026-01-10
func (h *Handler) GetEmployeePunches(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	period, ok := parsePeriodQuery(w, r)
	if !ok {
		return
	}

	punches, err := h.Store.ListEmployeePunches(r.Context(), id, period.Start, endOfPeriod(period))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list punches", err)
		return
	}

	dtos := make([]PunchDTO, 0, len(punches))
	for _, p := range punches {
		dtos = append(dtos, toPunchDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// TIME TRACKING ENDPOINTS
// =============================================================================

// RecordPunch records one punch.
// POST /api/punches
func (h *Handler) RecordPunch(w http.ResponseWriter, r *http.Request) {
	var req RecordPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" || req.RestaurantID == "" {
		writeError(w, http.StatusBadRequest, "employee_id and restaurant_id are required", nil)
		return
	}
	punchType := labor.PunchType(req.PunchType)
	switch punchType {
	case labor.PunchClockIn, labor.PunchClockOut, labor.PunchBreakStart, labor.PunchBreakEnd:
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown punch_type %q", req.PunchType), nil)
		return
	}
	punchedAt, err := time.Parse(time.RFC3339, req.PunchedAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid punched_at (use RFC 3339)", err)
		return
	}

	id, err := h.Store.RecordPunch(r.Context(), labor.TimePunch{
		EmployeeID:   req.EmployeeID,
		RestaurantID: req.RestaurantID,
		Type:         punchType,
		At:           punchedAt,
		ShiftID:      req.ShiftID,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record punch", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// CreateShift schedules a shift.
// POST /api/shifts
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_at (use RFC 3339)", err)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_at (use RFC 3339)", err)
		return
	}
	if !end.After(start) {
		writeError(w, http.StatusBadRequest, "end_at must be after start_at", nil)
		return
	}

	id, err := h.Store.SaveShift(r.Context(), req.EmployeeID, req.RestaurantID, start, end, req.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// RecordManualPayment records an ad-hoc payment.
// POST /api/manual-payments
func (h *Handler) RecordManualPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordManualPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	paidAt, err := time.Parse(time.RFC3339, req.PaidAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid paid_at (use RFC 3339)", err)
		return
	}

	id, err := h.Store.RecordManualPayment(r.Context(), req.RestaurantID, labor.ManualPayment{
		EmployeeID:  req.EmployeeID,
		AmountCents: req.AmountCents,
		PaidAt:      paidAt,
		Note:        req.Note,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record manual payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// RecordTipEntry records tips earned or paid out.
// POST /api/tips/entries
func (h *Handler) RecordTipEntry(w http.ResponseWriter, r *http.Request) {
	var req RecordTipEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	kind := labor.TipKind(req.Kind)
	if kind != labor.TipEarned && kind != labor.TipPaidOut {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown kind %q", req.Kind), nil)
		return
	}
	at, err := time.Parse(time.RFC3339, req.At)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid at (use RFC 3339)", err)
		return
	}

	id, err := h.Store.RecordTipEntry(r.Context(), labor.TipEntry{
		EmployeeID:   req.EmployeeID,
		RestaurantID: req.RestaurantID,
		Kind:         kind,
		AmountCents:  req.AmountCents,
		At:           at,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record tip entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// =============================================================================
// LABOR COST ENDPOINTS (dashboard call site)
// =============================================================================

// GetActualLaborCost computes punch-driven labor cost for a window.
// GET /api/labor/actual?restaurant_id=r1&start=2026-01-04&end=2026-01-10
func (h *Handler) GetActualLaborCost(w http.ResponseWriter, r *http.Request) {
	restaurantID, period, ok := parseRestaurantPeriodQuery(w, r)
	if !ok {
		return
	}

	employees, err := h.Store.ListEmployees(r.Context(), restaurantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	punches, err := h.Store.ListPunches(r.Context(), restaurantID, period.Start, endOfPeriod(period))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list punches", err)
		return
	}

	cost := payroll.CalculateActualLaborCost(employees, punches, period, nil)
	writeJSON(w, http.StatusOK, toLaborCostResponse(cost))
}

// GetScheduledLaborCost projects labor cost from scheduled shifts.
// GET /api/labor/scheduled?restaurant_id=r1&start=2026-01-04&end=2026-01-10
func (h *Handler) GetScheduledLaborCost(w http.ResponseWriter, r *http.Request) {
	restaurantID, period, ok := parseRestaurantPeriodQuery(w, r)
	if !ok {
		return
	}

	employees, err := h.Store.ListEmployees(r.Context(), restaurantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	records, err := h.Store.ListShifts(r.Context(), restaurantID, period.Start, endOfPeriod(period))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	shifts := make([]payroll.Shift, 0, len(records))
	for _, rec := range records {
		shifts = append(shifts, payroll.Shift{
			ID:           rec.ID,
			EmployeeID:   rec.EmployeeID,
			RestaurantID: rec.RestaurantID,
			Start:        rec.Start,
			End:          rec.End,
		})
	}

	cost := payroll.CalculateScheduledLaborCost(shifts, employees, period, nil)
	writeJSON(w, http.StatusOK, toLaborCostResponse(cost))
}

func toLaborCostResponse(cost payroll.LaborCost) LaborCostResponse {
	return LaborCostResponse{
		Start:            labor.DayKey(cost.Period.Start),
		End:              labor.DayKey(cost.Period.End),
		TotalCostCents:   cost.TotalCostCents,
		TotalHours:       cost.TotalHours,
		Days:             toDailyCostDTOs(cost.Days),
		IncompleteShifts: toIncompleteShiftDTOs(cost.IncompleteShifts),
	}
}

// =============================================================================
// PAYROLL ENDPOINTS (pay-run call site)
// =============================================================================

// GetPayrollPeriod runs payroll for a window.
// GET /api/payroll/period?restaurant_id=r1&start=2026-01-04&end=2026-01-10
func (h *Handler) GetPayrollPeriod(w http.ResponseWriter, r *http.Request) {
	run, employees, ok := h.runPayroll(w, r)
	if !ok {
		return
	}

	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	resp := PayrollPeriodResponse{
		Start:               labor.DayKey(run.Period.Start),
		End:                 labor.DayKey(run.Period.End),
		Days:                toDailyCostDTOs(run.Days),
		TotalLaborCostCents: run.TotalLaborCostCents,
		TotalPayCents:       run.TotalPayCents,
		TotalHours:          run.TotalHours,
	}
	for _, result := range run.Employees {
		resp.Employees = append(resp.Employees, toEmployeePayDTO(result, names[result.EmployeeID]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetPayrollPeriodCSV runs payroll and renders it as a CSV download.
// GET /api/payroll/period.csv?restaurant_id=r1&start=2026-01-04&end=2026-01-10
func (h *Handler) GetPayrollPeriodCSV(w http.ResponseWriter, r *http.Request) {
	run, employees, ok := h.runPayroll(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("payroll_%s_%s.csv", labor.DayKey(run.Period.Start), labor.DayKey(run.Period.End))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	if err := export.WritePayrollCSV(w, run, employees); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render CSV", err)
	}
}

// runPayroll gathers a restaurant's punches, tips, and manual payments for
// the requested window and runs the pay pipeline. Used by both the JSON
// and CSV payroll endpoints so they can never disagree.
func (h *Handler) runPayroll(w http.ResponseWriter, r *http.Request) (payroll.PayrollPeriod, []labor.Employee, bool) {
	restaurantID, period, ok := parseRestaurantPeriodQuery(w, r)
	if !ok {
		return payroll.PayrollPeriod{}, nil, false
	}
	ctx := r.Context()
	end := endOfPeriod(period)

	employees, err := h.Store.ListEmployees(ctx, restaurantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return payroll.PayrollPeriod{}, nil, false
	}
	punches, err := h.Store.ListPunches(ctx, restaurantID, period.Start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list punches", err)
		return payroll.PayrollPeriod{}, nil, false
	}
	tipTotals, err := h.Store.TipTotals(ctx, restaurantID, period.Start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to aggregate tips", err)
		return payroll.PayrollPeriod{}, nil, false
	}
	manual, err := h.Store.ListManualPayments(ctx, restaurantID, period.Start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list manual payments", err)
		return payroll.PayrollPeriod{}, nil, false
	}

	inputs := make(map[string]payroll.EmployeeInputs, len(employees))
	for _, p := range punches {
		in := inputs[p.EmployeeID]
		in.Punches = append(in.Punches, p)
		inputs[p.EmployeeID] = in
	}
	for employeeID, totals := range tipTotals {
		in := inputs[employeeID]
		in.TipsCents = totals.EarnedCents
		in.TipsPaidOutCents = totals.PaidOutCents
		inputs[employeeID] = in
	}
	for employeeID, payments := range manual {
		in := inputs[employeeID]
		in.ManualPayments = payments
		inputs[employeeID] = in
	}

	return payroll.CalculatePayrollPeriod(period, employees, inputs, nil), employees, true
}

// =============================================================================
// TIP ENDPOINTS
// =============================================================================

// SplitTips splits a pool with the requested strategy.
// POST /api/tips/split
func (h *Handler) SplitTips(w http.ResponseWriter, r *http.Request) {
	var req SplitTipsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.TotalCents < 0 {
		writeError(w, http.StatusBadRequest, "total_cents must not be negative", nil)
		return
	}
	if len(req.Participants) == 0 {
		writeError(w, http.StatusBadRequest, "At least one participant is required", nil)
		return
	}

	participants := make([]tips.Participant, 0, len(req.Participants))
	ids := make([]string, 0, len(req.Participants))
	for _, p := range req.Participants {
		participants = append(participants, tips.Participant{
			EmployeeID: p.EmployeeID, Hours: p.Hours, Weight: p.Weight,
		})
		ids = append(ids, p.EmployeeID)
	}

	var shares []tips.Share
	switch req.Strategy {
	case "even", "":
		shares = tips.SplitEven(req.TotalCents, ids)
	case "by_hours":
		shares = tips.SplitByHours(req.TotalCents, participants)
	case "by_weight":
		shares = tips.SplitByWeight(req.TotalCents, participants)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown strategy %q", req.Strategy), nil)
		return
	}

	writeJSON(w, http.StatusOK, toSplitResponse(shares))
}

// RebalanceTips pins one employee's share and redistributes the rest.
// POST /api/tips/rebalance
func (h *Handler) RebalanceTips(w http.ResponseWriter, r *http.Request) {
	var req RebalanceTipsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Shares) == 0 {
		writeError(w, http.StatusBadRequest, "At least one share is required", nil)
		return
	}

	shares := make([]tips.Share, 0, len(req.Shares))
	for _, s := range req.Shares {
		shares = append(shares, tips.Share{EmployeeID: s.EmployeeID, AmountCents: s.AmountCents})
	}

	out := tips.Rebalance(shares, req.TotalCents, req.EmployeeID, req.NewAmountCents)
	writeJSON(w, http.StatusOK, toSplitResponse(out))
}

func toSplitResponse(shares []tips.Share) SplitTipsResponse {
	resp := SplitTipsResponse{Shares: make([]TipShareDTO, 0, len(shares))}
	for _, s := range shares {
		resp.Shares = append(resp.Shares, TipShareDTO{EmployeeID: s.EmployeeID, AmountCents: s.AmountCents})
		resp.SumCents += s.AmountCents
	}
	return resp
}

// =============================================================================
// CHECK ENDPOINTS
// =============================================================================

// GetAmountInWords spells a cents amount for check printing.
// GET /api/checks/amount-in-words?cents=123456
func (h *Handler) GetAmountInWords(w http.ResponseWriter, r *http.Request) {
	cents, err := strconv.ParseInt(r.URL.Query().Get("cents"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cents must be an integer", err)
		return
	}
	writeJSON(w, http.StatusOK, AmountInWordsResponse{
		Cents: cents,
		Words: checks.AmountInWords(cents),
	})
}

// =============================================================================
// QUERY / RESPONSE HELPERS
// =============================================================================

func parseRestaurantPeriodQuery(w http.ResponseWriter, r *http.Request) (string, labor.Period, bool) {
	restaurantID := r.URL.Query().Get("restaurant_id")
	if restaurantID == "" {
		writeError(w, http.StatusBadRequest, "restaurant_id is required", nil)
		return "", labor.Period{}, false
	}
	period, ok := parsePeriodQuery(w, r)
	return restaurantID, period, ok
}

func parsePeriodQuery(w http.ResponseWriter, r *http.Request) (labor.Period, bool) {
	start, err := labor.ParseDayKey(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return labor.Period{}, false
	}
	end, err := labor.ParseDayKey(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD)", err)
		return labor.Period{}, false
	}

	period := labor.NewPeriod(start, end)
	if err := labor.ValidatePeriod(period); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return labor.Period{}, false
	}
	return period, true
}

// endOfPeriod returns the last instant covered by a day-granular period.
func endOfPeriod(p labor.Period) time.Time {
	return labor.StartOfDay(p.End).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := labor.ParseDayKey(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
