/*
Package sqlite provides the SQLite-backed store for punches, employees,
shifts, manual payments, and tip entries.

PURPOSE:
  The calculation packages (labor, tips, payroll) are pure and never touch
  storage; this package is where the API fetches their inputs from. In
  production the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  employees:       Compensation configuration per employee
  punches:         Immutable time punches (source of truth for worked time)
  shifts:          Scheduled intervals, for projected labor cost
  manual_payments: Ad-hoc payments outside the pay formulas
  tip_entries:     Tips earned and tips paid out in cash, per employee

PUNCH IMMUTABILITY:
  Punches are append-only: no UPDATE or DELETE statements exist for the
  punches table. A bad punch is corrected by recording the right one and
  letting the parser's duplicate window absorb the noise.

INDEXES:
  - idx_punches_employee_at: Per-employee period fetch (hot path)
  - idx_punches_restaurant_at: Restaurant-wide dashboard fetch
  - idx_tip_entries_restaurant_at: Tip totals per period

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery is cleaner.

USAGE:
  store, err := sqlite.New("./data/labor.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/tably/labor-engine/labor"
)

// Store implements all persistence for the labor engine using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		restaurant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		compensation_type TEXT NOT NULL,
		hourly_rate_cents INTEGER DEFAULT 0,
		salary_cents INTEGER DEFAULT 0,
		salary_period TEXT,
		daily_rate_cents INTEGER DEFAULT 0,
		contractor_pay_cents INTEGER DEFAULT 0,
		contractor_type TEXT,
		tip_eligible INTEGER,
		hire_date TEXT,
		termination_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_restaurant
		ON employees(restaurant_id);

	-- Punches (append-only; source of truth for worked time)
	CREATE TABLE IF NOT EXISTS punches (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		restaurant_id TEXT NOT NULL,
		punch_type TEXT NOT NULL,
		punched_at TEXT NOT NULL,
		shift_id TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_punches_employee_at
		ON punches(employee_id, punched_at);
	CREATE INDEX IF NOT EXISTS idx_punches_restaurant_at
		ON punches(restaurant_id, punched_at);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		restaurant_id TEXT NOT NULL,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_restaurant_start
		ON shifts(restaurant_id, start_at);

	CREATE TABLE IF NOT EXISTS manual_payments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		restaurant_id TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		paid_at TEXT NOT NULL,
		note TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_manual_payments_employee_at
		ON manual_payments(employee_id, paid_at);

	CREATE TABLE IF NOT EXISTS tip_entries (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		restaurant_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		entered_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tip_entries_restaurant_at
		ON tip_entries(restaurant_id, entered_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or replaces an employee record. A blank ID gets a
// generated UUID; the (possibly generated) ID is returned.
func (s *Store) SaveEmployee(ctx context.Context, emp labor.Employee) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO employees
		(id, restaurant_id, name, status, compensation_type, hourly_rate_cents,
		 salary_cents, salary_period, daily_rate_cents, contractor_pay_cents,
		 contractor_type, tip_eligible, hire_date, termination_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			restaurant_id = excluded.restaurant_id,
			name = excluded.name,
			status = excluded.status,
			compensation_type = excluded.compensation_type,
			hourly_rate_cents = excluded.hourly_rate_cents,
			salary_cents = excluded.salary_cents,
			salary_period = excluded.salary_period,
			daily_rate_cents = excluded.daily_rate_cents,
			contractor_pay_cents = excluded.contractor_pay_cents,
			contractor_type = excluded.contractor_type,
			tip_eligible = excluded.tip_eligible,
			hire_date = excluded.hire_date,
			termination_date = excluded.termination_date,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		emp.ID,
		emp.RestaurantID,
		emp.Name,
		string(emp.Status),
		string(emp.Compensation),
		emp.HourlyRateCents,
		emp.SalaryCents,
		string(emp.SalaryPeriod),
		emp.DailyRateCents,
		emp.ContractorPayCents,
		string(emp.ContractorType),
		nullBool(emp.TipEligible),
		nullTime(emp.HireDate),
		nullTime(emp.TerminationDate),
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save employee: %w", err)
	}
	return emp.ID, nil
}

// GetEmployee returns one employee, or labor.ErrEmployeeNotFound.
func (s *Store) GetEmployee(ctx context.Context, id string) (labor.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, employeeSelect+" WHERE id = ?", id)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return labor.Employee{}, labor.ErrEmployeeNotFound
	}
	return emp, err
}

// ListEmployees returns every employee of a restaurant, name-ordered.
func (s *Store) ListEmployees(ctx context.Context, restaurantID string) ([]labor.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		employeeSelect+" WHERE restaurant_id = ? ORDER BY name ASC", restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []labor.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

const employeeSelect = `
	SELECT id, restaurant_id, name, status, compensation_type, hourly_rate_cents,
	       salary_cents, salary_period, daily_rate_cents, contractor_pay_cents,
	       contractor_type, tip_eligible, hire_date, termination_date
	FROM employees`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (labor.Employee, error) {
	var (
		emp             labor.Employee
		status          string
		compensation    string
		salaryPeriod    sql.NullString
		contractorType  sql.NullString
		tipEligible     sql.NullInt64
		hireDate        sql.NullString
		terminationDate sql.NullString
	)

	err := row.Scan(
		&emp.ID, &emp.RestaurantID, &emp.Name, &status, &compensation,
		&emp.HourlyRateCents, &emp.SalaryCents, &salaryPeriod,
		&emp.DailyRateCents, &emp.ContractorPayCents, &contractorType,
		&tipEligible, &hireDate, &terminationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return emp, err
		}
		return emp, fmt.Errorf("failed to scan employee: %w", err)
	}

	emp.Status = labor.EmployeeStatus(status)
	emp.Compensation = labor.CompensationType(compensation)
	emp.SalaryPeriod = labor.SalaryPeriodType(salaryPeriod.String)
	emp.ContractorType = labor.ContractorType(contractorType.String)
	if tipEligible.Valid {
		v := tipEligible.Int64 != 0
		emp.TipEligible = &v
	}
	emp.HireDate = parseNullTime(hireDate)
	emp.TerminationDate = parseNullTime(terminationDate)
	return emp, nil
}

// =============================================================================
// PUNCHES
// =============================================================================

// RecordPunch appends a punch. Punches are never updated or deleted.
func (s *Store) RecordPunch(ctx context.Context, punch labor.TimePunch) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if punch.ID == "" {
		punch.ID = uuid.NewString()
	}

	query := `
		INSERT INTO punches
		(id, employee_id, restaurant_id, punch_type, punched_at, shift_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		punch.ID,
		punch.EmployeeID,
		punch.RestaurantID,
		string(punch.Type),
		punch.At.UTC().Format(time.RFC3339),
		nullString(punch.ShiftID),
		nullString(punch.Notes),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record punch: %w", err)
	}
	return punch.ID, nil
}

// ListPunches returns all punches for a restaurant in [from, to], time-ordered.
func (s *Store) ListPunches(ctx context.Context, restaurantID string, from, to time.Time) ([]labor.TimePunch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := punchSelect + `
		WHERE restaurant_id = ? AND punched_at >= ? AND punched_at <= ?
		ORDER BY punched_at ASC`
	return s.queryPunches(ctx, query, restaurantID,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}

// ListEmployeePunches returns one employee's punches in [from, to].
func (s *Store) ListEmployeePunches(ctx context.Context, employeeID string, from, to time.Time) ([]labor.TimePunch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := punchSelect + `
		WHERE employee_id = ? AND punched_at >= ? AND punched_at <= ?
		ORDER BY punched_at ASC`
	return s.queryPunches(ctx, query, employeeID,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}

const punchSelect = `
	SELECT id, employee_id, restaurant_id, punch_type, punched_at, shift_id, notes
	FROM punches`

func (s *Store) queryPunches(ctx context.Context, query string, args ...any) ([]labor.TimePunch, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	var punches []labor.TimePunch
	for rows.Next() {
		var (
			punch     labor.TimePunch
			punchType string
			punchedAt string
			shiftID   sql.NullString
			notes     sql.NullString
		)
		if err := rows.Scan(&punch.ID, &punch.EmployeeID, &punch.RestaurantID,
			&punchType, &punchedAt, &shiftID, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punch.Type = labor.PunchType(punchType)
		punch.At, _ = time.Parse(time.RFC3339, punchedAt)
		punch.ShiftID = shiftID.String
		punch.Notes = notes.String
		punches = append(punches, punch)
	}
	return punches, rows.Err()
}

// =============================================================================
// SHIFTS
// =============================================================================

// SaveShift inserts or replaces a scheduled shift.
func (s *Store) SaveShift(ctx context.Context, employeeID, restaurantID string, start, end time.Time, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	query := `
		INSERT INTO shifts (id, employee_id, restaurant_id, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			restaurant_id = excluded.restaurant_id,
			start_at = excluded.start_at,
			end_at = excluded.end_at
	`
	_, err := s.db.ExecContext(ctx, query,
		id, employeeID, restaurantID,
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save shift: %w", err)
	}
	return id, nil
}

// ShiftRecord mirrors the shifts table row.
type ShiftRecord struct {
	ID           string
	EmployeeID   string
	RestaurantID string
	Start        time.Time
	End          time.Time
}

// ListShifts returns shifts starting within [from, to] for a restaurant.
func (s *Store) ListShifts(ctx context.Context, restaurantID string, from, to time.Time) ([]ShiftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, restaurant_id, start_at, end_at
		FROM shifts
		WHERE restaurant_id = ? AND start_at >= ? AND start_at <= ?
		ORDER BY start_at ASC`
	rows, err := s.db.QueryContext(ctx, query, restaurantID,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []ShiftRecord
	for rows.Next() {
		var (
			rec      ShiftRecord
			startStr string
			endStr   string
		)
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.RestaurantID, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		rec.Start, _ = time.Parse(time.RFC3339, startStr)
		rec.End, _ = time.Parse(time.RFC3339, endStr)
		shifts = append(shifts, rec)
	}
	return shifts, rows.Err()
}

// =============================================================================
// MANUAL PAYMENTS
// =============================================================================

// RecordManualPayment appends an ad-hoc payment.
func (s *Store) RecordManualPayment(ctx context.Context, restaurantID string, mp labor.ManualPayment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mp.ID == "" {
		mp.ID = uuid.NewString()
	}
	query := `
		INSERT INTO manual_payments
		(id, employee_id, restaurant_id, amount_cents, paid_at, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		mp.ID, mp.EmployeeID, restaurantID, mp.AmountCents,
		mp.PaidAt.UTC().Format(time.RFC3339),
		nullString(mp.Note),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record manual payment: %w", err)
	}
	return mp.ID, nil
}

// ListManualPayments returns a restaurant's manual payments in [from, to],
// grouped by employee.
func (s *Store) ListManualPayments(ctx context.Context, restaurantID string, from, to time.Time) (map[string][]labor.ManualPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, amount_cents, paid_at, note
		FROM manual_payments
		WHERE restaurant_id = ? AND paid_at >= ? AND paid_at <= ?
		ORDER BY paid_at ASC`
	rows, err := s.db.QueryContext(ctx, query, restaurantID,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query manual payments: %w", err)
	}
	defer rows.Close()

	byEmployee := make(map[string][]labor.ManualPayment)
	for rows.Next() {
		var (
			mp        labor.ManualPayment
			paidAtStr string
			note      sql.NullString
		)
		if err := rows.Scan(&mp.ID, &mp.EmployeeID, &mp.AmountCents, &paidAtStr, &note); err != nil {
			return nil, fmt.Errorf("failed to scan manual payment: %w", err)
		}
		mp.PaidAt, _ = time.Parse(time.RFC3339, paidAtStr)
		mp.Note = note.String
		byEmployee[mp.EmployeeID] = append(byEmployee[mp.EmployeeID], mp)
	}
	return byEmployee, rows.Err()
}

// =============================================================================
// TIP ENTRIES
// =============================================================================

// RecordTipEntry appends one earned or paid-out tip amount.
func (s *Store) RecordTipEntry(ctx context.Context, entry labor.TipEntry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	query := `
		INSERT INTO tip_entries
		(id, employee_id, restaurant_id, kind, amount_cents, entered_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.EmployeeID, entry.RestaurantID,
		string(entry.Kind), entry.AmountCents,
		entry.At.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record tip entry: %w", err)
	}
	return entry.ID, nil
}

// TipTotals aggregates earned and paid-out tips per employee over [from, to].
func (s *Store) TipTotals(ctx context.Context, restaurantID string, from, to time.Time) (map[string]labor.TipTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT employee_id, kind, SUM(amount_cents)
		FROM tip_entries
		WHERE restaurant_id = ? AND entered_at >= ? AND entered_at <= ?
		GROUP BY employee_id, kind`
	rows, err := s.db.QueryContext(ctx, query, restaurantID,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query tip totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]labor.TipTotals)
	for rows.Next() {
		var (
			employeeID string
			kind       string
			cents      int64
		)
		if err := rows.Scan(&employeeID, &kind, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan tip totals: %w", err)
		}
		t := totals[employeeID]
		switch labor.TipKind(kind) {
		case labor.TipEarned:
			t.EarnedCents += cents
		case labor.TipPaidOut:
			t.PaidOutCents += cents
		}
		totals[employeeID] = t
	}
	return totals, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullBool(b *bool) any {
	if b == nil {
		return nil
	}
	if *b {
		return 1
	}
	return 0
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
