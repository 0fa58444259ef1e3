/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Tip split and rebalance endpoints
- Labor cost and payroll endpoints against a seeded :memory: store
- Validation failures
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tably/labor-engine/labor"
	"github.com/tably/labor-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(NewHandler(store), logger))
	t.Cleanup(srv.Close)
	return srv, store
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func seedHourlyEmployee(t *testing.T, store *sqlite.Store, name string, rateCents int64) string {
	t.Helper()
	id, err := store.SaveEmployee(context.Background(), labor.Employee{
		RestaurantID:    "r1",
		Name:            name,
		Status:          labor.StatusActive,
		Compensation:    labor.CompHourly,
		HourlyRateCents: rateCents,
	})
	require.NoError(t, err)
	return id
}

func seedPunchPair(t *testing.T, store *sqlite.Store, employeeID string, in, out time.Time) {
	t.Helper()
	ctx := context.Background()
	_, err := store.RecordPunch(ctx, labor.TimePunch{
		EmployeeID: employeeID, RestaurantID: "r1", Type: labor.PunchClockIn, At: in,
	})
	require.NoError(t, err)
	_, err = store.RecordPunch(ctx, labor.TimePunch{
		EmployeeID: employeeID, RestaurantID: "r1", Type: labor.PunchClockOut, At: out,
	})
	require.NoError(t, err)
}

// =============================================================================
// TIP ENDPOINT TESTS
// =============================================================================

func TestSplitTips_Even(t *testing.T) {
	srv, _ := newTestServer(t)

	var resp SplitTipsResponse
	httpResp := postJSON(t, srv.URL+"/api/tips/split", SplitTipsRequest{
		TotalCents: 100,
		Strategy:   "even",
		Participants: []TipParticipantDTO{
			{EmployeeID: "a"}, {EmployeeID: "b"}, {EmployeeID: "c"},
		},
	}, &resp)

	assert.Equal(t, http.StatusOK, httpResp.StatusCode)
	require.Len(t, resp.Shares, 3)
	assert.Equal(t, int64(34), resp.Shares[2].AmountCents)
	assert.Equal(t, int64(100), resp.SumCents)
}

func TestSplitTips_ByHours(t *testing.T) {
	srv, _ := newTestServer(t)

	var resp SplitTipsResponse
	postJSON(t, srv.URL+"/api/tips/split", SplitTipsRequest{
		TotalCents: 10000,
		Strategy:   "by_hours",
		Participants: []TipParticipantDTO{
			{EmployeeID: "a", Hours: 6}, {EmployeeID: "b", Hours: 4},
		},
	}, &resp)

	assert.Equal(t, int64(6000), resp.Shares[0].AmountCents)
	assert.Equal(t, int64(4000), resp.Shares[1].AmountCents)
}

func TestSplitTips_RejectsUnknownStrategy(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tips/split", SplitTipsRequest{
		TotalCents:   100,
		Strategy:     "alphabetical",
		Participants: []TipParticipantDTO{{EmployeeID: "a"}},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSplitTips_RejectsEmptyPool(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tips/split", SplitTipsRequest{TotalCents: 100}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRebalanceTips(t *testing.T) {
	srv, _ := newTestServer(t)

	var resp SplitTipsResponse
	postJSON(t, srv.URL+"/api/tips/rebalance", RebalanceTipsRequest{
		TotalCents: 100,
		Shares: []TipShareDTO{
			{EmployeeID: "a", AmountCents: 50},
			{EmployeeID: "b", AmountCents: 30},
			{EmployeeID: "c", AmountCents: 20},
		},
		EmployeeID:     "a",
		NewAmountCents: 20,
	}, &resp)

	assert.Equal(t, int64(100), resp.SumCents)
	assert.Equal(t, int64(20), resp.Shares[0].AmountCents)
}

// =============================================================================
// LABOR / PAYROLL ENDPOINT TESTS
// =============================================================================

func TestGetActualLaborCost(t *testing.T) {
	// GIVEN: One $10/hr employee with an 08:00:00-14:09:43 shift on Jan 5
	// WHEN: Fetching actual labor cost for Jan 4-10
	// THEN: 6162 cents total, attributed to Jan 5

	srv, store := newTestServer(t)
	id := seedHourlyEmployee(t, store, "Dana Reyes", 1000)
	seedPunchPair(t, store, id,
		time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 5, 14, 9, 43, 0, time.UTC))

	var resp LaborCostResponse
	httpResp := getJSON(t, srv.URL+"/api/labor/actual?restaurant_id=r1&start=2026-01-04&end=2026-01-10", &resp)

	assert.Equal(t, http.StatusOK, httpResp.StatusCode)
	assert.Equal(t, int64(6162), resp.TotalCostCents)
	require.Len(t, resp.Days, 7)
	for _, d := range resp.Days {
		if d.Day == "2026-01-05" {
			assert.Equal(t, int64(6162), d.CostCents)
		} else {
			assert.Zero(t, d.CostCents)
		}
	}
}

func TestGetScheduledLaborCost_MatchesActual(t *testing.T) {
	// Cross-site: the same interval as a punch pair and as a scheduled
	// shift must cost the same through the API.

	srv, store := newTestServer(t)
	id := seedHourlyEmployee(t, store, "Dana Reyes", 1000)
	start := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 5, 14, 9, 43, 0, time.UTC)
	seedPunchPair(t, store, id, start, end)

	_, err := store.SaveShift(context.Background(), id, "r1", start, end, "")
	require.NoError(t, err)

	var actual, scheduled LaborCostResponse
	getJSON(t, srv.URL+"/api/labor/actual?restaurant_id=r1&start=2026-01-04&end=2026-01-10", &actual)
	getJSON(t, srv.URL+"/api/labor/scheduled?restaurant_id=r1&start=2026-01-04&end=2026-01-10", &scheduled)

	assert.Equal(t, actual.TotalCostCents, scheduled.TotalCostCents)
	assert.Equal(t, actual.Days, scheduled.Days)
}

func TestGetPayrollPeriod(t *testing.T) {
	// GIVEN: An hourly employee with a shift, tips earned, and a cash payout
	// WHEN: Running payroll over the window
	// THEN: totalPay = gross + tipsOwed

	srv, store := newTestServer(t)
	ctx := context.Background()
	id := seedHourlyEmployee(t, store, "Dana Reyes", 1000)
	seedPunchPair(t, store, id,
		time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 5, 13, 0, 0, 0, time.UTC))

	at := time.Date(2026, time.January, 5, 22, 0, 0, 0, time.UTC)
	for _, entry := range []labor.TipEntry{
		{EmployeeID: id, RestaurantID: "r1", Kind: labor.TipEarned, AmountCents: 5000, At: at},
		{EmployeeID: id, RestaurantID: "r1", Kind: labor.TipPaidOut, AmountCents: 2000, At: at},
	} {
		_, err := store.RecordTipEntry(ctx, entry)
		require.NoError(t, err)
	}

	var resp PayrollPeriodResponse
	getJSON(t, srv.URL+"/api/payroll/period?restaurant_id=r1&start=2026-01-04&end=2026-01-10", &resp)

	require.Len(t, resp.Employees, 1)
	emp := resp.Employees[0]
	assert.Equal(t, "Dana Reyes", emp.EmployeeName)
	assert.Equal(t, int64(4000), emp.GrossPayCents)
	assert.Equal(t, int64(5000), emp.TotalTipsCents)
	assert.Equal(t, int64(3000), emp.TipsOwedCents)
	assert.Equal(t, int64(7000), emp.TotalPayCents)
	assert.Equal(t, emp.GrossPayCents+emp.TipsOwedCents, emp.TotalPayCents)
}

func TestGetPayrollPeriodCSV(t *testing.T) {
	srv, store := newTestServer(t)
	id := seedHourlyEmployee(t, store, "Dana Reyes", 1000)
	seedPunchPair(t, store, id,
		time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 5, 13, 0, 0, 0, time.UTC))

	resp, err := http.Get(srv.URL + "/api/payroll/period.csv?restaurant_id=r1&start=2026-01-04&end=2026-01-10")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "Tips Earned"))
	assert.True(t, strings.Contains(string(body), "Dana Reyes"))
	assert.True(t, strings.Contains(string(body), "$40.00"))
}

func TestPeriodValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []string{
		"/api/labor/actual?start=2026-01-04&end=2026-01-10",                  // no restaurant
		"/api/labor/actual?restaurant_id=r1&start=bogus&end=2026-01-10",      // bad start
		"/api/labor/actual?restaurant_id=r1&start=2026-01-10&end=2026-01-04", // inverted
	}
	for _, path := range cases {
		resp := getJSON(t, srv.URL+path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path %s", path)
	}
}

// =============================================================================
// EMPLOYEE / PUNCH ENDPOINT TESTS
// =============================================================================

func TestCreateAndGetEmployee(t *testing.T) {
	srv, _ := newTestServer(t)

	var created EmployeeDTO
	httpResp := postJSON(t, srv.URL+"/api/employees", CreateEmployeeRequest{
		RestaurantID:     "r1",
		Name:             "Sam Ortiz",
		CompensationType: "salary",
		SalaryCents:      70000,
		SalaryPeriodType: "weekly",
		HireDate:         "2025-06-01",
	}, &created)

	assert.Equal(t, http.StatusCreated, httpResp.StatusCode)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "active", created.Status)

	var fetched EmployeeDTO
	getJSON(t, srv.URL+"/api/employees/"+created.ID, &fetched)
	assert.Equal(t, "Sam Ortiz", fetched.Name)
	assert.Equal(t, "2025-06-01", fetched.HireDate)
}

func TestGetEmployee_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := getJSON(t, srv.URL+"/api/employees/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecordPunch_RejectsUnknownType(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/punches", RecordPunchRequest{
		EmployeeID:   "e1",
		RestaurantID: "r1",
		PunchType:    "lunch",
		PunchedAt:    "2026-01-05T09:00:00Z",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordPunchAndListThroughEmployee(t *testing.T) {
	srv, store := newTestServer(t)
	id := seedHourlyEmployee(t, store, "Dana Reyes", 1000)

	resp := postJSON(t, srv.URL+"/api/punches", RecordPunchRequest{
		EmployeeID:   id,
		RestaurantID: "r1",
		PunchType:    "clock_in",
		PunchedAt:    "2026-01-05T09:00:00Z",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var punches []PunchDTO
	getJSON(t, fmt.Sprintf("%s/api/employees/%s/punches?start=2026-01-04&end=2026-01-10", srv.URL, id), &punches)
	require.Len(t, punches, 1)
	assert.Equal(t, "clock_in", punches[0].PunchType)
}

// =============================================================================
// CHECK ENDPOINT TESTS
// =============================================================================

func TestGetAmountInWords(t *testing.T) {
	srv, _ := newTestServer(t)

	var resp AmountInWordsResponse
	getJSON(t, srv.URL+"/api/checks/amount-in-words?cents=123456", &resp)
	assert.Equal(t, "One Thousand Two Hundred Thirty-Four and 56/100", resp.Words)

	badResp := getJSON(t, srv.URL+"/api/checks/amount-in-words?cents=lots", nil)
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}
