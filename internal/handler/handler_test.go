package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_ingest/internal/mocks"
	"order_ingest/internal/models"
)

var brt = time.FixedZone("BRT", -3*3600)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T) (*mocks.MockReports, *gin.Engine) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	reports := mocks.NewMockReports(ctrl)
	h := New(reports, brt, "1", nil)
	h.now = func() time.Time { return time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC) }
	return reports, h.Router()
}

func get(t *testing.T, r *gin.Engine, url string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthCheck(t *testing.T) {
	_, r := setup(t)

	code, body := get(t, r, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestSummary_DefaultRange(t *testing.T) {
	reports, r := setup(t)

	want := models.ReportFilter{Start: "2024-03-01", End: "2024-03-31", SalesChannel: "1", Timezone: "BRT"}
	reports.EXPECT().Summary(gomock.Any(), want).
		Return(&models.Summary{Start: want.Start, End: want.End, Orders: 3, TotalRevenue: 3000, AvgOrderValue: 1000}, nil)

	code, body := get(t, r, "/metrics/summary")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-03-01", body["start"])
	assert.Equal(t, float64(3), body["orders"])
	assert.Equal(t, float64(1000), body["avgOrderValue"])
}

func TestOrders_SeriesKeyedByGroupBy(t *testing.T) {
	reports, r := setup(t)

	want := models.ReportFilter{
		Start:        "2024-01-01",
		End:          "2024-01-31", // 02:30 UTC 1 февраля = 23:30 31 января по BRT
		Statuses:     []string{"invoiced", "canceled"},
		SalesChannel: "1",
		Timezone:     "BRT",
	}
	reports.EXPECT().OrdersSeries(gomock.Any(), want, "week", "Direto").
		Return([]models.SeriesPoint{{Period: "2024-01-01", Orders: 2, Revenue: 100}}, nil)

	code, body := get(t, r, "/metrics/orders?groupBy=week&utmSource=Direto&status=invoiced,%20canceled,&start=2024-01-01&end=2024-02-01T02:30:00Z")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "week", body["groupBy"])

	series := body["series"].([]any)
	require.Len(t, series, 1)
	point := series[0].(map[string]any)
	assert.Equal(t, "2024-01-01", point["week"])
	assert.Equal(t, float64(2), point["orders"])
}

func TestOrders_UnknownGroupByFallsBackToDay(t *testing.T) {
	reports, r := setup(t)

	reports.EXPECT().OrdersSeries(gomock.Any(), gomock.Any(), "day", "").Return(nil, nil)

	code, body := get(t, r, "/metrics/orders?groupBy=year")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, body["series"])
}

func TestProducts_Limits(t *testing.T) {
	reports, r := setup(t)

	gomock.InOrder(
		reports.EXPECT().TopProducts(gomock.Any(), gomock.Any(), "quantity", 100).Return(nil, nil),
		reports.EXPECT().TopProducts(gomock.Any(), gomock.Any(), "revenue", 20).Return(nil, nil),
		reports.EXPECT().TopProducts(gomock.Any(), gomock.Any(), "revenue", 5).Return(nil, nil),
	)

	for _, url := range []string{
		"/metrics/products?sort=quantity&limit=500",
		"/metrics/products?sort=bogus&limit=abc",
		"/metrics/products?limit=5",
	} {
		code, body := get(t, r, url)
		require.Equal(t, http.StatusOK, code, url)
		assert.Equal(t, []any{}, body["items"], url)
	}
}

func TestUTM_Limits(t *testing.T) {
	reports, r := setup(t)

	gomock.InOrder(
		reports.EXPECT().UTM(gomock.Any(), gomock.Any(), 200).Return(nil, nil),
		reports.EXPECT().UTM(gomock.Any(), gomock.Any(), 500).Return(nil, nil),
		reports.EXPECT().UTM(gomock.Any(), gomock.Any(), 0).Return(nil, nil),
	)

	for _, url := range []string{"/metrics/utm", "/metrics/utm?limit=1000", "/metrics/utm?all=true"} {
		code, _ := get(t, r, url)
		require.Equal(t, http.StatusOK, code, url)
	}
}

func TestCustomers_Shape(t *testing.T) {
	reports, r := setup(t)

	reports.EXPECT().Customers(gomock.Any(), gomock.Any(), 20).Return(&models.CustomersReport{
		NewCustomers:       4,
		ReturningCustomers: 1,
		Individual:         models.CustomerTypeStats{TotalCustomers: 4, TotalOrders: 5, TotalRevenue: 500, AvgOrderValue: 100},
	}, nil)

	code, body := get(t, r, "/metrics/customers")
	require.Equal(t, http.StatusOK, code)

	cohorts := body["cohorts"].(map[string]any)
	assert.Equal(t, float64(4), cohorts["newCustomers"])
	assert.Equal(t, float64(1), cohorts["returningCustomers"])

	pf := body["byType"].(map[string]any)["pf"].(map[string]any)
	assert.Equal(t, float64(100), pf["avgOrderValue"])
	assert.Equal(t, []any{}, body["topCustomers"])
}

func TestCohort_Months(t *testing.T) {
	reports, r := setup(t)

	reports.EXPECT().Cohort(gomock.Any(), gomock.Any()).
		Return([]models.CohortRow{{CohortMonth: "2024-01-01", OrderMonth: "2024-02-01", Customers: 2}}, nil)

	code, body := get(t, r, "/metrics/cohort?start=2023-11-15&end=2024-02-10")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"2023-11-01", "2023-12-01", "2024-01-01", "2024-02-01"}, body["months"])
	assert.Len(t, body["items"], 1)
}

func TestReportError(t *testing.T) {
	reports, r := setup(t)

	reports.EXPECT().Payments(gomock.Any(), gomock.Any(), 20).Return(nil, errors.New("connection refused"))

	code, body := get(t, r, "/metrics/payments")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotContains(t, body["error"], "connection refused")
}

func TestPrometheusEndpoint(t *testing.T) {
	_, r := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestCoerceDate(t *testing.T) {
	fallback := time.Date(2024, 3, 31, 1, 0, 0, 0, time.UTC)

	tests := []struct {
		value string
		want  string
	}{
		{"2024-02-29", "2024-02-29"},
		{"2024-03-10T01:00:00Z", "2024-03-09"},
		{"2024-03-10T12:00:00-03:00", "2024-03-10"},
		{"2024-13-45", "2024-03-30"},
		{"", "2024-03-30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, coerceDate(tt.value, fallback, brt), tt.value)
	}
}

func TestParseStatuses(t *testing.T) {
	assert.Nil(t, parseStatuses(""))
	assert.Equal(t, []string{"a", "b"}, parseStatuses(" a ,, b ,"))
}
