package vtex

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"order_ingest/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Options{
		BaseURL:  srv.URL,
		AppKey:   "app-key",
		AppToken: "app-token",
		Timeout:  5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewClient_URL(t *testing.T) {
	c, err := NewClient(Options{Account: "loja", BaseDomain: "vtexcommercestable.com.br"}, nil)
	require.NoError(t, err)

	got := c.URL("/api/oms/pvt/orders", map[string]string{"page": "2", "empty": ""})
	assert.Equal(t, "https://loja.vtexcommercestable.com.br/api/oms/pvt/orders?page=2", got)

	_, err = NewClient(Options{}, nil)
	assert.Error(t, err, "без аккаунта и базового URL клиент не создается")
}

func TestGetJSON_Headers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "app-key", r.Header.Get(HeaderAppKey))
		assert.Equal(t, "app-token", r.Header.Get(HeaderAppToken))
		assert.Equal(t, "/api/test", r.URL.Path)
		assert.Equal(t, "v", r.URL.Query().Get("k"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "test", "/api/test", map[string]string{"k": "v"}, &out))
	assert.True(t, out.OK)
}

func TestGetJSON_RemoteAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	})

	var out map[string]any
	err := c.GetJSON(context.Background(), "test", "/api/test", nil, &out)
	require.Error(t, err)

	var apiErr *RemoteAPIError
	require.True(t, errors.As(err, &apiErr), "ожидается RemoteAPIError")
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "Too Many Requests", apiErr.Status)
	assert.Equal(t, "slow down", apiErr.Body)
	assert.Equal(t, "VTEX 429 Too Many Requests - slow down", apiErr.Error())
}

func TestGetJSON_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	_, err := c.GetOrder(context.Background(), "missing-01")

	var apiErr *RemoteAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestGetOrder_EscapesOrderID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/oms/pvt/orders/a%2Fb%20c%3Fx", r.URL.EscapedPath())
		assert.Empty(t, r.URL.RawQuery, "идентификатор не должен попадать в query")
		_, _ = w.Write([]byte(`{"orderId":"a/b c?x"}`))
	})

	detail, err := c.GetOrder(context.Background(), "a/b c?x")
	require.NoError(t, err)
	assert.Equal(t, "a/b c?x", detail.OrderID)
}

func TestGetJSON_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]any
	err := c.GetJSON(ctx, "test", "/api/test", nil, &out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListOrders(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/oms/pvt/orders", r.URL.Path)
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "100", q.Get("per_page"), "per_page ограничен 100")
		assert.Equal(t, "creationDate:[2024-03-01T00:00:00.000Z TO 2024-03-02T00:00:00.000Z]", q.Get("f_creationDate"))
		assert.Equal(t, "1", q.Get("salesChannelId"))
		_ = json.NewEncoder(w).Encode(models.OrderList{
			List:   []models.OrderSummary{{OrderID: "A-01"}, {OrderID: "B-01"}},
			Paging: models.Paging{Total: 2, Pages: 1, CurrentPage: 2, PerPage: 100},
		})
	})

	list, err := c.ListOrders(context.Background(), models.OrderListQuery{
		Page: 2, PerPage: 500, From: from, To: to, SalesChannel: "1",
	})
	require.NoError(t, err)
	assert.Len(t, list.List, 2)
	assert.Equal(t, 1, list.Paging.Pages)
}

func TestGetOrder_KeepsRawBody(t *testing.T) {
	body := `{"orderId":"1400000000001-01","status":"invoiced","totalValue":11500,"unknownField":{"x":1}}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/oms/pvt/orders/1400000000001-01", r.URL.Path)
		_, _ = w.Write([]byte(body))
	})

	detail, err := c.GetOrder(context.Background(), "1400000000001-01")
	require.NoError(t, err)
	assert.Equal(t, "invoiced", detail.Status)
	require.NotNil(t, detail.TotalValue)
	assert.Equal(t, 11500.0, *detail.TotalValue)
	assert.JSONEq(t, body, string(detail.Raw), "исходное тело сохраняется для аудита")
}

func TestGetOrder_InvalidDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"invoiced"}`))
	})
	_, err := c.GetOrder(context.Background(), "X-01")
	assert.Error(t, err, "документ без orderId отклоняется")
}

func TestSearchProfiles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/dataentities/CL/search", r.URL.Path)
		assert.Equal(t, "id,userId,email", q.Get("_fields"))
		assert.Equal(t, "userId=abc", q.Get("_where"))
		_, _ = w.Write([]byte(`[{"id":"1","userId":"abc","email":"real@example.com"}]`))
	})

	profiles, err := c.SearchProfiles(context.Background(), "userId=abc")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "real@example.com", profiles[0].Email)
}
