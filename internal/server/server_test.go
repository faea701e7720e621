// internal/server/server_test.go
//
// server 層整合測試：以 fiber 的 app.Test 模擬完整 HTTP 請求，
// 驗證授權、提款、庫存查詢與錯誤狀態碼映射。
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"atm/internal/atm"
	"atm/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	card = "1234567890123456"
	pin  = "1234"
)

func newApp(t *testing.T, opts ...atm.Option) *fiber.App {
	t.Helper()
	m, err := atm.NewMachine(storage.DefaultSeed(), opts...)
	require.NoError(t, err)
	return NewServer(m, nil).Router()
}

// doJSON 送出 JSON 請求、檢查狀態碼，並在 out 非 nil 時解析回應。
func doJSON(t *testing.T, app *fiber.App, method, url string, body any, wantCode int, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, wantCode, resp.StatusCode)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHTTPWithdrawFlow(t *testing.T) {
	app := newApp(t)

	// 1️⃣ 查詢餘額
	var bal balanceResponse
	doJSON(t, app, http.MethodPost, "/balance", map[string]any{"card_number": card, "pin": pin}, 200, &bal)
	assert.Equal(t, balanceResponse{CardNumber: card, Balance: 1000}, bal)

	// 2️⃣ 提款 300
	var r struct {
		ID      string           `json:"id"`
		Amount  int64            `json:"amount"`
		Balance int64            `json:"balance"`
		Notes   map[string]int64 `json:"notes"`
	}
	doJSON(t, app, http.MethodPost, "/api/v1/withdraw", map[string]any{"card_number": card, "pin": pin, "amount": 300}, 200, &r)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, int64(300), r.Amount)
	assert.Equal(t, int64(700), r.Balance)
	assert.Equal(t, map[string]int64{"200": 1, "100": 1}, r.Notes)

	// 3️⃣ 庫存
	var cash cashResponse
	doJSON(t, app, http.MethodGet, "/cash", nil, 200, &cash)
	assert.Equal(t, int64(1700), cash.Total)
	assert.Equal(t, []atm.Stock{{Denomination: 200, Count: 4}, {Denomination: 100, Count: 9}}, cash.Stocks)
}

func TestHTTPErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{name: "wrong pin", path: "/withdraw", body: map[string]any{"card_number": card, "pin": "0000", "amount": 100}, want: 401},
		{name: "unknown card balance", path: "/balance", body: map[string]any{"card_number": "1", "pin": pin}, want: 401},
		{name: "exceeds balance", path: "/withdraw", body: map[string]any{"card_number": card, "pin": pin, "amount": 1500}, want: 400},
		{name: "zero amount", path: "/withdraw", body: map[string]any{"card_number": card, "pin": pin, "amount": 0}, want: 400},
		{name: "negative amount", path: "/withdraw", body: map[string]any{"card_number": card, "pin": pin, "amount": -50}, want: 400},
		{name: "not dispensable", path: "/withdraw", body: map[string]any{"card_number": card, "pin": pin, "amount": 350}, want: 409},
		{name: "missing pin", path: "/withdraw", body: map[string]any{"card_number": card, "amount": 100}, want: 400},
		{name: "missing card", path: "/balance", body: map[string]any{"pin": pin}, want: 400},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newApp(t)
			var e errorResponse
			doJSON(t, app, http.MethodPost, tc.path, tc.body, tc.want, &e)
			assert.NotEmpty(t, e.Message)

			var cash cashResponse
			doJSON(t, app, http.MethodGet, "/cash", nil, 200, &cash)
			assert.Equal(t, int64(2000), cash.Total)
		})
	}
}

func TestHTTPBadJSON(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest(http.MethodPost, "/withdraw", bytes.NewBufferString("{bad json}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHTTPAuditWarningHeader(t *testing.T) {
	sink := atm.AuditFunc(func(context.Context, atm.Receipt) error { return errors.New("disk full") })
	app := newApp(t, atm.WithAuditSink(sink))

	resp := doJSON(t, app, http.MethodPost, "/withdraw", map[string]any{"card_number": card, "pin": pin, "amount": 200}, 200, nil)
	assert.Equal(t, "audit log write failed", resp.Header.Get("X-Audit-Warning"))
}

func TestHTTPHealthAndRouting(t *testing.T) {
	app := newApp(t)
	var h map[string]string
	doJSON(t, app, http.MethodGet, "/api/v1/health", nil, 200, &h)
	assert.Equal(t, "ok", h["status"])

	// 錯誤方法或不存在路徑
	req := httptest.NewRequest(http.MethodGet, "/withdraw", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, []int{404, 405}, resp.StatusCode)
}
