package handler_test

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/uslu-pos/api/internal/enum"
	"github.com/uslu-pos/api/internal/handler"
	"github.com/uslu-pos/api/internal/storage"
)

// mockReportsSource implements handler.ReportsSource.
type mockReportsSource struct {
	orders          []storage.Order
	deleteProductFn func(name string) (int, error)
}

func (m *mockReportsSource) ListOrders() []storage.Order { return m.orders }
func (m *mockReportsSource) DeleteProductSales(name string) (int, error) {
	return m.deleteProductFn(name)
}

func setupReportsRouter(src *mockReportsSource, hub *mockBroadcaster) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/reports", handler.NewReportsHandler(src, hub).RegisterRoutes)
	return r
}

func reportOrders() []storage.Order {
	day1 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 30, 13, 0, 0, 0, time.Local)
	return []storage.Order{
		{
			ID:   "a",
			Date: day1,
			Type: enum.OrderTypeDineIn,
			Lines: []storage.OrderLine{
				{ProductID: "7", Name: "Klasik TAVUK Eko Döner", Price: decimal.NewFromInt(120), Quantity: 3, Category: "Klasik Dönerler"},
			},
			Total: decimal.NewFromInt(360),
		},
		{
			ID:   "b",
			Date: day2,
			Type: enum.OrderTypeDelivery,
			Lines: []storage.OrderLine{
				{ProductID: "6", Name: "Hatay Usulü ET Maksi Döner", Price: decimal.NewFromInt(320), Quantity: 2, Category: "Hatay Usulü Dönerler"},
				{ProductID: "22", Name: "Ayran", Price: decimal.NewFromInt(40), Quantity: 1, Category: "İçecekler & Atıştırmalık"},
			},
			Total:       decimal.NewFromInt(715),
			Phone:       "05551234567",
			PaymentType: enum.PaymentTypeCash,
		},
	}
}

func TestReportsSales(t *testing.T) {
	src := &mockReportsSource{orders: reportOrders()}
	router := setupReportsRouter(src, &mockBroadcaster{})

	req := httptest.NewRequest(http.MethodGet, "/reports/sales", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	resp := decodeResponse(t, rr)
	if resp["total_orders"].(float64) != 2 {
		t.Errorf("total orders: got %v, want 2", resp["total_orders"])
	}
	if resp["total_delivery_orders"].(float64) != 1 {
		t.Errorf("delivery orders: got %v, want 1", resp["total_delivery_orders"])
	}
	// Frozen order totals: 360 + 715.
	if resp["total_sales"] != "1075" {
		t.Errorf("total sales: got %v, want 1075", resp["total_sales"])
	}

	products := resp["product_stats"].(map[string]interface{})
	ayran := products["Ayran"].(map[string]interface{})
	if ayran["quantity"].(float64) != 1 || ayran["total"] != "40" {
		t.Errorf("ayran stats wrong: %v", ayran)
	}
}

func TestReportsSalesDateFilter(t *testing.T) {
	src := &mockReportsSource{orders: reportOrders()}
	router := setupReportsRouter(src, &mockBroadcaster{})

	req := httptest.NewRequest(http.MethodGet, "/reports/sales?start_date=2026-08-30", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	resp := decodeResponse(t, rr)
	if resp["total_orders"].(float64) != 1 {
		t.Errorf("filtered total orders: got %v, want 1", resp["total_orders"])
	}
}

func TestReportsDaily(t *testing.T) {
	src := &mockReportsSource{orders: reportOrders()}
	router := setupReportsRouter(src, &mockBroadcaster{})

	req := httptest.NewRequest(http.MethodGet, "/reports/daily", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(resp))
	}
	if resp[0]["date"] != "29.08.2026" || resp[0]["total_sales"] != "360" {
		t.Errorf("day1 group wrong: %v", resp[0])
	}
	if resp[1]["delivery_count"].(float64) != 1 {
		t.Errorf("day2 delivery count: got %v", resp[1]["delivery_count"])
	}
}

func TestReportsProductSales(t *testing.T) {
	src := &mockReportsSource{orders: reportOrders()}
	router := setupReportsRouter(src, &mockBroadcaster{})

	req := httptest.NewRequest(http.MethodGet, "/reports/product-sales", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 3 {
		t.Fatalf("expected 3 product rows, got %d", len(resp))
	}
	if resp[0]["name"] != "Klasik TAVUK Eko Döner" || resp[0]["total"] != "360" {
		t.Errorf("first row wrong: %v", resp[0])
	}
}

func TestReportsDeleteProductSales(t *testing.T) {
	var deletedName string
	src := &mockReportsSource{
		orders: reportOrders(),
		deleteProductFn: func(name string) (int, error) {
			deletedName = name
			return 2, nil
		},
	}
	hub := &mockBroadcaster{}
	router := setupReportsRouter(src, hub)

	path := "/reports/product-sales/" + url.PathEscape("Hatay Usulü ET Maksi Döner")
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d; body: %s", rr.Code, rr.Body.String())
	}
	if deletedName != "Hatay Usulü ET Maksi Döner" {
		t.Errorf("name not unescaped: %q", deletedName)
	}
	resp := decodeResponse(t, rr)
	if resp["deleted"].(float64) != 2 {
		t.Errorf("deleted: got %v, want 2", resp["deleted"])
	}
	if len(hub.events) != 1 {
		t.Errorf("expected one broadcast, got %v", hub.events)
	}
}

func TestReportsDeleteProductSalesNoMatches(t *testing.T) {
	src := &mockReportsSource{
		orders:          nil,
		deleteProductFn: func(name string) (int, error) { return 0, nil },
	}
	hub := &mockBroadcaster{}
	router := setupReportsRouter(src, hub)

	req := httptest.NewRequest(http.MethodDelete, "/reports/product-sales/Ayran", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if len(hub.events) != 0 {
		t.Error("no broadcast when nothing was deleted")
	}
}

func TestReportsBreadUnits(t *testing.T) {
	src := &mockReportsSource{orders: reportOrders()}
	router := setupReportsRouter(src, &mockBroadcaster{})

	req := httptest.NewRequest(http.MethodGet, "/reports/bread-units", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	resp := decodeResponse(t, rr)
	// 3 eko (1 each) + 2 maksi (2 each) = 7; Ayran contributes 0.
	if resp["bread_units"].(float64) != 7 {
		t.Errorf("bread units: got %v, want 7", resp["bread_units"])
	}
}

func TestReportsExportCSV(t *testing.T) {
	src := &mockReportsSource{orders: reportOrders()}
	router := setupReportsRouter(src, &mockBroadcaster{})

	req := httptest.NewRequest(http.MethodGet, "/reports/export", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type: got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("content disposition: got %q", cd)
	}

	records, err := csv.NewReader(rr.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header plus one row per order line.
	if len(records) != 4 {
		t.Errorf("expected 4 records, got %d", len(records))
	}
	if records[0][0] != "Tarih" {
		t.Errorf("header wrong: %v", records[0])
	}
}
