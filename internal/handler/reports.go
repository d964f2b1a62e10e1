package handler

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/uslu-pos/api/internal/export"
	"github.com/uslu-pos/api/internal/stats"
	"github.com/uslu-pos/api/internal/storage"
	"github.com/uslu-pos/api/internal/ws"
)

// ReportsSource supplies the order snapshot reports are computed from and
// the product-sales deletion flow. Satisfied by *service.OrderService.
type ReportsSource interface {
	ListOrders() []storage.Order
	DeleteProductSales(name string) (int, error)
}

// ReportsHandler handles report endpoints. Every report rescans the order
// snapshot on each call; nothing is cached.
type ReportsHandler struct {
	src ReportsSource
	hub Broadcaster
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(src ReportsSource, hub Broadcaster) *ReportsHandler {
	return &ReportsHandler{src: src, hub: hub}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sales", h.Sales)
	r.Get("/daily", h.Daily)
	r.Get("/product-sales", h.ProductSales)
	r.Delete("/product-sales/{name}", h.DeleteProductSales)
	r.Get("/bread-units", h.BreadUnits)
	r.Get("/export", h.ExportCSV)
}

// --- Response types ---

type productStatResponse struct {
	Quantity int64  `json:"quantity"`
	Total    string `json:"total"`
	Category string `json:"category"`
}

type salesStatsResponse struct {
	TotalSales          string                         `json:"total_sales"`
	TotalOrders         int                            `json:"total_orders"`
	TotalDeliveryOrders int                            `json:"total_delivery_orders"`
	ProductStats        map[string]productStatResponse `json:"product_stats"`
}

type dayGroupResponse struct {
	Date          string          `json:"date"`
	TotalSales    string          `json:"total_sales"`
	OrderCount    int             `json:"order_count"`
	DeliveryCount int             `json:"delivery_count"`
	Orders        []orderResponse `json:"orders"`
}

type productSaleResponse struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Total    string `json:"total"`
}

// --- Handlers ---

// snapshot returns the orders a report should cover, honoring the optional
// start_date/end_date day range.
func (h *ReportsHandler) snapshot(r *http.Request) ([]storage.Order, error) {
	orders := h.src.ListOrders()
	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")
	if startStr == "" && endStr == "" {
		return orders, nil
	}
	start, end, err := parseDayRange(startStr, endStr)
	if err != nil {
		return nil, err
	}
	return stats.FilterByDateRange(orders, start, end), nil
}

// Sales returns the overall sales summary with per-product breakdown.
func (h *ReportsHandler) Sales(w http.ResponseWriter, r *http.Request) {
	orders, err := h.snapshot(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s := stats.ComputeSalesStats(orders)
	resp := salesStatsResponse{
		TotalSales:          s.TotalSales.String(),
		TotalOrders:         s.TotalOrders,
		TotalDeliveryOrders: s.TotalDeliveryOrders,
		ProductStats:        make(map[string]productStatResponse, len(s.ProductStats)),
	}
	for name, ps := range s.ProductStats {
		resp.ProductStats[name] = productStatResponse{
			Quantity: ps.Quantity,
			Total:    ps.Total.String(),
			Category: ps.Category,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Daily returns per-calendar-day aggregates.
func (h *ReportsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	orders, err := h.snapshot(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	groups := stats.GroupByDay(orders)
	resp := make([]dayGroupResponse, len(groups))
	for i, g := range groups {
		dg := dayGroupResponse{
			Date:          g.Date,
			TotalSales:    g.TotalSales.String(),
			OrderCount:    g.OrderCount,
			DeliveryCount: g.DeliveryCount,
			Orders:        make([]orderResponse, len(g.Orders)),
		}
		for j, o := range g.Orders {
			dg.Orders[j] = toOrderResponse(o)
		}
		resp[i] = dg
	}
	writeJSON(w, http.StatusOK, resp)
}

// ProductSales returns per-product rows merged by name.
func (h *ReportsHandler) ProductSales(w http.ResponseWriter, r *http.Request) {
	orders, err := h.snapshot(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sales := stats.ProductSales(orders)
	resp := make([]productSaleResponse, len(sales))
	for i, s := range sales {
		resp[i] = productSaleResponse{Name: s.Name, Quantity: s.Quantity, Total: s.Total.String()}
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteProductSales removes every order containing the named product.
// Whole orders go, co-occurring lines included; the till has no
// line-level deletion.
func (h *ReportsHandler) DeleteProductSales(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product name"})
		return
	}

	deleted, err := h.src.DeleteProductSales(name)
	if err != nil {
		log.Printf("ERROR: delete product sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if deleted > 0 {
		h.hub.BroadcastJSON(ws.EventOrderDeleted, map[string]any{
			"product": name,
			"deleted": deleted,
		})
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// BreadUnits returns the derived flatbread count for kitchen restocking.
func (h *ReportsHandler) BreadUnits(w http.ResponseWriter, r *http.Request) {
	orders, err := h.snapshot(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s := stats.ComputeSalesStats(orders)
	writeJSON(w, http.StatusOK, map[string]int64{"bread_units": stats.BreadUnits(s.ProductStats)})
}

// ExportCSV streams the flat order-line projection as a CSV download.
func (h *ReportsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	orders, err := h.snapshot(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("uslu_doner_rapor_%s.csv", time.Now().Format("02-01-2006-15-04-05"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteCSV(w, orders); err != nil {
		log.Printf("ERROR: export csv: %v", err)
	}
}
