package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/uslu-pos/api/internal/service"
	"github.com/uslu-pos/api/internal/stats"
	"github.com/uslu-pos/api/internal/storage"
	"github.com/uslu-pos/api/internal/ws"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(req service.CreateOrderRequest) (*service.CreateOrderResult, error)
	QuoteOrder(req service.CreateOrderRequest) (service.Quote, error)
	DeleteOrder(id string) (bool, error)
	CloseOutDay(day time.Time) (int, error)
	ListOrders() []storage.Order
	ClearAll() error
}

// Broadcaster pushes order events to connected report screens.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastJSON(eventType string, payload any)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc OrderServicer
	hub Broadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, hub Broadcaster) *OrderHandler {
	return &OrderHandler{svc: svc, hub: hub}
}

// RegisterRoutes registers the open order-taking endpoints.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Post("/quote", h.Quote)
}

// RegisterAdminRoutes registers the protected order-management endpoints.
func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Delete("/", h.ClearAll)
	r.Delete("/{id}", h.Delete)
	r.Post("/close-out", h.CloseOut)
}

// --- Request / Response types ---

type createOrderRequest struct {
	OrderType   string                   `json:"order_type"`
	Phone       string                   `json:"phone"`
	Address     string                   `json:"address"`
	PaymentType string                   `json:"payment_type"`
	Items       []createOrderLineRequest `json:"items"`
}

type createOrderLineRequest struct {
	ProductID string `json:"product_id"`
	Category  string `json:"category"`
	Quantity  int64  `json:"quantity"`
}

type orderLineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
	Category  string `json:"category"`
}

type orderResponse struct {
	ID          string              `json:"id"`
	Date        time.Time           `json:"date"`
	OrderType   string              `json:"order_type"`
	Lines       []orderLineResponse `json:"items"`
	Total       string              `json:"total"`
	Phone       string              `json:"phone,omitempty"`
	Address     string              `json:"address,omitempty"`
	PaymentType string              `json:"payment_type,omitempty"`
}

type quoteResponse struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"delivery_fee"`
	Total       string `json:"total"`
}

type createOrderResponse struct {
	Order         orderResponse `json:"order"`
	Quote         quoteResponse `json:"quote"`
	ReceiptNumber int           `json:"receipt_number"`
}

func toOrderResponse(o storage.Order) orderResponse {
	resp := orderResponse{
		ID:          o.ID,
		Date:        o.Date,
		OrderType:   o.Type,
		Total:       o.Total.String(),
		Phone:       o.Phone,
		Address:     o.Address,
		PaymentType: o.PaymentType,
	}
	resp.Lines = make([]orderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		resp.Lines[i] = orderLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.String(),
			Quantity:  l.Quantity,
			Category:  l.Category,
		}
	}
	return resp
}

func toQuoteResponse(q service.Quote) quoteResponse {
	return quoteResponse{
		Subtotal:    q.Subtotal.String(),
		DeliveryFee: q.DeliveryFee.String(),
		Total:       q.Total.String(),
	}
}

func toServiceRequest(req createOrderRequest) service.CreateOrderRequest {
	out := service.CreateOrderRequest{
		OrderType:   req.OrderType,
		Phone:       req.Phone,
		Address:     req.Address,
		PaymentType: req.PaymentType,
	}
	for _, item := range req.Items {
		out.Items = append(out.Items, service.CreateOrderLineRequest{
			ProductID: item.ProductID,
			Category:  item.Category,
			Quantity:  item.Quantity,
		})
	}
	return out
}

// --- Handlers ---

// Create completes an order: prices the cart, freezes the total, persists
// and broadcasts the new order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.svc.CreateOrder(toServiceRequest(req))
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := createOrderResponse{
		Order:         toOrderResponse(result.Order),
		Quote:         toQuoteResponse(result.Quote),
		ReceiptNumber: result.ReceiptNumber,
	}
	h.hub.BroadcastJSON(ws.EventOrderCreated, resp.Order)
	writeJSON(w, http.StatusCreated, resp)
}

// Quote prices a cart without persisting anything.
func (h *OrderHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	q, err := h.svc.QuoteOrder(toServiceRequest(req))
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: quote order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toQuoteResponse(q))
}

// List returns the order history, optionally limited to a closed day range
// via ?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders := h.svc.ListOrders()

	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")
	if startStr != "" || endStr != "" {
		start, end, err := parseDayRange(startStr, endStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		orders = stats.FilterByDateRange(orders, start, end)
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete removes an order by id. Deleting an unknown id succeeds; the
// outcome is the same either way.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.svc.DeleteOrder(id)
	if err != nil {
		log.Printf("ERROR: delete order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if removed {
		h.hub.BroadcastJSON(ws.EventOrderDeleted, map[string]string{"id": id})
	}
	w.WriteHeader(http.StatusNoContent)
}

// CloseOut deletes every order recorded on ?date=YYYY-MM-DD (default
// today) and reports how many went.
func (h *OrderHandler) CloseOut(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if s := r.URL.Query().Get("date"); s != "" {
		t, err := time.ParseInLocation(dayLayout, s, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format"})
			return
		}
		day = t
	}

	deleted, err := h.svc.CloseOutDay(day)
	if err != nil {
		log.Printf("ERROR: close out day: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.hub.BroadcastJSON(ws.EventDayClosed, map[string]any{
		"date":    day.Format(dayLayout),
		"deleted": deleted,
	})
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// ClearAll empties the order history unconditionally.
func (h *OrderHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearAll(); err != nil {
		log.Printf("ERROR: clear orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.hub.BroadcastJSON(ws.EventOrdersClear, struct{}{})
	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

const dayLayout = "2006-01-02"

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyCart) ||
		errors.Is(err, service.ErrInvalidOrderType) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrUnknownProduct) ||
		errors.Is(err, service.ErrInvalidPaymentType)
}

// parseDayRange parses start/end day strings. A missing side defaults to
// the other, so a single day can be passed as either parameter.
func parseDayRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" {
		startStr = endStr
	}
	if endStr == "" {
		endStr = startStr
	}
	start, err := time.ParseInLocation(dayLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date format: %w", err)
	}
	end, err := time.ParseInLocation(dayLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date format: %w", err)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must not be after end_date")
	}
	return start, end, nil
}
