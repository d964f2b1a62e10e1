package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uslu-pos/api/internal/cart"
	"github.com/uslu-pos/api/internal/catalog"
	"github.com/uslu-pos/api/internal/enum"
	"github.com/uslu-pos/api/internal/pricing"
	"github.com/uslu-pos/api/internal/stats"
	"github.com/uslu-pos/api/internal/storage"
)

// Errors returned by the order service.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidOrderType   = errors.New("invalid order type")
	ErrInvalidQuantity    = errors.New("quantity must be > 0")
	ErrUnknownProduct     = errors.New("product not in catalog")
	ErrInvalidPaymentType = errors.New("invalid payment type")
)

// OrderHistory is the slice of the order store the service mutates.
// Satisfied by *storage.OrderStore; narrow interface for testability.
type OrderHistory interface {
	Append(o storage.Order) error
	Delete(id string) (bool, error)
	DeleteRange(start, end time.Time) (int, error)
	List() []storage.Order
	ClearAll() error
}

// ReceiptSequencer hands out receipt numbers for completed orders.
// Satisfied by *storage.ReceiptCounter.
type ReceiptSequencer interface {
	Next(now time.Time) (int, error)
}

// OrderService owns order completion, deletion and the close-out-day flow.
// All collaborators are explicit; there is no ambient state.
type OrderService struct {
	orders   OrderHistory
	receipts ReceiptSequencer
	rule     pricing.FeeRule

	now   func() time.Time
	newID func() string
}

// NewOrderService creates an OrderService using the given fee rule.
func NewOrderService(orders OrderHistory, receipts ReceiptSequencer, rule pricing.FeeRule) *OrderService {
	return &OrderService{
		orders:   orders,
		receipts: receipts,
		rule:     rule,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CreateOrderRequest is the validated input for completing an order.
type CreateOrderRequest struct {
	OrderType   string
	Phone       string
	Address     string
	PaymentType string
	Items       []CreateOrderLineRequest
}

// CreateOrderLineRequest is one cart line by catalog reference. Category
// disambiguates ids that repeat across menus; it may be empty when the id
// is unique.
type CreateOrderLineRequest struct {
	ProductID string
	Category  string
	Quantity  int64
}

// Quote is the priced breakdown of a cart before (or at) completion.
type Quote struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// CreateOrderResult is the completed order plus its receipt number.
type CreateOrderResult struct {
	Order         storage.Order
	Quote         Quote
	ReceiptNumber int
}

// buildCart validates the request and assembles a priced cart.
func (s *OrderService) buildCart(req CreateOrderRequest) (*cart.Cart, error) {
	if !enum.IsValidOrderType(req.OrderType) {
		return nil, ErrInvalidOrderType
	}
	c := cart.New(req.OrderType)
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
		p, ok := catalog.Find(item.ProductID, item.Category)
		if !ok {
			return nil, fmt.Errorf("item[%d] %q: %w", i, item.ProductID, ErrUnknownProduct)
		}
		c.Commit(p, item.Quantity)
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}
	return c, nil
}

func (s *OrderService) quote(c *cart.Cart) Quote {
	return Quote{
		Subtotal:    c.Subtotal(),
		DeliveryFee: c.DeliveryFee(s.rule),
		Total:       c.Total(s.rule),
	}
}

// QuoteOrder prices a cart without persisting anything.
func (s *OrderService) QuoteOrder(req CreateOrderRequest) (Quote, error) {
	c, err := s.buildCart(req)
	if err != nil {
		return Quote{}, err
	}
	return s.quote(c), nil
}

// CreateOrder validates the cart, freezes the total under the active fee
// rule, persists the order and advances the receipt counter. Delivery
// metadata is kept only on delivery orders; dine-in drops it silently, the
// way the till always has.
func (s *OrderService) CreateOrder(req CreateOrderRequest) (*CreateOrderResult, error) {
	c, err := s.buildCart(req)
	if err != nil {
		return nil, err
	}

	q := s.quote(c)
	order := storage.Order{
		ID:    s.newID(),
		Date:  s.now(),
		Type:  req.OrderType,
		Total: q.Total,
	}
	for _, l := range c.Lines() {
		order.Lines = append(order.Lines, storage.OrderLine{
			ProductID: l.ProductID,
			Name:      pricing.ReceiptName(l.Name),
			Price:     l.Price,
			Quantity:  l.Quantity,
			Category:  l.Category,
		})
	}

	if req.OrderType == enum.OrderTypeDelivery {
		paymentType := req.PaymentType
		if paymentType == "" {
			paymentType = enum.PaymentTypeCash
		}
		if !enum.IsValidPaymentType(paymentType) {
			return nil, ErrInvalidPaymentType
		}
		order.Phone = req.Phone
		order.Address = req.Address
		order.PaymentType = paymentType
	}

	if err := s.orders.Append(order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	// The order itself is durable at this point.
	receipt, err := s.receipts.Next(order.Date)
	if err != nil {
		return nil, fmt.Errorf("advance receipt counter: %w", err)
	}

	return &CreateOrderResult{Order: order, Quote: q, ReceiptNumber: receipt}, nil
}

// DeleteOrder removes an order by id. Unknown ids are a silent no-op; the
// returned bool reports whether anything was removed.
func (s *OrderService) DeleteOrder(id string) (bool, error) {
	return s.orders.Delete(id)
}

// CloseOutDay deletes every order recorded on the given calendar day and
// returns how many went. Deletions are individual, so a retry after an
// interruption finishes the job without touching other days.
func (s *OrderService) CloseOutDay(day time.Time) (int, error) {
	return s.orders.DeleteRange(stats.StartOfDay(day), stats.EndOfDay(day))
}

// DeleteProductSales removes every order containing a line with the given
// product name. Whole orders go, not just the matching lines. Returns the
// number of orders removed.
func (s *OrderService) DeleteProductSales(name string) (int, error) {
	matches := stats.OrdersContainingProduct(s.orders.List(), name)
	deleted := 0
	for _, o := range matches {
		if _, err := s.orders.Delete(o.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// ListOrders returns the full history in insertion order.
func (s *OrderService) ListOrders() []storage.Order {
	return s.orders.List()
}

// ClearAll empties the order history unconditionally.
func (s *OrderService) ClearAll() error {
	return s.orders.ClearAll()
}

// FeeRule exposes the active delivery fee rule.
func (s *OrderService) FeeRule() pricing.FeeRule {
	return s.rule
}
