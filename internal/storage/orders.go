package storage

import (
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const ordersKey = "orders"

// OrderLine is a frozen copy of a cart line inside a completed order.
// Catalog price changes never reach back into stored lines.
type OrderLine struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Category  string          `json:"category"`
}

// LineTotal returns price × quantity for the line.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// Order is an immutable completed order. Total is frozen at creation time;
// nothing downstream recomputes it. Phone, Address and PaymentType are set
// iff Type is delivery.
type Order struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	Lines       []OrderLine     `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	PaymentType string          `json:"paymentType,omitempty"`
}

// OrderStore is the durable, insertion-ordered collection of completed
// orders. Every mutation flushes the whole collection to the KV store
// before returning.
type OrderStore struct {
	mu     sync.Mutex
	kv     *KV
	orders []Order
}

// NewOrderStore loads the order history from kv. A document that fails to
// parse is logged and replaced with an empty history; I/O failures are
// returned.
func NewOrderStore(kv *KV) (*OrderStore, error) {
	s := &OrderStore{kv: kv}
	var orders []Order
	_, err := kv.Get(ordersKey, &orders)
	if err != nil {
		if !isMalformed(err) {
			return nil, err
		}
		log.Printf("WARN: stored orders unreadable, starting empty: %v", err)
		orders = nil
	}
	s.orders = orders
	return s, nil
}

// Append adds a completed order to the end of the history and persists.
func (s *OrderStore) Append(o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
	if err := s.flushLocked(); err != nil {
		s.orders = s.orders[:len(s.orders)-1]
		return err
	}
	return nil
}

// Delete removes the order with the given id and persists. Unknown ids are
// a silent no-op.
func (s *OrderStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(id)
}

func (s *OrderStore) deleteLocked(id string) (bool, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return true, s.flushLocked()
		}
	}
	return false, nil
}

// DeleteRange removes every order whose date falls inside the closed
// interval [start, end] and returns how many were removed. Each order is
// deleted and flushed individually; an interrupted run leaves the remaining
// matches in place, and a retry finishes them without erroring on the ones
// already gone.
func (s *OrderStore) DeleteRange(start, end time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for _, o := range s.orders {
		if !o.Date.Before(start) && !o.Date.After(end) {
			ids = append(ids, o.ID)
		}
	}
	deleted := 0
	for _, id := range ids {
		if _, err := s.deleteLocked(id); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// List returns a copy of all orders in insertion order.
func (s *OrderStore) List() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Get returns the order with the given id.
func (s *OrderStore) Get(id string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// Len returns the number of stored orders.
func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// ClearAll empties the history unconditionally and persists.
func (s *OrderStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
	return s.flushLocked()
}

func (s *OrderStore) flushLocked() error {
	orders := s.orders
	if orders == nil {
		orders = []Order{}
	}
	return s.kv.Put(ordersKey, orders)
}
