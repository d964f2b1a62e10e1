// Package stats derives reporting aggregates from a snapshot of the order
// history. Every function here is pure: it rescans the slice it is handed
// and maintains nothing between calls. History stays small (a few hundred
// orders a day at most), so rescanning is fine and callers own any caching.
package stats

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uslu-pos/api/internal/catalog"
	"github.com/uslu-pos/api/internal/enum"
	"github.com/uslu-pos/api/internal/pricing"
	"github.com/uslu-pos/api/internal/storage"
)

// Day keys use the Turkish short date, matching the till's printed reports.
const dayLayout = "02.01.2006"

// ProductStat aggregates one product across the order history. Products are
// keyed by NAME, not id: two catalog entries sharing a name merge, and a
// name rewritten at order time (the lavaş suffix) counts as its own
// product. Category comes from the first occurrence encountered.
type ProductStat struct {
	Quantity int64           `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
	Category string          `json:"category"`
}

// SalesStats is the top-level sales summary.
type SalesStats struct {
	TotalSales          decimal.Decimal        `json:"totalSales"`
	TotalOrders         int                    `json:"totalOrders"`
	TotalDeliveryOrders int                    `json:"totalDeliveryOrders"`
	ProductStats        map[string]ProductStat `json:"productStats"`
}

// ComputeSalesStats folds the order history into a SalesStats. Order totals
// are trusted as frozen at creation; the delivery fee is never recomputed
// here.
func ComputeSalesStats(orders []storage.Order) SalesStats {
	s := SalesStats{
		TotalSales:   decimal.Zero,
		TotalOrders:  len(orders),
		ProductStats: make(map[string]ProductStat),
	}
	for _, o := range orders {
		s.TotalSales = s.TotalSales.Add(o.Total)
		if o.Type == enum.OrderTypeDelivery {
			s.TotalDeliveryOrders++
		}
		for _, l := range o.Lines {
			ps, ok := s.ProductStats[l.Name]
			if !ok {
				ps = ProductStat{Total: decimal.Zero, Category: l.Category}
			}
			ps.Quantity += l.Quantity
			ps.Total = ps.Total.Add(l.LineTotal())
			s.ProductStats[l.Name] = ps
		}
	}
	return s
}

// DayGroup is one calendar day of orders with its totals.
type DayGroup struct {
	Date          string          `json:"date"`
	Orders        []storage.Order `json:"orders"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	OrderCount    int             `json:"orderCount"`
	DeliveryCount int             `json:"deliveryCount"`
}

// GroupByDay partitions orders by calendar day, in order of each day's
// first appearance in the history.
func GroupByDay(orders []storage.Order) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)
	for _, o := range orders {
		day := o.Date.Format(dayLayout)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Date: day, TotalSales: decimal.Zero})
		}
		g := &groups[i]
		g.Orders = append(g.Orders, o)
		g.TotalSales = g.TotalSales.Add(o.Total)
		g.OrderCount++
		if o.Type == enum.OrderTypeDelivery {
			g.DeliveryCount++
		}
	}
	return groups
}

// ProductSale is one merged per-product row for the reports screen.
type ProductSale struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// ProductSales merges order lines by product name across the given orders,
// in order of first appearance.
func ProductSales(orders []storage.Order) []ProductSale {
	var sales []ProductSale
	index := make(map[string]int)
	for _, o := range orders {
		for _, l := range o.Lines {
			i, ok := index[l.Name]
			if !ok {
				i = len(sales)
				index[l.Name] = i
				sales = append(sales, ProductSale{Name: l.Name, Total: decimal.Zero})
			}
			sales[i].Quantity += l.Quantity
			sales[i].Total = sales[i].Total.Add(l.LineTotal())
		}
	}
	return sales
}

// BreadUnits estimates flatbread consumption from product stats for kitchen
// restocking. Drinks & snacks, the taco menu and anything named like a taco
// use no bread; maksi döners use two loaves per unit, everything else one.
// The figure never feeds into monetary totals.
func BreadUnits(products map[string]ProductStat) int64 {
	var units int64
	for name, ps := range products {
		if pricing.IsSnackCategory(ps.Category) || ps.Category == catalog.CategoryTako || pricing.IsTako(name) {
			continue
		}
		per := int64(1)
		if pricing.IsMaksi(name) {
			per = 2
		}
		units += ps.Quantity * per
	}
	return units
}

// FilterByDateRange keeps orders whose date falls inside the closed range,
// after widening start to midnight and end to the last millisecond of its
// day.
func FilterByDateRange(orders []storage.Order, start, end time.Time) []storage.Order {
	from := StartOfDay(start)
	to := EndOfDay(end)
	var out []storage.Order
	for _, o := range orders {
		if !o.Date.Before(from) && !o.Date.After(to) {
			out = append(out, o)
		}
	}
	return out
}

// OrdersContainingProduct returns every order with at least one line whose
// name matches exactly. Deleting a product's sales removes these orders
// wholesale, co-occurring lines included.
func OrdersContainingProduct(orders []storage.Order, name string) []storage.Order {
	var out []storage.Order
	for _, o := range orders {
		for _, l := range o.Lines {
			if l.Name == name {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// StartOfDay returns midnight at the start of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
