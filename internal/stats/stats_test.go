package stats_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uslu-pos/api/internal/catalog"
	"github.com/uslu-pos/api/internal/enum"
	"github.com/uslu-pos/api/internal/stats"
	"github.com/uslu-pos/api/internal/storage"
)

func tl(amount int64) decimal.Decimal { return decimal.NewFromInt(amount) }

func order(id string, date time.Time, orderType string, lines ...storage.OrderLine) storage.Order {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return storage.Order{ID: id, Date: date, Type: orderType, Lines: lines, Total: total}
}

func line(name string, price int64, qty int64, category string) storage.OrderLine {
	return storage.OrderLine{ProductID: "x", Name: name, Price: tl(price), Quantity: qty, Category: category}
}

func TestComputeSalesStats(t *testing.T) {
	now := time.Now()
	orders := []storage.Order{
		order("a", now, enum.OrderTypeDineIn,
			line("Ayran", 40, 2, catalog.CategoryIcecekler)),
		order("b", now, enum.OrderTypeDelivery,
			line("Hatay Usulü ET Maksi Döner", 320, 1, catalog.CategoryHatay),
			line("Ayran", 40, 1, catalog.CategoryIcecekler)),
	}
	// Frozen totals include the delivery fee; stats must not recompute it.
	orders[1].Total = tl(425)

	s := stats.ComputeSalesStats(orders)
	if s.TotalOrders != 2 {
		t.Errorf("total orders: got %d, want 2", s.TotalOrders)
	}
	if s.TotalDeliveryOrders != 1 {
		t.Errorf("delivery orders: got %d, want 1", s.TotalDeliveryOrders)
	}
	if !s.TotalSales.Equal(tl(505)) {
		t.Errorf("total sales: got %s, want 505 (trusting frozen totals)", s.TotalSales)
	}

	ayran := s.ProductStats["Ayran"]
	if ayran.Quantity != 3 {
		t.Errorf("ayran quantity: got %d, want 3", ayran.Quantity)
	}
	if !ayran.Total.Equal(tl(120)) {
		t.Errorf("ayran total: got %s, want 120", ayran.Total)
	}
	if ayran.Category != catalog.CategoryIcecekler {
		t.Errorf("ayran category: got %s", ayran.Category)
	}
}

func TestProductSalesMergeByName(t *testing.T) {
	now := time.Now()
	orders := []storage.Order{
		order("a", now, enum.OrderTypeDineIn, line("Ayran", 40, 1, catalog.CategoryIcecekler)),
		order("b", now, enum.OrderTypeDineIn, line("Ayran", 40, 1, catalog.CategoryIcecekler)),
	}

	sales := stats.ProductSales(orders)
	if len(sales) != 1 {
		t.Fatalf("expected 1 merged entry, got %d", len(sales))
	}
	if sales[0].Name != "Ayran" || sales[0].Quantity != 2 || !sales[0].Total.Equal(tl(80)) {
		t.Errorf("merge wrong: %+v", sales[0])
	}
}

func TestGroupByDay(t *testing.T) {
	day1 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	orders := []storage.Order{
		order("a", day1, enum.OrderTypeDineIn, line("Ayran", 40, 1, catalog.CategoryIcecekler)),
		order("b", day2, enum.OrderTypeDelivery, line("Ayran", 40, 1, catalog.CategoryIcecekler)),
		order("c", day1.Add(2*time.Hour), enum.OrderTypeDineIn, line("Su", 15, 1, catalog.CategoryIcecekler)),
	}

	groups := stats.GroupByDay(orders)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}

	g := groups[0]
	if g.Date != "29.08.2026" {
		t.Errorf("day key: got %s, want 29.08.2026", g.Date)
	}
	if g.OrderCount != 2 || g.DeliveryCount != 0 {
		t.Errorf("day1 counts: orders=%d delivery=%d", g.OrderCount, g.DeliveryCount)
	}
	if !g.TotalSales.Equal(tl(55)) {
		t.Errorf("day1 sales: got %s, want 55", g.TotalSales)
	}

	if groups[1].Date != "30.08.2026" || groups[1].DeliveryCount != 1 {
		t.Errorf("day2 group wrong: %+v", groups[1])
	}
}

func TestBreadUnits(t *testing.T) {
	products := map[string]stats.ProductStat{
		"Klasik TAVUK Eko Döner":     {Quantity: 3, Category: catalog.CategoryKlasik},
		"Hatay Usulü ET Maksi Döner": {Quantity: 2, Category: catalog.CategoryHatay},
		"Ayran":                      {Quantity: 5, Category: catalog.CategoryIcecekler},
	}

	// 3 × 1 + 2 × 2 = 7; Ayran contributes nothing.
	if got := stats.BreadUnits(products); got != 7 {
		t.Errorf("bread units: got %d, want 7", got)
	}
}

func TestBreadUnitsSkipsTakos(t *testing.T) {
	products := map[string]stats.ProductStat{
		"TAVUK Tekli Tako":     {Quantity: 4, Category: catalog.CategoryTako},
		"Karışık Combo Tako":   {Quantity: 2, Category: catalog.CategoryTako},
		"ET Döner Porsiyon":    {Quantity: 1, Category: catalog.CategoryPorsiyon},
	}

	if got := stats.BreadUnits(products); got != 1 {
		t.Errorf("bread units: got %d, want 1 (takos excluded)", got)
	}
}

func TestBreadUnitsSkipsTakoByNameOutsideTakoCategory(t *testing.T) {
	products := map[string]stats.ProductStat{
		"Tako Menü": {Quantity: 2, Category: catalog.CategoryMenu},
	}
	if got := stats.BreadUnits(products); got != 0 {
		t.Errorf("bread units: got %d, want 0 (tako by name)", got)
	}
}

func TestFilterByDateRange(t *testing.T) {
	orders := []storage.Order{
		order("early", time.Date(2026, 8, 28, 23, 59, 0, 0, time.Local), enum.OrderTypeDineIn,
			line("Su", 15, 1, catalog.CategoryIcecekler)),
		order("first-minute", time.Date(2026, 8, 29, 0, 0, 1, 0, time.Local), enum.OrderTypeDineIn,
			line("Su", 15, 1, catalog.CategoryIcecekler)),
		order("last-minute", time.Date(2026, 8, 30, 23, 59, 59, 0, time.Local), enum.OrderTypeDineIn,
			line("Su", 15, 1, catalog.CategoryIcecekler)),
		order("late", time.Date(2026, 8, 31, 0, 0, 1, 0, time.Local), enum.OrderTypeDineIn,
			line("Su", 15, 1, catalog.CategoryIcecekler)),
	}

	// Times inside the day are widened to the full day on both ends.
	start := time.Date(2026, 8, 29, 14, 0, 0, 0, time.Local)
	end := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	got := stats.FilterByDateRange(orders, start, end)

	if len(got) != 2 {
		t.Fatalf("expected 2 orders in range, got %d", len(got))
	}
	if got[0].ID != "first-minute" || got[1].ID != "last-minute" {
		t.Errorf("wrong orders in range: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestOrdersContainingProduct(t *testing.T) {
	now := time.Now()
	orders := []storage.Order{
		order("a", now, enum.OrderTypeDineIn,
			line("Ayran", 40, 1, catalog.CategoryIcecekler),
			line("Su", 15, 1, catalog.CategoryIcecekler)),
		order("b", now, enum.OrderTypeDineIn,
			line("Su", 15, 2, catalog.CategoryIcecekler)),
		order("c", now, enum.OrderTypeDineIn,
			line("Ayran", 40, 2, catalog.CategoryIcecekler)),
	}

	got := stats.OrdersContainingProduct(orders, "Ayran")
	if len(got) != 2 {
		t.Fatalf("expected 2 matching orders, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("wrong matches: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 35, 12, 500, time.Local)

	start := stats.StartOfDay(at)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		t.Errorf("start of day: got %v", start)
	}

	end := stats.EndOfDay(at)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("end of day: got %v", end)
	}
	if !end.After(at) {
		t.Error("end of day should be after the input time")
	}
}
