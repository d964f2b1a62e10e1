package catalog

import "github.com/shopspring/decimal"

// Product is a single purchasable menu entry. The catalog is fixed at build
// time; price changes ship as code changes and never touch stored orders.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
}

// Menu categories, in display order.
const (
	CategoryHatay     = "Hatay Usulü Dönerler"
	CategoryKlasik    = "Klasik Dönerler"
	CategoryTako      = "Takolar"
	CategoryPorsiyon  = "Porsiyonlar"
	CategoryMenu      = "Menüler"
	CategoryIcecekler = "İçecekler & Atıştırmalık"
)

// Categories returns the menu categories in display order.
func Categories() []string {
	return []string{
		CategoryHatay,
		CategoryKlasik,
		CategoryTako,
		CategoryPorsiyon,
		CategoryMenu,
		CategoryIcecekler,
	}
}

func tl(amount int64) decimal.Decimal { return decimal.NewFromInt(amount) }

// The "hud-lavas"/"m-lavas" ids repeat across categories on purpose: the
// same add-on is offered inside several menus.
var products = []Product{
	{ID: "1", Name: "Hatay Usulü TAVUK Eko Döner", Price: tl(120), Category: CategoryHatay},
	{ID: "2", Name: "Hatay Usulü TAVUK Normal Döner", Price: tl(140), Category: CategoryHatay},
	{ID: "3", Name: "Hatay Usulü TAVUK Maksi Döner", Price: tl(180), Category: CategoryHatay},
	{ID: "4", Name: "Hatay Usulü ET Eko Döner", Price: tl(220), Category: CategoryHatay},
	{ID: "5", Name: "Hatay Usulü ET Normal Döner", Price: tl(260), Category: CategoryHatay},
	{ID: "6", Name: "Hatay Usulü ET Maksi Döner", Price: tl(320), Category: CategoryHatay},
	{ID: "hud-lavas", Name: "Ekstra Lavaş", Price: tl(15), Category: CategoryHatay},

	{ID: "7", Name: "Klasik TAVUK Eko Döner", Price: tl(120), Category: CategoryKlasik},
	{ID: "8", Name: "Klasik TAVUK Normal Döner", Price: tl(140), Category: CategoryKlasik},
	{ID: "9", Name: "Klasik ET Eko Döner", Price: tl(220), Category: CategoryKlasik},
	{ID: "10", Name: "Klasik ET Normal Döner", Price: tl(260), Category: CategoryKlasik},
	{ID: "hud-lavas", Name: "Ekstra Lavaş", Price: tl(15), Category: CategoryKlasik},

	{ID: "11", Name: "TAVUK Tekli Tako", Price: tl(90), Category: CategoryTako},
	{ID: "12", Name: "TAVUK İkili Tako", Price: tl(160), Category: CategoryTako},
	{ID: "13", Name: "ET Tekli Tako", Price: tl(150), Category: CategoryTako},
	{ID: "14", Name: "ET İkili Tako", Price: tl(280), Category: CategoryTako},
	{ID: "15", Name: "Karışık Combo Tako", Price: tl(220), Category: CategoryTako},

	{ID: "16", Name: "TAVUK Döner Porsiyon", Price: tl(200), Category: CategoryPorsiyon},
	{ID: "17", Name: "Pilav Üstü TAVUK Döner Porsiyon", Price: tl(220), Category: CategoryPorsiyon},
	{ID: "18", Name: "ET Döner Porsiyon", Price: tl(350), Category: CategoryPorsiyon},
	{ID: "19", Name: "Pilav Üstü ET Döner Porsiyon", Price: tl(370), Category: CategoryPorsiyon},
	{ID: "hud-lavas", Name: "Ekstra Lavaş", Price: tl(15), Category: CategoryPorsiyon},

	{ID: "20", Name: "TAVUK Döner Menü", Price: tl(200), Category: CategoryMenu},
	{ID: "21", Name: "ET Döner Menü", Price: tl(320), Category: CategoryMenu},
	{ID: "m-lavas", Name: "Ekstra Lavaş", Price: tl(15), Category: CategoryMenu},

	{ID: "22", Name: "Ayran", Price: tl(40), Category: CategoryIcecekler},
	{ID: "23", Name: "Kutu İçecekler", Price: tl(50), Category: CategoryIcecekler},
	{ID: "24", Name: "Şalgam", Price: tl(40), Category: CategoryIcecekler},
	{ID: "25", Name: "Soda", Price: tl(25), Category: CategoryIcecekler},
	{ID: "26", Name: "Su", Price: tl(15), Category: CategoryIcecekler},
	{ID: "27", Name: "Külahta Patates Kızartması", Price: tl(50), Category: CategoryIcecekler},
	{ID: "28", Name: "Antep Usulü Katmer Tatlısı", Price: tl(140), Category: CategoryIcecekler},
	{ID: "29", Name: "1 LT Kola", Price: tl(75), Category: CategoryIcecekler},
	{ID: "30", Name: "1 LT Ayran", Price: tl(75), Category: CategoryIcecekler},
	{ID: "31", Name: "2,5 LT Kola", Price: tl(95), Category: CategoryIcecekler},
	{ID: "drink-2", Name: "Servis Patates", Price: tl(70), Category: CategoryIcecekler},
}

// Products returns a copy of the full catalog.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// ByCategory returns the products in the given category, in menu order.
func ByCategory(category string) []Product {
	var out []Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Find looks up a product by id, scoped to a category when one is given.
// Ids are not globally unique (the lavaş add-on repeats), so callers that
// know the category should pass it.
func Find(id, category string) (Product, bool) {
	for _, p := range products {
		if p.ID != id {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		return p, true
	}
	return Product{}, false
}
