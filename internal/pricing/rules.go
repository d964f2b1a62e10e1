// Package pricing centralizes the name/category predicates and the delivery
// fee rules. Every exemption the till applies (lavaş, tako, maksi) lives
// here so the two historical fee variants stay swappable behind FeeRule.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/uslu-pos/api/internal/catalog"
	"github.com/uslu-pos/api/internal/enum"
)

// Per-line delivery surcharges in TL.
var (
	MainDishFee = decimal.NewFromInt(15)
	SnackFee    = decimal.NewFromInt(5)
)

// Line is the minimal order-line shape the fee rules need.
type Line struct {
	Name     string
	Category string
	Quantity int64
}

// IsLavas reports whether the product name marks a bread add-on. Lavaş
// lines never contribute to the delivery fee, regardless of category.
func IsLavas(name string) bool {
	return strings.Contains(strings.ToLower(name), "lavaş")
}

// IsTako reports whether the product name marks a taco-style product.
func IsTako(name string) bool {
	return strings.Contains(strings.ToLower(name), "tako")
}

// IsMaksi reports whether the product name marks a double-size döner.
func IsMaksi(name string) bool {
	return strings.Contains(strings.ToLower(name), "maksi")
}

// IsMainDishCategory reports whether the category is one of the five
// main-dish menus that carry the full courier surcharge.
func IsMainDishCategory(category string) bool {
	switch category {
	case catalog.CategoryHatay, catalog.CategoryKlasik, catalog.CategoryTako,
		catalog.CategoryPorsiyon, catalog.CategoryMenu:
		return true
	}
	return false
}

// IsSnackCategory reports whether the category is the drinks & snacks menu.
func IsSnackCategory(category string) bool {
	return category == catalog.CategoryIcecekler
}

// ReceiptName is the frozen line name written into completed orders. Bread
// add-ons get an explicit suffix so they stay distinguishable in reports
// even though their catalog ids collide across menus.
func ReceiptName(name string) string {
	if IsLavas(name) {
		return name + " (Ekstra Lavaş)"
	}
	return name
}

// FeeRule computes the courier surcharge for a delivery order.
//
// Two materially different variants shipped over the till's lifetime: one
// scales the surcharge with line quantity, the other charges each category
// flat once per order. Both are kept; the active one is picked by config.
type FeeRule interface {
	Mode() string
	DeliveryFee(lines []Line) decimal.Decimal
}

// PerItemFeeRule charges 15 TL per main-dish unit and 5 TL per snack unit.
// This is the default rule.
type PerItemFeeRule struct{}

func (PerItemFeeRule) Mode() string { return enum.FeeModePerItem }

func (PerItemFeeRule) DeliveryFee(lines []Line) decimal.Decimal {
	fee := decimal.Zero
	for _, l := range lines {
		if IsLavas(l.Name) {
			continue
		}
		qty := decimal.NewFromInt(l.Quantity)
		switch {
		case IsMainDishCategory(l.Category):
			fee = fee.Add(MainDishFee.Mul(qty))
		case IsSnackCategory(l.Category):
			fee = fee.Add(SnackFee.Mul(qty))
		}
	}
	return fee
}

// PerCategoryFeeRule charges each surcharge band flat once per order:
// 15 TL if any main-dish line is present and 5 TL if any snack line is
// present, independent of quantities.
type PerCategoryFeeRule struct{}

func (PerCategoryFeeRule) Mode() string { return enum.FeeModePerCategory }

func (PerCategoryFeeRule) DeliveryFee(lines []Line) decimal.Decimal {
	var hasMain, hasSnack bool
	for _, l := range lines {
		if IsLavas(l.Name) {
			continue
		}
		switch {
		case IsMainDishCategory(l.Category):
			hasMain = true
		case IsSnackCategory(l.Category):
			hasSnack = true
		}
	}
	fee := decimal.Zero
	if hasMain {
		fee = fee.Add(MainDishFee)
	}
	if hasSnack {
		fee = fee.Add(SnackFee)
	}
	return fee
}

// RuleForMode returns the fee rule for a config mode string, defaulting to
// the per-item rule for unknown values.
func RuleForMode(mode string) FeeRule {
	if mode == enum.FeeModePerCategory {
		return PerCategoryFeeRule{}
	}
	return PerItemFeeRule{}
}
