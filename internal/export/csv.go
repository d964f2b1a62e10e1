// Package export flattens the order history into the tabular projection
// the report surfaces (spreadsheet and printed report) consume: one row per
// order line, nine columns, Turkish labels.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/uslu-pos/api/internal/enum"
	"github.com/uslu-pos/api/internal/storage"
)

const dateTimeLayout = "02.01.2006 15:04:05"

// Row is one order line in the flat projection. Delivery-only fields carry
// a dash on dine-in rows.
type Row struct {
	Date        string          `json:"date"`
	OrderType   string          `json:"orderType"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	PaymentType string          `json:"paymentType"`
}

// Headers returns the column headers, in order.
func Headers() []string {
	return []string{
		"Tarih", "Sipariş Tipi", "Ürün", "Adet",
		"Birim Fiyat", "Toplam Fiyat", "Telefon", "Adres", "Ödeme Tipi",
	}
}

func orderTypeLabel(t string) string {
	if t == enum.OrderTypeDelivery {
		return "Kurye"
	}
	return "İçeride"
}

func paymentLabel(t string) string {
	if t == enum.PaymentTypeCard {
		return "Kredi Kartı"
	}
	return "Nakit"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Rows flattens orders into projection rows, preserving order and line
// order.
func Rows(orders []storage.Order) []Row {
	var rows []Row
	for _, o := range orders {
		phone, address, payment := "-", "-", "-"
		if o.Type == enum.OrderTypeDelivery {
			phone = dash(o.Phone)
			address = dash(o.Address)
			payment = paymentLabel(o.PaymentType)
		}
		for _, l := range o.Lines {
			rows = append(rows, Row{
				Date:        o.Date.Format(dateTimeLayout),
				OrderType:   orderTypeLabel(o.Type),
				ProductName: l.Name,
				Quantity:    l.Quantity,
				UnitPrice:   l.Price,
				LineTotal:   l.LineTotal(),
				Phone:       phone,
				Address:     address,
				PaymentType: payment,
			})
		}
	}
	return rows
}

// WriteCSV writes the projection of orders to w as CSV with a header row.
func WriteCSV(w io.Writer, orders []storage.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range Rows(orders) {
		record := []string{
			r.Date,
			r.OrderType,
			r.ProductName,
			strconv.FormatInt(r.Quantity, 10),
			r.UnitPrice.String(),
			r.LineTotal.String(),
			r.Phone,
			r.Address,
			r.PaymentType,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
