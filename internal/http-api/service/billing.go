package service

import (
	"fmt"
	"strings"
	"time"

	"bookstore/internal/http-api/models"
)

// ReceiptLine is one billed book on a receipt.
type ReceiptLine struct {
	BookID int64   `json:"book_id"`
	Title  string  `json:"title"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
}

// Receipt is a rendered bill for a completed order. It is produced by a
// pure function of the order and its lines; delivery is someone else's job.
type Receipt struct {
	Number    string        `json:"number"`
	OrderID   int64         `json:"order_id"`
	OrderDate time.Time     `json:"order_date"`
	Lines     []ReceiptLine `json:"lines"`
	Total     float64       `json:"total"`
}

// GenerateReceipt builds the receipt for an order. Deterministic: the
// same order and titles always produce the same receipt. No I/O, no
// mutation of the order.
func GenerateReceipt(o *models.Order, titles map[int64]string) Receipt {
	lines := make([]ReceiptLine, 0, len(o.OrderLines))
	for _, ol := range o.OrderLines {
		lines = append(lines, ReceiptLine{
			BookID: ol.BookID,
			Title:  titles[ol.BookID],
			Type:   ol.Type,
			Price:  ol.Price,
		})
	}
	return Receipt{
		Number:    fmt.Sprintf("BKS-%06d", o.ID),
		OrderID:   o.ID,
		OrderDate: o.OrderDate,
		Lines:     lines,
		Total:     o.TotalPrice,
	}
}

// Render produces the human-readable text document for the receipt.
func (r Receipt) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Receipt %s\n", r.Number)
	fmt.Fprintf(&b, "Order #%d placed %s\n", r.OrderID, r.OrderDate.Format("2006-01-02 15:04"))
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, l := range r.Lines {
		title := l.Title
		if title == "" {
			title = fmt.Sprintf("book #%d", l.BookID)
		}
		fmt.Fprintf(&b, "%-28s %4s %7.2f\n", title, l.Type, l.Price)
	}
	b.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&b, "%-33s %7.2f\n", "Total", r.Total)
	return b.String()
}
