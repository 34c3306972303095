package service

import (
	"testing"
	"time"

	"bookstore/internal/http-api/models"

	"github.com/stretchr/testify/assert"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:         42,
		UserID:     7,
		OrderDate:  time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC),
		TotalPrice: 12.00,
		OrderLines: []models.OrderLine{
			{BookID: 5, Type: models.LineTypeBuy, Price: 10.00},
			{BookID: 6, Type: models.LineTypeRent, Price: 2.00},
		},
	}
}

func TestGenerateReceipt(t *testing.T) {
	titles := map[int64]string{5: "Dune", 6: "Solaris"}
	r := GenerateReceipt(sampleOrder(), titles)

	assert.Equal(t, "BKS-000042", r.Number)
	assert.Equal(t, int64(42), r.OrderID)
	assert.Equal(t, 12.00, r.Total)
	assert.Equal(t, []ReceiptLine{
		{BookID: 5, Title: "Dune", Type: models.LineTypeBuy, Price: 10.00},
		{BookID: 6, Title: "Solaris", Type: models.LineTypeRent, Price: 2.00},
	}, r.Lines)
}

func TestGenerateReceipt_Deterministic(t *testing.T) {
	titles := map[int64]string{5: "Dune", 6: "Solaris"}
	assert.Equal(t, GenerateReceipt(sampleOrder(), titles), GenerateReceipt(sampleOrder(), titles))
}

func TestReceiptRender(t *testing.T) {
	r := GenerateReceipt(sampleOrder(), map[int64]string{5: "Dune"})
	text := r.Render()

	assert.Contains(t, text, "Receipt BKS-000042")
	assert.Contains(t, text, "Order #42 placed 2025-03-14 09:26")
	assert.Contains(t, text, "Dune")
	// Missing title falls back to the book id.
	assert.Contains(t, text, "book #6")
	assert.Contains(t, text, "12.00")
}
