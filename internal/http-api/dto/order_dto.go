package dto

import (
	"time"

	"bookstore/internal/http-api/models"
)

type OrderLineRequest struct {
	BookID int64  `json:"book_id" binding:"required"`
	Type   string `json:"type" binding:"required"`
}

type CreateOrderDTO struct {
	OrderLines []OrderLineRequest `json:"order_lines" binding:"required,min=1,dive"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

type OrderLineResponse struct {
	ID     int64   `json:"id"`
	BookID int64   `json:"book_id"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
}

type OrderResponse struct {
	ID            int64               `json:"id"`
	UserID        int64               `json:"user_id"`
	OrderDate     time.Time           `json:"order_date"`
	PaymentStatus string              `json:"payment_status"`
	TotalPrice    float64             `json:"total_price"`
	EmailSent     bool                `json:"email_sent"`
	OrderLines    []OrderLineResponse `json:"order_lines"`
}

func FromOrderToResponse(o models.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.OrderLines))
	for _, ol := range o.OrderLines {
		lines = append(lines, OrderLineResponse{
			ID:     ol.ID,
			BookID: ol.BookID,
			Type:   ol.Type,
			Price:  ol.Price,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		OrderDate:     o.OrderDate,
		PaymentStatus: o.PaymentStatus,
		TotalPrice:    o.TotalPrice,
		EmailSent:     o.EmailSent,
		OrderLines:    lines,
	}
}
