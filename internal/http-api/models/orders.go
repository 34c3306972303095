package models

import "time"

// Order payment status values. Unlike book status there is no transition
// graph here: managers may set any valid value at any time.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusCancelled = "cancelled"
)

type Order struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"index" json:"user_id"`
	OrderDate     time.Time `gorm:"autoCreateTime" json:"order_date"`
	PaymentStatus string    `gorm:"size:20;default:'pending';not null" json:"payment_status"`
	TotalPrice    float64   `gorm:"type:decimal(10,2);not null" json:"total_price"`
	EmailSent     bool      `gorm:"default:false" json:"email_sent"`

	OrderLines []OrderLine `gorm:"foreignKey:OrderID" json:"order_lines,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// IsValidPaymentStatus reports whether s is one of the known payment states.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusCancelled:
		return true
	}
	return false
}
