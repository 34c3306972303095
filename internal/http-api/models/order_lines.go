package models

// Order line types: a line either buys or rents a single book.
const (
	LineTypeBuy  = "buy"
	LineTypeRent = "rent"
)

// OrderLine records one book within an order. Price is a snapshot of the
// book's buy or rent price at order time and never changes afterwards.
type OrderLine struct {
	ID      int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64   `gorm:"not null;index" json:"order_id"`
	BookID  int64   `gorm:"not null;index" json:"book_id"`
	Type    string  `gorm:"size:10;not null" json:"type"`
	Price   float64 `gorm:"type:decimal(7,2);not null" json:"price"`

	Book Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (OrderLine) TableName() string {
	return "order_lines"
}
