package models

import "time"

// Book status values. A book moves through a small state machine:
// new -> {sold, rented}; rented -> returned; returned -> {sold, rented}.
// sold is terminal, there is no resale path.
const (
	BookStatusNew      = "new"
	BookStatusRented   = "rented"
	BookStatusSold     = "sold"
	BookStatusReturned = "returned"
)

type Book struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID    int64     `gorm:"not null;index" json:"author_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	PriceBuy    float64   `gorm:"type:decimal(7,2);not null" json:"price_buy"`
	PriceRent   float64   `gorm:"type:decimal(7,2);not null" json:"price_rent"`
	Status      string    `gorm:"size:20;default:'new';not null" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Author   Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Keywords []Keyword `gorm:"many2many:book_keywords;constraint:OnDelete:CASCADE;" json:"keywords,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

// IsValidBookStatus reports whether s is one of the known status values.
func IsValidBookStatus(s string) bool {
	switch s {
	case BookStatusNew, BookStatusRented, BookStatusSold, BookStatusReturned:
		return true
	}
	return false
}

// CanTransition reports whether the normal order/return flows may move a book
// from one status to another. Administrative overrides bypass this check.
func CanTransition(from, to string) bool {
	switch from {
	case BookStatusNew, BookStatusReturned:
		return to == BookStatusSold || to == BookStatusRented
	case BookStatusRented:
		return to == BookStatusReturned
	}
	return false
}
