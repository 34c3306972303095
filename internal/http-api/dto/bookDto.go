package dto

import (
	"time"

	"bookstore/internal/http-api/models"
)

// CreateBookDTO used for POST /api/v1/books/new_book. The author is given
// either as an existing id or as a (name, bio) pair that is created on
// the fly when no author with that name exists yet.
type CreateBookDTO struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description"`
	PriceBuy    *float64 `json:"price_buy" binding:"required"`
	PriceRent   *float64 `json:"price_rent" binding:"required"`
	AuthorID    *int64   `json:"author_id"`
	AuthorName  string   `json:"author_name"`
	AuthorBio   string   `json:"author_bio"`
	Keywords    []string `json:"keywords"`
}

// UpdateBookDTO used for PUT /api/v1/books/:id/update. Partial update:
// nil fields are left untouched. A non-nil Keywords slice replaces the
// book's keyword set (diffed against the existing associations).
type UpdateBookDTO struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	PriceBuy    *float64  `json:"price_buy,omitempty"`
	PriceRent   *float64  `json:"price_rent,omitempty"`
	AuthorID    *int64    `json:"author_id,omitempty"`
	Keywords    *[]string `json:"keywords,omitempty"`
}

type UpdateBookStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

// BookSearchFilters collects the query parameters of GET /api/v1/books.
type BookSearchFilters struct {
	AuthorID      *int64
	Status        string
	Keywords      []string
	TitleContains string
	PageNumber    int
	PageSize      int
	IncludeTotal  bool
}

type AuthorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookBasicResponse is the list shape: no description, no keyword blow-up.
type BookBasicResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Author    AuthorRef `json:"author"`
	PriceBuy  float64   `json:"price_buy"`
	PriceRent float64   `json:"price_rent"`
}

// BookResponse is the detail shape with nested author and keywords.
type BookResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Author      AuthorRef `json:"author"`
	Keywords    []string  `json:"keywords"`
	PriceBuy    float64   `json:"price_buy"`
	PriceRent   float64   `json:"price_rent"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromBookToBasicResponse(b models.Book) BookBasicResponse {
	return BookBasicResponse{
		ID:        b.ID,
		Title:     b.Title,
		Status:    b.Status,
		Author:    AuthorRef{ID: b.AuthorID, Name: b.Author.Name},
		PriceBuy:  b.PriceBuy,
		PriceRent: b.PriceRent,
	}
}

func FromBookToResponse(b models.Book) BookResponse {
	words := make([]string, 0, len(b.Keywords))
	for _, kw := range b.Keywords {
		words = append(words, kw.Word)
	}
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Status:      b.Status,
		Author:      AuthorRef{ID: b.AuthorID, Name: b.Author.Name},
		Keywords:    words,
		PriceBuy:    b.PriceBuy,
		PriceRent:   b.PriceRent,
		CreatedAt:   b.CreatedAt,
	}
}
