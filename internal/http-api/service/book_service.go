package service

import (
	"context"
	"errors"
	"strings"

	"bookstore/internal/http-api/dto"
	"bookstore/internal/http-api/models"
	"bookstore/internal/http-api/repository"
)

var (
	ErrInvalidBookStatus = errors.New("invalid book status")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrAuthorRequired    = errors.New("author_id or author_name is required")
)

type BookService interface {
	Search(ctx context.Context, f dto.BookSearchFilters) ([]models.Book, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, in dto.CreateBookDTO) (*models.Book, error)
	Update(ctx context.Context, id int64, in dto.UpdateBookDTO) (*models.Book, error)
	OverrideStatus(ctx context.Context, id int64, status string) error
}

type bookService struct {
	books   *repository.BookRepo
	authors *repository.AuthorRepo
}

func NewBookService(books *repository.BookRepo, authors *repository.AuthorRepo) BookService {
	return &bookService{books: books, authors: authors}
}

func (s *bookService) Search(ctx context.Context, f dto.BookSearchFilters) ([]models.Book, int64, error) {
	statuses, err := resolveStatusFilter(f.Status)
	if err != nil {
		return nil, 0, err
	}

	q := repository.BookQuery{
		AuthorID:      f.AuthorID,
		Statuses:      statuses,
		Keywords:      f.Keywords,
		TitleContains: f.TitleContains,
		Page:          f.PageNumber,
		PageSize:      f.PageSize,
		IncludeTotal:  f.IncludeTotal,
	}
	return s.books.Search(ctx, q)
}

// resolveStatusFilter expands the symbolic status groups the catalog
// search accepts into literal status values.
func resolveStatusFilter(status string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "":
		return nil, nil
	case "available":
		return []string{models.BookStatusNew, models.BookStatusReturned}, nil
	case "unavailable":
		return []string{models.BookStatusRented, models.BookStatusSold}, nil
	case "used":
		return []string{models.BookStatusReturned}, nil
	default:
		if !models.IsValidBookStatus(status) {
			return nil, ErrInvalidBookStatus
		}
		return []string{status}, nil
	}
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	return s.books.GetByID(ctx, id)
}

func (s *bookService) Create(ctx context.Context, in dto.CreateBookDTO) (*models.Book, error) {
	if *in.PriceBuy < 0 || *in.PriceRent < 0 {
		return nil, ErrNegativePrice
	}

	author, err := s.resolveAuthor(ctx, in)
	if err != nil {
		return nil, err
	}

	book := &models.Book{
		AuthorID:    author.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		PriceBuy:    round2(*in.PriceBuy),
		PriceRent:   round2(*in.PriceRent),
		Status:      models.BookStatusNew,
	}

	if err := s.books.Create(ctx, book, in.Keywords); err != nil {
		return nil, err
	}
	return s.books.GetByID(ctx, book.ID)
}

// resolveAuthor turns the DTO's author reference into a row: an existing
// id is looked up, a name is find-or-created.
func (s *bookService) resolveAuthor(ctx context.Context, in dto.CreateBookDTO) (*models.Author, error) {
	if in.AuthorID != nil {
		return s.authors.GetByID(ctx, *in.AuthorID)
	}
	if name := strings.TrimSpace(in.AuthorName); name != "" {
		return s.authors.FindOrCreateByName(ctx, name, in.AuthorBio)
	}
	return nil, ErrAuthorRequired
}

// Update applies partial changes: nil fields stay untouched. A non-nil
// keyword list is diffed against the current associations.
func (s *bookService) Update(ctx context.Context, id int64, in dto.UpdateBookDTO) (*models.Book, error) {
	existing, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		existing.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		existing.Description = *in.Description
	}
	if in.PriceBuy != nil {
		if *in.PriceBuy < 0 {
			return nil, ErrNegativePrice
		}
		existing.PriceBuy = round2(*in.PriceBuy)
	}
	if in.PriceRent != nil {
		if *in.PriceRent < 0 {
			return nil, ErrNegativePrice
		}
		existing.PriceRent = round2(*in.PriceRent)
	}
	if in.AuthorID != nil {
		author, err := s.authors.GetByID(ctx, *in.AuthorID)
		if err != nil {
			return nil, err
		}
		existing.AuthorID = author.ID
		existing.Author = *author
	}

	if err := s.books.Update(ctx, existing); err != nil {
		return nil, err
	}

	if in.Keywords != nil {
		if err := s.books.ReplaceKeywords(ctx, existing, *in.Keywords); err != nil {
			return nil, err
		}
	}

	return s.books.GetByID(ctx, id)
}

// OverrideStatus is the manager-only escape hatch: it validates the enum
// value but deliberately skips the transition graph that guards the
// normal order and return flows.
func (s *bookService) OverrideStatus(ctx context.Context, id int64, status string) error {
	if !models.IsValidBookStatus(status) {
		return ErrInvalidBookStatus
	}
	return s.books.UpdateStatus(ctx, id, status)
}
