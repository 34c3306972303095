package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookstore/internal/http-api/dto"
	"bookstore/internal/http-api/middleware"
	"bookstore/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookHandler struct {
	books  service.BookService
	orders service.OrderService
}

func NewBookHandler(books service.BookService, orders service.OrderService) *BookHandler {
	return &BookHandler{books: books, orders: orders}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	// Any authenticated user can browse the catalog
	rg.GET("", authMW, h.List)
	rg.GET("/:id", authMW, h.Get)

	// Manager-only catalog mutation
	rg.POST("/new_book", authMW, middleware.RequireManager(), h.Create)
	rg.PUT("/:id/update", authMW, middleware.RequireManager(), h.Update)
	rg.PATCH("/:id/status", authMW, middleware.RequireManager(), h.UpdateStatus)

	// Customers return their own rentals
	rg.PATCH("/:id/return", authMW, middleware.RequireCustomer(), h.Return)
}

func (h *BookHandler) List(c *gin.Context) {
	var filters dto.BookSearchFilters

	if a := strings.TrimSpace(c.Query("author_id")); a != "" {
		parsed, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author_id"})
			return
		}
		filters.AuthorID = &parsed
	}
	filters.Status = strings.TrimSpace(c.Query("status"))
	filters.TitleContains = strings.TrimSpace(c.Query("title_contains"))
	for _, kw := range c.QueryArray("keyword") {
		if trimmed := strings.TrimSpace(kw); trimmed != "" {
			filters.Keywords = append(filters.Keywords, trimmed)
		}
	}
	filters.PageNumber, filters.PageSize, filters.IncludeTotal = parsePagination(c, 20)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	list, total, err := h.books.Search(ctx, filters)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBookStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		internalError(c, err)
		return
	}

	resp := make([]dto.BookBasicResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, dto.FromBookToBasicResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{
		"books": resp,
		"page":  pageEnvelope(filters.PageNumber, filters.PageSize, total, filters.IncludeTotal),
	})
}

func (h *BookHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBookToResponse(*book))
}

func (h *BookHandler) Create(c *gin.Context) {
	var in dto.CreateBookDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.books.Create(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNegativePrice), errors.Is(err, service.ErrAuthorRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book created successfully",
		"book_id": book.ID,
	})
}

func (h *BookHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateBookDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.books.Update(ctx, id, in)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		case errors.Is(err, service.ErrNegativePrice):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromBookToResponse(*book))
}

// UpdateStatus is the administrative status override; it bypasses the
// transition rules the order flows enforce.
func (h *BookHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateBookStatusDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.books.OverrideStatus(ctx, id, in.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidBookStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book status updated successfully"})
}

func (h *BookHandler) Return(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.orders.ReturnBook(ctx, identity.UserID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		case errors.Is(err, service.ErrBookNotRented):
			c.JSON(http.StatusConflict, gin.H{"error": "Book is not rented"})
		case errors.Is(err, service.ErrNotYourRental):
			c.JSON(http.StatusForbidden, gin.H{"error": "Book was not rented by this user"})
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book returned successfully"})
}
