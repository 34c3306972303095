package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bookstore/internal/http-api/dto"
	"bookstore/internal/http-api/middleware"
	"bookstore/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthorHandler struct {
	authors service.AuthorService
}

func NewAuthorHandler(authors service.AuthorService) *AuthorHandler {
	return &AuthorHandler{authors: authors}
}

func (h *AuthorHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("", authMW, h.List)
	rg.GET("/:id", authMW, h.Get)
	rg.POST("/new_author", authMW, middleware.RequireManager(), h.Create)
	rg.PUT("/:id/update", authMW, middleware.RequireManager(), h.Update)
}

func (h *AuthorHandler) List(c *gin.Context) {
	// authors default to a large page, the catalog UI loads them all at once
	page, pageSize, includeTotal := parsePagination(c, 100)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	authors, total, err := h.authors.List(ctx, page, pageSize, includeTotal)
	if err != nil {
		internalError(c, err)
		return
	}

	resp := make([]dto.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		resp = append(resp, dto.FromAuthorToResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{
		"authors": resp,
		"page":    pageEnvelope(page, pageSize, total, includeTotal),
	})
}

func (h *AuthorHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	author, err := h.authors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromAuthorToResponse(*author))
}

func (h *AuthorHandler) Create(c *gin.Context) {
	var in dto.CreateAuthorDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	author, err := h.authors.Create(ctx, in)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Author created successfully",
		"author_id": author.ID,
	})
}

func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateAuthorDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.authors.Update(ctx, id, in); err != nil {
		switch {
		case errors.Is(err, service.ErrNothingToUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bio or name are required"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Author updated successfully"})
}
