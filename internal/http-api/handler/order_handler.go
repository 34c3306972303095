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

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/create_order", authMW, middleware.RequireCustomer(), h.Create)
	rg.GET("", authMW, middleware.RequireManager(), h.List)
	rg.PATCH("/:id/status", authMW, middleware.RequireManager(), h.UpdateStatus)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var in dto.CreateOrderDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, receipt, err := h.orders.CreateOrder(ctx, identity.UserID, in.OrderLines)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidLineType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrBookNotAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order created successfully",
		"order_id": order.ID,
		"receipt":  receipt,
	})
}

func (h *OrderHandler) List(c *gin.Context) {
	paymentStatus := strings.TrimSpace(c.Query("payment_status"))
	page, pageSize, includeTotal := parsePagination(c, 20)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, total, err := h.orders.List(ctx, paymentStatus, page, pageSize, includeTotal)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPaymentStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment_status filter"})
			return
		}
		internalError(c, err)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, dto.FromOrderToResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{
		"orders": resp,
		"page":   pageEnvelope(page, pageSize, total, includeTotal),
	})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateOrderStatusDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.orders.UpdatePaymentStatus(ctx, id, in.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPaymentStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
}
