package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
	"github.com/khsakib1010-art/b2b-store/internal/export"
	ordersvc "github.com/khsakib1010-art/b2b-store/internal/service/order"
)

func createOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ordersvc.CreateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
			return
		}
		order, err := orders.Create(c.Request.Context(), currentUser(c), req)
		if err != nil {
			switch {
			case errors.Is(err, ordersvc.ErrPONumberRequired), errors.Is(err, ordersvc.ErrNoItems):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case isValidationError(err):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "order creation failed"})
			}
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func listOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := orders.List(c.Request.Context(), currentUser(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order list failed"})
			return
		}
		if result == nil {
			result = []domain.Order{}
		}
		c.JSON(http.StatusOK, result)
	}
}

func getOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.Get(c.Request.Context(), currentUser(c), c.Param("orderId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order fetch failed"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

func updateOrderStatusHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
			return
		}
		order, err := orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case isValidationError(err):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "status update failed"})
			}
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func exportOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := orders.List(c.Request.Context(), currentUser(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order list failed"})
			return
		}
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="`+export.Filename(time.Now().UTC())+`"`)
		if err := export.Orders(c.Writer, result); err != nil {
			_ = c.Error(err)
		}
	}
}
