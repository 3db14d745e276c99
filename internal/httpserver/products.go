package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
	catalogsvc "github.com/khsakib1010-art/b2b-store/internal/service/catalog"
	ordersvc "github.com/khsakib1010-art/b2b-store/internal/service/order"
	usersvc "github.com/khsakib1010-art/b2b-store/internal/service/user"
)

func listProductsHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.List(c.Request.Context(), currentUser(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product list failed"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func upsertProductHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalogsvc.UpsertInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
			return
		}
		product, err := catalog.Upsert(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

type visibilityRequest struct {
	CustomerIDs []string `json:"customerIds"`
}

func setVisibilityHandler(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req visibilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid visibility payload"})
			return
		}
		if err := catalog.SetVisibility(c.Request.Context(), c.Param("productId"), req.CustomerIDs); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "visibility update failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func createCustomerHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req usersvc.CreateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account payload"})
			return
		}
		user, err := users.Create(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

func listCustomersHandler(users userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := users.List(c.Request.Context(), domain.Role(c.Query("role")))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "account list failed"})
			return
		}
		if result == nil {
			result = []domain.User{}
		}
		c.JSON(http.StatusOK, result)
	}
}

func isValidationError(err error) bool {
	var ve *ordersvc.ValidationError
	return errors.As(err, &ve)
}
