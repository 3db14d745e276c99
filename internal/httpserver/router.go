package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
	catalogsvc "github.com/khsakib1010-art/b2b-store/internal/service/catalog"
	ordersvc "github.com/khsakib1010-art/b2b-store/internal/service/order"
	usersvc "github.com/khsakib1010-art/b2b-store/internal/service/user"
)

type userService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
	Create(ctx context.Context, in usersvc.CreateInput) (*domain.User, error)
	List(ctx context.Context, role domain.Role) ([]domain.User, error)
	AccessTTLSeconds() int
}

type catalogService interface {
	List(ctx context.Context, actor *domain.User) ([]domain.Product, error)
	Upsert(ctx context.Context, in catalogsvc.UpsertInput) (*domain.Product, error)
	SetVisibility(ctx context.Context, productID string, customerIDs []string) error
}

type orderService interface {
	Create(ctx context.Context, actor *domain.User, in ordersvc.CreateInput) (*domain.Order, error)
	List(ctx context.Context, actor *domain.User) ([]domain.Order, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, rawStatus string) (*domain.Order, error)
}

// Deps carries the services the router needs.
type Deps struct {
	UserSvc    userService
	CatalogSvc catalogService
	OrderSvc   orderService
}

// buildRouter wires routes for the portal API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigin string) (*gin.Engine, error) {
	if deps.UserSvc == nil || deps.CatalogSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: missing dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if corsOrigin == "" || corsOrigin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{corsOrigin}
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/login", loginHandler(deps.UserSvc))

	authed := router.Group("/", authMiddleware(deps.UserSvc))
	authed.GET("/me", meHandler)
	authed.POST("/auth/logout", logoutHandler(deps.UserSvc))
	authed.GET("/products", listProductsHandler(deps.CatalogSvc))
	authed.POST("/orders", createOrderHandler(deps.OrderSvc))
	authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
	authed.GET("/orders/:orderId", getOrderHandler(deps.OrderSvc))

	admin := authed.Group("/admin", requireAdmin)
	admin.PATCH("/orders/:orderId/status", updateOrderStatusHandler(deps.OrderSvc))
	admin.GET("/orders/export", exportOrdersHandler(deps.OrderSvc))
	admin.GET("/products", listProductsHandler(deps.CatalogSvc))
	admin.POST("/products", upsertProductHandler(deps.CatalogSvc))
	admin.PUT("/products/:productId/visibility", setVisibilityHandler(deps.CatalogSvc))
	admin.POST("/customers", createCustomerHandler(deps.UserSvc))
	admin.GET("/customers", listCustomersHandler(deps.UserSvc))

	return router, nil
}
