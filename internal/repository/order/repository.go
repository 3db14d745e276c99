package order

import (
	"context"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

// CreateOrderInput carries everything the order row needs; the repository
// assigns id/createdAt and recomputes total_items from the inserted items.
type CreateOrderInput struct {
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	PONumber      string
	Items         []domain.OrderItem
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}
