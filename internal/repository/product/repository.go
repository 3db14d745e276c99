package product

import (
	"context"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListVisibleTo(ctx context.Context, customerID string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	SetVisibility(ctx context.Context, productID string, customerIDs []string) error
}
