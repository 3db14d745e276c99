package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
	orderrepo "github.com/khsakib1010-art/b2b-store/internal/repository/order"
)

var (
	// ErrPONumberRequired is returned for a blank purchase-order number.
	ErrPONumberRequired = errors.New("po number required")
	// ErrNoItems is returned when the submitted order has no line items.
	ErrNoItems = errors.New("order has no items")
)

// ValidationError marks a user-correctable submission problem, as opposed
// to a storage or catalog failure.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

type Service struct {
	repo     orderRepo
	products productGetter
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo orderrepo.Repository, products productGetter) *Service {
	return &Service{repo: repo, products: products}
}

// ItemInput is one submitted line item.
type ItemInput struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	StyleNumber string `json:"styleNumber"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
}

// CreateInput is the submission payload. The total is never part of it; it
// is always recomputed here from the items.
type CreateInput struct {
	PONumber string      `json:"poNumber"`
	Items    []ItemInput `json:"items"`
}

// Create validates the submission against the live catalog and persists it
// under the acting customer's identity.
func (s *Service) Create(ctx context.Context, actor *domain.User, in CreateInput) (*domain.Order, error) {
	if actor == nil {
		return nil, errors.New("actor required")
	}
	po := strings.TrimSpace(in.PONumber)
	if po == "" {
		return nil, ErrPONumberRequired
	}
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, validationErrorf("quantity must be positive for product %s size %s", item.ProductID, item.Size)
		}
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, validationErrorf("unknown product %s", item.ProductID)
			}
			return nil, err
		}
		color := strings.TrimSpace(item.Color)
		if !product.HasColor(color) {
			return nil, validationErrorf("product %s has no color %q", product.StyleNumber, item.Color)
		}
		name := strings.TrimSpace(item.ProductName)
		if name == "" {
			name = product.Name
		}
		style := strings.TrimSpace(item.StyleNumber)
		if style == "" {
			style = product.StyleNumber
		}
		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: name,
			StyleNumber: style,
			Color:       color,
			Size:        domain.NormalizeSize(item.Size),
			Quantity:    item.Quantity,
		})
	}

	return s.repo.Create(ctx, orderrepo.CreateOrderInput{
		CustomerID:    actor.ID,
		CustomerName:  actor.Name,
		CustomerEmail: actor.Email,
		PONumber:      po,
		Items:         items,
	})
}

// List returns orders visible to the actor: all of them for admins, only
// the actor's own otherwise.
func (s *Service) List(ctx context.Context, actor *domain.User) ([]domain.Order, error) {
	if actor == nil {
		return nil, errors.New("actor required")
	}
	if actor.IsAdmin() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByCustomer(ctx, actor.ID)
}

// Get returns one order, masking foreign orders as not found for customers.
func (s *Service) Get(ctx context.Context, actor *domain.User, id string) (*domain.Order, error) {
	if actor == nil {
		return nil, errors.New("actor required")
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && o.CustomerID != actor.ID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// UpdateStatus moves an order to any valid status. There is deliberately no
// forward-only transition guard; admins may correct a status in either
// direction.
func (s *Service) UpdateStatus(ctx context.Context, id string, rawStatus string) (*domain.Order, error) {
	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, validationErrorf("%s", err.Error())
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
