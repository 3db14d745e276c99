package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
	productrepo "github.com/khsakib1010-art/b2b-store/internal/repository/product"
)

// Service exposes the product catalog, scoped per actor.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the catalog the actor is allowed to see: everything for
// admins, visibility-filtered for customers.
func (s *Service) List(ctx context.Context, actor *domain.User) ([]domain.Product, error) {
	if actor == nil {
		return nil, errors.New("actor required")
	}
	if actor.IsAdmin() {
		return s.repo.List(ctx)
	}
	return s.repo.ListVisibleTo(ctx, actor.ID)
}

// Get returns a single product without visibility filtering; callers that
// need scoping go through List.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// UpsertInput mirrors the admin product form.
type UpsertInput struct {
	StyleNumber string   `json:"styleNumber"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	PriceCents  *int64   `json:"priceCents"`
}

// Upsert creates or updates a product keyed by style number.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*domain.Product, error) {
	style := strings.TrimSpace(in.StyleNumber)
	if style == "" {
		return nil, errors.New("styleNumber required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	colors := dedupeTrimmed(in.Colors)
	if len(colors) == 0 {
		return nil, errors.New("at least one color required")
	}
	sizes := normalizeSizes(in.Sizes)
	if len(sizes) == 0 {
		return nil, errors.New("at least one size required")
	}
	if in.PriceCents != nil && *in.PriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}

	return s.repo.Upsert(ctx, domain.Product{
		StyleNumber: style,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Colors:      colors,
		Sizes:       sizes,
		PriceCents:  in.PriceCents,
	})
}

// SetVisibility replaces the whitelist of customers the product is limited
// to. An empty list makes the product visible to everyone.
func (s *Service) SetVisibility(ctx context.Context, productID string, customerIDs []string) error {
	if strings.TrimSpace(productID) == "" {
		return errors.New("productId required")
	}
	return s.repo.SetVisibility(ctx, productID, dedupeTrimmed(customerIDs))
}

func dedupeTrimmed(values []string) []string {
	var out []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func normalizeSizes(values []string) []string {
	var out []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		key := domain.NormalizeSize(v)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
