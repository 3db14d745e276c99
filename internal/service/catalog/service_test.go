package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

type stubProductRepo struct {
	all        []domain.Product
	visibleTo  map[string][]domain.Product
	upserted   *domain.Product
	visibility map[string][]string
}

func (s *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.all, nil
}

func (s *stubProductRepo) ListVisibleTo(_ context.Context, customerID string) ([]domain.Product, error) {
	return s.visibleTo[customerID], nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range s.all {
		if s.all[i].ID == id {
			return &s.all[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) Upsert(_ context.Context, product domain.Product) (*domain.Product, error) {
	product.ID = "p-new"
	s.upserted = &product
	return &product, nil
}

func (s *stubProductRepo) SetVisibility(_ context.Context, productID string, customerIDs []string) error {
	if s.visibility == nil {
		s.visibility = make(map[string][]string)
	}
	s.visibility[productID] = customerIDs
	return nil
}

func TestListScopesByRole(t *testing.T) {
	repo := &stubProductRepo{
		all: []domain.Product{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
		visibleTo: map[string][]domain.Product{
			"u1": {{ID: "p2"}},
		},
	}
	svc := New(repo)

	got, err := svc.List(context.Background(), &domain.User{ID: "a1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("admin should see full catalog, got %d products", len(got))
	}

	got, err = svc.List(context.Background(), &domain.User{ID: "u1", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("customer should see visibility-filtered catalog, got %+v", got)
	}
}

func TestGet(t *testing.T) {
	repo := &stubProductRepo{all: []domain.Product{{ID: "p1", StyleNumber: "TS-1001"}}}
	svc := New(repo)

	p, err := svc.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.StyleNumber != "TS-1001" {
		t.Fatalf("unexpected product: %+v", p)
	}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertValidation(t *testing.T) {
	svc := New(&stubProductRepo{})

	cases := []struct {
		name string
		in   UpsertInput
	}{
		{"missing style", UpsertInput{Name: "Tee", Colors: []string{"navy"}, Sizes: []string{"M"}}},
		{"missing name", UpsertInput{StyleNumber: "TS-1", Colors: []string{"navy"}, Sizes: []string{"M"}}},
		{"no colors", UpsertInput{StyleNumber: "TS-1", Name: "Tee", Colors: []string{"  "}, Sizes: []string{"M"}}},
		{"no sizes", UpsertInput{StyleNumber: "TS-1", Name: "Tee", Colors: []string{"navy"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Upsert(context.Background(), tc.in); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	negative := int64(-100)
	if _, err := svc.Upsert(context.Background(), UpsertInput{
		StyleNumber: "TS-1", Name: "Tee", Colors: []string{"navy"}, Sizes: []string{"M"}, PriceCents: &negative,
	}); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestUpsertNormalizesColorsAndSizes(t *testing.T) {
	repo := &stubProductRepo{}
	svc := New(repo)

	p, err := svc.Upsert(context.Background(), UpsertInput{
		StyleNumber: " TS-1001 ",
		Name:        " Classic Crew Tee ",
		Colors:      []string{" navy ", "navy", "black", ""},
		Sizes:       []string{"S", "10.0", "10", "M"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.StyleNumber != "TS-1001" || p.Name != "Classic Crew Tee" {
		t.Fatalf("expected trimmed fields, got %+v", p)
	}
	if !reflect.DeepEqual(p.Colors, []string{"navy", "black"}) {
		t.Fatalf("unexpected colors: %v", p.Colors)
	}
	if !reflect.DeepEqual(p.Sizes, []string{"S", "10", "M"}) {
		t.Fatalf("expected deduped normalized sizes, got %v", p.Sizes)
	}
}

func TestSetVisibilityDedupes(t *testing.T) {
	repo := &stubProductRepo{}
	svc := New(repo)

	if err := svc.SetVisibility(context.Background(), "p1", []string{"u1", " u1 ", "u2", ""}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(repo.visibility["p1"], []string{"u1", "u2"}) {
		t.Fatalf("unexpected visibility list: %v", repo.visibility["p1"])
	}

	if err := svc.SetVisibility(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected error for blank product id")
	}
}
