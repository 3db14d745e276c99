package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userSeed struct {
	Email    string
	Name     string
	Company  string
	Role     string
	Password string
}

type productSeed struct {
	StyleNumber string
	Name        string
	Description string
	Colors      []string
	Sizes       []string
	PriceCents  int64
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{
			Email:    "admin@example.com",
			Name:     "Portal Admin",
			Role:     "admin",
			Password: "Admin123!",
		},
		{
			Email:    "buyer@example.com",
			Name:     "Demo Buyer",
			Company:  "Acme Retail",
			Role:     "customer",
			Password: "Buyer1234",
		},
	}
	for _, u := range users {
		if err := upsertUser(ctx, pool, u); err != nil {
			return fmt.Errorf("upsert user %s: %w", u.Email, err)
		}
	}

	products := []productSeed{
		{
			StyleNumber: "TS-1001",
			Name:        "Classic Crew Tee",
			Description: "Heavyweight cotton crew neck",
			Colors:      []string{"navy", "black", "white"},
			Sizes:       []string{"S", "M", "L", "XL"},
			PriceCents:  1299,
		},
		{
			StyleNumber: "HD-2040",
			Name:        "Zip Hoodie",
			Description: "Fleece-lined full-zip hoodie",
			Colors:      []string{"charcoal", "forest"},
			Sizes:       []string{"M", "L", "XL", "2XL"},
			PriceCents:  3499,
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.StyleNumber, err)
		}
	}

	return nil
}

func upsertUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (email, name, company, role, password_hash)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, company = EXCLUDED.company
`
	_, err = pool.Exec(ctx, q, u.Email, u.Name, u.Company, u.Role, string(hashed))
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (style_number, name, description, colors, sizes, price_cents)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (style_number) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    colors = EXCLUDED.colors,
    sizes = EXCLUDED.sizes,
    price_cents = EXCLUDED.price_cents
`
	_, err := pool.Exec(ctx, q, p.StyleNumber, p.Name, p.Description, p.Colors, p.Sizes, p.PriceCents)
	return err
}
