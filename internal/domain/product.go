package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	StyleNumber string    `json:"styleNumber"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Colors      []string  `json:"colors"`
	Sizes       []string  `json:"sizes"`
	PriceCents  *int64    `json:"priceCents,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Orderable reports whether the product can be put on an order. Products
// without colors or sizes are catalog stubs only.
func (p Product) Orderable() bool {
	return len(p.Colors) > 0 && len(p.Sizes) > 0
}

// HasColor reports whether color is one of the product's colors.
func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// DefaultColor returns the first catalog color, or "" for a stub product.
func (p Product) DefaultColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0]
}

// NormalizeSize canonicalizes a size label to its string key. Numeric labels
// are reformatted so "10" and "10.0" land on the same key.
func NormalizeSize(label string) string {
	s := strings.TrimSpace(label)
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return s
}
