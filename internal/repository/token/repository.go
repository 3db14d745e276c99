package token

import (
	"context"
	"time"
)

type Token struct {
	Token     string    `json:"-"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
