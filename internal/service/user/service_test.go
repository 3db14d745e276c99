package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
	tokenrepo "github.com/khsakib1010-art/b2b-store/internal/repository/token"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	created *domain.User
}

func (s *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	u.ID = "u-new"
	s.created = &u
	return &u, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) List(_ context.Context, _ domain.Role) ([]domain.User, error) {
	return nil, nil
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (m *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := m.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	m.tokens[t.Token] = t
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, tok string) (*tokenrepo.Token, error) {
	t, ok := m.tokens[tok]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memTokenRepo) Delete(_ context.Context, tok string) error {
	delete(m.tokens, tok)
	return nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func buyerRepo(t *testing.T) *stubUserRepo {
	t.Helper()
	u := &domain.User{
		ID:           "u1",
		Email:        "buyer@example.com",
		Name:         "Buyer One",
		Role:         domain.RoleCustomer,
		PasswordHash: hash(t, "Buyer1234"),
	}
	return &stubUserRepo{
		byEmail: map[string]*domain.User{u.Email: u},
		byID:    map[string]*domain.User{u.ID: u},
	}
}

func TestLoginIssuesTokens(t *testing.T) {
	tokens := newMemTokenRepo()
	svc := New(buyerRepo(t), tokens)

	u, access, refresh, err := svc.Login(context.Background(), " Buyer@Example.com ", "Buyer1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "u1" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if access == "" || refresh == "" || access == refresh {
		t.Fatalf("expected two distinct tokens, got %q / %q", access, refresh)
	}
	if tokens.tokens[access].Kind != "access" || tokens.tokens[refresh].Kind != "refresh" {
		t.Fatal("expected access and refresh kinds stored")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := New(buyerRepo(t), newMemTokenRepo())

	if _, _, _, err := svc.Login(context.Background(), "buyer@example.com", "wrong-Pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "nobody@example.com", "Buyer1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLookupByToken(t *testing.T) {
	tokens := newMemTokenRepo()
	svc := New(buyerRepo(t), tokens)

	_, access, _, err := svc.Login(context.Background(), "buyer@example.com", "Buyer1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	u, err := svc.LookupByToken(context.Background(), access)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "buyer@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.LookupByToken(context.Background(), "bogus"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLookupRejectsRefreshAndExpiredTokens(t *testing.T) {
	tokens := newMemTokenRepo()
	svc := New(buyerRepo(t), tokens)

	_, _, refresh, err := svc.Login(context.Background(), "buyer@example.com", "Buyer1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.LookupByToken(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token must not authenticate, got %v", err)
	}

	tokens.tokens["stale"] = tokenrepo.Token{
		Token:     "stale",
		UserID:    "u1",
		Kind:      "access",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if _, err := svc.LookupByToken(context.Background(), "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token must not authenticate, got %v", err)
	}
	if _, ok := tokens.tokens["stale"]; ok {
		t.Fatal("expired token should be deleted on validation")
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	tokens := newMemTokenRepo()
	svc := New(buyerRepo(t), tokens)

	_, access, _, err := svc.Login(context.Background(), "buyer@example.com", "Buyer1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), access); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.LookupByToken(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("revoked token must not authenticate, got %v", err)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	repo := &stubUserRepo{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
	svc := New(repo, newMemTokenRepo())

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing email", CreateInput{Name: "A", Password: "Abcdef12"}},
		{"missing name", CreateInput{Email: "a@b.com", Password: "Abcdef12"}},
		{"short password", CreateInput{Email: "a@b.com", Name: "A", Password: "Ab1"}},
		{"no digit", CreateInput{Email: "a@b.com", Name: "A", Password: "Abcdefgh"}},
		{"no upper", CreateInput{Email: "a@b.com", Name: "A", Password: "abcdefg1"}},
		{"bad role", CreateInput{Email: "a@b.com", Name: "A", Password: "Abcdef12", Role: "owner"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.in); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCreateDefaultsToCustomerRole(t *testing.T) {
	repo := &stubUserRepo{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
	svc := New(repo, newMemTokenRepo())

	u, err := svc.Create(context.Background(), CreateInput{
		Email:    " New.Buyer@Example.COM ",
		Name:     "New Buyer",
		Company:  "Acme Retail",
		Password: "Buyer1234",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "new.buyer@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if u.Role != domain.RoleCustomer {
		t.Fatalf("expected customer role, got %q", u.Role)
	}
	if u.PasswordHash == "" || u.PasswordHash == "Buyer1234" {
		t.Fatal("expected hashed password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Buyer1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}
