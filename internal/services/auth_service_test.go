package services

import (
	"context"
	"testing"
	"time"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
)

func userFixture() models.User {
	return models.User{ID: "U009", Email: "staff@example.com", Role: string(domain.RoleStaff)}
}

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	stores := fallbackOnly(t)
	return AuthService{
		Users:     stores.Users,
		Allocator: ReferenceAllocator{Prefix: "U", Width: 3, Source: stores.Users, Sequence: stores.Sequences},
		Secret:    []byte("test-secret"),
		TTL:       time.Hour,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: " Ana  Silva ", Email: "Ana@Example.com", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if u.ID != "U001" || u.Email != "ana@example.com" || u.Name != "Ana Silva" || u.Role != string(domain.RoleCustomer) {
		t.Fatalf("unexpected user %+v", u)
	}

	token, logged, err := svc.Login(ctx, "ANA@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if logged.ID != u.ID || token == "" {
		t.Fatalf("unexpected login result %+v", logged)
	}

	caller, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if caller.UserID != "U001" || caller.Email != "ana@example.com" || caller.Role != domain.RoleCustomer {
		t.Fatalf("unexpected caller %+v", caller)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "rahasia123"}); err != nil {
		t.Fatalf("register error: %v", err)
	}

	if _, _, err := svc.Login(ctx, "ana@example.com", "salah"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "rahasia123"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "bukan-email", Password: "rahasia123"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for email, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "pendek"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for password, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "rahasia123"}); err != nil {
		t.Fatalf("register error: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "ANA@example.com", Password: "rahasia123"}); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	svc := newAuthService(t)
	other := svc
	other.Secret = []byte("another-secret")

	token, err := other.Issue(userFixture())
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := svc.ParseToken(token); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	svc := newAuthService(t)
	svc.TTL = -time.Minute

	token, err := svc.Issue(userFixture())
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	svc.TTL = time.Hour
	if _, err := svc.ParseToken(token); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}
