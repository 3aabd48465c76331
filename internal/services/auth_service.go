package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/repositories"
	"travelagency/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, rec models.User) (models.User, repositories.Backend, error)
	List(ctx context.Context) ([]models.User, repositories.Backend, error)
}

type AuthService struct {
	Users     UserStore
	Allocator Allocator
	Secret    []byte
	TTL       time.Duration
	RequestID string
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Register creates a customer account. Staff and admin accounts are
// provisioned by the excluded back office.
func (s AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	email := utils.NormalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "format email tidak valid", Err: err}
	}
	if len(in.Password) < 8 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "minimal 8 karakter"}
	}
	if _, err := s.findByEmail(ctx, email); err == nil {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email sudah terdaftar"}
	} else if !domain.IsNotFound(err) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal meng-hash password", Err: err}
	}

	u, _, err := s.Users.Create(ctx, models.User{
		ID:           s.Allocator.Next(ctx),
		Name:         utils.NormalizeSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         string(domain.RoleCustomer),
	})
	if err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", "user_id="+u.ID)
	return u, nil
}

// Login checks credentials and issues a signed token.
func (s AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	u, err := s.findByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, domain.UnauthorizedError{Msg: "email atau password salah"}
		}
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, domain.UnauthorizedError{Msg: "email atau password salah"}
	}
	token, err := s.Issue(u)
	if err != nil {
		return "", models.User{}, domain.InternalError{Msg: "gagal membuat token", Err: err}
	}
	return token, u, nil
}

// Issue signs an HS256 token carrying the caller identity.
func (s AuthService) Issue(u models.User) (string, error) {
	ttl := s.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(s.Secret)
}

// ParseToken validates a token and returns the caller it names.
func (s AuthService) ParseToken(raw string) (domain.Caller, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Caller{}, domain.UnauthorizedError{Msg: fmt.Sprintf("token tidak valid: %v", err)}
	}
	role := domain.ParseRole(c.Role)
	if role == "" {
		return domain.Caller{}, domain.UnauthorizedError{Msg: "role tidak dikenal"}
	}
	return domain.Caller{UserID: c.Subject, Email: c.Email, Role: role}, nil
}

func (s AuthService) findByEmail(ctx context.Context, email string) (models.User, error) {
	users, _, err := s.Users.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user", Err: errors.New(email)}
}
