package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/almadepapel/storefront/internal/hash"
	"github.com/almadepapel/storefront/internal/logging"
	"github.com/almadepapel/storefront/internal/models"
	"github.com/almadepapel/storefront/internal/repo"
	"github.com/almadepapel/storefront/internal/tokens"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Secret []byte
}

type Session struct {
	Token string
	Exp   time.Time
	User  *models.User
}

func (s *AuthService) Register(ctx context.Context, name, email, password, confirmPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if name == "" || email == "" || password == "" {
		return ErrValidation
	}
	if password != confirmPassword {
		return ErrPasswordMismatch
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return ErrEmailTaken
		}
		l.Error("register_error", "reason", "cannot create user", "error", err)
		return err
	}
	return nil
}

// Login issues a signed session for valid credentials. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_error", "reason", "user lookup failed", "error", err)
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	exp := time.Now().Add(tokens.SessionTTL)
	token, err := tokens.SignSession(user.ID, user.Name, user.Email, user.Role, s.Secret, exp)
	if err != nil {
		l.Error("login_error", "reason", "cannot sign session token", "error", err)
		return nil, err
	}

	return &Session{Token: token, Exp: exp, User: user}, nil
}

func (s *AuthService) VerifySession(tokenStr string) (*tokens.SessionClaims, error) {
	return tokens.SessionClaimsFromToken(tokenStr, s.Secret)
}
