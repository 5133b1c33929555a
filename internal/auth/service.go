package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"filehub/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxPasswordLength = 72 // bcrypt limit

// accountStore abstracts the persistence layer.
type accountStore interface {
	CreateAccount(ctx context.Context, account, passwordHash string) (Account, error)
	FindAccount(ctx context.Context, account string) (Account, error)
}

// Service encapsulates registration and login use cases.
type Service struct {
	store   accountStore
	cfg     config.AuthConfig
	nowFunc func() time.Time
	issuer  string
	parser  *jwt.Parser
}

// NewService creates a Service with dependencies.
func NewService(store accountStore, cfg config.AuthConfig) *Service {
	return &Service{
		store:   store,
		cfg:     cfg,
		nowFunc: time.Now,
		issuer:  "filehub",
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
	}
}

// Credentials carries an account name and password.
type Credentials struct {
	Account  string
	Password string
}

// AuthResult contains account and token information.
type AuthResult struct {
	Account Account
	Token   string
	Expiry  time.Time
}

// Claims describes the validated identity extracted from an access token.
type Claims struct {
	AccountID uuid.UUID
	Account   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Register creates a new login record, hashing the password.
func (s *Service) Register(ctx context.Context, input Credentials) (Account, error) {
	if err := validateCredentials(input); err != nil {
		return Account{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	acc, err := s.store.CreateAccount(ctx, strings.TrimSpace(input.Account), string(hashed))
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			return Account{}, ErrAccountExists
		}
		return Account{}, fmt.Errorf("create account: %w", err)
	}

	return acc, nil
}

// Login authenticates credentials and issues an access token.
func (s *Service) Login(ctx context.Context, input Credentials) (AuthResult, error) {
	if err := validateCredentials(input); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	acc, err := s.store.FindAccount(ctx, strings.TrimSpace(input.Account))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return AuthResult{}, ErrAccountNotFound
		}
		return AuthResult{}, fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(input.Password)); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issueToken(acc)
}

// ValidateToken verifies the token signature and extracts claims.
func (s *Service) ValidateToken(tokenString string) (Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrUnauthorized
	}

	token, err := s.parser.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.TokenSecret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrUnauthorized
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrUnauthorized
	}

	sub, _ := mapClaims["sub"].(string)
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, ErrUnauthorized
	}

	claims := Claims{AccountID: accountID}
	claims.Account, _ = mapClaims["acc"].(string)
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(s.nowFunc()) {
		return Claims{}, ErrUnauthorized
	}

	return claims, nil
}

func (s *Service) issueToken(acc Account) (AuthResult, error) {
	now := s.nowFunc()
	expiry := now.Add(s.cfg.TokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": s.issuer,
		"sub": acc.ID.String(),
		"acc": acc.Account,
		"iat": now.Unix(),
		"exp": expiry.Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}

	return AuthResult{Account: acc, Token: signed, Expiry: expiry}, nil
}

func validateCredentials(input Credentials) error {
	if strings.TrimSpace(input.Account) == "" {
		return ErrInvalidCredentials
	}
	if input.Password == "" || len(input.Password) > maxPasswordLength {
		return ErrInvalidCredentials
	}
	return nil
}
