package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"filehub/internal/config"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		TokenSecret: "test-secret-please-ignore",
		TokenTTL:    time.Hour,
		BcryptCost:  bcrypt.MinCost,
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeAccountStore()
	service := NewService(store, testConfig())

	acc, err := service.Register(context.Background(), Credentials{Account: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	stored := store.accounts["alice"]
	if stored.PasswordHash == "secret123" || stored.PasswordHash == "" {
		t.Fatalf("expected hashed password, got %q", stored.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if acc.Account != "alice" {
		t.Fatalf("unexpected account name %q", acc.Account)
	}
}

func TestRegisterRejectsDuplicateAccount(t *testing.T) {
	store := newFakeAccountStore()
	service := NewService(store, testConfig())

	if _, err := service.Register(context.Background(), Credentials{Account: "bob", Password: "secret123"}); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	if _, err := service.Register(context.Background(), Credentials{Account: "bob", Password: "other456"}); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	store := newFakeAccountStore()
	service := NewService(store, testConfig())

	if _, err := service.Register(context.Background(), Credentials{Account: "carol", Password: "secret123"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	result, err := service.Login(context.Background(), Credentials{Account: "carol", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}

	claims, err := service.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.Account != "carol" {
		t.Fatalf("unexpected claims account %q", claims.Account)
	}
	if claims.AccountID != result.Account.ID {
		t.Fatalf("claims subject does not match account id")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	store := newFakeAccountStore()
	service := NewService(store, testConfig())

	if _, err := service.Register(context.Background(), Credentials{Account: "dave", Password: "secret123"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := service.Login(context.Background(), Credentials{Account: "dave", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Login(context.Background(), Credentials{Account: "nobody", Password: "secret123"}); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	store := newFakeAccountStore()
	service := NewService(store, testConfig())
	service.nowFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	if _, err := service.Register(context.Background(), Credentials{Account: "erin", Password: "secret123"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	result, err := service.Login(context.Background(), Credentials{Account: "erin", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	service.nowFunc = time.Now
	if _, err := service.ValidateToken(result.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

// --- fakes ---

type fakeAccountStore struct {
	accounts map[string]Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[string]Account)}
}

func (f *fakeAccountStore) CreateAccount(ctx context.Context, account, passwordHash string) (Account, error) {
	if _, ok := f.accounts[account]; ok {
		return Account{}, ErrAccountExists
	}
	acc := Account{
		ID:           uuid.New(),
		Account:      account,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.accounts[account] = acc
	return acc, nil
}

func (f *fakeAccountStore) FindAccount(ctx context.Context, account string) (Account, error) {
	acc, ok := f.accounts[account]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acc, nil
}
