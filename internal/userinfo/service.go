package userinfo

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// infoStore abstracts the persistence layer.
type infoStore interface {
	ListAll(ctx context.Context) ([]UserInfo, error)
	Create(ctx context.Context, name string, age int, interests []string) (UserInfo, error)
	Update(ctx context.Context, id uuid.UUID, name string, age int, interests []string) (UserInfo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages user-info records.
type Service struct {
	store infoStore
}

// NewService constructs a user-info service.
func NewService(store infoStore) *Service {
	return &Service{store: store}
}

// Input carries the mutable fields of a record.
type Input struct {
	Name      string
	Age       int
	Interests []string
}

// ListAll returns every record.
func (s *Service) ListAll(ctx context.Context) ([]UserInfo, error) {
	return s.store.ListAll(ctx)
}

// Create stores a new record.
func (s *Service) Create(ctx context.Context, input Input) (UserInfo, error) {
	return s.store.Create(ctx, strings.TrimSpace(input.Name), input.Age, input.Interests)
}

// Update replaces an existing record's fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (UserInfo, error) {
	return s.store.Update(ctx, id, strings.TrimSpace(input.Name), input.Age, input.Interests)
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}
