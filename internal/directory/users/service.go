package users

import (
	"context"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	store UserStore
}

// NewUserService creates a new user service instance
func NewUserService(store UserStore) *UserServiceImpl {
	return &UserServiceImpl{
		store: store,
	}
}

// ListUsers returns all stored users in insertion order
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

// CreateUser validates the request and stores a new user. Nothing is mutated
// when validation fails; the returned ValidationError carries every violated
// field.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if violations := Validate(req); len(violations) > 0 {
		return nil, NewValidationError(violations)
	}
	return s.store.CreateUser(ctx, req)
}

// GetUserByID returns the matching user or a not_found error
func (s *UserServiceImpl) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return s.store.GetUserByID(ctx, id)
}

// SeedUser stores a demo record, startup only
func (s *UserServiceImpl) SeedUser(ctx context.Context, name, email string, profile *Profile) (*User, error) {
	return s.store.SeedUser(ctx, name, email, profile)
}
