package users

import (
	"context"
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	SeedUser(ctx context.Context, name, email string, profile *Profile) (*User, error)
}

// UserService defines the interface for user service operations
type UserService interface {
	UserStore
}
