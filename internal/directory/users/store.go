package users

import (
	"context"
	"sync"
)

// UserStoreImpl implements the UserStore interface with an in-process
// collection. The mutex is the single serialization point for every mutation
// and for id assignment; readers take the read lock so they always observe a
// fully applied create.
type UserStoreImpl struct {
	mu     sync.RWMutex
	users  []User
	byID   map[int64]int
	nextID int64
}

// NewUserStore creates a new empty user store instance
func NewUserStore() *UserStoreImpl {
	return &UserStoreImpl{
		byID:   make(map[int64]int),
		nextID: 1,
	}
}

// ListUsers returns all stored users in insertion order. It never fails; an
// empty store yields an empty slice.
func (s *UserStoreImpl) ListUsers(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for i := range s.users {
		out = append(out, cloneUser(s.users[i]))
	}
	return out, nil
}

// CreateUser stores a new record under the next identifier and returns it.
// Identifiers are assigned max(existing)+1, starting at 1; records are never
// deleted, so the counter carries that invariant.
func (s *UserStoreImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if req == nil {
		return nil, NewUserInvalidRequestError("request cannot be nil", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insert(req.Name, req.Email, nil), nil
}

// GetUserByID returns the matching record, or a not_found UserError when the
// identifier was never assigned
func (s *UserStoreImpl) GetUserByID(ctx context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return nil, NewUserNotFoundError(id)
	}

	user := cloneUser(s.users[idx])
	return &user, nil
}

// SeedUser stores a demo record, optionally with a profile. It follows the
// same id assignment as CreateUser and is only called at startup; the create
// operation itself can never attach a profile.
func (s *UserStoreImpl) SeedUser(ctx context.Context, name, email string, profile *Profile) (*User, error) {
	if name == "" || email == "" {
		return nil, NewUserInvalidRequestError("seed user requires name and email", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insert(name, email, profile), nil
}

// insert appends a record under the write lock
func (s *UserStoreImpl) insert(name, email string, profile *Profile) *User {
	user := User{
		ID:      s.nextID,
		Name:    name,
		Email:   email,
		Profile: profile,
	}
	s.nextID++

	s.users = append(s.users, user)
	s.byID[user.ID] = len(s.users) - 1

	out := cloneUser(user)
	return &out
}

// cloneUser returns a defensive copy so callers can never reach the backing
// collection
func cloneUser(u User) User {
	out := u
	if u.Profile != nil {
		profile := *u.Profile
		out.Profile = &profile
	}
	return out
}
