package users

// User represents a record in the user directory. ID, Name and Email are
// immutable once the record is stored; Profile is optional extended data that
// only seeded records carry.
type User struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Profile *Profile `json:"profile,omitempty"`
}

// Profile holds the optional extended attributes of a user
type Profile struct {
	Age     int    `json:"age"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email_addr"`
}

// UserSummary is the representation of a user in list responses, which never
// include the profile
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsersResponse is the envelope for the list operation
type ListUsersResponse struct {
	Users []UserSummary `json:"users"`
}

// CreateUserResponse is the envelope for a successful create
type CreateUserResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Created bool   `json:"created"`
}

// ValidationErrorResponse is the envelope for a rejected create, enumerating
// every violated field
type ValidationErrorResponse struct {
	Errors []FieldViolation `json:"errors"`
}

// Summarize converts a stored user to its list representation
func Summarize(u User) UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
