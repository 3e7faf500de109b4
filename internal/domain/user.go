package domain

import "errors"

var (
	// ErrUserAlreadyExists is returned when trying to register a user with an email
	// that is already taken. The store's unique index on email is the authority.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned when looking up a non-existent user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the email/password combination is
	// incorrect. Unknown emails produce the same error as wrong passwords so a
	// caller cannot enumerate registered addresses.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserCreateFailed is returned when the store fails to persist a new user
	// for a reason other than a duplicate email.
	ErrUserCreateFailed = errors.New("user create failed")
)

// User represents a registered Chatty user.
// Users are created on registration and never mutated or deleted.
type User struct {
	ID           string // Unique identifier, server-generated
	Email        string // Login email, unique and case-sensitive
	PasswordHash []byte // bcrypt hash, the plaintext is never stored
	FirstName    string
	LastName     string
	CreatedAt    int64 // Unix timestamp of account creation
}

// UserProfile is the public projection of a User, safe to hand to clients.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Profile returns the client-facing projection of the user.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// UserListResponse is the payload served to the home screen: every user
// except the caller, ordered by first name.
type UserListResponse struct {
	Users []UserProfile `json:"users"`
}
