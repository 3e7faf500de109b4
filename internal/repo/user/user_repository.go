package user

import (
	"context"

	"github.com/chatty-app/chatty/internal/domain"
)

// Repository defines the interface for user data persistence.
type Repository interface {
	// CreateUser adds a new user to the repository and returns it with its
	// server-generated id.
	// Returns ErrUserAlreadyExists (wrapped) if the email is already taken.
	CreateUser(ctx context.Context, email string, passwordHash []byte, firstName, lastName string) (*domain.User, error)

	// GetUserByEmail retrieves a user by their email address.
	// Returns the user object and true if found, or nil and false if not found.
	// Returns an error if the operation fails.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, bool, error)

	// GetUserByID retrieves a user by their id.
	// Returns the user object and true if found, or nil and false if not found.
	// Returns an error if the operation fails.
	GetUserByID(ctx context.Context, id string) (*domain.User, bool, error)

	// ListOtherUsers returns every user except the one with the given id,
	// ordered by first name ascending.
	ListOtherUsers(ctx context.Context, excludeID string) ([]domain.User, error)

	// Close releases any resources held by the repository.
	// Returns an error if cleanup fails.
	Close() error
}

// RepositoryFactory is a function that creates a new Repository instance.
// Returns an error if initialization fails.
type RepositoryFactory func() (Repository, error)
