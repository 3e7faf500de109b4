package authsvc

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/chatty-app/chatty/internal/domain"
	"github.com/chatty-app/chatty/internal/infra/logging"
	"github.com/chatty-app/chatty/internal/repo/user"
)

// AuthConfig contains configuration parameters for the authentication service.
type AuthConfig struct {
	// BcryptCost is the work factor used when hashing new passwords
	BcryptCost int `env:"BCRYPT_COST" default:"10"`

	// Session is the cookie policy for issued sessions
	Session SessionConfig `envPrefix:"SESSION_"`
}

// AuthService orchestrates registration, login, session issuance, and
// session resolution for the Chatty front end.
type AuthService struct {
	Config   AuthConfig
	UserRepo user.Repository
	Codec    *SessionCodec
	Log      logging.Logger
}

// NewAuthService creates a new AuthService with the given user repository factory and configuration.
// Returns an error if the session codec or the user repository cannot be created.
func NewAuthService(repoFactory user.RepositoryFactory, cfg AuthConfig) (*AuthService, error) {
	log := logging.GetLogger("svc.authsvc.auth_service")

	codec, err := NewSessionCodec(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("new session codec: %w", err)
	}

	userRepo, err := repoFactory()
	if err != nil {
		return nil, fmt.Errorf("new user repo: %w", err)
	}

	return &AuthService{
		Config:   cfg,
		UserRepo: userRepo,
		Codec:    codec,
		Log:      log,
	}, nil
}

// Register creates a new user account from an already-validated submission.
// The password is hashed before storage. Email uniqueness is enforced by the
// store's unique index, so there is no pre-insert existence check to race
// against; a duplicate email surfaces as ErrUserAlreadyExists, any other
// store failure as ErrUserCreateFailed.
func (s *AuthService) Register(ctx context.Context, form domain.RegisterForm) (_ *domain.User, err error) {
	log := s.Log.With(logging.Group("user", "email", form.Email))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "register failed", "error", err)
		} else {
			log.DebugContext(ctx, "user registered")
		}
	}()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.Config.BcryptCost)
	if err != nil {
		return nil, errors.Join(domain.ErrUserCreateFailed, err)
	}

	newUser, err := s.UserRepo.CreateUser(ctx, form.Email, passwordHash, form.FirstName, form.LastName)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, fmt.Errorf("create user: %w", err)
		}

		return nil, errors.Join(domain.ErrUserCreateFailed, err)
	}

	return newUser, nil
}

// Login authenticates a user by email and password.
// An unknown email and a wrong password both return ErrInvalidCredentials so
// the response cannot be used to probe which addresses are registered.
func (s *AuthService) Login(ctx context.Context, form domain.LoginForm) (_ *domain.User, err error) {
	log := s.Log

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "login failed", "error", err)
		} else {
			log.DebugContext(ctx, "login successful")
		}
	}()

	usr, ok, err := s.UserRepo.GetUserByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, errors.Join(domain.ErrInvalidCredentials, err)
		}

		return nil, fmt.Errorf("get user: %w", err)
	} else if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(form.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return usr, nil
}

// IssueSession mints a brand-new session cookie asserting the given user id.
// A fresh session is created on every successful login or registration so a
// cookie never survives an identity change.
func (s *AuthService) IssueSession(userID string) (*http.Cookie, error) {
	value, err := s.Codec.Encode(domain.Session{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	return s.Codec.Cookie(value), nil
}

// ResolveUser maps a request's session cookie to the stored user record.
// A request without a usable session yields ErrNoSession. A session whose
// user can no longer be loaded yields ErrStaleSession, which callers must
// turn into a forced logout rather than surface as "logged in".
func (s *AuthService) ResolveUser(ctx context.Context, r *http.Request) (_ *domain.User, err error) {
	log := s.Log

	defer func() {
		if err != nil && !errors.Is(err, domain.ErrNoSession) {
			log.WarnContext(ctx, "resolve user failed", "error", err)
		}
	}()

	session := s.Codec.ReadSession(r)
	if session.IsEmpty() {
		return nil, domain.ErrNoSession
	}

	usr, ok, err := s.UserRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, errors.Join(domain.ErrStaleSession, err)
	} else if !ok {
		return nil, domain.ErrStaleSession
	}

	return usr, nil
}

// GetUser retrieves a single user record by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	usr, ok, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	} else if !ok {
		return nil, domain.ErrUserNotFound
	}

	return usr, nil
}

// ListOtherUsers returns every user except the given one, ordered by first
// name ascending.
func (s *AuthService) ListOtherUsers(ctx context.Context, excludeID string) ([]domain.User, error) {
	users, err := s.UserRepo.ListOtherUsers(ctx, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// Close releases resources held by the service, such as database connections.
// Returns an error if cleanup fails.
func (s *AuthService) Close() error {
	if err := s.UserRepo.Close(); err != nil {
		return fmt.Errorf("close user repo: %w", err)
	}

	return nil
}
