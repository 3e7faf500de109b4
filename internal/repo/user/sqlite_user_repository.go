package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/chatty-app/chatty/internal/domain"
	"github.com/chatty-app/chatty/internal/infra/logging"
)

// SQLiteUserRepositoryConfig holds configuration for the SQLite user repository.
type SQLiteUserRepositoryConfig struct {
	// DatabasePath is the filesystem path to the SQLite database file
	DatabasePath string `env:"DATABASE_PATH" default:"var/storage/chattysvc.db"`
}

// SQLiteUserRepository implements Repository using SQLite as the storage backend.
// The unique index on email makes the store the single authority on email
// uniqueness; callers never need a pre-insert existence check.
type SQLiteUserRepository struct {
	db        *sql.DB
	log       logging.Logger
	writeLock *sync.Mutex // go-sqlite does not support concurrent writes
}

var _ Repository = (*SQLiteUserRepository)(nil)

// SQLiteUserRepositoryFactory creates a factory function that returns a new SQLiteUserRepository.
// The factory function implements the RepositoryFactory type.
func SQLiteUserRepositoryFactory(cfg SQLiteUserRepositoryConfig) RepositoryFactory {
	return func() (Repository, error) {
		return NewSQLiteUserRepository(cfg)
	}
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository with the given configuration.
// It initializes the database connection and creates the schema if needed.
// Returns an error if database connection or initialization fails.
func NewSQLiteUserRepository(cfg SQLiteUserRepositoryConfig) (*SQLiteUserRepository, error) {
	log := logging.GetLogger("repo.user.sqlite_user_repository").With(
		logging.Group("db", "path", cfg.DatabasePath),
	)

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := initializeDB(db); err != nil {
		return nil, fmt.Errorf("initialize db: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &SQLiteUserRepository{
		db:        db,
		log:       log,
		writeLock: new(sync.Mutex),
	}, nil
}

func initializeDB(db *sql.DB) (err error) {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT    PRIMARY KEY,
			email         TEXT    UNIQUE NOT NULL,
			password_hash BLOB    NOT NULL,
			first_name    TEXT    NOT NULL,
			last_name     TEXT    NOT NULL,
			created_at    INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// CreateUser implements Repository.CreateUser using SQLite.
// A unique-constraint violation on email is reported as ErrUserAlreadyExists.
func (r *SQLiteUserRepository) CreateUser(
	ctx context.Context,
	email string,
	passwordHash []byte,
	firstName, lastName string,
) (*domain.User, error) {
	r.writeLock.Lock()
	defer r.writeLock.Unlock()

	newUser := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now().Unix(),
	}

	_, err := r.db.Exec(
		"INSERT INTO users (id, email, password_hash, first_name, last_name, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		newUser.ID,
		newUser.Email,
		newUser.PasswordHash,
		newUser.FirstName,
		newUser.LastName,
		newUser.CreatedAt,
	)
	if err != nil {
		var liteErr *sqlite.Error
		if errors.As(err, &liteErr) {
			switch liteErr.Code() {
			case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
				fallthrough
			case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
				err = errors.Join(domain.ErrUserAlreadyExists, err)
			default:
				break
			}
		}

		return nil, fmt.Errorf("insert user: %w", err)
	}

	return newUser, nil
}

// GetUserByEmail implements Repository.GetUserByEmail using SQLite.
func (r *SQLiteUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	return r.getUser(ctx, "email", email)
}

// GetUserByID implements Repository.GetUserByID using SQLite.
func (r *SQLiteUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, bool, error) {
	return r.getUser(ctx, "id", id)
}

func (r *SQLiteUserRepository) getUser(_ context.Context, column, value string) (*domain.User, bool, error) {
	var user domain.User

	err := r.db.QueryRow(
		"SELECT id, email, password_hash, first_name, last_name, created_at FROM users WHERE "+column+" = ?",
		value,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = errors.Join(domain.ErrUserNotFound, err)
		}

		return nil, false, fmt.Errorf("query user: %w", err)
	}

	return &user, true, nil
}

// ListOtherUsers implements Repository.ListOtherUsers using SQLite.
func (r *SQLiteUserRepository) ListOtherUsers(ctx context.Context, excludeID string) ([]domain.User, error) {
	rows, err := r.db.Query(
		"SELECT id, email, password_hash, first_name, last_name, created_at FROM users WHERE id != ? ORDER BY first_name ASC",
		excludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User

	for rows.Next() {
		var user domain.User

		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.FirstName,
			&user.LastName,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// Close implements Repository.Close by closing the database connection.
func (r *SQLiteUserRepository) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}

	return nil
}
