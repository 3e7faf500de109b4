package authsvc

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chatty-app/chatty/internal/domain"
)

// ErrNoSessionSecrets is returned when the codec is constructed without any
// secret key material.
var ErrNoSessionSecrets = errors.New("no session secrets configured")

// SessionConfig contains the process-wide cookie policy. It is initialized
// once at startup and treated as immutable afterwards.
type SessionConfig struct {
	// CookieName is the name of the session cookie
	CookieName string `env:"COOKIE_NAME" default:"chatty-session"`

	// Secrets is the signing key material. The first secret signs new
	// sessions; verification tries each in order, so secrets can be rotated
	// without invalidating every live session at once.
	Secrets []string `env:"SECRETS"`

	// Path is the cookie's path scope
	Path string `env:"COOKIE_PATH" default:"/"`

	// SameSite is the cross-site send policy ("strict", "lax" or "none")
	SameSite string `env:"SAME_SITE" default:"lax"`

	// HTTPOnly keeps the cookie out of reach of client-side scripts
	HTTPOnly bool `env:"HTTP_ONLY" default:"true"`

	// Secure restricts the cookie to HTTPS transports
	Secure bool `env:"SECURE" default:"false"`

	// MaxAge is the session lifetime in seconds
	MaxAge int64 `env:"MAX_AGE" default:"604800"` // 7 days
}

type sessionClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"userId"`
}

// SessionCodec serializes the session mapping into a signed, tamper-evident
// cookie value and back. Decoding never fails: anything that does not carry
// a valid signature and unexpired claims yields the empty session, so callers
// treat "no session" and "bad session" identically.
type SessionCodec struct {
	cfg SessionConfig
}

// NewSessionCodec creates a SessionCodec from the given cookie policy.
// Returns ErrNoSessionSecrets if no key material is configured.
func NewSessionCodec(cfg SessionConfig) (*SessionCodec, error) {
	if len(cfg.Secrets) == 0 {
		return nil, ErrNoSessionSecrets
	}

	return &SessionCodec{cfg: cfg}, nil
}

// CookieName returns the configured name of the session cookie.
func (c *SessionCodec) CookieName() string {
	return c.cfg.CookieName
}

// Encode signs a cookie value asserting the given session. The value expires
// together with the cookie's max age.
func (c *SessionCodec) Encode(session domain.Session) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(c.cfg.MaxAge) * time.Second)),
		},
		UserID: session.UserID,
	})

	value, err := token.SignedString([]byte(c.cfg.Secrets[0]))
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}

	return value, nil
}

// Decode parses a cookie value back into a session. Missing, expired,
// malformed, and tampered values all yield the empty session.
func (c *SessionCodec) Decode(value string) domain.Session {
	if value == "" {
		return domain.Session{}
	}

	for _, secret := range c.cfg.Secrets {
		claims := &sessionClaims{}

		token, err := jwt.ParseWithClaims(value, claims,
			func(*jwt.Token) (any, error) { return []byte(secret), nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			continue
		}

		return domain.Session{UserID: claims.UserID}
	}

	return domain.Session{}
}

// ReadSession extracts and decodes the session cookie carried by a request.
// Requests without the cookie yield the empty session.
func (c *SessionCodec) ReadSession(r *http.Request) domain.Session {
	cookie, err := r.Cookie(c.cfg.CookieName)
	if err != nil {
		return domain.Session{}
	}

	return c.Decode(cookie.Value)
}

// Cookie wraps an encoded session value in a cookie carrying the configured
// attributes.
func (c *SessionCodec) Cookie(value string) *http.Cookie {
	//nolint:exhaustruct
	return &http.Cookie{
		Name:     c.cfg.CookieName,
		Value:    value,
		Path:     c.cfg.Path,
		MaxAge:   int(c.cfg.MaxAge),
		HttpOnly: c.cfg.HTTPOnly,
		Secure:   c.cfg.Secure,
		SameSite: c.sameSite(),
	}
}

// ClearCookie returns a cookie that instructs the client to drop the session.
func (c *SessionCodec) ClearCookie() *http.Cookie {
	cookie := c.Cookie("")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)

	return cookie
}

func (c *SessionCodec) sameSite() http.SameSite {
	switch strings.ToLower(c.cfg.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
