package domain

import "errors"

var (
	// ErrNoSession is returned when a request carries no usable session cookie.
	// Missing, expired, and tampered cookies are indistinguishable to callers.
	ErrNoSession = errors.New("no session")
	// ErrStaleSession is returned when a decoded session points at a user that
	// can no longer be loaded. The holder must be logged out, never treated as
	// authenticated.
	ErrStaleSession = errors.New("stale session")
)

// Session is the client-held credential decoded from the session cookie.
// The cookie is the session: there is no server-side session table, and
// invalidation happens only by cookie expiry, overwrite, or deletion.
type Session struct {
	UserID string `json:"userId"`
}

// IsEmpty reports whether the session asserts no user.
func (s Session) IsEmpty() bool {
	return s.UserID == ""
}
