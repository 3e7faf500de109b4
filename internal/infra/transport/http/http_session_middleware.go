package http

import (
	"net/http"

	"github.com/chatty-app/chatty/internal/domain"
	context_ "github.com/chatty-app/chatty/internal/infra/context"
)

// SessionDecoder decodes the session cookie carried by a request.
// Decoding never fails: anything unusable yields the empty session.
type SessionDecoder interface {
	ReadSession(r *http.Request) domain.Session
}

// SessionMiddleware creates middleware that decodes the session cookie once
// at the request boundary. If the session asserts a user, the user id is
// threaded through the request context; otherwise the request passes through
// unauthenticated and route guards decide whether that matters.
func SessionMiddleware(next http.Handler, decoder SessionDecoder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := decoder.ReadSession(r)
		if session.IsEmpty() {
			next.ServeHTTP(w, r)

			return
		}

		next.ServeHTTP(w, r.WithContext(context_.WithUserID(r.Context(), session.UserID)))
	})
}
