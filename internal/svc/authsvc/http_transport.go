package authsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/chatty-app/chatty/internal/domain"
	context_ "github.com/chatty-app/chatty/internal/infra/context"
	"github.com/chatty-app/chatty/internal/infra/logging"
	http_ "github.com/chatty-app/chatty/internal/infra/transport/http"
)

// Form-level error messages shown above the inputs. The invalid-credentials
// message is deliberately identical for unknown emails and wrong passwords.
const (
	msgInvalidCredentials = "Email or password is incorrect"
	msgDuplicateUser      = "User already exists with that email"
	msgCreateFailed       = "Something went wrong trying to create a new user, please try again later"
	msgInvalidFormData    = "Invalid form data"
)

// Redirect targets of the auth flow.
const (
	homePath  = "/home"
	loginPath = "/login"
)

// HTTPTransportConfig contains configuration parameters for the HTTP transport layer.
type HTTPTransportConfig struct {
	http_.HTTPTransportConfig
}

// HTTPTransport handles HTTP requests for the Chatty auth service.
// It serves the login/registration form submission, session-guarded user
// listing and lookup, and logout.
type HTTPTransport struct {
	authSvc *AuthService
	log     logging.Logger
	cfg     HTTPTransportConfig
}

// NewHTTPTransport creates a new HTTPTransport instance with the given configuration.
// It requires an AuthService for handling authentication operations.
func NewHTTPTransport(
	authSvc *AuthService,
	cfg HTTPTransportConfig,
) *HTTPTransport {
	return &HTTPTransport{
		authSvc: authSvc,
		log:     logging.GetLogger("svc.authsvc.http_transport"),
		cfg:     cfg,
	}
}

// ServeHTTP implements http.Handler and sets up the route table:
// - GET  /: redirect authenticated users to /home
// - GET  /login: login page route (rendering lives in the front end)
// - POST /login: login or registration form submission (_action selects)
// - GET  /home: list every other user
// - GET  /home/chatty/{userId}: single-user lookup
// - POST /logout: destroy the session
// - GET  /logout: redirect to /
// The session cookie is decoded once per request by the session middleware;
// handlers read the user id from the request context.
func (ht *HTTPTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", ht.HandleIndex)
	mux.HandleFunc("GET /login", ht.HandleLoginPage)
	mux.HandleFunc("POST /login", ht.HandleLogin)
	mux.HandleFunc("GET /home", ht.HandleHome)
	mux.HandleFunc("GET /home/chatty/{userId}", ht.HandleUserLookup)
	mux.HandleFunc("POST /logout", ht.HandleLogout)
	mux.HandleFunc("GET /logout", ht.HandleLogoutRedirect)

	http_.SessionMiddleware(mux, ht.authSvc.Codec).ServeHTTP(w, r)
}

var _ http_.HTTPTransport = (*HTTPTransport)(nil)

// HandleIndex guards the root route: unauthenticated visitors are challenged,
// everyone else lands on /home.
func (ht *HTTPTransport) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := ht.requireUserID(w, r); !ok {
		return
	}

	http.Redirect(w, r, homePath, http.StatusSeeOther)
}

// HandleLoginPage answers GET requests to the login route. Form rendering
// belongs to the front end; the server only confirms the route is live so
// the auth challenge has somewhere to land.
func (ht *HTTPTransport) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// HandleLogin processes the login/registration form submission.
// Expects form parameters: _action ("login" or "register"), email, password,
// and for registration additionally firstName and lastName.
func (ht *HTTPTransport) HandleLogin(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleLogin(w, r)
}

func (ht *HTTPTransport) handleLogin(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.WarnContext(ctx, "auth submission rejected", "error", err)
		} else {
			log.DebugContext(ctx, "auth submission handled")
		}
	}(r.Context())

	if err := r.ParseForm(); err != nil {
		ht.writeAuthError(w, domain.AuthResponse{Error: msgInvalidFormData})

		return fmt.Errorf("parse form: %w", err)
	}

	switch action := r.FormValue("_action"); action {
	case "login":
		return ht.doLogin(w, r)
	case "register":
		return ht.doRegister(w, r)
	default:
		ht.writeAuthError(w, domain.AuthResponse{Error: msgInvalidFormData})

		return fmt.Errorf("unknown form action %q", action)
	}
}

func (ht *HTTPTransport) doLogin(w http.ResponseWriter, r *http.Request) error {
	form := domain.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	fields := &domain.AuthFields{Email: form.Email}

	if fieldErrors := ValidateLoginForm(form); fieldErrors != nil {
		ht.writeAuthError(w, domain.AuthResponse{Errors: fieldErrors, Fields: fields})

		return errors.New("invalid login form")
	}

	usr, err := ht.authSvc.Login(r.Context(), form)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			ht.writeAuthError(w, domain.AuthResponse{Error: msgInvalidCredentials, Fields: fields})
		} else {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}

		return fmt.Errorf("login user: %w", err)
	}

	return ht.createUserSession(w, r, usr.ID)
}

func (ht *HTTPTransport) doRegister(w http.ResponseWriter, r *http.Request) error {
	form := domain.RegisterForm{
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
		FirstName: r.FormValue("firstName"),
		LastName:  r.FormValue("lastName"),
	}
	fields := &domain.AuthFields{
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}

	if fieldErrors := ValidateRegisterForm(form); fieldErrors != nil {
		ht.writeAuthError(w, domain.AuthResponse{Errors: fieldErrors, Fields: fields})

		return errors.New("invalid register form")
	}

	newUser, err := ht.authSvc.Register(r.Context(), form)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			ht.writeAuthError(w, domain.AuthResponse{Error: msgDuplicateUser, Fields: fields})
		} else {
			ht.writeAuthError(w, domain.AuthResponse{Error: msgCreateFailed, Fields: fields})
		}

		return fmt.Errorf("register user: %w", err)
	}

	return ht.createUserSession(w, r, newUser.ID)
}

// createUserSession attaches a freshly minted session cookie and redirects to
// the post-auth landing page.
func (ht *HTTPTransport) createUserSession(w http.ResponseWriter, r *http.Request, userID string) error {
	cookie, err := ht.authSvc.IssueSession(userID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return fmt.Errorf("issue session: %w", err)
	}

	http.SetCookie(w, cookie)
	http.Redirect(w, r, homePath, http.StatusSeeOther)

	return nil
}

// HandleHome serves the home screen payload: every user except the caller,
// ordered by first name. A session pointing at a vanished user forces a
// logout instead of an error response.
func (ht *HTTPTransport) HandleHome(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleHome(w, r)
}

func (ht *HTTPTransport) handleHome(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.WarnContext(ctx, "home request failed", "error", err)
		} else {
			log.DebugContext(ctx, "home served")
		}
	}(r.Context())

	usr, err := ht.authSvc.ResolveUser(r.Context(), r)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSession):
			ht.redirectToLogin(w, r)
		case errors.Is(err, domain.ErrStaleSession):
			ht.forceLogout(w, r)
		default:
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}

		return fmt.Errorf("resolve user: %w", err)
	}

	users, err := ht.authSvc.ListOtherUsers(r.Context(), usr.ID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return fmt.Errorf("list users: %w", err)
	}

	payload := domain.UserListResponse{Users: make([]domain.UserProfile, 0, len(users))}
	for i := range users {
		payload.Users = append(payload.Users, users[i].Profile())
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	return nil
}

// HandleUserLookup serves a single user's profile for the chat modal.
func (ht *HTTPTransport) HandleUserLookup(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleUserLookup(w, r)
}

func (ht *HTTPTransport) handleUserLookup(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.WarnContext(ctx, "user lookup failed", "error", err)
		} else {
			log.DebugContext(ctx, "user lookup served")
		}
	}(r.Context())

	if _, ok := ht.requireUserID(w, r); !ok {
		return domain.ErrNoSession
	}

	usr, err := ht.authSvc.GetUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		} else {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}

		return fmt.Errorf("get user: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(usr.Profile()); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	return nil
}

// HandleLogout destroys the session: the cookie is cleared and the client is
// sent back to the login page. Safe to call with no active session.
func (ht *HTTPTransport) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ht.forceLogout(w, r)
}

// HandleLogoutRedirect answers GET requests to the logout route by sending
// the client back to the root.
func (ht *HTTPTransport) HandleLogoutRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// requireUserID returns the session's user id, or challenges the client with
// a redirect to the login page carrying the originally requested path so it
// can return after authenticating.
func (ht *HTTPTransport) requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := context_.UserIDFromContext(r.Context())
	if !ok {
		ht.redirectToLogin(w, r)

		return "", false
	}

	return userID, true
}

func (ht *HTTPTransport) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	challenge := url.Values{"redirectTo": {r.URL.Path}}

	http.Redirect(w, r, loginPath+"?"+challenge.Encode(), http.StatusSeeOther)
}

// forceLogout clears the session cookie and redirects to the login page.
func (ht *HTTPTransport) forceLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, ht.authSvc.Codec.ClearCookie())
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

func (ht *HTTPTransport) writeAuthError(w http.ResponseWriter, resp domain.AuthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		ht.log.Error("encode auth error", "error", err)
	}
}
