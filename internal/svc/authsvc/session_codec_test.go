package authsvc_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/chatty-app/chatty/internal/domain"

	"github.com/chatty-app/chatty/internal/svc/authsvc"
)

func testSessionConfig(secrets ...string) authsvc.SessionConfig {
	return authsvc.SessionConfig{
		CookieName: "chatty-session",
		Secrets:    secrets,
		Path:       "/",
		SameSite:   "lax",
		HTTPOnly:   true,
		Secure:     false,
		MaxAge:     604800,
	}
}

func newTestCodec(t *testing.T, secrets ...string) *authsvc.SessionCodec {
	t.Helper()

	codec, err := authsvc.NewSessionCodec(testSessionConfig(secrets...))
	if err != nil {
		t.Fatalf("failed to create codec: %v", err)
	}

	return codec
}

func TestNewSessionCodec_NoSecrets(t *testing.T) {
	t.Parallel()

	_, err := authsvc.NewSessionCodec(testSessionConfig())
	if !errors.Is(err, authsvc.ErrNoSessionSecrets) {
		t.Errorf("NewSessionCodec() error = %v, want %v", err, authsvc.ErrNoSessionSecrets)
	}
}

func TestSessionCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "secret-1")

	value, err := codec.Encode(domain.Session{UserID: "user-42"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	session := codec.Decode(value)
	if session.UserID != "user-42" {
		t.Errorf("Decode() userId = %q, want %q", session.UserID, "user-42")
	}
}

func TestSessionCodec_Decode_Invalid(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "secret-1")

	valid, err := codec.Encode(domain.Session{UserID: "user-42"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	tests := []struct {
		name  string
		value string
	}{
		{name: "empty value", value: ""},
		{name: "garbage value", value: "not-a-token"},
		{name: "tampered signature", value: valid[:len(valid)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			session := codec.Decode(tt.value)
			if !session.IsEmpty() {
				t.Errorf("Decode(%q) = %+v, want empty session", tt.value, session)
			}
		})
	}
}

func TestSessionCodec_Decode_WrongSecret(t *testing.T) {
	t.Parallel()

	signer := newTestCodec(t, "old-secret")

	value, err := signer.Encode(domain.Session{UserID: "user-42"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if session := newTestCodec(t, "new-secret").Decode(value); !session.IsEmpty() {
		t.Errorf("Decode() with wrong secret = %+v, want empty session", session)
	}
}

func TestSessionCodec_SecretRotation(t *testing.T) {
	t.Parallel()

	oldCodec := newTestCodec(t, "old-secret")

	value, err := oldCodec.Encode(domain.Session{UserID: "user-42"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// A rotated codec signs with the new secret but still verifies sessions
	// signed with the old one.
	rotated := newTestCodec(t, "new-secret", "old-secret")

	if session := rotated.Decode(value); session.UserID != "user-42" {
		t.Errorf("Decode() after rotation userId = %q, want %q", session.UserID, "user-42")
	}

	fresh, err := rotated.Encode(domain.Session{UserID: "user-43"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if session := oldCodec.Decode(fresh); !session.IsEmpty() {
		t.Errorf("Decode() of newly signed value with only the old secret = %+v, want empty session", session)
	}
}

func TestSessionCodec_Decode_Expired(t *testing.T) {
	t.Parallel()

	cfg := testSessionConfig("secret-1")
	cfg.MaxAge = -60 // expiry in the past

	expiredCodec, err := authsvc.NewSessionCodec(cfg)
	if err != nil {
		t.Fatalf("failed to create codec: %v", err)
	}

	value, err := expiredCodec.Encode(domain.Session{UserID: "user-42"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if session := expiredCodec.Decode(value); !session.IsEmpty() {
		t.Errorf("Decode() of expired value = %+v, want empty session", session)
	}
}

func TestSessionCodec_Cookie(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, "secret-1")

	cookie := codec.Cookie("value")
	if cookie.Name != "chatty-session" {
		t.Errorf("Cookie().Name = %q, want %q", cookie.Name, "chatty-session")
	}
	if cookie.Path != "/" {
		t.Errorf("Cookie().Path = %q, want %q", cookie.Path, "/")
	}
	if cookie.MaxAge != 604800 {
		t.Errorf("Cookie().MaxAge = %d, want %d", cookie.MaxAge, 604800)
	}
	if !cookie.HttpOnly {
		t.Error("Cookie().HttpOnly = false, want true")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("Cookie().SameSite = %v, want lax", cookie.SameSite)
	}

	cleared := codec.ClearCookie()
	if cleared.Value != "" {
		t.Errorf("ClearCookie().Value = %q, want empty", cleared.Value)
	}
	if cleared.MaxAge >= 0 {
		t.Errorf("ClearCookie().MaxAge = %d, want negative", cleared.MaxAge)
	}
}
