package authsvc

import (
	"regexp"

	"github.com/chatty-app/chatty/internal/domain"
)

// emailPattern is a conservative subset of the RFC 5322 address grammar:
// dot-atom local part, hyphenated domain labels, no quoting or comments.
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$",
)

// ValidateEmail checks that the email is non-empty and well-formed.
// Returns a human-readable error message, or "" if the email is valid.
func ValidateEmail(email string) string {
	if email == "" || !emailPattern.MatchString(email) {
		return "Email address is invalid"
	}

	return ""
}

// ValidatePassword checks the minimum password length. No other strength
// rule applies. Returns a message, or "" if the password is valid.
func ValidatePassword(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters"
	}

	return ""
}

// ValidateName checks that a name is non-empty.
// Returns a message, or "" if the name is valid.
func ValidateName(name string) string {
	if name == "" {
		return "Name is required"
	}

	return ""
}

// ValidateLoginForm runs the field validators over a login submission.
// Returns per-field error messages, or nil if every field is valid.
func ValidateLoginForm(form domain.LoginForm) map[string]string {
	fieldErrors := make(map[string]string)

	if msg := ValidateEmail(form.Email); msg != "" {
		fieldErrors["email"] = msg
	}

	if msg := ValidatePassword(form.Password); msg != "" {
		fieldErrors["password"] = msg
	}

	if len(fieldErrors) == 0 {
		return nil
	}

	return fieldErrors
}

// ValidateRegisterForm runs the field validators over a registration
// submission. Returns per-field error messages, or nil if every field is
// valid. Persistence must not be attempted while any field is invalid.
func ValidateRegisterForm(form domain.RegisterForm) map[string]string {
	fieldErrors := make(map[string]string)

	if msg := ValidateEmail(form.Email); msg != "" {
		fieldErrors["email"] = msg
	}

	if msg := ValidatePassword(form.Password); msg != "" {
		fieldErrors["password"] = msg
	}

	if msg := ValidateName(form.FirstName); msg != "" {
		fieldErrors["firstName"] = msg
	}

	if msg := ValidateName(form.LastName); msg != "" {
		fieldErrors["lastName"] = msg
	}

	if len(fieldErrors) == 0 {
		return nil
	}

	return fieldErrors
}
