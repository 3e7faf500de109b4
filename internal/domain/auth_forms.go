package domain

// RegisterForm carries a registration submission. Validated before any store
// mutation; the password is hashed before storage and never persisted as-is.
type RegisterForm struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginForm carries a login submission.
type LoginForm struct {
	Email    string
	Password string
}

// AuthFields are the non-secret submitted values echoed back after a failed
// submission so the form can be repopulated. The password is never echoed.
type AuthFields struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// AuthResponse is the body of a 400 response to a failed login or
// registration: a general form-level error, per-field errors, or both,
// plus the preserved field values.
type AuthResponse struct {
	Error  string            `json:"error,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
	Fields *AuthFields       `json:"fields,omitempty"`
}
