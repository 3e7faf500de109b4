// Package context carries request-scoped values (trace id, authenticated
// user id) through the handler chain.
package context

// contextKey is a private key type so values set here cannot collide with
// other packages' context values.
type contextKey string
