// Package session carries the authenticated identity for outgoing API
// calls. Credentials travel as an explicit context value rather than
// process-wide client state, so tests can inject a fake identity
// without touching shared configuration.
package session

import "context"

// User is the signed-in user as reported by the server
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the persisted auth state: a bearer token and its
// paired CSRF token, plus the user they belong to
type Credentials struct {
	Token string `json:"token"`
	CSRF  string `json:"csrf"`
	User  User   `json:"user"`
}

type contextKey struct{}

// WithCredentials returns a context carrying the given credentials
func WithCredentials(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, contextKey{}, creds)
}

// FromContext extracts credentials from the context, if present
func FromContext(ctx context.Context) (*Credentials, bool) {
	creds, ok := ctx.Value(contextKey{}).(*Credentials)
	if !ok || creds == nil {
		return nil, false
	}
	return creds, true
}
