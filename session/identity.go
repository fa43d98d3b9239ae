package session

import "context"

// Identity is the acting user of an authenticated request
type Identity struct {
	UserID   int64
	Username string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity put in ctx by RequireAuth
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
