package core

import "context"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	identityKey contextKey = iota
)

// SetIdentity stores the outcome of authentication in the context. A nil
// identity records an anonymous request.
func SetIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the identity stored by SetIdentity. It returns
// ErrIdentityNotFound for anonymous requests and for contexts that never
// went through authentication.
func GetIdentity(ctx context.Context) (*Identity, error) {
	identity, _ := ctx.Value(identityKey).(*Identity)
	if identity == nil {
		return nil, ErrIdentityNotFound
	}
	return identity, nil
}

// HasIdentity checks if a non-anonymous identity exists in the context.
func HasIdentity(ctx context.Context) bool {
	identity, _ := ctx.Value(identityKey).(*Identity)
	return identity != nil
}
