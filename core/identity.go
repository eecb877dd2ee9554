package core

import "fmt"

// Identity is the runtime representation of whoever is making a request.
// Identities built by this module never carry credentials or authorities.
type Identity struct {
	// Principal is the value the identity was built from, usually the
	// subject stored in the token.
	Principal any

	// Authenticated is true for identities restored from a verified token.
	Authenticated bool

	// Credentials is always empty; the token is the only credential.
	Credentials string

	// Authorities is always empty.
	Authorities []string

	// Details is unset for identities built by this module.
	Details any
}

// NewAuthenticatedIdentity returns an authenticated identity for principal
// with empty credentials and authorities.
func NewAuthenticatedIdentity(principal any) *Identity {
	return &Identity{
		Principal:     principal,
		Authenticated: true,
		Credentials:   "",
		Authorities:   []string{},
	}
}

// Name returns the principal rendered as a string. A nil identity or a nil
// principal yields the empty string.
func (i *Identity) Name() string {
	if i == nil || i.Principal == nil {
		return ""
	}
	if s, ok := i.Principal.(string); ok {
		return s
	}
	if s, ok := i.Principal.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(i.Principal)
}

// Converter maps between a token subject and an Identity. The second
// return value of ToSubject and the second argument of ToIdentity carry the
// "no value" case: converters built with NullSafe never invoke the wrapped
// conversion for it.
type Converter[T any] interface {
	ToSubject(identity *Identity) (T, bool)
	ToIdentity(subject T, ok bool) *Identity
}

type nullSafeConverter[T any] struct {
	toSubject  func(*Identity) T
	toIdentity func(T) *Identity
}

// NullSafe builds a Converter from two conversion functions. A nil identity
// converts to no subject and a missing subject converts to a nil identity,
// without calling either function.
func NullSafe[T any](toSubject func(*Identity) T, toIdentity func(T) *Identity) Converter[T] {
	return &nullSafeConverter[T]{
		toSubject:  toSubject,
		toIdentity: toIdentity,
	}
}

func (c *nullSafeConverter[T]) ToSubject(identity *Identity) (T, bool) {
	if identity == nil {
		var zero T
		return zero, false
	}
	return c.toSubject(identity), true
}

func (c *nullSafeConverter[T]) ToIdentity(subject T, ok bool) *Identity {
	if !ok {
		return nil
	}
	return c.toIdentity(subject)
}

// DefaultConverter converts identities to their name and names back to
// authenticated identities.
func DefaultConverter() Converter[string] {
	return NullSafe(
		func(identity *Identity) string { return identity.Name() },
		func(subject string) *Identity { return NewAuthenticatedIdentity(subject) },
	)
}
