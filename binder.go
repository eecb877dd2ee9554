package statelessauth

import (
	"net/http"

	"github.com/auth0/go-stateless-auth/core"
)

// IdentityBinder attaches an identity to a response and recovers it from a
// request. Binder is the implementation; the interface hides its subject
// type from the middleware and the success handler.
type IdentityBinder interface {
	Add(w http.ResponseWriter, identity *core.Identity) error
	Retrieve(r *http.Request) (*core.Identity, error)
}

// Binder composes a Transport and a Converter so callers deal in identities
// instead of subjects.
type Binder[T any] struct {
	transport *Transport[T]
	converter core.Converter[T]
}

var _ IdentityBinder = (*Binder[string])(nil)

// NewBinder creates a Binder. Both collaborators are required.
func NewBinder[T any](transport *Transport[T], converter core.Converter[T]) (*Binder[T], error) {
	if transport == nil {
		return nil, core.Configurationf("transport cannot be nil")
	}
	if converter == nil {
		return nil, core.Configurationf("converter cannot be nil")
	}

	return &Binder[T]{transport: transport, converter: converter}, nil
}

// Add converts identity to a subject and adds its token to w. An identity
// that yields no subject, nil included, is a KindArgument error.
func (b *Binder[T]) Add(w http.ResponseWriter, identity *core.Identity) error {
	subject, ok := b.converter.ToSubject(identity)
	if !ok {
		return core.NewError(core.KindArgument, "identity has no subject to bind", nil)
	}

	return b.transport.Add(w, subject)
}

// Retrieve returns the identity carried by r, or nil when the request is
// anonymous.
func (b *Binder[T]) Retrieve(r *http.Request) (*core.Identity, error) {
	subject, ok, err := b.transport.Retrieve(r)
	if err != nil {
		return nil, err
	}

	return b.converter.ToIdentity(subject, ok), nil
}
