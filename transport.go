package statelessauth

import (
	"net/http"

	"github.com/auth0/go-stateless-auth/core"
)

// DefaultCookiePath is the path of the token cookie unless WithCookiePath
// says otherwise.
const DefaultCookiePath = "/"

// Transport moves tokens between HTTP messages and subjects of type T. It
// writes both a response header and a cookie, and reads the request header
// first with the cookie as fallback.
type Transport[T any] struct {
	codec      core.TokenCodec[T]
	cookiePath string
	extractor  TokenExtractor
}

// TransportOption configures a Transport.
type TransportOption func(*transportOptions) error

type transportOptions struct {
	cookiePath string
}

// NewTransport creates a Transport that encodes subjects with codec.
//
// Example:
//
//	codec, _ := token.New[string](secret)
//	transport, err := statelessauth.NewTransport[string](codec,
//	    statelessauth.WithCookiePath("/app"),
//	)
func NewTransport[T any](codec core.TokenCodec[T], opts ...TransportOption) (*Transport[T], error) {
	if codec == nil {
		return nil, core.Configurationf("token codec cannot be nil")
	}

	o := &transportOptions{cookiePath: DefaultCookiePath}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return &Transport[T]{
		codec:      codec,
		cookiePath: o.cookiePath,
		extractor:  XAuthTokenExtractor,
	}, nil
}

// WithCookiePath sets the Path attribute of the token cookie.
//
// Default: "/"
func WithCookiePath(path string) TransportOption {
	return func(o *transportOptions) error {
		if path == "" {
			return core.Configurationf("cookie path cannot be empty")
		}
		o.cookiePath = path
		return nil
	}
}

// CookiePath returns the configured cookie path.
func (t *Transport[T]) CookiePath() string {
	return t.cookiePath
}

// Add creates a token for subject and attaches it to the response as the
// X-AUTH-TOKEN header and an HttpOnly cookie of the same name. Nothing is
// written when token creation fails.
func (t *Transport[T]) Add(w http.ResponseWriter, subject T) error {
	tok, err := t.codec.Create(subject)
	if err != nil {
		return err
	}

	// Set directly so the name keeps its exact case on the wire.
	w.Header()[TokenName] = append(w.Header()[TokenName], tok)
	http.SetCookie(w, &http.Cookie{
		Name:     TokenName,
		Value:    tok,
		Path:     t.cookiePath,
		HttpOnly: true,
	})

	return nil
}

// Retrieve reads the subject carried by r. It returns ok == false, without
// consulting the codec, when the request has no token, and passes on the
// codec's no-value for an expired one.
func (t *Transport[T]) Retrieve(r *http.Request) (T, bool, error) {
	var zero T

	tok, err := t.extractor(r)
	if err != nil {
		return zero, false, core.NewError(core.KindArgument, "could not extract token", err)
	}
	if tok == "" {
		return zero, false, nil
	}

	return t.codec.Parse(tok)
}
