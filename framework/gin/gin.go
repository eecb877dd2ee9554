package statelessgin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	statelessauth "github.com/auth0/go-stateless-auth"
	"github.com/auth0/go-stateless-auth/core"
)

// DefaultIdentityKey is the gin context key the identity is stored under.
const DefaultIdentityKey = "identity"

var (
	ErrMissingIdentity = errors.New("no identity found in context")
	ErrInvalidIdentity = errors.New("invalid identity type")
)

type ginMiddlewareConfig struct {
	errorHandler   func(*gin.Context, error)
	contextKey     string
	middlewareOpts []statelessauth.Option
}

// ginContextKey carries the *gin.Context through the wrapped net/http
// middleware so its error handler can reach it.
type ginContextKey struct{}

// New creates a gin middleware that authenticates requests with binder. An
// authenticated identity is stored in the gin context under the configured
// key and in the request context; anonymous requests continue untouched.
func New(binder statelessauth.IdentityBinder, opts ...Option) (gin.HandlerFunc, error) {
	config := &ginMiddlewareConfig{
		errorHandler: defaultGinErrorHandler,
		contextKey:   DefaultIdentityKey,
	}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	middlewareOpts := append(config.middlewareOpts,
		statelessauth.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			c, ok := r.Context().Value(ginContextKey{}).(*gin.Context)
			if !ok {
				statelessauth.DefaultErrorHandler(w, r, err)
				return
			}
			config.errorHandler(c, err)
		}),
	)

	middleware, err := statelessauth.New(binder, middlewareOpts...)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		encounteredError := true
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			encounteredError = false
			c.Request = r

			if identity, err := core.GetIdentity(r.Context()); err == nil {
				c.Set(config.contextKey, identity)
			}

			c.Next()
		}

		r := c.Request.WithContext(context.WithValue(c.Request.Context(), ginContextKey{}, c))
		middleware.Authenticate(handler).ServeHTTP(c.Writer, r)

		if encounteredError {
			c.Abort()
		}
	}, nil
}

func defaultGinErrorHandler(c *gin.Context, err error) {
	statelessauth.DefaultErrorHandler(c.Writer, c.Request, err)
	c.Abort()
}

// OnAuthenticationSuccess binds identity to the gin response through
// handler. See statelessauth.SuccessHandler.
func OnAuthenticationSuccess(c *gin.Context, handler *statelessauth.SuccessHandler, identity *core.Identity) error {
	return handler.OnAuthenticationSuccess(c.Writer, c.Request, identity)
}

// GetIdentity returns the identity stored by the middleware. An empty
// contextKey means DefaultIdentityKey.
func GetIdentity(c *gin.Context, contextKey string) (*core.Identity, error) {
	if contextKey == "" {
		contextKey = DefaultIdentityKey
	}
	value, exists := c.Get(contextKey)
	if !exists {
		return nil, ErrMissingIdentity
	}

	identity, ok := value.(*core.Identity)
	if !ok {
		return nil, ErrInvalidIdentity
	}

	return identity, nil
}
