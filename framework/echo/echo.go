package statelessecho

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	statelessauth "github.com/auth0/go-stateless-auth"
	"github.com/auth0/go-stateless-auth/core"
)

// DefaultIdentityKey is the echo context key the identity is stored under.
const DefaultIdentityKey = "identity"

// echoMiddlewareConfig holds all configuration for the middleware
type echoMiddlewareConfig struct {
	errorHandler   func(echo.Context, error) error
	contextKey     string
	middlewareOpts []statelessauth.Option
}

type echoContextKey struct{}

// outcome records what happened to one request inside the wrapped
// net/http middleware.
type outcome struct {
	c   echo.Context
	err error
}

// New creates an echo middleware that authenticates requests with binder.
func New(binder statelessauth.IdentityBinder, opts ...Option) (echo.MiddlewareFunc, error) {
	config := &echoMiddlewareConfig{
		errorHandler: defaultEchoErrorHandler,
		contextKey:   DefaultIdentityKey,
	}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	middlewareOpts := append(config.middlewareOpts,
		statelessauth.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			o, ok := r.Context().Value(echoContextKey{}).(*outcome)
			if !ok {
				statelessauth.DefaultErrorHandler(w, r, err)
				return
			}
			o.err = config.errorHandler(o.c, err)
		}),
	)

	middleware, err := statelessauth.New(binder, middlewareOpts...)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			o := &outcome{c: c}

			var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
				c.SetRequest(r)

				if identity, err := core.GetIdentity(r.Context()); err == nil {
					c.Set(config.contextKey, identity)
				}

				o.err = next(c)
			}

			r := c.Request().WithContext(context.WithValue(c.Request().Context(), echoContextKey{}, o))
			middleware.Authenticate(handler).ServeHTTP(c.Response(), r)

			return o.err
		}
	}, nil
}

func defaultEchoErrorHandler(c echo.Context, err error) error {
	statelessauth.DefaultErrorHandler(c.Response(), c.Request(), err)
	return nil
}

// OnAuthenticationSuccess binds identity to the echo response through
// handler. See statelessauth.SuccessHandler.
func OnAuthenticationSuccess(c echo.Context, handler *statelessauth.SuccessHandler, identity *core.Identity) error {
	return handler.OnAuthenticationSuccess(c.Response(), c.Request(), identity)
}

// GetIdentity extracts the identity from the Echo context. An empty
// contextKey means DefaultIdentityKey.
func GetIdentity(c echo.Context, contextKey string) (*core.Identity, bool) {
	if contextKey == "" {
		contextKey = DefaultIdentityKey
	}
	value := c.Get(contextKey)
	if value == nil {
		return nil, false
	}

	identity, ok := value.(*core.Identity)
	return identity, ok
}
