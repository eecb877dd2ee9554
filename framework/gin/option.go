package statelessgin

import (
	"github.com/gin-gonic/gin"

	statelessauth "github.com/auth0/go-stateless-auth"
	"github.com/auth0/go-stateless-auth/core"
)

// Option defines a functional option for configuring the middleware
type Option func(*ginMiddlewareConfig) error

// WithErrorHandler sets a custom error handler for the middleware. The
// request is aborted after it returns.
func WithErrorHandler(handler func(*gin.Context, error)) Option {
	return func(config *ginMiddlewareConfig) error {
		if handler == nil {
			return core.Configurationf("error handler cannot be nil")
		}
		config.errorHandler = handler
		return nil
	}
}

// WithContextKey sets the gin context key the identity is stored under.
//
// Default: DefaultIdentityKey
func WithContextKey(key string) Option {
	return func(config *ginMiddlewareConfig) error {
		if key == "" {
			return core.Configurationf("context key cannot be empty")
		}
		config.contextKey = key
		return nil
	}
}

// WithMiddlewareOptions passes options through to the underlying
// statelessauth.Middleware. An error handler given here is replaced by the
// gin one.
func WithMiddlewareOptions(opts ...statelessauth.Option) Option {
	return func(config *ginMiddlewareConfig) error {
		config.middlewareOpts = append(config.middlewareOpts, opts...)
		return nil
	}
}
