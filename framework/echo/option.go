package statelessecho

import (
	"github.com/labstack/echo/v4"

	statelessauth "github.com/auth0/go-stateless-auth"
	"github.com/auth0/go-stateless-auth/core"
)

// Option is a function that configures the middleware
type Option func(*echoMiddlewareConfig) error

// WithErrorHandler sets a custom error handler. Its return value is
// returned from the middleware.
func WithErrorHandler(handler func(echo.Context, error) error) Option {
	return func(config *echoMiddlewareConfig) error {
		if handler == nil {
			return core.Configurationf("error handler cannot be nil")
		}
		config.errorHandler = handler
		return nil
	}
}

// WithContextKey sets a custom context key to store the identity
func WithContextKey(key string) Option {
	return func(config *echoMiddlewareConfig) error {
		if key == "" {
			return core.Configurationf("context key cannot be empty")
		}
		config.contextKey = key
		return nil
	}
}

// WithMiddlewareOptions passes options through to the underlying
// statelessauth.Middleware.
func WithMiddlewareOptions(opts ...statelessauth.Option) Option {
	return func(config *echoMiddlewareConfig) error {
		config.middlewareOpts = append(config.middlewareOpts, opts...)
		return nil
	}
}
