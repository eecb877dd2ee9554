package statelessgrpc

import (
	"context"

	oteltrace "go.opentelemetry.io/otel/trace"

	statelessauth "github.com/auth0/go-stateless-auth"
	"github.com/auth0/go-stateless-auth/core"
)

// Option defines a functional option for configuring the interceptor.
type Option func(*Interceptor) error

// WithTokenExtractor sets how the token is read from incoming metadata.
//
// Default: MetadataTokenExtractor
func WithTokenExtractor(extractor TokenExtractor) Option {
	return func(i *Interceptor) error {
		if extractor == nil {
			return core.Configurationf("token extractor cannot be nil")
		}
		i.tokenExtractor = extractor
		return nil
	}
}

// WithErrorHandler sets how a mapped authentication error becomes the error
// returned to the client. A handler returning nil lets the call continue
// anonymously.
//
// Default: DefaultErrorHandler
func WithErrorHandler(handler func(ctx context.Context, err error) error) Option {
	return func(i *Interceptor) error {
		if handler == nil {
			return core.Configurationf("error handler cannot be nil")
		}
		i.errorHandler = handler
		return nil
	}
}

// WithErrorMapper sets how authentication errors are translated before the
// error handler sees them.
//
// Default: core.DefaultErrorMapper
func WithErrorMapper(mapper core.ErrorMapper) Option {
	return func(i *Interceptor) error {
		if mapper == nil {
			return core.Configurationf("error mapper cannot be nil")
		}
		i.errorMapper = mapper
		return nil
	}
}

// WithLogger sets the logger for the interceptor.
func WithLogger(logger statelessauth.Logger) Option {
	return func(i *Interceptor) error {
		if logger == nil {
			return core.Configurationf("logger cannot be nil")
		}
		i.logger = logger
		return nil
	}
}

// WithMetrics sets where authentication outcomes are reported.
//
// Default: statelessauth.NoopMetrics
func WithMetrics(metrics statelessauth.Metrics) Option {
	return func(i *Interceptor) error {
		if metrics == nil {
			return core.Configurationf("metrics cannot be nil")
		}
		i.metrics = metrics
		return nil
	}
}

// WithTracer sets the tracer for the interceptor.
func WithTracer(tracer oteltrace.Tracer) Option {
	return func(i *Interceptor) error {
		if tracer == nil {
			return core.Configurationf("tracer cannot be nil")
		}
		i.tracer = tracer
		return nil
	}
}
