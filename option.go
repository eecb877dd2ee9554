package statelessauth

import (
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/auth0/go-stateless-auth/core"
)

// Option configures the Middleware.
// Returns error for validation failures.
type Option func(*Middleware) error

// WithErrorHandler sets the handler called when a request fails to
// authenticate. See the ErrorHandler type for more information.
//
// Default: DefaultErrorHandler
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return core.Configurationf("error handler cannot be nil")
		}
		m.errorHandler = h
		return nil
	}
}

// WithErrorMapper sets how retrieval errors are translated before they reach
// the ErrorHandler.
//
// Default: core.DefaultErrorMapper
func WithErrorMapper(mapper core.ErrorMapper) Option {
	return func(m *Middleware) error {
		if mapper == nil {
			return core.Configurationf("error mapper cannot be nil")
		}
		m.errorMapper = mapper
		return nil
	}
}

// WithLogger sets an optional logger for the middleware.
//
// The logger interface is compatible with log/slog.Logger and similar loggers.
// Tokens are never logged.
//
// Example:
//
//	middleware, err := statelessauth.New(binder,
//	    statelessauth.WithLogger(slog.Default()),
//	)
func WithLogger(logger Logger) Option {
	return func(m *Middleware) error {
		if logger == nil {
			return core.Configurationf("logger cannot be nil")
		}
		m.logger = logger
		return nil
	}
}

// WithMetrics sets where authentication outcomes and latencies are reported.
//
// Default: NoopMetrics
func WithMetrics(metrics Metrics) Option {
	return func(m *Middleware) error {
		if metrics == nil {
			return core.Configurationf("metrics cannot be nil")
		}
		m.metrics = metrics
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer used for the
// statelessauth.Authenticate span.
//
// Default: the tracer of the global otel TracerProvider
func WithTracer(tracer oteltrace.Tracer) Option {
	return func(m *Middleware) error {
		if tracer == nil {
			return core.Configurationf("tracer cannot be nil")
		}
		m.tracer = tracer
		return nil
	}
}

// SuccessOption configures a SuccessHandler.
type SuccessOption func(*SuccessHandler) error

// WithSuccessDelegate sets what happens after the identity has been bound,
// typically a redirect or a response body.
//
// Default: RedirectSuccessHandler("/")
func WithSuccessDelegate(delegate SuccessHandlerFunc) SuccessOption {
	return func(h *SuccessHandler) error {
		if delegate == nil {
			return core.Configurationf("success delegate cannot be nil")
		}
		h.delegate = delegate
		return nil
	}
}

// WithSuccessErrorMapper sets how binding errors are translated before they
// are returned.
//
// Default: core.DefaultErrorMapper
func WithSuccessErrorMapper(mapper core.ErrorMapper) SuccessOption {
	return func(h *SuccessHandler) error {
		if mapper == nil {
			return core.Configurationf("error mapper cannot be nil")
		}
		h.errorMapper = mapper
		return nil
	}
}

// WithSuccessLogger sets an optional logger for the success handler.
func WithSuccessLogger(logger Logger) SuccessOption {
	return func(h *SuccessHandler) error {
		if logger == nil {
			return core.Configurationf("logger cannot be nil")
		}
		h.logger = logger
		return nil
	}
}

// WithSuccessMetrics sets where issued tokens and binding latency are
// reported.
//
// Default: NoopMetrics
func WithSuccessMetrics(metrics Metrics) SuccessOption {
	return func(h *SuccessHandler) error {
		if metrics == nil {
			return core.Configurationf("metrics cannot be nil")
		}
		h.metrics = metrics
		return nil
	}
}

// WithSuccessTracer sets the OpenTelemetry tracer used for the
// statelessauth.Bind span.
//
// Default: the tracer of the global otel TracerProvider
func WithSuccessTracer(tracer oteltrace.Tracer) SuccessOption {
	return func(h *SuccessHandler) error {
		if tracer == nil {
			return core.Configurationf("tracer cannot be nil")
		}
		h.tracer = tracer
		return nil
	}
}
