package statelessauth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/auth0/go-stateless-auth/core"
)

// Middleware authenticates every request that passes through it from the
// token the request carries. It never rejects a request for lacking a
// token: such requests continue anonymously.
type Middleware struct {
	binder       IdentityBinder
	errorHandler ErrorHandler
	errorMapper  core.ErrorMapper
	logger       Logger
	metrics      Metrics
	tracer       oteltrace.Tracer
}

// New constructs a new Middleware that reads identities with binder.
//
// Example:
//
//	codec, _ := token.New[string](secret, token.WithExpiration(30, time.Minute))
//	transport, _ := statelessauth.NewTransport[string](codec)
//	binder, _ := statelessauth.NewBinder(transport, core.DefaultConverter())
//
//	middleware, err := statelessauth.New(binder)
//	if err != nil {
//	    log.Fatalf("failed to create middleware: %v", err)
//	}
//	http.ListenAndServe(":3000", middleware.Authenticate(handler))
func New(binder IdentityBinder, opts ...Option) (*Middleware, error) {
	m, err := newMiddleware(opts)
	if err != nil {
		return nil, err
	}

	if binder == nil {
		return nil, fmt.Errorf("invalid middleware configuration: %w", core.Configurationf("binder cannot be nil"))
	}
	m.binder = binder

	return m, nil
}

// newMiddleware applies opts over the defaults. The binder is left unset.
func newMiddleware(opts []Option) (*Middleware, error) {
	m := &Middleware{}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	m.applyDefaults()
	return m, nil
}

// applyDefaults sets default values for optional fields not set by options
func (m *Middleware) applyDefaults() {
	if m.errorHandler == nil {
		m.errorHandler = DefaultErrorHandler
	}
	if m.errorMapper == nil {
		m.errorMapper = core.DefaultErrorMapper{}
	}
	if m.metrics == nil {
		m.metrics = NoopMetrics{}
	}
	if m.tracer == nil {
		m.tracer = defaultTracer()
	}
}

// GetIdentity retrieves the identity the Middleware stored in the context.
// It returns core.ErrIdentityNotFound for an anonymous request.
//
// Example:
//
//	identity, err := statelessauth.GetIdentity(r.Context())
//	if err != nil {
//	    http.Error(w, "not signed in", http.StatusUnauthorized)
//	    return
//	}
//	fmt.Println(identity.Name())
func GetIdentity(ctx context.Context) (*core.Identity, error) {
	return core.GetIdentity(ctx)
}

// MustGetIdentity retrieves the identity from the context or panics.
// Use only behind a check that the request is authenticated.
func MustGetIdentity(ctx context.Context) *core.Identity {
	identity, err := core.GetIdentity(ctx)
	if err != nil {
		panic(err)
	}
	return identity
}

// HasIdentity checks if an identity exists in the context.
func HasIdentity(ctx context.Context) bool {
	return core.HasIdentity(ctx)
}

// Authenticate is the main Middleware function. It recovers the identity
// from the request, stores it in the request context (nil when anonymous)
// and calls next exactly once. When retrieval fails the mapped error goes to
// the ErrorHandler and next is not called.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), SpanAuthenticate)
		r = r.WithContext(ctx)

		start := time.Now()
		identity, err := m.binder.Retrieve(r)
		m.metrics.ObserveLatency(OperationRetrieve, time.Since(start))

		if err != nil {
			mapped := m.errorMapper.Map(err)

			m.metrics.IncAuthentications(OutcomeFailed)
			endSpan(span, OutcomeFailed, mapped)
			if m.logger != nil {
				m.logger.Warn("Token authentication failed",
					"error", mapped,
					"kind", core.KindOf(mapped),
					"method", r.Method,
					"path", r.URL.Path)
			}

			m.errorHandler(w, r, mapped)
			return
		}

		outcome := OutcomeAnonymous
		if identity != nil {
			outcome = OutcomeAuthenticated
		}
		m.metrics.IncAuthentications(outcome)
		endSpan(span, outcome, nil)

		if m.logger != nil {
			m.logger.Debug("Request authenticated",
				"outcome", outcome,
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start))
		}

		r = r.Clone(core.SetIdentity(r.Context(), identity))
		next.ServeHTTP(w, r)
	})
}
