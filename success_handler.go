package statelessauth

import (
	"net/http"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/auth0/go-stateless-auth/core"
)

// SuccessHandlerFunc continues a successful login once its token has been
// added to the response.
type SuccessHandlerFunc func(w http.ResponseWriter, r *http.Request, identity *core.Identity) error

// RedirectSuccessHandler redirects to url with 302 Found.
func RedirectSuccessHandler(url string) SuccessHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ *core.Identity) error {
		http.Redirect(w, r, url, http.StatusFound)
		return nil
	}
}

// SuccessHandler issues the token for a freshly authenticated identity and
// then hands over to a delegate.
type SuccessHandler struct {
	binder      IdentityBinder
	delegate    SuccessHandlerFunc
	errorMapper core.ErrorMapper
	logger      Logger
	metrics     Metrics
	tracer      oteltrace.Tracer
}

// NewSuccessHandler creates a SuccessHandler that binds identities with
// binder.
//
// Example:
//
//	success, err := statelessauth.NewSuccessHandler(binder,
//	    statelessauth.WithSuccessDelegate(statelessauth.RedirectSuccessHandler("/home")),
//	)
//
//	// in the login handler, after the credentials check out:
//	if err := success.OnAuthenticationSuccess(w, r, core.NewAuthenticatedIdentity(username)); err != nil {
//	    statelessauth.DefaultErrorHandler(w, r, err)
//	}
func NewSuccessHandler(binder IdentityBinder, opts ...SuccessOption) (*SuccessHandler, error) {
	if binder == nil {
		return nil, core.Configurationf("binder cannot be nil")
	}

	h := &SuccessHandler{binder: binder}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	if h.delegate == nil {
		h.delegate = RedirectSuccessHandler("/")
	}
	if h.errorMapper == nil {
		h.errorMapper = core.DefaultErrorMapper{}
	}
	if h.metrics == nil {
		h.metrics = NoopMetrics{}
	}
	if h.tracer == nil {
		h.tracer = defaultTracer()
	}

	return h, nil
}

// OnAuthenticationSuccess adds the token for identity to w and then calls the
// delegate. If binding fails the mapped error is returned and the delegate
// is not called.
func (h *SuccessHandler) OnAuthenticationSuccess(w http.ResponseWriter, r *http.Request, identity *core.Identity) error {
	ctx, span := h.tracer.Start(r.Context(), SpanBind)
	r = r.WithContext(ctx)

	start := time.Now()
	err := h.binder.Add(w, identity)
	h.metrics.ObserveLatency(OperationAdd, time.Since(start))

	if err != nil {
		mapped := h.errorMapper.Map(err)

		endSpan(span, OutcomeFailed, mapped)
		if h.logger != nil {
			h.logger.Error("Could not add token to response",
				"error", mapped,
				"kind", core.KindOf(mapped),
				"method", r.Method,
				"path", r.URL.Path)
		}
		return mapped
	}

	h.metrics.IncTokensIssued()
	endSpan(span, OutcomeIssued, nil)
	if h.logger != nil {
		h.logger.Debug("Token added to response",
			"identity", identity.Name(),
			"duration", time.Since(start))
	}

	return h.delegate(w, r, identity)
}
