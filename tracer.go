package statelessauth

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/auth0/go-stateless-auth"

// Span names and the attribute carrying the outcome.
const (
	SpanAuthenticate = "statelessauth.Authenticate"
	SpanBind         = "statelessauth.Bind"
	AttributeOutcome = "auth.outcome"
)

// defaultTracer returns the tracer of the global provider, a no-op until the
// application installs one.
func defaultTracer() oteltrace.Tracer {
	return otel.Tracer(instrumentationName)
}

func endSpan(span oteltrace.Span, outcome string, err error) {
	span.SetAttributes(attribute.String(AttributeOutcome, outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
