package statelessgrpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	statelessauth "github.com/auth0/go-stateless-auth"
	"github.com/auth0/go-stateless-auth/core"
)

// Authenticator resolves tokens to identities and issues tokens for them.
// *core.Authenticator satisfies it for any subject type.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*core.Identity, error)
	Issue(identity *core.Identity) (string, error)
}

var _ Authenticator = (*core.Authenticator[string])(nil)

// Interceptor provides stateless token authentication for gRPC.
type Interceptor struct {
	authenticator  Authenticator
	tokenExtractor TokenExtractor
	errorHandler   func(ctx context.Context, err error) error
	errorMapper    core.ErrorMapper
	logger         statelessauth.Logger
	metrics        statelessauth.Metrics
	tracer         oteltrace.Tracer
}

// New creates a new Interceptor with the given options.
//
// Example:
//
//	codec, _ := token.New[string](secret)
//	auth, _ := core.New[string](codec, core.DefaultConverter())
//	interceptor, err := statelessgrpc.New(auth)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	server := grpc.NewServer(
//	    grpc.UnaryInterceptor(interceptor.UnaryServerInterceptor()),
//	    grpc.StreamInterceptor(interceptor.StreamServerInterceptor()),
//	)
func New(authenticator Authenticator, opts ...Option) (*Interceptor, error) {
	if authenticator == nil {
		return nil, core.Configurationf("authenticator cannot be nil")
	}

	i := &Interceptor{
		authenticator:  authenticator,
		tokenExtractor: MetadataTokenExtractor,
		errorHandler:   DefaultErrorHandler,
		errorMapper:    core.DefaultErrorMapper{},
		metrics:        statelessauth.NoopMetrics{},
		tracer:         otel.Tracer("github.com/auth0/go-stateless-auth/framework/grpc"),
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return i, nil
}

// authenticate handles token extraction, resolution, and context updating.
// It returns the context carrying the identity (nil when anonymous) or the
// error to send to the client.
func (i *Interceptor) authenticate(ctx context.Context, method string) (context.Context, error) {
	ctx, span := i.tracer.Start(ctx, statelessauth.SpanAuthenticate, oteltrace.WithAttributes(
		attribute.String("rpc.method", method),
	))
	defer span.End()

	start := time.Now()
	identity, err := i.resolve(ctx)
	i.metrics.ObserveLatency(statelessauth.OperationRetrieve, time.Since(start))

	if err != nil {
		mapped := i.errorMapper.Map(err)

		i.metrics.IncAuthentications(statelessauth.OutcomeFailed)
		span.SetAttributes(attribute.String(statelessauth.AttributeOutcome, statelessauth.OutcomeFailed))
		span.RecordError(mapped)
		span.SetStatus(otelcodes.Error, mapped.Error())
		if i.logger != nil {
			i.logger.Warn("Token authentication failed",
				"error", mapped,
				"kind", core.KindOf(mapped),
				"method", method)
		}

		if err := i.errorHandler(ctx, mapped); err != nil {
			return nil, err
		}
		// The handler swallowed the failure; the call continues anonymously.
		return ctx, nil
	}

	outcome := statelessauth.OutcomeAnonymous
	if identity != nil {
		outcome = statelessauth.OutcomeAuthenticated
	}
	i.metrics.IncAuthentications(outcome)
	span.SetAttributes(attribute.String(statelessauth.AttributeOutcome, outcome))
	if i.logger != nil {
		i.logger.Debug("Call authenticated", "outcome", outcome, "method", method)
	}

	return core.SetIdentity(ctx, identity), nil
}

func (i *Interceptor) resolve(ctx context.Context) (*core.Identity, error) {
	tok, err := i.tokenExtractor(ctx)
	if err != nil {
		return nil, core.NewError(core.KindArgument, "could not extract token", err)
	}
	return i.authenticator.Authenticate(ctx, tok)
}

// UnaryServerInterceptor returns a gRPC unary server interceptor.
func (i *Interceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		authCtx, err := i.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(authCtx, req)
	}
}

// StreamServerInterceptor returns a gRPC stream server interceptor.
func (i *Interceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		authCtx, err := i.authenticate(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}

		// Wrap the server stream with the authenticated context
		return handler(srv, &wrappedServerStream{
			ServerStream: ss,
			ctx:          authCtx,
		})
	}
}

// Issue creates a token for identity and sends it to the client in the
// x-auth-token response header. Call it from a handler, before the first
// response message.
func (i *Interceptor) Issue(ctx context.Context, identity *core.Identity) error {
	tok, err := i.authenticator.Issue(identity)
	if err != nil {
		mapped := i.errorMapper.Map(err)
		if i.logger != nil {
			i.logger.Error("Could not issue token", "error", mapped, "kind", core.KindOf(mapped))
		}
		return i.errorHandler(ctx, mapped)
	}

	if err := grpc.SetHeader(ctx, metadata.Pairs(MetadataKey, tok)); err != nil {
		return status.Errorf(codes.Internal, "could not send token: %v", err)
	}

	i.metrics.IncTokensIssued()
	return nil
}

// wrappedServerStream wraps a grpc.ServerStream to override the context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the wrapped context.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

// DefaultErrorHandler converts an authentication error to a gRPC status:
// Unauthenticated for a bad token, InvalidArgument for an unreadable one and
// Internal otherwise.
func DefaultErrorHandler(_ context.Context, err error) error {
	switch {
	case errors.Is(err, core.ErrSignature):
		return status.Error(codes.Unauthenticated, "authentication token is invalid")
	case errors.Is(err, core.ErrSerialization), errors.Is(err, core.ErrArgument):
		return status.Error(codes.InvalidArgument, "authentication token could not be read")
	default:
		return status.Error(codes.Internal, "something went wrong while authenticating the call")
	}
}

// GetIdentity retrieves the identity stored by the interceptor. It returns
// core.ErrIdentityNotFound for anonymous calls.
func GetIdentity(ctx context.Context) (*core.Identity, error) {
	return core.GetIdentity(ctx)
}
