/*
Package statelessauth provides stateless, token based authentication for
net/http servers.

A signed token carrying the user's subject is handed to the client when they
log in. On every later request the token is read back, verified, and turned
into a core.Identity stored in the request context. No session state is kept
on the server. The package follows the Core-Adapter pattern, with this
package serving as the HTTP transport adapter.

# Quick Start

	import (
	    "github.com/auth0/go-stateless-auth"
	    "github.com/auth0/go-stateless-auth/core"
	    "github.com/auth0/go-stateless-auth/token"
	)

	func main() {
	    codec, err := token.New[string]([]byte(os.Getenv("AUTH_SECRET")),
	        token.WithExpiration(30, time.Minute),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    transport, err := statelessauth.NewTransport[string](codec)
	    if err != nil {
	        log.Fatal(err)
	    }

	    binder, err := statelessauth.NewBinder(transport, core.DefaultConverter())
	    if err != nil {
	        log.Fatal(err)
	    }

	    middleware, err := statelessauth.New(binder)
	    if err != nil {
	        log.Fatal(err)
	    }

	    success, err := statelessauth.NewSuccessHandler(binder)
	    if err != nil {
	        log.Fatal(err)
	    }

	    http.Handle("/login", loginHandler(success))
	    http.Handle("/", middleware.Authenticate(appHandler))
	    http.ListenAndServe(":8080", nil)
	}

# Transport

Tokens travel in the X-AUTH-TOKEN response header and in an HttpOnly cookie
of the same name. Requests are read header first; the cookie is only
consulted when the header is absent or empty. The cookie path defaults to
"/" and is set with WithCookiePath.

# Anonymous Requests

A request without a token, or with an expired one, is anonymous: it is passed
on with a nil identity and HasIdentity reports false. Only a token that is
malformed, tampered with, or unreadable fails the request.

	func appHandler(w http.ResponseWriter, r *http.Request) {
	    identity, err := statelessauth.GetIdentity(r.Context())
	    if err != nil {
	        fmt.Fprintln(w, "Hello, stranger")
	        return
	    }
	    fmt.Fprintf(w, "Hello, %s\n", identity.Name())
	}

# Logging In

Check the credentials yourself, then give the identity to the SuccessHandler.
It adds the token to the response and calls its delegate, a redirect to "/"
unless WithSuccessDelegate says otherwise.

	func loginHandler(success *statelessauth.SuccessHandler) http.Handler {
	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	        username, ok := checkPassword(r)
	        if !ok {
	            http.Error(w, "bad credentials", http.StatusUnauthorized)
	            return
	        }
	        identity := core.NewAuthenticatedIdentity(username)
	        if err := success.OnAuthenticationSuccess(w, r, identity); err != nil {
	            statelessauth.DefaultErrorHandler(w, r, err)
	        }
	    })
	}

# Error Handling

Errors are mapped by a core.ErrorMapper before they reach the ErrorHandler.
The DefaultErrorHandler answers

  - 401 for core.ErrSignature (malformed or tampered token)
  - 400 for core.ErrSerialization and core.ErrArgument
  - 500 for anything else

# Configuration File

The default wiring for string subjects can be loaded from YAML:

	secret: ${AUTH_SECRET}
	expiration:
	  duration: 30
	  unit: minutes
	cookie_path: /
	success_url: /home

	cfg, err := statelessauth.LoadConfig("auth.yaml")
	auth, err := statelessauth.FromConfig(cfg)

# Observability

WithLogger accepts any log/slog compatible logger; NewLogrusLogger,
NewZapLogger and NewZerologLogger adapt the usual alternatives. WithMetrics
takes NewPrometheusMetrics, and WithTracer an OpenTelemetry tracer.

# Other Frameworks

See framework/gin, framework/echo and framework/grpc.
*/
package statelessauth
