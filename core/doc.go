/*
Package core provides the framework-agnostic pieces of stateless token
authentication that are shared by every transport adapter.

# Architecture

The core package is the "Core" in the Core-Adapter pattern:

	┌─────────────────────────────────────────────┐
	│         Transport Adapters                  │
	│  (net/http, Gin, Echo, gRPC)                │
	└────────────────┬────────────────────────────┘
	                 │
	                 ▼
	┌─────────────────────────────────────────────┐
	│          Core (THIS PACKAGE)                │
	│  • Identity and Converter                   │
	│  • Request-scoped identity context          │
	│  • Error kinds and ErrorMapper              │
	│  • Authenticator (codec + converter)        │
	└────────────────┬────────────────────────────┘
	                 │
	                 ▼
	┌─────────────────────────────────────────────┐
	│          Token Codec (package token)        │
	│  (serialize, sign, expire, verify)          │
	└─────────────────────────────────────────────┘

# Basic Usage

	codec, err := token.New[string]([]byte(secret))
	if err != nil {
	    log.Fatal(err)
	}

	auth, err := core.New(codec, core.DefaultConverter())
	if err != nil {
	    log.Fatal(err)
	}

	identity, err := auth.Authenticate(ctx, tokenString)
	if err != nil {
	    // tampered or malformed token
	}
	if identity == nil {
	    // no token, or an expired one: anonymous
	}

# Converters

A Converter maps the token subject to an Identity and back. Converters built
with NullSafe never call the wrapped functions for a missing value:

	type User struct {
	    ID   string
	    Name string
	}

	converter := core.NullSafe(
	    func(identity *core.Identity) User { return identity.Principal.(User) },
	    func(user User) *core.Identity { return core.NewAuthenticatedIdentity(user) },
	)

DefaultConverter works on string subjects: an identity becomes its Name and a
name becomes an authenticated identity with no credentials or authorities.

# Errors

Every error produced by the module is an *Error tagged with a Kind:

  - KindArgument: an unusable caller value (e.g. a subject that does not serialize)
  - KindSerialization: subject bytes that do not decode into the subject type
  - KindSignature: a malformed token or a signature mismatch
  - KindConfiguration: invalid construction-time arguments
  - KindMapping: an unclassified failure wrapped by the ErrorMapper

Each kind matches a sentinel with errors.Is:

	if errors.Is(err, core.ErrSignature) {
	    // token was tampered with
	}

An expired token is not an error. It behaves exactly like a request without a
token.

# Error Mapping

DefaultErrorMapper surfaces the module's own kinds and Go runtime errors
unchanged, and wraps anything else in a KindMapping error with the original as
its cause. Use Classify to apply the same rule in a custom mapper.

# Context

The identity established for a request lives in its context.Context:

	ctx = core.SetIdentity(ctx, identity)

	identity, err := core.GetIdentity(ctx)
	if errors.Is(err, core.ErrIdentityNotFound) {
	    // anonymous
	}

# Thread Safety

Authenticator, converters and mappers are immutable after creation and safe
for concurrent use.
*/
package core
