package core

import (
	"context"
	"time"
)

// TokenCodec creates and parses the signed token for a subject of type T.
// Parse reports a missing subject (for instance an expired token) through its
// boolean result rather than an error.
type TokenCodec[T any] interface {
	Create(subject T) (string, error)
	Parse(token string) (T, bool, error)
}

// Logger defines an optional logging interface compatible with log/slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Authenticator composes a TokenCodec and a Converter. It is immutable once
// built and safe for concurrent use.
type Authenticator[T any] struct {
	codec     TokenCodec[T]
	converter Converter[T]
	logger    Logger
}

// Issue creates a token for identity. A nil identity has no subject to put
// in a token and is rejected with a KindArgument error.
func (a *Authenticator[T]) Issue(identity *Identity) (string, error) {
	subject, ok := a.converter.ToSubject(identity)
	if !ok {
		return "", NewError(KindArgument, "no identity to issue a token for", nil)
	}

	token, err := a.codec.Create(subject)
	if err != nil {
		if a.logger != nil {
			a.logger.Error("Token creation failed", "error", err)
		}
		return "", err
	}

	return token, nil
}

// Authenticate resolves a token string to an identity.
//
//   - An empty token returns (nil, nil) without invoking the codec.
//   - A token the codec reports as having no subject returns (nil, nil).
//   - Otherwise the codec's error, or the converted identity, is returned.
//
// The context is accepted for symmetry with transport adapters; the core
// performs no blocking work.
func (a *Authenticator[T]) Authenticate(_ context.Context, token string) (*Identity, error) {
	if token == "" {
		if a.logger != nil {
			a.logger.Debug("No token provided, continuing anonymously")
		}
		return nil, nil
	}

	start := time.Now()
	subject, ok, err := a.codec.Parse(token)
	duration := time.Since(start)

	if err != nil {
		if a.logger != nil {
			a.logger.Error("Token parsing failed", "error", err, "kind", KindOf(err).String(), "duration", duration)
		}
		return nil, err
	}

	if !ok && a.logger != nil {
		a.logger.Debug("Token carried no subject, continuing anonymously", "duration", duration)
	}

	return a.converter.ToIdentity(subject, ok), nil
}
