package statelessauth

import (
	"errors"
	"net/http"

	"github.com/auth0/go-stateless-auth/core"
)

// ErrorHandler is a handler which is called when the Middleware fails to
// authenticate a request. The err has already been through the configured
// core.ErrorMapper, so it is either a library error of a known kind or a
// core.KindMapping error wrapping something else. Check it with errors.Is
// against the core sentinels (core.ErrSignature, core.ErrSerialization, ...).
// The request is not passed on after the handler returns.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler is the default error handler implementation for the
// Middleware. If an error handler is not provided via the WithErrorHandler
// option this will be used. It responds 401 for a tampered or malformed
// token, 400 for a token or request that could not be read, and 500 for
// everything else.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, core.ErrSignature):
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Authentication token is invalid."}`))
	case errors.Is(err, core.ErrSerialization):
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Authentication token could not be read."}`))
	case errors.Is(err, core.ErrArgument):
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Authentication request is malformed."}`))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Something went wrong while authenticating the request."}`))
	}
}
