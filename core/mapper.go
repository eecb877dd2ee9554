package core

import (
	"errors"
	"runtime"
)

// Classification is the decision the error mapper takes for a failure.
type Classification int

const (
	// Rethrow means the error is surfaced unchanged.
	Rethrow Classification = iota
	// Wrap means the error is wrapped in a KindMapping error.
	Wrap
)

func (c Classification) String() string {
	if c == Wrap {
		return "wrap"
	}
	return "rethrow"
}

// Classify decides how a failure raised while binding an identity is
// surfaced to the host framework. The rules apply in order:
//
//  1. errors that already are the external kind (KindMapping) are rethrown;
//  2. this module's own unchecked kinds and Go runtime errors are rethrown;
//  3. everything else is wrapped.
func Classify(err error) Classification {
	switch KindOf(err) {
	case KindMapping:
		return Rethrow
	case KindArgument, KindSerialization, KindSignature, KindConfiguration, KindFatal:
		return Rethrow
	}

	var rerr runtime.Error
	if errors.As(err, &rerr) {
		return Rethrow
	}

	return Wrap
}

// ErrorMapper turns an arbitrary failure into the error surfaced to the host
// framework.
type ErrorMapper interface {
	Map(err error) error
}

// ErrorMapperFunc adapts a function to the ErrorMapper interface.
type ErrorMapperFunc func(err error) error

// Map calls f(err).
func (f ErrorMapperFunc) Map(err error) error {
	return f(err)
}

// DefaultErrorMapper applies Classify and wraps unclassified failures in a
// KindMapping error that keeps the original as its cause.
type DefaultErrorMapper struct{}

// Map implements ErrorMapper.
func (DefaultErrorMapper) Map(err error) error {
	if err == nil {
		return nil
	}

	if Classify(err) == Rethrow {
		return err
	}

	return NewError(KindMapping, ErrMapping.Error(), err)
}
