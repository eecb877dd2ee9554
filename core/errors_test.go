package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("message without details", func(t *testing.T) {
		err := NewError(KindSignature, "signature mismatch", nil)
		assert.Equal(t, "signature mismatch", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("message with details", func(t *testing.T) {
		cause := errors.New("short buffer")
		err := NewError(KindSerialization, "cannot decode subject", cause)
		assert.Equal(t, "cannot decode subject: short buffer", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("matches the sentinel of its own kind only", func(t *testing.T) {
		err := NewError(KindSignature, "signature mismatch", nil)
		assert.ErrorIs(t, err, ErrSignature)
		assert.NotErrorIs(t, err, ErrSerialization)
		assert.NotErrorIs(t, err, ErrMapping)
	})

	t.Run("argument error keeps serialization cause visible", func(t *testing.T) {
		err := NewError(KindArgument, "cannot create token", NewError(KindSerialization, "unsupported type", nil))
		assert.ErrorIs(t, err, ErrArgument)
		assert.ErrorIs(t, err, ErrSerialization)
		assert.Equal(t, KindArgument, KindOf(err))
	})

	t.Run("unknown kind matches no sentinel", func(t *testing.T) {
		err := NewError(KindUnknown, "what", nil)
		assert.False(t, err.Is(nil))
		assert.NotErrorIs(t, err, ErrFatal)
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindConfiguration, KindOf(Configurationf("bad %s", "value")))
	assert.Equal(t, KindSignature, KindOf(fmt.Errorf("wrapped: %w", NewError(KindSignature, "x", nil))))
}

func TestKind_String(t *testing.T) {
	kinds := map[Kind]string{
		KindUnknown:       "unknown",
		KindArgument:      "argument",
		KindSerialization: "serialization",
		KindSignature:     "signature",
		KindConfiguration: "configuration",
		KindMapping:       "mapping",
		KindFatal:         "fatal",
	}
	for kind, want := range kinds {
		assert.Equal(t, want, kind.String())
	}
}
