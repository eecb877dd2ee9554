package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCodec is a mock implementation of TokenCodec for testing.
type mockCodec struct {
	createFunc func(subject string) (string, error)
	parseFunc  func(token string) (string, bool, error)
}

func (m *mockCodec) Create(subject string) (string, error) {
	if m.createFunc != nil {
		return m.createFunc(subject)
	}
	return "", errors.New("not implemented")
}

func (m *mockCodec) Parse(token string) (string, bool, error) {
	if m.parseFunc != nil {
		return m.parseFunc(token)
	}
	return "", false, errors.New("not implemented")
}

// mockLogger is a mock implementation of Logger for testing.
type mockLogger struct {
	debugCalls []logCall
	infoCalls  []logCall
	warnCalls  []logCall
	errorCalls []logCall
}

type logCall struct {
	msg  string
	args []any
}

func (m *mockLogger) Debug(msg string, args ...any) {
	m.debugCalls = append(m.debugCalls, logCall{msg, args})
}

func (m *mockLogger) Info(msg string, args ...any) {
	m.infoCalls = append(m.infoCalls, logCall{msg, args})
}

func (m *mockLogger) Warn(msg string, args ...any) {
	m.warnCalls = append(m.warnCalls, logCall{msg, args})
}

func (m *mockLogger) Error(msg string, args ...any) {
	m.errorCalls = append(m.errorCalls, logCall{msg, args})
}

func TestNew(t *testing.T) {
	codec := &mockCodec{}

	t.Run("successful creation with required arguments", func(t *testing.T) {
		auth, err := New[string](codec, DefaultConverter())
		require.NoError(t, err)
		assert.NotNil(t, auth)
		assert.Nil(t, auth.logger)
	})

	t.Run("successful creation with logger", func(t *testing.T) {
		auth, err := New[string](codec, DefaultConverter(), WithLogger(&mockLogger{}))
		require.NoError(t, err)
		assert.NotNil(t, auth.logger)
	})

	t.Run("error when codec is nil", func(t *testing.T) {
		auth, err := New[string](nil, DefaultConverter())
		assert.Nil(t, auth)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), "codec cannot be nil")
	})

	t.Run("error when converter is nil", func(t *testing.T) {
		auth, err := New[string](codec, nil)
		assert.Nil(t, auth)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), "converter cannot be nil")
	})

	t.Run("error when logger is nil", func(t *testing.T) {
		auth, err := New[string](codec, DefaultConverter(), WithLogger(nil))
		assert.Nil(t, auth)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), "logger cannot be nil")
	})
}

func TestAuthenticator_Authenticate(t *testing.T) {
	t.Run("resolves a subject to an authenticated identity", func(t *testing.T) {
		codec := &mockCodec{
			parseFunc: func(token string) (string, bool, error) {
				assert.Equal(t, "valid-token", token)
				return "alice", true, nil
			},
		}
		auth, err := New[string](codec, DefaultConverter())
		require.NoError(t, err)

		identity, err := auth.Authenticate(context.Background(), "valid-token")
		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "alice", identity.Principal)
		assert.True(t, identity.Authenticated)
	})

	t.Run("empty token never reaches the codec", func(t *testing.T) {
		codec := &mockCodec{
			parseFunc: func(string) (string, bool, error) {
				t.Fatal("codec should not be called with empty token")
				return "", false, nil
			},
		}
		auth, err := New[string](codec, DefaultConverter())
		require.NoError(t, err)

		identity, err := auth.Authenticate(context.Background(), "")
		assert.NoError(t, err)
		assert.Nil(t, identity)
	})

	t.Run("missing subject yields no identity and skips the converter", func(t *testing.T) {
		codec := &mockCodec{
			parseFunc: func(string) (string, bool, error) { return "", false, nil },
		}
		converter := NullSafe(
			func(*Identity) string {
				t.Fatal("toSubject should not be called")
				return ""
			},
			func(string) *Identity {
				t.Fatal("toIdentity should not be called")
				return nil
			},
		)
		auth, err := New[string](codec, converter)
		require.NoError(t, err)

		identity, err := auth.Authenticate(context.Background(), "expired-token")
		assert.NoError(t, err)
		assert.Nil(t, identity)
	})

	t.Run("codec error is returned unchanged", func(t *testing.T) {
		expectedErr := NewError(KindSignature, "signature mismatch", nil)
		codec := &mockCodec{
			parseFunc: func(string) (string, bool, error) { return "", false, expectedErr },
		}
		logger := &mockLogger{}
		auth, err := New[string](codec, DefaultConverter(), WithLogger(logger))
		require.NoError(t, err)

		identity, err := auth.Authenticate(context.Background(), "tampered")
		assert.Nil(t, identity)
		assert.Same(t, expectedErr, err)

		require.Len(t, logger.errorCalls, 1)
		assert.Contains(t, logger.errorCalls[0].msg, "parsing failed")
	})

	t.Run("logger integration on anonymous request", func(t *testing.T) {
		logger := &mockLogger{}
		auth, err := New[string](&mockCodec{}, DefaultConverter(), WithLogger(logger))
		require.NoError(t, err)

		_, err = auth.Authenticate(context.Background(), "")
		assert.NoError(t, err)

		require.Len(t, logger.debugCalls, 1)
		assert.Contains(t, logger.debugCalls[0].msg, "anonymously")
	})
}

func TestAuthenticator_Issue(t *testing.T) {
	t.Run("issues a token for the identity name", func(t *testing.T) {
		codec := &mockCodec{
			createFunc: func(subject string) (string, error) {
				return "token-for-" + subject, nil
			},
		}
		auth, err := New[string](codec, DefaultConverter())
		require.NoError(t, err)

		token, err := auth.Issue(NewAuthenticatedIdentity("alice"))
		require.NoError(t, err)
		assert.Equal(t, "token-for-alice", token)
	})

	t.Run("nil identity is an argument error", func(t *testing.T) {
		codec := &mockCodec{
			createFunc: func(string) (string, error) {
				t.Fatal("codec should not be called without a subject")
				return "", nil
			},
		}
		auth, err := New[string](codec, DefaultConverter())
		require.NoError(t, err)

		token, err := auth.Issue(nil)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrArgument)
	})

	t.Run("codec error is logged and returned", func(t *testing.T) {
		expectedErr := NewError(KindArgument, "cannot serialize", nil)
		codec := &mockCodec{
			createFunc: func(string) (string, error) { return "", expectedErr },
		}
		logger := &mockLogger{}
		auth, err := New[string](codec, DefaultConverter(), WithLogger(logger))
		require.NoError(t, err)

		_, err = auth.Issue(NewAuthenticatedIdentity("alice"))
		assert.Same(t, expectedErr, err)
		assert.Len(t, logger.errorCalls, 1)
	})
}
