package statelessauth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auth0/go-stateless-auth/core"
)

func Test_SuccessHandler(t *testing.T) {
	t.Run("default delegate redirects to root after binding", func(t *testing.T) {
		handler, err := NewSuccessHandler(newStringBinder(t))
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/login", nil)

		require.NoError(t, handler.OnAuthenticationSuccess(recorder, request, core.NewAuthenticatedIdentity("alice")))

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, "/", recorder.Header().Get("Location"))
		assert.NotEmpty(t, responseToken(recorder.Header()))
		require.Len(t, recorder.Result().Cookies(), 1)
	})

	t.Run("token is added before the delegate runs", func(t *testing.T) {
		var seenToken string
		var seenIdentity *core.Identity

		handler, err := NewSuccessHandler(newStringBinder(t), WithSuccessDelegate(
			func(w http.ResponseWriter, r *http.Request, identity *core.Identity) error {
				seenToken = responseToken(w.Header())
				seenIdentity = identity
				w.WriteHeader(http.StatusNoContent)
				return nil
			},
		))
		require.NoError(t, err)

		identity := core.NewAuthenticatedIdentity("alice")
		recorder := httptest.NewRecorder()
		require.NoError(t, handler.OnAuthenticationSuccess(recorder, httptest.NewRequest(http.MethodPost, "/login", nil), identity))

		assert.NotEmpty(t, seenToken)
		assert.Same(t, identity, seenIdentity)
		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("binding failure skips the delegate", func(t *testing.T) {
		delegateCalls := 0
		handler, err := NewSuccessHandler(newStringBinder(t), WithSuccessDelegate(
			func(http.ResponseWriter, *http.Request, *core.Identity) error {
				delegateCalls++
				return nil
			},
		))
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		err = handler.OnAuthenticationSuccess(recorder, httptest.NewRequest(http.MethodPost, "/login", nil), nil)

		assert.ErrorIs(t, err, core.ErrArgument)
		assert.Equal(t, 0, delegateCalls)
		assert.Empty(t, responseToken(recorder.Header()))
	})

	t.Run("unknown binding errors are wrapped", func(t *testing.T) {
		errWrite := errors.New("write failed")
		handler, err := NewSuccessHandler(&stubBinder{addErr: errWrite})
		require.NoError(t, err)

		err = handler.OnAuthenticationSuccess(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil), core.NewAuthenticatedIdentity("alice"))

		assert.ErrorIs(t, err, core.ErrMapping)
		assert.ErrorIs(t, err, errWrite)
	})

	t.Run("custom mapper", func(t *testing.T) {
		errMapped := errors.New("mapped")
		handler, err := NewSuccessHandler(&stubBinder{addErr: errors.New("write failed")},
			WithSuccessErrorMapper(core.ErrorMapperFunc(func(error) error { return errMapped })),
		)
		require.NoError(t, err)

		err = handler.OnAuthenticationSuccess(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil), core.NewAuthenticatedIdentity("alice"))
		assert.Same(t, errMapped, err)
	})

	t.Run("delegate error is returned", func(t *testing.T) {
		errDelegate := errors.New("render failed")
		binder := &stubBinder{}
		handler, err := NewSuccessHandler(binder, WithSuccessDelegate(
			func(http.ResponseWriter, *http.Request, *core.Identity) error { return errDelegate },
		))
		require.NoError(t, err)

		err = handler.OnAuthenticationSuccess(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil), core.NewAuthenticatedIdentity("alice"))
		assert.Same(t, errDelegate, err)
		assert.Len(t, binder.added, 1)
	})

	t.Run("failure is logged", func(t *testing.T) {
		logger := &mockLogger{}
		handler, err := NewSuccessHandler(newStringBinder(t), WithSuccessLogger(logger))
		require.NoError(t, err)

		_ = handler.OnAuthenticationSuccess(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil), nil)
		assert.Equal(t, []string{"error"}, logger.levels())
	})
}

func Test_NewSuccessHandler(t *testing.T) {
	t.Run("nil binder", func(t *testing.T) {
		handler, err := NewSuccessHandler(nil)
		assert.Nil(t, handler)
		assert.ErrorIs(t, err, core.ErrConfiguration)
	})

	for name, option := range map[string]SuccessOption{
		"nil delegate": WithSuccessDelegate(nil),
		"nil mapper":   WithSuccessErrorMapper(nil),
		"nil logger":   WithSuccessLogger(nil),
		"nil metrics":  WithSuccessMetrics(nil),
		"nil tracer":   WithSuccessTracer(nil),
	} {
		t.Run(name, func(t *testing.T) {
			handler, err := NewSuccessHandler(&stubBinder{}, option)
			assert.Nil(t, handler)
			assert.ErrorIs(t, err, core.ErrConfiguration)
		})
	}
}

func Test_RedirectSuccessHandler(t *testing.T) {
	recorder := httptest.NewRecorder()

	err := RedirectSuccessHandler("/home")(recorder, httptest.NewRequest(http.MethodPost, "/login", nil), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/home", recorder.Header().Get("Location"))
}
