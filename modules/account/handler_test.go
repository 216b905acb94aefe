package account_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/foliogen/foliogen/modules/account"
	"github.com/foliogen/foliogen/pkg/cookie"
	"github.com/foliogen/foliogen/pkg/validator"
	"github.com/foliogen/foliogen/svc/auth"
)

// MockAuthService is a mock implementation of account.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, params auth.SignupParams) (*auth.SignupResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.SignupResult), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, email, code string) (*auth.Session, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	args := m.Called(ctx, email, code, newPassword)
	return args.Error(0)
}

func newTestHandler(svc account.AuthService) http.Handler {
	return account.NewHandler(svc, cookie.New()).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func testSession() *auth.Session {
	return &auth.Session{
		Token:     "signed.session.token",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		Account: &auth.Account{
			ID:            uuid.New(),
			Email:         "ann@x.com",
			Name:          "Ann",
			EmailVerified: true,
		},
	}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == account.SessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSignupEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		svc := new(MockAuthService)
		svc.On("Signup", mock.Anything, auth.SignupParams{Email: "ann@x.com", Password: "secret1", Name: "Ann"}).
			Return(&auth.SignupResult{
				Account: &auth.Account{ID: uuid.New(), Email: "ann@x.com", Name: "Ann"},
				CodeDelivered: true,
			}, nil)

		w := doJSON(t, newTestHandler(svc), http.MethodPost, "/signup",
			`{"email":"ann@x.com","password":"secret1","name":"Ann"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"email":"ann@x.com"`)
		assert.Contains(t, w.Body.String(), `"code_delivered":true`)
		assert.Contains(t, w.Body.String(), `"email_verified":false`)
		svc.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		svc := new(MockAuthService)
		svc.On("Signup", mock.Anything, mock.Anything).Return(nil, auth.ErrDuplicateAccount)

		w := doJSON(t, newTestHandler(svc), http.MethodPost, "/signup",
			`{"email":"ann@x.com","password":"secret1","name":"Ann"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		t.Parallel()

		svc := new(MockAuthService)
		svc.On("Signup", mock.Anything, mock.Anything).Return(nil, validator.ValidationErrors{
			{Field: "password", Message: "must be 6-128 characters with at least 2 character types"},
		})

		w := doJSON(t, newTestHandler(svc), http.MethodPost, "/signup",
			`{"email":"ann@x.com","password":"x","name":"Ann"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"password"`)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		w := doJSON(t, newTestHandler(new(MockAuthService)), http.MethodPost, "/signup", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVerifyEmailEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("success sets session cookie", func(t *testing.T) {
		t.Parallel()

		session := testSession()
		svc := new(MockAuthService)
		svc.On("VerifyEmail", mock.Anything, "ann@x.com", "123456").Return(session, nil)

		w := doJSON(t, newTestHandler(svc), http.MethodPost, "/verify-email",
			`{"email":"ann@x.com","code":"123456"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), session.Token)

		c := sessionCookie(t, w)
		assert.Equal(t, session.Token, c.Value)
		assert.True(t, c.HttpOnly)
		assert.Positive(t, c.MaxAge)
	})

	t.Run("error mapping", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name string
			err  error
			code int
		}{
			{"invalid code", auth.ErrInvalidCode, http.StatusBadRequest},
			{"expired code", auth.ErrExpiredCode, http.StatusBadRequest},
			{"not pending", auth.ErrAccountNotFound, http.StatusNotFound},
			{"throttled", auth.ErrTooManyAttempts, http.StatusTooManyRequests},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				svc := new(MockAuthService)
				svc.On("VerifyEmail", mock.Anything, "ann@x.com", "123456").Return(nil, tc.err)

				w := doJSON(t, newTestHandler(svc), http.MethodPost, "/verify-email",
					`{"email":"ann@x.com","code":"123456"}`)
				assert.Equal(t, tc.code, w.Code)
			})
		}
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		session := testSession()
		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "ann@x.com", "secret1").Return(session, nil)

		w := doJSON(t, newTestHandler(svc), http.MethodPost, "/login",
			`{"email":"ann@x.com","password":"secret1"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		c := sessionCookie(t, w)
		assert.Equal(t, session.Token, c.Value)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()

		svc := new(MockAuthService)
		svc.On("Login", mock.Anything, "ann@x.com", "wrong").Return(nil, auth.ErrInvalidCredentials)

		w := doJSON(t, newTestHandler(svc), http.MethodPost, "/login",
			`{"email":"ann@x.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestGenericCodeEndpoints(t *testing.T) {
	t.Parallel()

	// The service layer answers nil for existing and missing accounts alike;
	// the endpoint must pass that through as byte-identical responses.
	t.Run("forgot-password is indistinguishable", func(t *testing.T) {
		t.Parallel()

		svc := new(MockAuthService)
		svc.On("ForgotPassword", mock.Anything, "existing@x.com").Return(nil)
		svc.On("ForgotPassword", mock.Anything, "nonexistent@x.com").Return(nil)
		h := newTestHandler(svc)

		wExisting := doJSON(t, h, http.MethodPost, "/forgot-password", `{"email":"existing@x.com"}`)
		wMissing := doJSON(t, h, http.MethodPost, "/forgot-password", `{"email":"nonexistent@x.com"}`)

		assert.Equal(t, http.StatusAccepted, wExisting.Code)
		assert.Equal(t, wExisting.Code, wMissing.Code)
		assert.Equal(t, wExisting.Body.String(), wMissing.Body.String())
	})

	t.Run("resend-verification is indistinguishable", func(t *testing.T) {
		t.Parallel()

		svc := new(MockAuthService)
		svc.On("ResendVerification", mock.Anything, mock.Anything).Return(nil)
		h := newTestHandler(svc)

		wExisting := doJSON(t, h, http.MethodPost, "/resend-verification", `{"email":"existing@x.com"}`)
		wMissing := doJSON(t, h, http.MethodPost, "/resend-verification", `{"email":"nonexistent@x.com"}`)

		assert.Equal(t, http.StatusAccepted, wExisting.Code)
		assert.Equal(t, wExisting.Body.String(), wMissing.Body.String())
	})
}

func TestResetPasswordEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc := new(MockAuthService)
		svc.On("ResetPassword", mock.Anything, "ann@x.com", "654321", "newpass1").Return(nil)

		w := doJSON(t, newTestHandler(svc), http.MethodPost, "/reset-password",
			`{"email":"ann@x.com","code":"654321","new_password":"newpass1"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		// No session: the user logs in with the new password afterward.
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("wrong code", func(t *testing.T) {
		t.Parallel()

		svc := new(MockAuthService)
		svc.On("ResetPassword", mock.Anything, "ann@x.com", "111112", "newpass1").Return(auth.ErrInvalidCode)

		w := doJSON(t, newTestHandler(svc), http.MethodPost, "/reset-password",
			`{"email":"ann@x.com","code":"111112","new_password":"newpass1"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	t.Parallel()

	w := doJSON(t, newTestHandler(new(MockAuthService)), http.MethodPost, "/logout", ``)

	assert.Equal(t, http.StatusNoContent, w.Code)

	c := sessionCookie(t, w)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
