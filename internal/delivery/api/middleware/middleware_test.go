package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/infra/ratelimit"
	mockSvc "accounts/internal/mocks/service"
	mockUC "accounts/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	account := &entity.Account{ID: uuid.Must(uuid.NewV7()), Email: "a@x.io", Verified: true, SessionToken: "jwt"}

	t.Run("stores the resolved account", func(t *testing.T) {
		accountUC := mockUC.NewMockAccountUsecase(t)
		accountUC.EXPECT().Authenticate(mock.Anything, "jwt").Return(account, nil)
		m := NewAuthMiddleware(AuthMiddlewareParams{AccountUC: accountUC})

		c, _ := newContext(http.MethodGet, "")
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer jwt")

		var seen *entity.Account
		err := m.Authenticate(func(c echo.Context) error {
			seen, _ = deliverycontext.GetAccount(c)

			return nil
		})(c)

		require.NoError(t, err)
		assert.Equal(t, account, seen)
	})

	t.Run("rejects without calling the use case", func(t *testing.T) {
		accountUC := mockUC.NewMockAccountUsecase(t)
		m := NewAuthMiddleware(AuthMiddlewareParams{AccountUC: accountUC})

		c, _ := newContext(http.MethodGet, "")
		c.Request().Header.Set(echo.HeaderAuthorization, "Token jwt")

		err := m.Authenticate(func(echo.Context) error {
			t.Fatal("next must not run")

			return nil
		})(c)

		assert.True(t, errors.Is(err, domainerrors.ErrNotAuthorized))
	})

	t.Run("propagates use case rejection", func(t *testing.T) {
		accountUC := mockUC.NewMockAccountUsecase(t)
		accountUC.EXPECT().Authenticate(mock.Anything, "stale").Return(nil, domainerrors.ErrNotAuthorized)
		m := NewAuthMiddleware(AuthMiddlewareParams{AccountUC: accountUC})

		c, _ := newContext(http.MethodGet, "")
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer stale")

		err := m.Authenticate(func(echo.Context) error { return nil })(c)

		assert.True(t, errors.Is(err, domainerrors.ErrNotAuthorized))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("keys by normalized email and keeps the body", func(t *testing.T) {
		limiter := mockSvc.NewMockRateLimiter(t)
		limiter.EXPECT().Allow(mock.Anything, "email:a@x.io").Return(true, nil)
		m := NewRateLimitMiddleware(RateLimitMiddlewareParams{
			Limiters: &ratelimit.Limiters{Login: limiter},
			Logger:   discardLogger(),
		})

		c, _ := newContext(http.MethodPost, `{"email":" A@X.io ","password":"password1"}`)

		var body []byte
		err := m.Login(func(c echo.Context) error {
			var readErr error
			body, readErr = io.ReadAll(c.Request().Body)

			return readErr
		})(c)

		require.NoError(t, err)
		assert.JSONEq(t, `{"email":" A@X.io ","password":"password1"}`, string(body))
	})

	t.Run("falls back to the client IP", func(t *testing.T) {
		limiter := mockSvc.NewMockRateLimiter(t)
		limiter.EXPECT().Allow(mock.Anything, "ip:203.0.113.9").Return(true, nil)
		m := NewRateLimitMiddleware(RateLimitMiddlewareParams{
			Limiters: &ratelimit.Limiters{Resend: limiter},
			Logger:   discardLogger(),
		})

		c, _ := newContext(http.MethodPost, `{}`)
		c.Request().Header.Set(echo.HeaderXRealIP, "203.0.113.9")

		require.NoError(t, m.Resend(func(echo.Context) error { return nil })(c))
	})

	t.Run("rejects when exhausted", func(t *testing.T) {
		limiter := mockSvc.NewMockRateLimiter(t)
		limiter.EXPECT().Allow(mock.Anything, "email:a@x.io").Return(false, nil)
		m := NewRateLimitMiddleware(RateLimitMiddlewareParams{
			Limiters: &ratelimit.Limiters{Login: limiter},
			Logger:   discardLogger(),
		})

		c, _ := newContext(http.MethodPost, `{"email":"a@x.io"}`)
		err := m.Login(func(echo.Context) error {
			t.Fatal("next must not run")

			return nil
		})(c)

		assert.True(t, errors.Is(err, domainerrors.ErrTooManyRequests))
	})

	t.Run("fails open on limiter errors", func(t *testing.T) {
		limiter := mockSvc.NewMockRateLimiter(t)
		limiter.EXPECT().Allow(mock.Anything, "email:a@x.io").Return(false, errors.New("redis down"))
		m := NewRateLimitMiddleware(RateLimitMiddlewareParams{
			Limiters: &ratelimit.Limiters{Login: limiter},
			Logger:   discardLogger(),
		})

		c, _ := newContext(http.MethodPost, `{"email":"a@x.io"}`)
		called := false
		err := m.Login(func(echo.Context) error {
			called = true

			return nil
		})(c)

		require.NoError(t, err)
		assert.True(t, called)
	})
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
		noDetail bool
	}{
		{
			name:     "wrapped app error",
			err:      errors.Wrap(domainerrors.ErrEmailInUse, "context"),
			wantCode: http.StatusConflict,
			wantBody: `"code":"EMAIL_IN_USE"`,
		},
		{
			name:     "validation message",
			err:      domainerrors.NewValidationError("missing email field"),
			wantCode: http.StatusBadRequest,
			wantBody: `"message":"missing email field"`,
		},
		{
			name:     "echo error",
			err:      echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			wantCode: http.StatusMethodNotAllowed,
			wantBody: `"code":"HTTP_ERROR"`,
		},
		{
			name:     "unknown error hides internals",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `"code":"INTERNAL_ERROR"`,
			noDetail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewErrorMiddleware(discardLogger())
			c, rec := newContext(http.MethodGet, "")

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			if tt.noDetail {
				assert.NotContains(t, rec.Body.String(), "connection refused")
			}
		})
	}
}
