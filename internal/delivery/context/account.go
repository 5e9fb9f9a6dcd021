package context

import (
	"context"
	"log/slog"

	"accounts/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyAccount is the key for storing the authenticated account.
const KeyAccount ContextKey = "account"

// SetAccount stores the authenticated account in echo.Context and in the request context.
// The request logger gains an account_id attribute from here on.
func SetAccount(c echo.Context, account *entity.Account) {
	c.Set(string(KeyAccount), account)

	ctx := WithAccount(c.Request().Context(), account)
	if logger := GetLogger(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With(slog.String("account_id", account.ID.String())))
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetAccount extracts the authenticated account from echo.Context.
func GetAccount(c echo.Context) (*entity.Account, bool) {
	account, ok := c.Get(string(KeyAccount)).(*entity.Account)

	return account, ok && account != nil
}

// WithAccount returns a new context carrying the authenticated account.
func WithAccount(ctx context.Context, account *entity.Account) context.Context {
	return context.WithValue(ctx, KeyAccount, account)
}

// GetAccountFromContext extracts the authenticated account from context.Context.
func GetAccountFromContext(ctx context.Context) (*entity.Account, bool) {
	account, ok := ctx.Value(KeyAccount).(*entity.Account)

	return account, ok && account != nil
}
