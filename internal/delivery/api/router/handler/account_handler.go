// Package handler contains the HTTP handlers for the API.
package handler

import (
	"log/slog"
	"net/http"

	"accounts/internal/delivery/api/response"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AccountHandler holds dependencies for account-related handlers
type AccountHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// Register handles account registration.
func (h *AccountHandler) Register(c echo.Context) error {
	var req usecase.RegisterInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.accountUC.Register(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, output)
}

// VerifyEmail consumes the verification token from the path.
func (h *AccountHandler) VerifyEmail(c echo.Context) error {
	if err := h.accountUC.VerifyEmail(c.Request().Context(), c.Param("verificationToken")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Verification successful")
}

// ResendVerification re-sends the verification email.
func (h *AccountHandler) ResendVerification(c echo.Context) error {
	var req usecase.ResendVerificationInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}

	if err := h.accountUC.ResendVerification(c.Request().Context(), &req); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Verification email sent")
}

// Login exchanges credentials for a session token.
func (h *AccountHandler) Login(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.accountUC.Login(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

// Current returns the authenticated account's projection.
func (h *AccountHandler) Current(c echo.Context) error {
	account, ok := deliverycontext.GetAccount(c)
	if !ok {
		return response.Unauthorized(c, "NOT_AUTHORIZED", "Not authorized")
	}

	projection, err := h.accountUC.GetCurrent(c.Request().Context(), account)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, projection)
}

// Logout ends the authenticated session.
func (h *AccountHandler) Logout(c echo.Context) error {
	account, ok := deliverycontext.GetAccount(c)
	if !ok {
		return response.Unauthorized(c, "NOT_AUTHORIZED", "Not authorized")
	}

	if err := h.accountUC.Logout(c.Request().Context(), account); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// UpdateSubscription changes the authenticated account's tier.
func (h *AccountHandler) UpdateSubscription(c echo.Context) error {
	account, ok := deliverycontext.GetAccount(c)
	if !ok {
		return response.Unauthorized(c, "NOT_AUTHORIZED", "Not authorized")
	}

	var req usecase.UpdateSubscriptionInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscription input")
	}

	view, err := h.accountUC.UpdateSubscription(c.Request().Context(), account.ID, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}
