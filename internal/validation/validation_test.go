package validation

import (
	"strings"
	"testing"

	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Struct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		wantErr bool
		message string
	}{
		{
			name:  "valid registration",
			input: &usecase.RegisterInput{Email: "a@b.com", Password: "password1"},
		},
		{
			name:    "missing email",
			input:   &usecase.RegisterInput{Password: "password1"},
			wantErr: true,
			message: "missing email field",
		},
		{
			name:    "malformed email",
			input:   &usecase.RegisterInput{Email: "not-an-email", Password: "password1"},
			wantErr: true,
			message: "email must be a valid email",
		},
		{
			name:    "short password",
			input:   &usecase.LoginInput{Email: "a@b.com", Password: "short"},
			wantErr: true,
			message: "password length must be at least 8 characters long",
		},
		{
			name:    "unknown subscription on register",
			input:   &usecase.RegisterInput{Email: "a@b.com", Password: "password1", Subscription: "gold"},
			wantErr: true,
			message: "subscription must be one of [starter, pro, business]",
		},
		{
			name:    "missing subscription on update",
			input:   &usecase.UpdateSubscriptionInput{},
			wantErr: true,
			message: "missing subscription field",
		},
		{
			name:  "valid subscription on update",
			input: &usecase.UpdateSubscriptionInput{Subscription: "pro"},
		},
		{
			name:    "unknown subscription on update",
			input:   &usecase.UpdateSubscriptionInput{Subscription: "Pro"},
			wantErr: true,
			message: "subscription must be one of [starter, pro, business]",
		},
		{
			name:  "long multibyte password",
			input: &usecase.RegisterInput{Email: "a@b.com", Password: strings.Repeat("é", 40)},
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.Struct(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

			appErr, ok := err.(domainerrors.AppError)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.HTTPCode())
			assert.Equal(t, tt.message, appErr.Message())
		})
	}
}
