// Package usecase contains testify mocks for the use case interfaces.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountUsecase is a mock type for the AccountUsecase type
type MockAccountUsecase struct {
	mock.Mock
}

// NewMockAccountUsecase creates a new instance of MockAccountUsecase.
func NewMockAccountUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockAccountUsecase_Expecter records typed expectations.
type MockAccountUsecase_Expecter struct {
	mock *mock.Mock
}

func (_m *MockAccountUsecase) EXPECT() *MockAccountUsecase_Expecter {
	return &MockAccountUsecase_Expecter{mock: &_m.Mock}
}

func (_m *MockAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	ret := _m.Called(ctx, input)

	out, _ := ret.Get(0).(*usecase.RegisterOutput)

	return out, ret.Error(1)
}

func (_e *MockAccountUsecase_Expecter) Register(ctx any, input any) *mock.Call {
	return _e.mock.On("Register", ctx, input)
}

func (_m *MockAccountUsecase) VerifyEmail(ctx context.Context, verificationToken string) error {
	return _m.Called(ctx, verificationToken).Error(0)
}

func (_e *MockAccountUsecase_Expecter) VerifyEmail(ctx any, verificationToken any) *mock.Call {
	return _e.mock.On("VerifyEmail", ctx, verificationToken)
}

func (_m *MockAccountUsecase) ResendVerification(ctx context.Context, input *usecase.ResendVerificationInput) error {
	return _m.Called(ctx, input).Error(0)
}

func (_e *MockAccountUsecase_Expecter) ResendVerification(ctx any, input any) *mock.Call {
	return _e.mock.On("ResendVerification", ctx, input)
}

func (_m *MockAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	ret := _m.Called(ctx, input)

	out, _ := ret.Get(0).(*usecase.LoginOutput)

	return out, ret.Error(1)
}

func (_e *MockAccountUsecase_Expecter) Login(ctx any, input any) *mock.Call {
	return _e.mock.On("Login", ctx, input)
}

func (_m *MockAccountUsecase) Logout(ctx context.Context, account *entity.Account) error {
	return _m.Called(ctx, account).Error(0)
}

func (_e *MockAccountUsecase_Expecter) Logout(ctx any, account any) *mock.Call {
	return _e.mock.On("Logout", ctx, account)
}

func (_m *MockAccountUsecase) GetCurrent(ctx context.Context, account *entity.Account) (*entity.AccountProjection, error) {
	ret := _m.Called(ctx, account)

	out, _ := ret.Get(0).(*entity.AccountProjection)

	return out, ret.Error(1)
}

func (_e *MockAccountUsecase_Expecter) GetCurrent(ctx any, account any) *mock.Call {
	return _e.mock.On("GetCurrent", ctx, account)
}

func (_m *MockAccountUsecase) UpdateSubscription(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateSubscriptionInput) (*entity.AccountView, error) {
	ret := _m.Called(ctx, accountID, input)

	out, _ := ret.Get(0).(*entity.AccountView)

	return out, ret.Error(1)
}

func (_e *MockAccountUsecase_Expecter) UpdateSubscription(ctx any, accountID any, input any) *mock.Call {
	return _e.mock.On("UpdateSubscription", ctx, accountID, input)
}

func (_m *MockAccountUsecase) Authenticate(ctx context.Context, token string) (*entity.Account, error) {
	ret := _m.Called(ctx, token)

	out, _ := ret.Get(0).(*entity.Account)

	return out, ret.Error(1)
}

func (_e *MockAccountUsecase_Expecter) Authenticate(ctx any, token any) *mock.Call {
	return _e.mock.On("Authenticate", ctx, token)
}
