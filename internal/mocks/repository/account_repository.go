// Package repository contains testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepository type
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a new instance of MockAccountRepository.
// Expectations are asserted when the test finishes.
func NewMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockAccountRepository_Expecter records typed expectations.
type MockAccountRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockAccountRepository) EXPECT() *MockAccountRepository_Expecter {
	return &MockAccountRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	ret := _m.Called(ctx, account)

	return ret.Error(0)
}

func (_e *MockAccountRepository_Expecter) Create(ctx any, account any) *mock.Call {
	return _e.mock.On("Create", ctx, account)
}

func (_m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	ret := _m.Called(ctx, id)

	return accountResult(ret)
}

func (_e *MockAccountRepository_Expecter) FindByID(ctx any, id any) *mock.Call {
	return _e.mock.On("FindByID", ctx, id)
}

func (_m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	ret := _m.Called(ctx, email)

	return accountResult(ret)
}

func (_e *MockAccountRepository_Expecter) FindByEmail(ctx any, email any) *mock.Call {
	return _e.mock.On("FindByEmail", ctx, email)
}

func (_m *MockAccountRepository) FindByVerificationToken(ctx context.Context, token string) (*entity.Account, error) {
	ret := _m.Called(ctx, token)

	return accountResult(ret)
}

func (_e *MockAccountRepository_Expecter) FindByVerificationToken(ctx any, token any) *mock.Call {
	return _e.mock.On("FindByVerificationToken", ctx, token)
}

func (_m *MockAccountRepository) MarkVerified(ctx context.Context, id uuid.UUID, token string) error {
	ret := _m.Called(ctx, id, token)

	return ret.Error(0)
}

func (_e *MockAccountRepository_Expecter) MarkVerified(ctx any, id any, token any) *mock.Call {
	return _e.mock.On("MarkVerified", ctx, id, token)
}

func (_m *MockAccountRepository) SetSessionToken(ctx context.Context, id uuid.UUID, token string) error {
	ret := _m.Called(ctx, id, token)

	return ret.Error(0)
}

func (_e *MockAccountRepository_Expecter) SetSessionToken(ctx any, id any, token any) *mock.Call {
	return _e.mock.On("SetSessionToken", ctx, id, token)
}

func (_m *MockAccountRepository) SetSubscription(ctx context.Context, id uuid.UUID, tier entity.SubscriptionTier) (*entity.Account, error) {
	ret := _m.Called(ctx, id, tier)

	return accountResult(ret)
}

func (_e *MockAccountRepository_Expecter) SetSubscription(ctx any, id any, tier any) *mock.Call {
	return _e.mock.On("SetSubscription", ctx, id, tier)
}

func accountResult(ret mock.Arguments) (*entity.Account, error) {
	var account *entity.Account
	if v := ret.Get(0); v != nil {
		account = v.(*entity.Account)
	}

	return account, ret.Error(1)
}
