package repository

import (
	"context"

	"accounts/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a mock type for the TransactionManager type
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a new instance of MockTransactionManager.
func NewMockTransactionManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockTransactionManager_Expecter records typed expectations.
type MockTransactionManager_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTransactionManager) EXPECT() *MockTransactionManager_Expecter {
	return &MockTransactionManager_Expecter{mock: &_m.Mock}
}

// Execute returns the callback's result when the expectation returns a func, as mockery does.
func (_m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	ret := _m.Called(ctx, fn)

	if rf, ok := ret.Get(0).(func(context.Context, func(repository.RepositoryFactory) error) error); ok {
		return rf(ctx, fn)
	}

	return ret.Error(0)
}

func (_e *MockTransactionManager_Expecter) Execute(ctx any, fn any) *mock.Call {
	return _e.mock.On("Execute", ctx, fn)
}

// MockRepositoryFactory is a mock type for the RepositoryFactory type
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a new instance of MockRepositoryFactory.
func NewMockRepositoryFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockRepositoryFactory_Expecter records typed expectations.
type MockRepositoryFactory_Expecter struct {
	mock *mock.Mock
}

func (_m *MockRepositoryFactory) EXPECT() *MockRepositoryFactory_Expecter {
	return &MockRepositoryFactory_Expecter{mock: &_m.Mock}
}

func (_m *MockRepositoryFactory) AccountRepo() repository.AccountRepository {
	ret := _m.Called()

	repo, _ := ret.Get(0).(repository.AccountRepository)

	return repo
}

func (_e *MockRepositoryFactory_Expecter) AccountRepo() *mock.Call {
	return _e.mock.On("AccountRepo")
}
