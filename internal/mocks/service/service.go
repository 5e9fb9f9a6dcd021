// Package service contains testify mocks for the domain service interfaces.
package service

import (
	"context"
	"time"

	"accounts/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockPasswordHasher is a mock type for the PasswordHasher type
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a new instance of MockPasswordHasher.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	register(t, &m.Mock)

	return m
}

func (_m *MockPasswordHasher) EXPECT() *MockPasswordHasher_Expecter {
	return &MockPasswordHasher_Expecter{mock: &_m.Mock}
}

// MockPasswordHasher_Expecter records typed expectations.
type MockPasswordHasher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := _m.Called(password)

	return ret.String(0), ret.Error(1)
}

func (_e *MockPasswordHasher_Expecter) Hash(password any) *mock.Call {
	return _e.mock.On("Hash", password)
}

func (_m *MockPasswordHasher) Check(password, hash string) bool {
	ret := _m.Called(password, hash)

	return ret.Bool(0)
}

func (_e *MockPasswordHasher_Expecter) Check(password any, hash any) *mock.Call {
	return _e.mock.On("Check", password, hash)
}

// MockTokenService is a mock type for the TokenService type
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a new instance of MockTokenService.
func NewMockTokenService(t testingT) *MockTokenService {
	m := &MockTokenService{}
	register(t, &m.Mock)

	return m
}

func (_m *MockTokenService) EXPECT() *MockTokenService_Expecter {
	return &MockTokenService_Expecter{mock: &_m.Mock}
}

// MockTokenService_Expecter records typed expectations.
type MockTokenService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTokenService) IssueSessionToken(accountID uuid.UUID) (string, error) {
	ret := _m.Called(accountID)

	return ret.String(0), ret.Error(1)
}

func (_e *MockTokenService_Expecter) IssueSessionToken(accountID any) *mock.Call {
	return _e.mock.On("IssueSessionToken", accountID)
}

func (_m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	ret := _m.Called(tokenString)

	claims, _ := ret.Get(0).(*service.Claims)

	return claims, ret.Error(1)
}

func (_e *MockTokenService_Expecter) ValidateToken(tokenString any) *mock.Call {
	return _e.mock.On("ValidateToken", tokenString)
}

func (_m *MockTokenService) SessionTTL() time.Duration {
	ret := _m.Called()

	ttl, _ := ret.Get(0).(time.Duration)

	return ttl
}

func (_e *MockTokenService_Expecter) SessionTTL() *mock.Call {
	return _e.mock.On("SessionTTL")
}

// MockVerificationNotifier is a mock type for the VerificationNotifier type
type MockVerificationNotifier struct {
	mock.Mock
}

// NewMockVerificationNotifier creates a new instance of MockVerificationNotifier.
func NewMockVerificationNotifier(t testingT) *MockVerificationNotifier {
	m := &MockVerificationNotifier{}
	register(t, &m.Mock)

	return m
}

func (_m *MockVerificationNotifier) EXPECT() *MockVerificationNotifier_Expecter {
	return &MockVerificationNotifier_Expecter{mock: &_m.Mock}
}

// MockVerificationNotifier_Expecter records typed expectations.
type MockVerificationNotifier_Expecter struct {
	mock *mock.Mock
}

func (_m *MockVerificationNotifier) SendVerification(ctx context.Context, msg *service.VerificationMessage) error {
	ret := _m.Called(ctx, msg)

	return ret.Error(0)
}

func (_e *MockVerificationNotifier_Expecter) SendVerification(ctx any, msg any) *mock.Call {
	return _e.mock.On("SendVerification", ctx, msg)
}

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a new instance of MockEventPublisher.
func NewMockEventPublisher(t testingT) *MockEventPublisher {
	m := &MockEventPublisher{}
	register(t, &m.Mock)

	return m
}

func (_m *MockEventPublisher) EXPECT() *MockEventPublisher_Expecter {
	return &MockEventPublisher_Expecter{mock: &_m.Mock}
}

// MockEventPublisher_Expecter records typed expectations.
type MockEventPublisher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockEventPublisher) PublishAccountEvent(ctx context.Context, event *service.AccountEvent) error {
	ret := _m.Called(ctx, event)

	return ret.Error(0)
}

func (_e *MockEventPublisher_Expecter) PublishAccountEvent(ctx any, event any) *mock.Call {
	return _e.mock.On("PublishAccountEvent", ctx, event)
}

func (_m *MockEventPublisher) Close() error {
	ret := _m.Called()

	return ret.Error(0)
}

func (_e *MockEventPublisher_Expecter) Close() *mock.Call {
	return _e.mock.On("Close")
}

// MockRateLimiter is a mock type for the RateLimiter type
type MockRateLimiter struct {
	mock.Mock
}

// NewMockRateLimiter creates a new instance of MockRateLimiter.
func NewMockRateLimiter(t testingT) *MockRateLimiter {
	m := &MockRateLimiter{}
	register(t, &m.Mock)

	return m
}

func (_m *MockRateLimiter) EXPECT() *MockRateLimiter_Expecter {
	return &MockRateLimiter_Expecter{mock: &_m.Mock}
}

// MockRateLimiter_Expecter records typed expectations.
type MockRateLimiter_Expecter struct {
	mock *mock.Mock
}

func (_m *MockRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)

	return ret.Bool(0), ret.Error(1)
}

func (_e *MockRateLimiter_Expecter) Allow(ctx any, key any) *mock.Call {
	return _e.mock.On("Allow", ctx, key)
}
