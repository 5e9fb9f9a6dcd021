package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"accounts/config"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	"accounts/internal/infra/auth"
	"accounts/internal/infra/persistence/memory"
	"accounts/internal/usecase"
	"accounts/internal/validation"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// recordingNotifier captures every verification message and can be told to fail.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []*service.VerificationMessage
	err      error
}

func (n *recordingNotifier) SendVerification(_ context.Context, msg *service.VerificationMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, msg)

	return nil
}

func (n *recordingNotifier) sent() []*service.VerificationMessage {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]*service.VerificationMessage(nil), n.messages...)
}

func (n *recordingNotifier) failWith(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.err = err
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.AccountEvent
}

func (p *recordingPublisher) PublishAccountEvent(_ context.Context, event *service.AccountEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) find(eventType string) *service.AccountEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, e := range p.events {
		if e.Type == eventType {
			return e
		}
	}

	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}

	return out
}

// accountServiceFixtures wires the service against the in-memory store and real crypto.
type accountServiceFixtures struct {
	service  usecase.AccountUsecase
	store    *memory.Store
	notifier *recordingNotifier
	events   *recordingPublisher
	tasks    *TaskRunner
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.BaseURL = "http://localhost:3000"
	cfg.SecretKey.Session = "test-session-secret"
	cfg.Auth = &config.AuthConfig{
		BcryptCost:          bcrypt.MinCost,
		SessionTTL:          time.Hour,
		NotificationTimeout: time.Second,
	}

	return cfg
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	t.Helper()

	cfg := newTestConfig()
	logger := discardLogger()
	store := memory.NewStore()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	events := &recordingPublisher{}
	tasks := NewTaskRunner(TaskRunnerParams{Config: cfg, Logger: logger})

	svc := NewAccountService(AccountServiceParams{
		TxManager:      memory.NewTransactionManager(store),
		AccountRepo:    memory.NewAccountRepository(store),
		Hasher:         auth.NewBcryptHasher(cfg),
		TokenService:   tokens,
		Notifier:       notifier,
		EventPublisher: events,
		Validator:      validation.New(),
		Tasks:          tasks,
		Config:         cfg,
		Logger:         logger,
	})

	return accountServiceFixtures{
		service:  svc,
		store:    store,
		notifier: notifier,
		events:   events,
		tasks:    tasks,
	}
}

func assertAppError(t *testing.T, err error, target *domainerrors.BaseError) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.Is(err, target), "expected %q, got %v", target.ErrorCode(), err)
}

func TestAccountService_Lifecycle(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	// register
	out, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "A@X.io", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", out.User.Email)
	assert.Equal(t, entity.SubscriptionStarter, out.User.Subscription)

	fx.tasks.Wait()
	sent := fx.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "a@x.io", sent[0].Email)
	assert.Equal(t, "http://localhost:3000/api/auth/verify/"+sent[0].VerificationToken, sent[0].VerificationURL)

	// duplicate registration, even with an invalid password
	_, err = fx.service.Register(ctx, &usecase.RegisterInput{Email: "a@x.io", Password: "x"})
	assertAppError(t, err, domainerrors.ErrEmailInUse)

	// login before verification
	_, err = fx.service.Login(ctx, &usecase.LoginInput{Email: "a@x.io", Password: "password1"})
	assertAppError(t, err, domainerrors.ErrEmailNotVerified)

	// verify, then the same token again
	token := sent[0].VerificationToken
	require.NoError(t, fx.service.VerifyEmail(ctx, token))
	assertAppError(t, fx.service.VerifyEmail(ctx, token), domainerrors.ErrEmailNotFound)

	// resend after verification
	err = fx.service.ResendVerification(ctx, &usecase.ResendVerificationInput{Email: "a@x.io"})
	assertAppError(t, err, domainerrors.ErrAlreadyVerified)

	// wrong password
	_, err = fx.service.Login(ctx, &usecase.LoginInput{Email: "a@x.io", Password: "password2"})
	assertAppError(t, err, domainerrors.ErrInvalidCredentials)

	// login and resolve the session
	first, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@x.io", Password: "password1"})
	require.NoError(t, err)
	account, err := fx.service.Authenticate(ctx, first.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStateSessionActive, account.State())

	current, err := fx.service.GetCurrent(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, &entity.AccountProjection{Email: "a@x.io", Subscription: entity.SubscriptionStarter}, current)

	// a second login invalidates the first token
	second, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@x.io", Password: "password1"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	_, err = fx.service.Authenticate(ctx, first.Token)
	assertAppError(t, err, domainerrors.ErrNotAuthorized)

	account, err = fx.service.Authenticate(ctx, second.Token)
	require.NoError(t, err)

	// subscription change
	view, err := fx.service.UpdateSubscription(ctx, account.ID, &usecase.UpdateSubscriptionInput{Subscription: "pro"})
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionPro, view.Subscription)
	assert.True(t, view.Verified)
	assert.Equal(t, account.ID, view.ID)
	assert.Equal(t, entity.GravatarURL("a@x.io"), view.AvatarURL)

	// logout revokes the token
	require.NoError(t, fx.service.Logout(ctx, account))
	_, err = fx.service.Authenticate(ctx, second.Token)
	assertAppError(t, err, domainerrors.ErrNotAuthorized)

	stored, err := fx.store.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStateVerified, stored.State())

	fx.tasks.Wait()
	assert.ElementsMatch(t, []string{
		service.EventAccountRegistered,
		service.EventAccountVerified,
		service.EventAccountLoggedIn,
		service.EventAccountLoggedIn,
		service.EventAccountSubscriptionChanged,
		service.EventAccountLoggedOut,
	}, fx.events.types())
}

// registerAndVerify registers email with password and consumes the emailed token.
func registerAndVerify(t *testing.T, fx accountServiceFixtures, email, password string) {
	t.Helper()
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: email, Password: password})
	require.NoError(t, err)

	fx.tasks.Wait()
	for _, msg := range fx.notifier.sent() {
		if msg.Email == email {
			require.NoError(t, fx.service.VerifyEmail(ctx, msg.VerificationToken))

			return
		}
	}
	t.Fatalf("no verification email sent to %s", email)
}

func TestAccountService_LongPasswords(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wrong    string
	}{
		{name: "80 ascii characters", email: "long@x.io", password: strings.Repeat("a", 80), wrong: strings.Repeat("a", 79) + "b"},
		{name: "40 two-byte runes", email: "multi@x.io", password: strings.Repeat("é", 40), wrong: strings.Repeat("é", 39) + "e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAccountService(t)
			ctx := context.Background()

			registerAndVerify(t, fx, tt.email, tt.password)

			out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: tt.email, Password: tt.password})
			require.NoError(t, err)
			assert.NotEmpty(t, out.Token)

			_, err = fx.service.Login(ctx, &usecase.LoginInput{Email: tt.email, Password: tt.wrong})
			assertAppError(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestAccountService_LogoutEventCarriesAccount(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	registerAndVerify(t, fx, "out@x.io", "password1")
	login, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "out@x.io", Password: "password1"})
	require.NoError(t, err)
	account, err := fx.service.Authenticate(ctx, login.Token)
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(ctx, account))
	fx.tasks.Wait()

	event := fx.events.find(service.EventAccountLoggedOut)
	require.NotNil(t, event)
	assert.Equal(t, account.ID.String(), event.AccountID)
	assert.Equal(t, "out@x.io", event.Email)
	assert.Equal(t, entity.SubscriptionStarter.String(), event.Subscription)
}

func TestAccountService_Register(t *testing.T) {
	tests := []struct {
		name    string
		input   *usecase.RegisterInput
		wantErr *domainerrors.BaseError
		wantMsg string
		want    entity.SubscriptionTier
	}{
		{
			name:  "explicit tier",
			input: &usecase.RegisterInput{Email: "b@x.io", Password: "password1", Subscription: "business"},
			want:  entity.SubscriptionBusiness,
		},
		{
			name:    "missing email",
			input:   &usecase.RegisterInput{Password: "password1"},
			wantErr: domainerrors.ErrValidationFailed,
			wantMsg: "missing email field",
		},
		{
			name:    "malformed email",
			input:   &usecase.RegisterInput{Email: "not-an-email", Password: "password1"},
			wantErr: domainerrors.ErrValidationFailed,
			wantMsg: "email must be a valid email",
		},
		{
			name:    "short password",
			input:   &usecase.RegisterInput{Email: "c@x.io", Password: "short"},
			wantErr: domainerrors.ErrValidationFailed,
			wantMsg: "password length must be at least 8 characters long",
		},
		{
			name:    "unknown tier",
			input:   &usecase.RegisterInput{Email: "d@x.io", Password: "password1", Subscription: "gold"},
			wantErr: domainerrors.ErrValidationFailed,
			wantMsg: "subscription must be one of [starter, pro, business]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAccountService(t)

			out, err := fx.service.Register(context.Background(), tt.input)
			fx.tasks.Wait()

			if tt.wantErr != nil {
				assertAppError(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.wantMsg)
				assert.Empty(t, fx.notifier.sent())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, out.User.Subscription)
			assert.Len(t, fx.notifier.sent(), 1)
		})
	}
}

func TestAccountService_Register_NotificationFailureDoesNotFail(t *testing.T) {
	fx := createTestAccountService(t)
	fx.notifier.failWith(errors.New("smtp down"))

	out, err := fx.service.Register(context.Background(), &usecase.RegisterInput{Email: "e@x.io", Password: "password1"})
	fx.tasks.Wait()

	require.NoError(t, err)
	assert.Equal(t, "e@x.io", out.User.Email)
}

func TestAccountService_ResendVerification(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "f@x.io", Password: "password1"})
	require.NoError(t, err)
	fx.tasks.Wait()

	t.Run("unknown email", func(t *testing.T) {
		err := fx.service.ResendVerification(ctx, &usecase.ResendVerificationInput{Email: "nobody@x.io"})
		assertAppError(t, err, domainerrors.ErrEmailNotFound)
	})

	t.Run("missing email", func(t *testing.T) {
		err := fx.service.ResendVerification(ctx, &usecase.ResendVerificationInput{})
		assertAppError(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("resends the stored token", func(t *testing.T) {
		require.NoError(t, fx.service.ResendVerification(ctx, &usecase.ResendVerificationInput{Email: " F@X.io "}))

		sent := fx.notifier.sent()
		require.Len(t, sent, 2)
		assert.Equal(t, sent[0].VerificationToken, sent[1].VerificationToken)
	})

	t.Run("transport failure is reported", func(t *testing.T) {
		fx.notifier.failWith(errors.New("smtp down"))

		err := fx.service.ResendVerification(ctx, &usecase.ResendVerificationInput{Email: "f@x.io"})
		assertAppError(t, err, domainerrors.ErrNotificationFailed)
	})
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "ghost@x.io", Password: "password1"})
	assertAppError(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_VerifyEmail_EmptyToken(t *testing.T) {
	fx := createTestAccountService(t)

	assertAppError(t, fx.service.VerifyEmail(context.Background(), ""), domainerrors.ErrEmailNotFound)
}

func TestAccountService_Authenticate_Garbage(t *testing.T) {
	fx := createTestAccountService(t)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := fx.service.Authenticate(context.Background(), token)
		assertAppError(t, err, domainerrors.ErrNotAuthorized)
	}
}

func TestAccountService_GetCurrent_NoAccount(t *testing.T) {
	fx := createTestAccountService(t)

	_, err := fx.service.GetCurrent(context.Background(), nil)
	assertAppError(t, err, domainerrors.ErrNotAuthorized)
}

func TestAccountService_UpdateSubscription_Invalid(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "g@x.io", Password: "password1"})
	require.NoError(t, err)
	fx.tasks.Wait()

	account, err := fx.store.FindByEmail(ctx, out.User.Email)
	require.NoError(t, err)

	_, err = fx.service.UpdateSubscription(ctx, account.ID, &usecase.UpdateSubscriptionInput{Subscription: "gold"})
	assertAppError(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.service.UpdateSubscription(ctx, account.ID, &usecase.UpdateSubscriptionInput{})
	assertAppError(t, err, domainerrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "missing subscription field")
}
