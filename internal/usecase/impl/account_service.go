// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"
	"accounts/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const verificationPath = "/api/auth/verify/"

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	notifier     service.VerificationNotifier
	events       service.EventPublisher
	validator    *validation.Validator
	tasks        *TaskRunner
	baseURL      string
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	AccountRepo    repository.AccountRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	Notifier       service.VerificationNotifier
	EventPublisher service.EventPublisher `optional:"true"`
	Validator      *validation.Validator
	Tasks          *TaskRunner
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	baseURL := ""
	if params.Config != nil {
		baseURL = params.Config.App.BaseURL
	}

	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		notifier:     params.Notifier,
		events:       params.EventPublisher,
		validator:    params.Validator,
		tasks:        params.Tasks,
		baseURL:      baseURL,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unverified account and sends the verification email in the background.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	// The duplicate check runs before validation so a known email always reports a conflict.
	_, err := srv.accountRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrEmailInUse.WrapMessage("email already registered")
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to look up email")
	}

	normalized := &usecase.RegisterInput{
		Email:        email,
		Password:     input.Password,
		Subscription: input.Subscription,
	}
	if err := srv.validator.Struct(normalized); err != nil {
		return nil, err
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	accountID, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate account ID")
	}

	account := &entity.Account{
		ID:                accountID,
		Email:             email,
		PasswordHash:      passwordHash,
		Subscription:      entity.SubscriptionOrDefault(input.Subscription),
		AvatarURL:         entity.GravatarURL(email),
		VerificationToken: uuid.NewString(),
		Verified:          false,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domainerrors.ErrEmailInUse) {
			return nil, domainerrors.ErrEmailInUse.WrapMessage("email registered concurrently")
		}
		srv.log(ctx).Error("Failed to create account", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account")
	}

	msg := srv.verificationMessage(account)
	srv.tasks.Dispatch(ctx, "send_verification", func(taskCtx context.Context) error {
		return errors.Wrap(srv.notifier.SendVerification(taskCtx, msg), "send verification email")
	})
	srv.publish(ctx, service.EventAccountRegistered, account)

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", account.ID))

	return &usecase.RegisterOutput{User: account.Projection()}, nil
}

// VerifyEmail consumes a verification token. The update is conditional on the token,
// so of two concurrent calls with the same token only one succeeds.
func (srv *accountService) VerifyEmail(ctx context.Context, verificationToken string) error {
	if verificationToken == "" {
		return domainerrors.ErrEmailNotFound
	}

	var verified *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByVerificationToken(ctx, verificationToken)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrEmailNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find verification token")
		}

		err = accountRepo.MarkVerified(ctx, account.ID, verificationToken)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrEmailNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to mark account verified")
		}
		verified = account

		return nil
	})
	if err != nil {
		if !errors.Is(err, domainerrors.ErrEmailNotFound) {
			srv.log(ctx).Error("Failed to execute verification transaction", slog.Any("error", err))
		}

		return errors.Wrap(err, "failed to verify email")
	}

	srv.log(ctx).Info("Email verified", slog.Any("accountID", verified.ID))
	srv.publish(ctx, service.EventAccountVerified, verified)

	return nil
}

// ResendVerification re-sends the stored token and reports transport failures to the caller.
func (srv *accountService) ResendVerification(ctx context.Context, input *usecase.ResendVerificationInput) error {
	normalized := &usecase.ResendVerificationInput{Email: entity.NormalizeEmail(input.Email)}
	if err := srv.validator.Struct(normalized); err != nil {
		return err
	}

	account, err := srv.accountRepo.FindByEmail(ctx, normalized.Email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return domainerrors.ErrEmailNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to find account by email")
	}

	if account.Verified {
		return domainerrors.ErrAlreadyVerified
	}

	if err := srv.notifier.SendVerification(ctx, srv.verificationMessage(account)); err != nil {
		srv.log(ctx).Error("Failed to resend verification email", slog.String("email", account.Email), slog.Any("error", err))

		return domainerrors.ErrNotificationFailed.WrapMessage(err.Error())
	}

	return nil
}

// Login checks credentials and replaces the account's session token with a fresh one.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	normalized := &usecase.LoginInput{
		Email:    entity.NormalizeEmail(input.Email),
		Password: input.Password,
	}
	if err := srv.validator.Struct(normalized); err != nil {
		return nil, err
	}

	account, err := srv.accountRepo.FindByEmail(ctx, normalized.Email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account by email")
	}

	if !account.CanLogin() {
		return nil, domainerrors.ErrEmailNotVerified
	}

	if !srv.hasher.Check(normalized.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Invalid password attempt", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.IssueSessionToken(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage(err.Error())
	}

	if err := srv.accountRepo.SetSessionToken(ctx, account.ID, token); err != nil {
		return nil, errors.Wrap(err, "failed to persist session token")
	}

	srv.log(ctx).Info("Login successful", slog.Any("accountID", account.ID))
	srv.publish(ctx, service.EventAccountLoggedIn, account)

	return &usecase.LoginOutput{Token: token}, nil
}

// Logout clears the active session token.
func (srv *accountService) Logout(ctx context.Context, account *entity.Account) error {
	if account == nil {
		return domainerrors.ErrNotAuthorized
	}

	err := srv.accountRepo.SetSessionToken(ctx, account.ID, "")
	if errors.Is(err, repository.ErrAccountNotFound) {
		return domainerrors.ErrNotAuthorized
	}
	if err != nil {
		return errors.Wrap(err, "failed to clear session token")
	}

	srv.log(ctx).Info("Logout successful", slog.Any("accountID", account.ID))
	srv.publish(ctx, service.EventAccountLoggedOut, account)

	return nil
}

// GetCurrent returns the projection of an account already resolved by Authenticate.
func (srv *accountService) GetCurrent(_ context.Context, account *entity.Account) (*entity.AccountProjection, error) {
	if account == nil {
		return nil, domainerrors.ErrNotAuthorized
	}

	return account.Projection(), nil
}

// UpdateSubscription changes the tier and returns the full public projection.
func (srv *accountService) UpdateSubscription(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateSubscriptionInput) (*entity.AccountView, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	account, err := srv.accountRepo.SetSubscription(ctx, accountID, entity.SubscriptionTier(input.Subscription))
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update subscription")
	}

	srv.log(ctx).Info("Subscription updated", slog.Any("accountID", accountID), slog.String("subscription", input.Subscription))
	srv.publish(ctx, service.EventAccountSubscriptionChanged, account)

	return account.PublicView(), nil
}

// Authenticate resolves a bearer token to its account. Every failure is reported as ErrNotAuthorized.
func (srv *accountService) Authenticate(ctx context.Context, token string) (*entity.Account, error) {
	if token == "" {
		return nil, domainerrors.ErrNotAuthorized
	}

	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		srv.log(ctx).Debug("Token validation failed", slog.Any("error", err))

		return nil, domainerrors.ErrNotAuthorized
	}

	account, err := srv.accountRepo.FindByID(ctx, claims.AccountID)
	if err != nil {
		if !errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Error("Failed to load account for token", slog.Any("accountID", claims.AccountID), slog.Any("error", err))
		}

		return nil, domainerrors.ErrNotAuthorized
	}

	// A token that is not the stored one was revoked by logout or replaced by a newer login.
	if !account.HasActiveSession(token) {
		return nil, domainerrors.ErrNotAuthorized
	}

	return account, nil
}

func (srv *accountService) verificationMessage(account *entity.Account) *service.VerificationMessage {
	return &service.VerificationMessage{
		Email:             account.Email,
		VerificationToken: account.VerificationToken,
		VerificationURL:   srv.baseURL + verificationPath + account.VerificationToken,
	}
}

func (srv *accountService) publish(ctx context.Context, eventType string, account *entity.Account) {
	if srv.events == nil {
		return
	}

	event := &service.AccountEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		EventID:      uuid.NewString(),
		Type:         eventType,
		AccountID:    account.ID.String(),
		Email:        account.Email,
		Subscription: account.Subscription.String(),
		OccurredAt:   time.Now().UTC(),
	}

	srv.tasks.Dispatch(ctx, eventType, func(taskCtx context.Context) error {
		return errors.Wrap(srv.events.PublishAccountEvent(taskCtx, event), "publish account event")
	})
}
