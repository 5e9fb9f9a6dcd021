package postgres

import (
	"context"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account. The unique email index is the authority on duplicates.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate account id")
		}
		account.ID = id
	}

	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailInUse.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage(err.Error())
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByEmail retrieves a single account by its normalized email.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.findOne(ctx, "email = ?", email)
}

// FindByVerificationToken retrieves the account holding the token. Empty tokens never match.
func (repo *accountRepository) FindByVerificationToken(ctx context.Context, token string) (*entity.Account, error) {
	if token == "" {
		return nil, repository.ErrAccountNotFound
	}

	return repo.findOne(ctx, "verification_token = ?", token)
}

// MarkVerified flips the verified flag and clears the token in one statement.
// The token condition makes the loser of two concurrent verifies match no row.
func (repo *accountRepository) MarkVerified(ctx context.Context, id uuid.UUID, token string) error {
	if token == "" {
		return repository.ErrAccountNotFound
	}

	return repo.update(ctx, map[string]any{
		"verified":           true,
		"verification_token": "",
	}, "id = ? AND verification_token = ?", id, token)
}

// SetSessionToken replaces the stored session token.
func (repo *accountRepository) SetSessionToken(ctx context.Context, id uuid.UUID, token string) error {
	return repo.update(ctx, map[string]any{"session_token": token}, "id = ?", id)
}

// SetSubscription updates the tier and returns the stored account.
func (repo *accountRepository) SetSubscription(ctx context.Context, id uuid.UUID, tier entity.SubscriptionTier) (*entity.Account, error) {
	if err := repo.update(ctx, map[string]any{"subscription": tier.String()}, "id = ?", id); err != nil {
		return nil, err
	}

	return repo.FindByID(ctx, id)
}

func (repo *accountRepository) findOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).Where(query, arg).First(&accountM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return toAccountDomain(&accountM), nil
}

// update applies values to the rows matching query. No matching row is ErrAccountNotFound.
func (repo *accountRepository) update(ctx context.Context, values map[string]any, query string, args ...any) error {
	values["updated_at"] = time.Now().UTC()

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where(query, args...).
		Updates(values)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage(result.Error.Error())
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:                data.ID,
		Email:             data.Email,
		PasswordHash:      data.PasswordHash,
		Subscription:      entity.SubscriptionTier(data.Subscription),
		AvatarURL:         data.AvatarURL,
		VerificationToken: data.VerificationToken,
		Verified:          data.Verified,
		SessionToken:      data.SessionToken,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:                data.ID,
		Email:             data.Email,
		PasswordHash:      data.PasswordHash,
		Subscription:      data.Subscription.String(),
		AvatarURL:         data.AvatarURL,
		VerificationToken: data.VerificationToken,
		Verified:          data.Verified,
		SessionToken:      data.SessionToken,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
