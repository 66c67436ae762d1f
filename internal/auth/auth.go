package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blogware/auth-service/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResetTokenTTL is the canonical validity window of a reset token. The
// persisted expiry has always been the 24-hour one; the 15-minute figure
// that circulated in older docs was never enforced.
const ResetTokenTTL = 24 * time.Hour

type AuthClient struct {
	store     AggregateStoreTx
	logger    *zap.Logger
	hasher    Hasher
	webAppURL string
	newToken  func() string
}

func NewAuthService(
	store AggregateStoreTx,
	logger *zap.Logger,
	hasher Hasher,
	webAppURL string,
) *AuthClient {
	return &AuthClient{
		store:     store,
		logger:    logger,
		hasher:    hasher,
		webAppURL: webAppURL,
		newToken:  uuid.NewString,
	}
}

// Authenticate verifies an email/password pair against the stored hash.
// An unknown user and a wrong password are indistinguishable to the
// caller: both come back as ErrInvalidCredentials.
func (a *AuthClient) Authenticate(ctx context.Context, email, password string) (*model.Profile, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := a.store.FindUserByEmail(ctx, email)
	if err != nil {
		a.logger.Error("failed to look up user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || !a.hasher.Verify(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	return user.Profile(), nil
}

// Register creates a user with a bcrypt-hashed credential, role USER and
// an active account.
func (a *AuthClient) Register(ctx context.Context, args model.RegisterArgs) (*model.Profile, error) {
	if args.Email == "" || args.Password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := a.store.FindUserByEmail(ctx, args.Email)
	if err != nil {
		a.logger.Error("failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := a.hasher.Hash(args.Password)
	if err != nil {
		a.logger.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:          args.Email,
		HashedPassword: hash,
		Name:           args.Name,
		LastName:       args.LastName,
		Role:           model.RoleUser,
		IsActive:       true,
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		a.logger.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user.Profile(), nil
}

// RequestReset issues a fresh reset token for the user behind email and
// returns it together with its transport encoding and link. Outstanding
// tokens for the same user are left alone; each row is consumed
// independently by its own (user, token) pair.
func (a *AuthClient) RequestReset(ctx context.Context, email string) (*model.ResetRequest, error) {
	if email == "" {
		return nil, ErrInvalidInput
	}

	user, err := a.store.FindUserByEmail(ctx, email)
	if err != nil {
		a.logger.Error("failed to look up user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	token := a.newToken()
	err = a.store.CreateToken(ctx, &model.ResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(ResetTokenTTL),
	})
	if err != nil {
		a.logger.Error("failed to persist reset token", zap.Error(err))
		return nil, fmt.Errorf("create reset token: %w", err)
	}

	payload := EncodePayload(ResetPayload{Email: email, Token: token})
	return &model.ResetRequest{
		Email:          email,
		Token:          token,
		EncodedPayload: payload,
		Link:           fmt.Sprintf("%s/reset-password/%s", a.webAppURL, payload),
	}, nil
}

// ConfirmReset spends a reset token: it validates the (user, token) pair
// and its expiry, then updates the credential and deletes the token row
// inside one transaction. The delete is conditional on rows-affected, so
// two concurrent confirmations of the same token cannot both succeed;
// the loser rolls its password write back and observes ErrInvalidToken.
func (a *AuthClient) ConfirmReset(ctx context.Context, email, token, newPassword string) error {
	if email == "" || token == "" || newPassword == "" {
		return ErrInvalidInput
	}

	user, err := a.store.FindUserByEmail(ctx, email)
	if err != nil {
		a.logger.Error("failed to look up user", zap.Error(err))
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	row, err := a.store.FindToken(ctx, user.ID, token)
	if err != nil {
		a.logger.Error("failed to look up reset token", zap.Error(err))
		return fmt.Errorf("find reset token: %w", err)
	}
	if row == nil {
		return ErrInvalidToken
	}
	if row.Expired(time.Now()) {
		// The stale row stays behind; the expiry check alone makes it
		// unusable and sweeping is not this path's job.
		return ErrExpiredToken
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		a.logger.Error("failed to hash new password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	err = a.store.InTx(ctx, func(ctx context.Context, repo AggregateStoreTx) error {
		if err := repo.UpdateUserPassword(ctx, user.ID, hash); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		deleted, err := repo.DeleteToken(ctx, user.ID, token)
		if err != nil {
			return fmt.Errorf("delete reset token: %w", err)
		}
		if !deleted {
			return ErrInvalidToken
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrInvalidToken) {
		a.logger.Error("failed to confirm password reset", zap.Error(err))
	}
	return err
}
