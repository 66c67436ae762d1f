package store

import (
	"context"
	"errors"

	"github.com/blogware/auth-service/internal/model"
	"gorm.io/gorm"
)

func (p *PostgresStore) CreateToken(ctx context.Context, token *model.ResetToken) error {
	err := p.db.WithContext(ctx).Create(&token).Error
	if err != nil {
		return err
	}

	return nil
}

func (p *PostgresStore) FindToken(ctx context.Context, userID uint, token string) (*model.ResetToken, error) {
	var resetToken model.ResetToken

	err := p.db.WithContext(ctx).Model(&model.ResetToken{}).Where("user_id = ? AND token = ?", userID, token).First(&resetToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &resetToken, nil
}

// DeleteToken is keyed by the full (userID, token) pair so unrelated
// tokens of the same user survive, and reports rows-affected so the
// caller can detect a token already spent by a concurrent confirmation.
func (p *PostgresStore) DeleteToken(ctx context.Context, userID uint, token string) (bool, error) {
	res := p.db.WithContext(ctx).Where("user_id = ? AND token = ?", userID, token).Delete(&model.ResetToken{})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
