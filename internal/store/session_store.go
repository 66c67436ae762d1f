package store

import (
	"context"
	"errors"
	"time"

	"github.com/blogware/auth-service/internal/model"
	"gorm.io/gorm"
)

func (p *PostgresStore) CreateSession(ctx context.Context, session *model.Session) error {
	err := p.db.WithContext(ctx).Create(&session).Error
	if err != nil {
		return err
	}

	return nil
}

func (p *PostgresStore) FindSession(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session

	err := p.db.WithContext(ctx).Model(&model.Session{}).Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (p *PostgresStore) ExtendSession(ctx context.Context, token string, expiresAt time.Time) error {
	err := p.db.WithContext(ctx).Model(&model.Session{}).Where("token = ?", token).Update("expires_at", expiresAt).Error
	if err != nil {
		return err
	}

	return nil
}

func (p *PostgresStore) DeleteSession(ctx context.Context, token string) error {
	err := p.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error
	if err != nil {
		return err
	}

	return nil
}

func (p *PostgresStore) DeleteSessionsByUserID(ctx context.Context, userID uint) error {
	err := p.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Session{}).Error
	if err != nil {
		return err
	}

	return nil
}
