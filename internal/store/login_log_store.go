package store

import (
	"context"

	"github.com/blogware/auth-service/internal/model"
)

func (p *PostgresStore) CreateLoginLog(ctx context.Context, loginLog *model.LoginLog) error {
	err := p.db.WithContext(ctx).Create(&loginLog).Error
	if err != nil {
		return err
	}

	return nil
}
