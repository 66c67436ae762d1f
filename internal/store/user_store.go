package store

import (
	"context"
	"errors"

	"github.com/blogware/auth-service/internal/model"
	"gorm.io/gorm"
)

func (p *PostgresStore) CreateUser(ctx context.Context, user *model.User) error {
	err := p.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		return err
	}

	return nil
}

func (p *PostgresStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := p.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (p *PostgresStore) FindUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User

	err := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (p *PostgresStore) UpdateUserPassword(ctx context.Context, userID uint, hashedPassword string) error {
	err := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("hashed_password", hashedPassword).Error
	if err != nil {
		return err
	}

	return nil
}
