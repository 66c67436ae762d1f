package auth

import (
	"context"

	"github.com/blogware/auth-service/internal/model"
)

type AggregateStoreTx interface {
	AggregateRepository
	Transactional
}

// AggregateRepository aggregates repos.
type AggregateRepository interface {
	UserStore
	TokenStore
	LoginLogStore
}

// Transactional defines transaction methods.
type Transactional interface {
	InTx(context.Context, TxF) error
}
type TxF func(ctx context.Context, repo AggregateStoreTx) error

// UserStore defines methods for the user entity. Lookups return
// (nil, nil) when no row matches.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id uint) (*model.User, error)
	UpdateUserPassword(ctx context.Context, userID uint, hashedPassword string) error
}

// TokenStore defines methods for reset tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token *model.ResetToken) error
	FindToken(ctx context.Context, userID uint, token string) (*model.ResetToken, error)
	// DeleteToken removes the row keyed by the full (userID, token) pair
	// and reports whether a row was actually removed. Single-use
	// consumption hangs off that report.
	DeleteToken(ctx context.Context, userID uint, token string) (bool, error)
}

// LoginLogStore defines methods for login audit rows.
type LoginLogStore interface {
	CreateLoginLog(ctx context.Context, loginLog *model.LoginLog) error
}
