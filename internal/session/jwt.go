package session

import (
	"time"

	"github.com/blogware/auth-service/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity a bearer token asserts plus the database
// session it is bound to, so revoking the session kills the token too.
type Claims struct {
	jwt.RegisteredClaims
	UserID       uint       `json:"uid"`
	Email        string     `json:"email"`
	Role         model.Role `json:"role"`
	SessionToken string     `json:"sid"`
}

type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

func (m *JWTManager) Issue(profile *model.Profile, sessionToken string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
		UserID:       profile.ID,
		Email:        profile.Email,
		Role:         profile.Role,
		SessionToken: sessionToken,
	})

	return token.SignedString(m.secret)
}

func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
