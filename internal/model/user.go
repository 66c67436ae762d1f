package model

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	gorm.Model
	Email          string `gorm:"unique;not null"`
	HashedPassword string `gorm:"not null"`
	Name           string
	LastName       string
	Role           Role `gorm:"type:varchar(16);not null;default:USER"`
	IsActive       bool `gorm:"not null;default:true"`
}

// Profile is the caller-facing view of a user. It never carries the
// password hash.
type Profile struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type RegisterArgs struct {
	Email    string
	Password string
	Name     string
	LastName string
}

// ResetRequest is what a successful password-reset request produces: the
// raw token as persisted, its transport encoding and the link the email
// handler embeds.
type ResetRequest struct {
	Email          string
	Token          string
	EncodedPayload string
	Link           string
}
