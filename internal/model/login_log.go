package model

import (
	"gorm.io/gorm"
)

type LoginLog struct {
	gorm.Model
	Email     string `gorm:"not null"`
	UserID    *uint  `gorm:""`
	IpAddress string `gorm:"not null"`
	Location  string `gorm:"not null"`
	UserAgent  string `gorm:"not null"`
	Device     string `gorm:"not null"`
	DeviceType string `gorm:"not null;default:desktop"`
	Status     string `gorm:"not null;default:failure"`
}

type LoginLogArgs struct {
	Email     string
	UserID    *uint
	Succeeded bool
	IpAddress string
	UserAgent string
}
