package models

import (
	"time"
)

type User struct {
	ID           int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string     `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	TelegramID   *string    `json:"telegram_id,omitempty" gorm:"type:varchar(50);uniqueIndex"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Analyses     []Analysis `json:"-" gorm:"foreignKey:UserID"`
}
