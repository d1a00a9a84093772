package models

import (
	"time"
)

// TelegramSession tracks every Telegram identity that has contacted the bot,
// whether or not it is linked to a registered user.
type TelegramSession struct {
	ID           int       `json:"id" gorm:"primaryKey;autoIncrement"`
	TelegramID   string    `json:"telegram_id" gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID       *int      `json:"user_id,omitempty"`
	User         *User     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL"`
	Username     *string   `json:"username,omitempty" gorm:"type:varchar(100)"`
	FirstName    *string   `json:"first_name,omitempty" gorm:"type:varchar(100)"`
	LastName     *string   `json:"last_name,omitempty" gorm:"type:varchar(100)"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}
