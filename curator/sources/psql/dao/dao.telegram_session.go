package dao

import (
	"context"
	"errors"
	"time"

	"curator/curator/sources/psql/models"

	"gorm.io/gorm"
)

type TelegramSessionDAO struct {
	DB *gorm.DB
}

func NewTelegramSessionDAO(db *gorm.DB) *TelegramSessionDAO {
	return &TelegramSessionDAO{DB: db}
}

// UpsertSession records first contact from a Telegram identity and refreshes
// the display fields and last-activity timestamp on every later contact.
func (dao *TelegramSessionDAO) UpsertSession(ctx context.Context, telegramID string, username, firstName, lastName *string) (*models.TelegramSession, error) {
	var session models.TelegramSession
	err := dao.DB.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = models.TelegramSession{
			TelegramID:   telegramID,
			Username:     username,
			FirstName:    firstName,
			LastName:     lastName,
			IsActive:     true,
			LastActivity: time.Now(),
		}
		if err := dao.DB.WithContext(ctx).Create(&session).Error; err != nil {
			return nil, err
		}
		return &session, nil
	}
	if err != nil {
		return nil, err
	}

	session.Username = username
	session.FirstName = firstName
	session.LastName = lastName
	session.LastActivity = time.Now()
	if err := dao.DB.WithContext(ctx).Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (dao *TelegramSessionDAO) GetSessionByTelegramID(ctx context.Context, telegramID string) (*models.TelegramSession, error) {
	var session models.TelegramSession
	err := dao.DB.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SetSessionUser links or clears (userID == nil) the session's account binding.
func (dao *TelegramSessionDAO) SetSessionUser(ctx context.Context, telegramID string, userID *int) error {
	return dao.DB.WithContext(ctx).
		Model(&models.TelegramSession{}).
		Where("telegram_id = ?", telegramID).
		Update("user_id", userID).Error
}
