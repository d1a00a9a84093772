package dao

import (
	"context"
	"errors"

	"curator/curator/sources/psql/models"

	"gorm.io/gorm"
)

type UserDAO struct {
	DB *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{DB: db}
}

func (dao *UserDAO) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user. A taken username or email surfaces as
// ErrConflict, including when the duplicate arrives from a concurrent
// request and is only caught by the unique index at commit time.
func (dao *UserDAO) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	err := dao.DB.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LinkTelegramID binds a Telegram identity to the user. The telegram_id
// column is unique, so linking an identity already held by another user
// fails with ErrConflict.
func (dao *UserDAO) LinkTelegramID(ctx context.Context, user *models.User, telegramID string) error {
	err := dao.DB.WithContext(ctx).Model(user).Update("telegram_id", telegramID).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (dao *UserDAO) UnlinkTelegramID(ctx context.Context, user *models.User) error {
	return dao.DB.WithContext(ctx).Model(user).Update("telegram_id", nil).Error
}
