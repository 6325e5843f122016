package repository

import (
	"context"

	"kwikwork/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUserNumber(ctx context.Context, userNumber string) (*models.User, error)
	Patch(ctx context.Context, id uint, data map[string]interface{}) error
	UpdatePassword(ctx context.Context, email, hash string) error
	SetVerified(ctx context.Context, email string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (ur *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Verified = false
	return ur.db.WithContext(ctx).Create(user).Error
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := ur.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := ur.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) FindByUserNumber(ctx context.Context, userNumber string) (*models.User, error) {
	var user models.User
	err := ur.db.WithContext(ctx).Where("user_number = ?", userNumber).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) Patch(ctx context.Context, id uint, data map[string]interface{}) error {
	var user models.User

	if err := ur.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return err
	}

	return ur.db.WithContext(ctx).Model(&user).Updates(data).Error
}

func (ur *userRepository) UpdatePassword(ctx context.Context, email, hash string) error {
	return ur.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("password", hash).Error
}

func (ur *userRepository) SetVerified(ctx context.Context, email string) error {
	return ur.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("verified", true).Error
}
