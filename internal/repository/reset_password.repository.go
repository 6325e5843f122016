package repository

import (
	"context"
	"log"
	"time"

	"kwikwork/internal/models"

	"gorm.io/gorm"
)

type ResetPasswordRepository interface {
	Create(ctx context.Context, resetPassword *models.ResetPassword) error
	FindByEmailAndCode(ctx context.Context, email, code string) (*models.ResetPassword, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type resetPasswordRepository struct {
	db *gorm.DB
}

func NewResetPasswordRepository(db *gorm.DB) ResetPasswordRepository {
	return &resetPasswordRepository{db: db}
}

func (rp *resetPasswordRepository) Create(ctx context.Context, resetPassword *models.ResetPassword) error {
	return rp.db.WithContext(ctx).Create(resetPassword).Error
}

func (rp *resetPasswordRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*models.ResetPassword, error) {
	var resetPassword models.ResetPassword
	err := rp.db.WithContext(ctx).
		Where("email = ? AND code = ? AND expires_at > ?", email, code, time.Now()).
		First(&resetPassword).Error
	if err != nil {
		return nil, err
	}
	return &resetPassword, nil
}

func (rp *resetPasswordRepository) DeleteByEmail(ctx context.Context, email string) error {
	result := rp.db.WithContext(ctx).Unscoped().Where("email = ?", email).Delete(&models.ResetPassword{})
	if result.Error != nil {
		log.Println("Error deleting reset password record:", result.Error)
	}
	return result.Error
}
