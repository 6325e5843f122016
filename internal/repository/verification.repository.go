package repository

import (
	"context"
	"log"
	"time"

	"kwikwork/internal/models"

	"gorm.io/gorm"
)

type VerificationRepository interface {
	Create(ctx context.Context, verification *models.Verification) error
	FindByEmailAndCode(ctx context.Context, email, code string) (*models.Verification, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (vr *verificationRepository) Create(ctx context.Context, verification *models.Verification) error {
	return vr.db.WithContext(ctx).Create(verification).Error
}

func (vr *verificationRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*models.Verification, error) {
	var verification models.Verification
	err := vr.db.WithContext(ctx).
		Where("email = ? AND code = ? AND expires_at > ?", email, code, time.Now()).
		First(&verification).Error
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

func (vr *verificationRepository) DeleteByEmail(ctx context.Context, email string) error {
	result := vr.db.WithContext(ctx).Unscoped().Where("email = ?", email).Delete(&models.Verification{})
	if result.Error != nil {
		log.Println("Error deleting verification:", result.Error)
	}
	return result.Error
}
