package repository

import (
	"context"
	"errors"

	"kwikwork/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository interface {
	SubmitForJob(ctx context.Context, jobID uint, seeker *models.User) (*models.Application, error)
	FindByID(ctx context.Context, id uint) (*models.Application, error)
	FindByUserNumber(ctx context.Context, userNumber string) ([]models.Application, error)
	FindPendingByEmployer(ctx context.Context, employerID uint) ([]models.Application, error)
	Approve(ctx context.Context, id uint, employerID uint) (*models.Application, []models.Application, error)
	Reject(ctx context.Context, id uint, employerID uint) (*models.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// lockForUpdate takes a FOR UPDATE row lock on dialects that have one.
// SQLite has no row locks and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// SubmitForJob creates a pending application for the seeker inside one
// transaction. The job row is locked so a concurrent approval cannot fill the
// job between the open check and the insert, and the composite unique index
// on (user_number, job_id) holds the duplicate invariant when two submissions
// from the same seeker race past the pre-check.
func (ar *applicationRepository) SubmitForJob(ctx context.Context, jobID uint, seeker *models.User) (*models.Application, error) {
	var app models.Application
	err := ar.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := lockForUpdate(tx).First(&job, jobID).Error; err != nil {
			return err
		}
		if job.Status != models.JobStatusOpen {
			return ErrJobFilled
		}

		var count int64
		if err := tx.Model(&models.Application{}).
			Where("user_number = ? AND job_id = ?", seeker.UserNumber, jobID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateApplication
		}

		app = models.Application{
			JobID:           job.ID,
			UserNumber:      seeker.UserNumber,
			EmployerID:      job.EmployerID,
			Email:           seeker.Email,
			ReferenceNumber: job.ReferenceNumber,
			Status:          models.ApplicationStatusPending,
		}
		if err := tx.Create(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateApplication
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (ar *applicationRepository) FindByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := ar.db.WithContext(ctx).First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (ar *applicationRepository) FindByUserNumber(ctx context.Context, userNumber string) ([]models.Application, error) {
	var apps []models.Application
	err := ar.db.WithContext(ctx).
		Preload("Job").
		Where("user_number = ?", userNumber).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (ar *applicationRepository) FindPendingByEmployer(ctx context.Context, employerID uint) ([]models.Application, error) {
	var apps []models.Application
	err := ar.db.WithContext(ctx).
		Preload("Job").
		Where("employer_id = ? AND status = ?", employerID, models.ApplicationStatusPending).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// Approve applies the three dependent writes of an approval as one
// transaction: the target application becomes approved, every other pending
// application for the job becomes rejected, and the job becomes filled.
// The job row is locked for the duration, so of two concurrent approvals one
// blocks and then fails the open check. Returns the approved application and
// the siblings rejected in the same transaction.
func (ar *applicationRepository) Approve(ctx context.Context, id uint, employerID uint) (*models.Application, []models.Application, error) {
	var approved models.Application
	var rejected []models.Application

	err := ar.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.First(&app, id).Error; err != nil {
			return err
		}
		if app.EmployerID != employerID {
			return ErrNotOwner
		}

		var job models.Job
		if err := lockForUpdate(tx).First(&job, app.JobID).Error; err != nil {
			return err
		}
		if job.Status != models.JobStatusOpen {
			return ErrJobFilled
		}

		// Re-read under the job lock; the status may have moved while we
		// waited for a concurrent approval or rejection to commit.
		if err := tx.First(&app, id).Error; err != nil {
			return err
		}
		if app.Status != models.ApplicationStatusPending {
			return ErrInvalidStateTransition
		}

		if err := tx.Where("job_id = ? AND id <> ? AND status = ?",
			job.ID, app.ID, models.ApplicationStatusPending).
			Find(&rejected).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Application{}).Where("id = ?", app.ID).
			Update("status", models.ApplicationStatusApproved).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Application{}).
			Where("job_id = ? AND id <> ? AND status = ?",
				job.ID, app.ID, models.ApplicationStatusPending).
			Update("status", models.ApplicationStatusRejected).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Job{}).Where("id = ?", job.ID).
			Update("status", models.JobStatusFilled).Error; err != nil {
			return err
		}

		app.Status = models.ApplicationStatusApproved
		approved = app
		for i := range rejected {
			rejected[i].Status = models.ApplicationStatusRejected
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &approved, rejected, nil
}

// Reject moves one pending application to rejected. The job row is never
// touched. Rejecting an application that already left pending is an error,
// not a no-op.
func (ar *applicationRepository) Reject(ctx context.Context, id uint, employerID uint) (*models.Application, error) {
	var app models.Application
	err := ar.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&app, id).Error; err != nil {
			return err
		}
		if app.EmployerID != employerID {
			return ErrNotOwner
		}
		if app.Status != models.ApplicationStatusPending {
			return ErrInvalidStateTransition
		}
		if err := tx.Model(&models.Application{}).Where("id = ?", app.ID).
			Update("status", models.ApplicationStatusRejected).Error; err != nil {
			return err
		}
		app.Status = models.ApplicationStatusRejected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}
