package repository

import (
	"context"

	"kwikwork/internal/models"

	"gorm.io/gorm"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id uint) (*models.Job, error)
	FindByEmployer(ctx context.Context, employerID uint) ([]models.Job, error)
	SearchOpen(ctx context.Context, location string, categories []string, limit int) ([]models.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (jr *jobRepository) Create(ctx context.Context, job *models.Job) error {
	return jr.db.WithContext(ctx).Create(job).Error
}

func (jr *jobRepository) FindByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := jr.db.WithContext(ctx).First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (jr *jobRepository) FindByEmployer(ctx context.Context, employerID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := jr.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// SearchOpen returns up to limit open jobs, newest first, whose location
// contains the location string. When categories are given, a job matches if
// its comma-joined category column contains any one of them. Matching is
// case-insensitive substring on both columns.
func (jr *jobRepository) SearchOpen(ctx context.Context, location string, categories []string, limit int) ([]models.Job, error) {
	query := jr.db.WithContext(ctx).
		Where("status = ?", models.JobStatusOpen).
		Where("location ILIKE ?", "%"+location+"%")

	if len(categories) > 0 {
		categoryQuery := jr.db.Where("category ILIKE ?", "%"+categories[0]+"%")
		for _, category := range categories[1:] {
			categoryQuery = categoryQuery.Or("category ILIKE ?", "%"+category+"%")
		}
		query = query.Where(categoryQuery)
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").Limit(limit).Find(&jobs).Error
	return jobs, err
}
