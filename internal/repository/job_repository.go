package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/resumind/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JobCatalog stores admin-curated jobs with their embeddings.
type JobCatalog interface {
	CreateJob(ctx context.Context, job *model.Job) error
	GetJobs(ctx context.Context) ([]model.Job, error)
	FindJobByID(ctx context.Context, id string) (*model.Job, error)
	DeleteJob(ctx context.Context, id string) error
	SearchJobs(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Job, error)
}

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) SearchJobs(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Job, error) {
	var jobs []model.Job

	// <-> is Euclidean distance
	err := r.db.WithContext(ctx).Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM jobs
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&jobs).Error

	return jobs, err
}

func (r *JobRepository) CreateJob(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) FindJobByID(ctx context.Context, id string) (*model.Job, error) {
	var j model.Job
	err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) GetJobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) DeleteJob(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Job{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ JobCatalog = (*JobRepository)(nil)
