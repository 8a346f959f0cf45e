package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/resumind/internal/model"
	"github.com/fadilmartias/resumind/internal/repository"
	"github.com/fadilmartias/resumind/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrEmbeddingUnavailable = errors.New("no embedding provider configured")
)

// CatalogUsecase manages the curated jobs used when no external job search
// is configured.
type CatalogUsecase struct {
	catalog  repository.JobCatalog
	embedder service.Embedder
}

func NewCatalogUsecase(catalog repository.JobCatalog, embedder service.Embedder) *CatalogUsecase {
	return &CatalogUsecase{catalog: catalog, embedder: embedder}
}

func (uc *CatalogUsecase) Create(ctx context.Context, job *model.Job) error {
	if uc.embedder == nil {
		return ErrEmbeddingUnavailable
	}
	emb, err := uc.embedder.GenerateEmbedding(ctx, job.EmbeddingText())
	if err != nil {
		return fmt.Errorf("embed job: %w", err)
	}
	now := time.Now()
	job.ID = uuid.New()
	job.Embedding = pgvector.NewVector(emb)
	job.CreatedAt = now
	job.UpdatedAt = now
	return uc.catalog.CreateJob(ctx, job)
}

func (uc *CatalogUsecase) List(ctx context.Context) ([]model.Job, error) {
	return uc.catalog.GetJobs(ctx)
}

func (uc *CatalogUsecase) Delete(ctx context.Context, id string) error {
	if err := uuid.Validate(id); err != nil {
		return ErrJobNotFound
	}
	err := uc.catalog.DeleteJob(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrJobNotFound
	}
	return err
}
