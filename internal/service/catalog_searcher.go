package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/resumind/internal/model"
	"github.com/fadilmartias/resumind/internal/repository"
	"github.com/pgvector/pgvector-go"
)

// CatalogSearcher answers job searches from the curated catalog by
// embedding the query and ranking jobs by vector distance.
type CatalogSearcher struct {
	catalog  repository.JobCatalog
	embedder Embedder
	topK     int
}

func NewCatalogSearcher(catalog repository.JobCatalog, embedder Embedder, topK int) *CatalogSearcher {
	if topK <= 0 {
		topK = 10
	}
	return &CatalogSearcher{catalog: catalog, embedder: embedder, topK: topK}
}

func (s *CatalogSearcher) Search(ctx context.Context, query string) ([]model.JobListing, error) {
	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	jobs, err := s.catalog.SearchJobs(ctx, pgvector.NewVector(embedding), s.topK)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	listings := make([]model.JobListing, 0, len(jobs))
	for i := range jobs {
		listings = append(listings, jobs[i].Listing())
	}
	return listings, nil
}

var _ JobSearcher = (*CatalogSearcher)(nil)
