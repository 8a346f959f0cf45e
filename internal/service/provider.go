package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadilmartias/resumind/internal/config"
	"github.com/fadilmartias/resumind/internal/model"
	"github.com/fadilmartias/resumind/internal/repository"
	"github.com/fadilmartias/resumind/internal/storage"
	"github.com/gofiber/fiber/v2/log"
)

var ErrJobSearchUnavailable = errors.New("job search is not configured")

// NewAIProvider builds the provider selected by AI_PROVIDER. The embedder is
// Gemini whenever a Gemini key is present and nil otherwise.
func NewAIProvider(ctx context.Context, blobs storage.BlobStore) (AIProvider, Embedder, error) {
	var gemini *GeminiService
	if config.LoadGeminiConfig().APIKey != "" {
		g, err := NewGeminiService(ctx, blobs)
		if err != nil {
			return nil, nil, err
		}
		gemini = g
	}

	switch provider := config.LoadAIConfig().Provider; provider {
	case config.AIProviderGemini:
		if gemini == nil {
			return nil, nil, fmt.Errorf("AI_PROVIDER=gemini requires GEMINI_API_KEY")
		}
		return gemini, gemini, nil
	case config.AIProviderOpenRouter:
		or, err := NewOpenRouterService(blobs)
		if err != nil {
			return nil, nil, err
		}
		if gemini == nil {
			log.Warn("GEMINI_API_KEY not set, job catalog embeddings disabled")
			return or, nil, nil
		}
		return or, gemini, nil
	default:
		return nil, nil, fmt.Errorf("unknown AI provider %q", provider)
	}
}

// NewJobSearcher prefers JSearch and falls back to the embedded catalog.
func NewJobSearcher(catalog repository.JobCatalog, embedder Embedder) JobSearcher {
	if config.LoadJobSearchConfig().Enabled() {
		return NewJSearchService()
	}
	if embedder == nil {
		log.Warn("no job search source configured")
		return unavailableSearcher{}
	}
	return NewCatalogSearcher(catalog, embedder, 10)
}

type unavailableSearcher struct{}

func (unavailableSearcher) Search(context.Context, string) ([]model.JobListing, error) {
	return nil, ErrJobSearchUnavailable
}
