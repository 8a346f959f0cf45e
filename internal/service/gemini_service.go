package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/fadilmartias/resumind/internal/config"
	"github.com/fadilmartias/resumind/internal/storage"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"
)

const pdfMimeType = "application/pdf"

type GeminiService struct {
	Client         *genai.Client
	Model          string
	EmbeddingModel string
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration

	blobs        storage.BlobStore
	breaker      *gobreaker.CircuitBreaker[*genai.GenerateContentResponse]
	embedBreaker *gobreaker.CircuitBreaker[*genai.EmbedContentResponse]
}

func NewGeminiService(ctx context.Context, blobs storage.BlobStore) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:         client,
		Model:          geminiConfig.Model,
		EmbeddingModel: geminiConfig.EmbeddingModel,
		MaxRetries:     geminiConfig.MaxRetries,
		BaseDelay:      time.Second,
		MaxDelay:       30 * time.Second,
		RequestTimeout: geminiConfig.RequestTimeout,
		blobs:          blobs,
		breaker:        gobreaker.NewCircuitBreaker[*genai.GenerateContentResponse](breakerSettings("gemini-generate")),
		embedBreaker:   gobreaker.NewCircuitBreaker[*genai.EmbedContentResponse](breakerSettings("gemini-embed")),
	}, nil
}

func breakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
}

// Feedback sends the stored PDF inline together with the instructions.
func (s *GeminiService) Feedback(ctx context.Context, filePath, instructions string) (*AIResponse, error) {
	if strings.TrimSpace(instructions) == "" {
		return nil, fmt.Errorf("instructions cannot be empty")
	}
	data, err := s.blobs.Read(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, pdfMimeType),
		genai.NewPartFromText(instructions),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := s.generate(ctx, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, err
	}
	return toAIResponse(result), nil
}

func (s *GeminiService) Chat(ctx context.Context, prompt string) (*AIResponse, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}
	result, err := s.generate(ctx, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.7)),
	})
	if err != nil {
		return nil, err
	}
	return toAIResponse(result), nil
}

func (s *GeminiService) generate(ctx context.Context, contents []*genai.Content, genConfig *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return s.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()

		var lastErr error
		for attempt := 0; attempt <= s.MaxRetries; attempt++ {
			if attempt > 0 {
				delay := s.calculateBackoff(attempt)
				log.Infow("retrying GenerateContent", "attempt", attempt, "max", s.MaxRetries, "delay", delay)

				select {
				case <-time.After(delay):
				case <-timeoutCtx.Done():
					return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
				}
			}

			result, err := s.Client.Models.GenerateContent(timeoutCtx, s.Model, contents, genConfig)
			if err == nil {
				if err := validateGenerateResponse(result); err != nil {
					return nil, fmt.Errorf("invalid response: %w", err)
				}
				return result, nil
			}

			lastErr = err
			if !isRetryableError(err) {
				return nil, fmt.Errorf("generate content failed: %w", err)
			}
			log.Warnw("retryable gemini error", "attempt", attempt+1, "error", err)
		}
		return nil, fmt.Errorf("max retries (%d) exceeded for GenerateContent: %w", s.MaxRetries, lastErr)
	})
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}
	if len(trimmedText) > 10000 {
		log.Warnw("embedding input truncated", "length", len(trimmedText))
		trimmedText = trimmedText[:10000]
	}

	content := []*genai.Content{genai.NewContentFromText(trimmedText, genai.RoleUser)}

	result, err := s.embedBreaker.Execute(func() (*genai.EmbedContentResponse, error) {
		timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
		defer cancel()

		var lastErr error
		for attempt := 0; attempt <= s.MaxRetries; attempt++ {
			if attempt > 0 {
				select {
				case <-time.After(s.calculateBackoff(attempt)):
				case <-timeoutCtx.Done():
					return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
				}
			}

			result, err := s.Client.Models.EmbedContent(timeoutCtx, s.EmbeddingModel, content, nil)
			if err == nil {
				return result, nil
			}
			lastErr = err
			if !isRetryableError(err) {
				return nil, fmt.Errorf("generate embedding failed: %w", err)
			}
		}
		return nil, fmt.Errorf("max retries (%d) exceeded for GenerateEmbedding: %w", s.MaxRetries, lastErr)
	})
	if err != nil {
		return nil, err
	}
	return validateEmbeddingResponse(result)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	jitter := time.Duration(float64(delay) * 0.25 * rand.Float64())
	return delay - time.Duration(float64(delay)*0.125) + jitter
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return retryableStatus(apiErrPtr.Code)
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func retryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embeddings := resp.Embeddings[0].Values
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}
	for i, val := range embeddings {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}
	return embeddings, nil
}

// toAIResponse keeps candidate parts in order, skipping model thoughts.
func toAIResponse(resp *genai.GenerateContentResponse) *AIResponse {
	parts := PartsContent{}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		if p.Text == "" {
			parts = append(parts, Part{})
			continue
		}
		parts = append(parts, TextPart(p.Text))
	}
	return &AIResponse{Message: Message{Content: parts}}
}

var (
	_ AIProvider = (*GeminiService)(nil)
	_ Embedder   = (*GeminiService)(nil)
)
