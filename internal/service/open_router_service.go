package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/fadilmartias/resumind/internal/config"
	"github.com/fadilmartias/resumind/internal/storage"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterService talks to an OpenAI-compatible chat completions API.
type OpenRouterService struct {
	client *resty.Client
	model  string
	blobs  storage.BlobStore
}

func NewOpenRouterService(blobs storage.BlobStore) (*OpenRouterService, error) {
	cfg := config.LoadOpenRouterConfig()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	s := newOpenRouterService(cfg.BaseURL, cfg.APIKey, cfg.Model, blobs)
	s.client.SetTimeout(cfg.Timeout)
	return s, nil
}

func newOpenRouterService(baseURL, apiKey, model string, blobs storage.BlobStore) *OpenRouterService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	return &OpenRouterService{client: client, model: model, blobs: blobs}
}

// Feedback attaches the stored PDF as a file content part.
func (s *OpenRouterService) Feedback(ctx context.Context, filePath, instructions string) (*AIResponse, error) {
	data, err := s.blobs.Read(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}

	messages := []map[string]any{
		{
			"role": "user",
			"content": []map[string]any{
				{
					"type": "file",
					"file": map[string]string{
						"filename":  path.Base(filePath),
						"file_data": "data:" + pdfMimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
					},
				},
				{"type": "text", "text": instructions},
			},
		},
	}
	return s.complete(ctx, messages, map[string]any{"type": "json_object"})
}

func (s *OpenRouterService) Chat(ctx context.Context, prompt string) (*AIResponse, error) {
	messages := []map[string]any{
		{"role": "user", "content": prompt},
	}
	return s.complete(ctx, messages, nil)
}

func (s *OpenRouterService) complete(ctx context.Context, messages []map[string]any, responseFormat map[string]any) (*AIResponse, error) {
	body := map[string]any{
		"model":    s.model,
		"messages": messages,
	}
	if responseFormat != nil {
		body["response_format"] = responseFormat
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("openrouter status %d: %s", resp.StatusCode(), msg)
	}

	content := gjson.Get(resp.String(), "choices.0.message.content")
	if !content.Exists() {
		return nil, fmt.Errorf("no response from LLM")
	}
	if content.IsArray() {
		parts := PartsContent{}
		content.ForEach(func(_, part gjson.Result) bool {
			if text := part.Get("text"); text.Exists() {
				parts = append(parts, TextPart(text.String()))
			} else {
				parts = append(parts, Part{})
			}
			return true
		})
		return &AIResponse{Message: Message{Content: parts}}, nil
	}
	return &AIResponse{Message: Message{Content: TextContent(content.String())}}, nil
}

var _ AIProvider = (*OpenRouterService)(nil)
