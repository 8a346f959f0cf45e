package service

import (
	"context"
	"strings"
)

// Content is the message body of an AI response: TextContent or PartsContent.
type Content interface {
	isContent()
}

type TextContent string

func (TextContent) isContent() {}

// Part is one piece of multi-part content. Text is nil for non-text parts.
type Part struct {
	Text *string `json:"text,omitempty"`
}

type PartsContent []Part

func (PartsContent) isContent() {}

func TextPart(s string) Part {
	return Part{Text: &s}
}

type Message struct {
	Content Content
}

type AIResponse struct {
	Message Message
}

// NormalizeContent returns the text of a response body: the string itself,
// or the first part that carries text.
func NormalizeContent(c Content) (string, bool) {
	switch v := c.(type) {
	case TextContent:
		return string(v), true
	case PartsContent:
		for _, p := range v {
			if p.Text != nil {
				return *p.Text, true
			}
		}
	}
	return "", false
}

// Text normalizes the response content, trimming surrounding space.
func (r *AIResponse) Text() (string, bool) {
	if r == nil {
		return "", false
	}
	s, ok := NormalizeContent(r.Message.Content)
	return strings.TrimSpace(s), ok
}

// AIProvider analyzes a stored résumé and answers free-form prompts.
type AIProvider interface {
	Feedback(ctx context.Context, filePath, instructions string) (*AIResponse, error)
	Chat(ctx context.Context, prompt string) (*AIResponse, error)
}

// Embedder turns text into a vector for catalog search.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
