package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/resumind/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*storage.LocalStore, string) {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	up, err := store.Upload(context.Background(), storage.Blob{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")})
	require.NoError(t, err)
	return store, up.Path
}

func TestOpenRouter_FeedbackSendsFileAndParsesStringContent(t *testing.T) {
	store, pdfPath := newTestStore(t)

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"overallScore\":80}"}}]}`))
	}))
	defer srv.Close()

	s := newOpenRouterService(srv.URL, "secret", "test/model", store)
	resp, err := s.Feedback(context.Background(), pdfPath, "analyze this")
	require.NoError(t, err)

	text, ok := resp.Text()
	require.True(t, ok)
	assert.Equal(t, `{"overallScore":80}`, text)

	assert.Equal(t, "test/model", got["model"])
	msgs := got["messages"].([]any)
	content := msgs[0].(map[string]any)["content"].([]any)
	file := content[0].(map[string]any)["file"].(map[string]any)
	assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjQ=", file["file_data"])
	assert.Equal(t, "analyze this", content[1].(map[string]any)["text"])
}

func TestOpenRouter_ChatParsesPartsContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":[{"type":"image_url"},{"type":"text","text":"Dear Hiring Manager"}]}}]}`))
	}))
	defer srv.Close()

	s := newOpenRouterService(srv.URL, "k", "m", nil)
	resp, err := s.Chat(context.Background(), "write a letter")
	require.NoError(t, err)

	parts, ok := resp.Message.Content.(PartsContent)
	require.True(t, ok)
	assert.Len(t, parts, 2)
	text, ok := resp.Text()
	require.True(t, ok)
	assert.Equal(t, "Dear Hiring Manager", text)
}

func TestOpenRouter_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	s := newOpenRouterService(srv.URL, "k", "m", nil)
	resp, err := s.Chat(context.Background(), "hi")
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "rate limited")
}

func TestOpenRouter_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	s := newOpenRouterService(srv.URL, "k", "m", nil)
	_, err := s.Chat(context.Background(), "hi")
	assert.Error(t, err)
}
