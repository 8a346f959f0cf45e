package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fadilmartias/resumind/internal/model"
	"github.com/fadilmartias/resumind/internal/rasterize"
	"github.com/fadilmartias/resumind/internal/repository"
	"github.com/fadilmartias/resumind/internal/service"
	"github.com/fadilmartias/resumind/internal/storage"
)

const tipsJSON = `{"score": 72, "tips": [{"type": "good", "tip": "Go", "explanation": "Strong Go experience"}, {"type": "improve", "tip": "Kubernetes", "explanation": "Mention cluster work"}]}`

const generalFeedbackJSON = `{"overallScore": 81, "candidateInfo": {"name": "Ada Lovelace", "email": "ada@example.com"},
 "ATS": ` + tipsJSON + `, "toneAndStyle": ` + tipsJSON + `, "content": ` + tipsJSON + `,
 "structure": ` + tipsJSON + `, "skills": ` + tipsJSON + `}`

const jobMatchFeedbackJSON = `{"overallScore": 76, "matchScore": 68,
 "ATS": ` + tipsJSON + `, "toneAndStyle": ` + tipsJSON + `, "content": ` + tipsJSON + `,
 "structure": ` + tipsJSON + `, "skills": ` + tipsJSON + `,
 "jobMatch": {
   "matchingSkills": [{"skill": "Go", "evidence": "Built Go services"}],
   "missingSkills": [{"skill": "Kubernetes", "importance": "important", "suggestion": "Add cluster projects"}],
   "matchingExperience": [{"requirement": "Backend APIs", "match": "REST APIs at Acme", "matchLevel": "good"}],
   "overallAssessment": "Good fit with a Kubernetes gap."
 }}`

type fakeBlobs struct {
	mu      sync.Mutex
	uploads []storage.Blob
	deleted []string
	data    map[string][]byte
	// failAt makes the n-th upload (1-based) fail; nilAt makes it return nil.
	failAt int
	nilAt  int
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{data: make(map[string][]byte)}
}

func (f *fakeBlobs) Upload(_ context.Context, blob storage.Blob) (*storage.Uploaded, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, blob)
	n := len(f.uploads)
	if n == f.failAt {
		return nil, errors.New("bucket unavailable")
	}
	if n == f.nilAt {
		return nil, nil
	}
	path := fmt.Sprintf("blobs/%d_%s", n, blob.Name)
	f.data[path] = blob.Data
	return &storage.Uploaded{Path: path, Size: int64(len(blob.Data)), ContentType: blob.ContentType}, nil
}

func (f *fakeBlobs) Read(_ context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.data[path]
	if !ok {
		return nil, errors.New("no such blob")
	}
	return d, nil
}

func (f *fakeBlobs) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, path)
	delete(f.data, path)
	return nil
}

func (f *fakeBlobs) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

// recordingKV keeps every Set value in order on top of a MemoryKV.
type recordingKV struct {
	*repository.MemoryKV
	mu   sync.Mutex
	sets []model.KVEntry
	// failSetAt makes the n-th Set (1-based) fail.
	failSetAt int
}

func newRecordingKV() *recordingKV {
	return &recordingKV{MemoryKV: repository.NewMemoryKV()}
}

func (k *recordingKV) Set(ctx context.Context, key, value string) error {
	k.mu.Lock()
	k.sets = append(k.sets, model.KVEntry{Key: key, Value: value})
	n := len(k.sets)
	k.mu.Unlock()
	if n == k.failSetAt {
		return errors.New("kv write failed")
	}
	return k.MemoryKV.Set(ctx, key, value)
}

func (k *recordingKV) setCalls() []model.KVEntry {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]model.KVEntry(nil), k.sets...)
}

type feedbackCall struct {
	FilePath     string
	Instructions string
}

type fakeAI struct {
	mu          sync.Mutex
	feedback    []feedbackCall
	chats       []string
	response    *service.AIResponse
	chatReply   *service.AIResponse
	err         error
	chatErr     error
	block       chan struct{}
	feedbackHit chan struct{}
}

func textResponse(s string) *service.AIResponse {
	return &service.AIResponse{Message: service.Message{Content: service.TextContent(s)}}
}

func (f *fakeAI) Feedback(ctx context.Context, filePath, instructions string) (*service.AIResponse, error) {
	f.mu.Lock()
	f.feedback = append(f.feedback, feedbackCall{FilePath: filePath, Instructions: instructions})
	block, hit := f.block, f.feedbackHit
	f.mu.Unlock()
	if hit != nil {
		hit <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.response, f.err
}

func (f *fakeAI) Chat(_ context.Context, p string) (*service.AIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats = append(f.chats, p)
	return f.chatReply, f.chatErr
}

func (f *fakeAI) feedbackCalls() []feedbackCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]feedbackCall(nil), f.feedback...)
}

type fakeRasterizer struct {
	mu     sync.Mutex
	calls  int
	result rasterize.Result
}

func okRasterizer() *fakeRasterizer {
	return &fakeRasterizer{result: rasterize.Result{
		ImageURL: "data:image/png;base64,cG5n",
		File: &rasterize.Preview{
			Name:        rasterize.PreviewName,
			ContentType: rasterize.PreviewContentType,
			Data:        []byte("png"),
			Width:       1224,
			Height:      1584,
		},
	}}
}

func (f *fakeRasterizer) Render(_ context.Context, _ []byte) rasterize.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result
}

func (f *fakeRasterizer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSearcher struct {
	jobs    []model.JobListing
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]model.JobListing, error) {
	f.queries = append(f.queries, query)
	return f.jobs, f.err
}
