package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/fadilmartias/resumind/internal/intake"
	"github.com/fadilmartias/resumind/internal/model"
	"github.com/fadilmartias/resumind/internal/rasterize"
	"github.com/fadilmartias/resumind/internal/repository"
	"github.com/fadilmartias/resumind/internal/response"
	"github.com/fadilmartias/resumind/internal/storage"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var (
	ErrResumeNotFound = errors.New("resume not found")
	ErrInvalidID      = errors.New("invalid resume id")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type BlobKind string

const (
	BlobResume  BlobKind = "file"
	BlobPreview BlobKind = "preview"
)

// ProfileStats summarizes every stored résumé.
type ProfileStats struct {
	TotalResumes    int `json:"totalResumes"`
	AnalyzedResumes int `json:"analyzedResumes"`
	AverageScore    int `json:"averageScore"`
	BestScore       int `json:"bestScore"`
}

type ResumeUsecase struct {
	kv    repository.KVStore
	blobs storage.BlobStore
}

func NewResumeUsecase(kv repository.KVStore, blobs storage.BlobStore) *ResumeUsecase {
	return &ResumeUsecase{kv: kv, blobs: blobs}
}

func (uc *ResumeUsecase) Get(ctx context.Context, id string) (*model.UploadedResume, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, ErrInvalidID
	}
	raw, err := uc.kv.Get(ctx, model.ResumeKey(id))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get resume %s: %w", id, err)
	}
	var r model.UploadedResume
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("decode resume %s: %w", id, err)
	}
	return &r, nil
}

// all returns every decodable record; corrupt entries are skipped.
func (uc *ResumeUsecase) all(ctx context.Context) ([]model.UploadedResume, error) {
	entries, err := uc.kv.List(ctx, model.ResumeKeyPattern, true)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	out := make([]model.UploadedResume, 0, len(entries))
	for _, e := range entries {
		var r model.UploadedResume
		if err := json.Unmarshal([]byte(e.Value), &r); err != nil {
			log.Warnw("skipping unreadable resume record", "key", e.Key, "error", err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (uc *ResumeUsecase) List(ctx context.Context, page, pageSize int) ([]model.UploadedResume, *response.Pagination, error) {
	records, err := uc.all(ctx)
	if err != nil {
		return nil, nil, err
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pagination := response.NewPagination(page, pageSize, MaxPageSize, len(records))
	from, to := pagination.Bounds()
	return records[from:to], pagination, nil
}

// Delete removes the record and, best-effort, its blobs.
func (uc *ResumeUsecase) Delete(ctx context.Context, id string) error {
	r, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range []string{r.ResumePath, r.ImagePath} {
		if p == "" {
			continue
		}
		if err := uc.blobs.Delete(ctx, p); err != nil {
			log.Warnw("failed to delete blob", "id", id, "path", p, "error", err)
		}
	}
	if err := uc.kv.Delete(ctx, model.ResumeKey(id)); err != nil {
		return fmt.Errorf("delete resume %s: %w", id, err)
	}
	return nil
}

// ReadBlob returns the stored PDF or its preview together with its MIME type.
func (uc *ResumeUsecase) ReadBlob(ctx context.Context, id string, kind BlobKind) ([]byte, string, error) {
	r, err := uc.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	path, contentType := r.ResumePath, intake.PDFMimeType
	if kind == BlobPreview {
		path, contentType = r.ImagePath, rasterize.PreviewContentType
	}
	data, err := uc.blobs.Read(ctx, path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s for resume %s: %w", kind, id, err)
	}
	return data, contentType, nil
}

// Stats averages overallScore over analyzed records with a positive score.
func (uc *ResumeUsecase) Stats(ctx context.Context) (*ProfileStats, error) {
	records, err := uc.all(ctx)
	if err != nil {
		return nil, err
	}
	stats := &ProfileStats{TotalResumes: len(records)}
	var sum, best float64
	scored := 0
	for i := range records {
		fb := records[i].Feedback
		if fb == nil {
			continue
		}
		stats.AnalyzedResumes++
		if fb.OverallScore <= 0 {
			continue
		}
		scored++
		sum += fb.OverallScore
		best = math.Max(best, fb.OverallScore)
	}
	if scored > 0 {
		stats.AverageScore = int(math.Round(sum / float64(scored)))
		stats.BestScore = int(math.Round(best))
	}
	return stats, nil
}
