package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/resumind/internal/feedback"
	"github.com/fadilmartias/resumind/internal/intake"
	"github.com/fadilmartias/resumind/internal/metrics"
	"github.com/fadilmartias/resumind/internal/model"
	"github.com/fadilmartias/resumind/internal/prompt"
	"github.com/fadilmartias/resumind/internal/rasterize"
	"github.com/fadilmartias/resumind/internal/repository"
	"github.com/fadilmartias/resumind/internal/service"
	"github.com/fadilmartias/resumind/internal/storage"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Progress reported through Submission.OnStatus.
const (
	StatusUploading      = "Uploading the file..."
	StatusConverting     = "Converting to image..."
	StatusUploadingImage = "Uploading the image..."
	StatusPreparing      = "Preparing data..."
	StatusAnalyzing      = "Analyzing..."
	StatusComplete       = "Analysis complete, redirecting..."
)

// Terminal statuses of a failed run.
const (
	MsgUploadFailed      = "Failed to upload file."
	MsgConvertFailed     = "Failed to convert PDF to image."
	MsgImageUploadFailed = "Failed to upload image file."
	MsgSaveFailed        = "Failed to save resume record."
	MsgAIFailed          = "Failed to get feedback from AI."
	MsgParseFailed       = "Failed to parse AI feedback."
	MsgSchemaFailed      = "AI feedback did not match the expected format."
)

type Stage string

const (
	StageUpload      Stage = "upload"
	StageRasterize   Stage = "rasterize"
	StageUploadImage Stage = "upload_image"
	StagePersist     Stage = "persist"
	StageAnalyze     Stage = "analyze"
	StageParse       Stage = "parse"
	StageFinalize    Stage = "finalize"
)

// PipelineError halts a run. Status is the user-facing message.
type PipelineError struct {
	Stage  Stage
	Status string
	Err    error
}

func (e *PipelineError) Error() string {
	if e.Err == nil {
		return e.Status
	}
	return fmt.Sprintf("%s (%s: %v)", e.Status, e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

var errNoResult = errors.New("collaborator returned no result")

type Rasterizer interface {
	Render(ctx context.Context, pdf []byte) rasterize.Result
}

// Deps are the collaborators of a pipeline run. NewID and Metrics are optional.
type Deps struct {
	Blobs      storage.BlobStore
	KV         repository.KVStore
	AI         service.AIProvider
	Rasterizer Rasterizer
	NewID      func() string
	Metrics    *metrics.PipelineMetrics
}

type Submission struct {
	// SessionID scopes the in-flight guard. Empty disables it.
	SessionID string
	Files     []*intake.File
	Job       *model.JobTarget
	OnStatus  func(status string)
}

type Outcome struct {
	ID         string                `json:"id"`
	Redirect   string                `json:"redirect"`
	Resume     *model.UploadedResume `json:"resume"`
	PreviewURL string                `json:"previewUrl,omitempty"`
}

type IngestionUsecase struct {
	deps     Deps
	inflight *inflightGuard
}

func NewIngestionUsecase(deps Deps) *IngestionUsecase {
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	return &IngestionUsecase{deps: deps, inflight: newInflightGuard()}
}

// Analyze runs intake, rasterization, upload, provisional persist and AI
// feedback in order, stopping at the first failure. A failure after the
// provisional write leaves the record with empty feedback.
func (uc *IngestionUsecase) Analyze(ctx context.Context, sub Submission) (*Outcome, error) {
	job := normalizeJob(sub.Job)
	variant := feedback.VariantFor(job)

	file, err := intake.Accept(sub.Files)
	if err != nil {
		uc.deps.Metrics.ObserveRun(variant.String(), metrics.OutcomeRejected)
		return nil, err
	}

	release, err := uc.inflight.acquire(sub.SessionID)
	if err != nil {
		uc.deps.Metrics.ObserveRun(variant.String(), metrics.OutcomeRejected)
		return nil, err
	}
	defer release()

	uc.deps.Metrics.Started()
	defer uc.deps.Metrics.Finished()

	run := &pipelineRun{uc: uc, id: uc.deps.NewID(), job: job, variant: variant, onStatus: sub.OnStatus}
	out, err := run.execute(ctx, file)
	if err != nil {
		uc.deps.Metrics.ObserveRun(variant.String(), metrics.OutcomeFailed)
		var pe *PipelineError
		if errors.As(err, &pe) {
			log.Errorw("resume pipeline halted", "id", run.id, "stage", pe.Stage, "error", pe.Err)
		}
		return nil, err
	}
	uc.deps.Metrics.ObserveRun(variant.String(), metrics.OutcomeSuccess)
	log.Infow("resume analyzed", "id", out.ID, "variant", variant.String(), "overallScore", out.Resume.Feedback.OverallScore)
	return out, nil
}

// normalizeJob drops a job target without a description so the run is
// treated as a general analysis.
func normalizeJob(job *model.JobTarget) *model.JobTarget {
	if !job.HasDescription() {
		return nil
	}
	return job
}

type pipelineRun struct {
	uc       *IngestionUsecase
	id       string
	job      *model.JobTarget
	variant  feedback.Variant
	onStatus func(string)
}

func (r *pipelineRun) status(s string) {
	if r.onStatus != nil {
		r.onStatus(s)
	}
}

func (r *pipelineRun) fail(stage Stage, status string, err error) error {
	r.status(status)
	if err == nil {
		err = errNoResult
	}
	return &PipelineError{Stage: stage, Status: status, Err: err}
}

func (r *pipelineRun) execute(ctx context.Context, file *intake.File) (*Outcome, error) {
	d := r.uc.deps

	r.status(StatusUploading)
	started := time.Now()
	pdfUpload, err := d.Blobs.Upload(ctx, storage.Blob{Name: file.Name, ContentType: intake.PDFMimeType, Data: file.Data})
	d.Metrics.ObserveStage(string(StageUpload), started)
	if err != nil || pdfUpload == nil {
		return nil, r.fail(StageUpload, MsgUploadFailed, err)
	}

	r.status(StatusConverting)
	started = time.Now()
	preview := d.Rasterizer.Render(ctx, file.Data)
	d.Metrics.ObserveStage(string(StageRasterize), started)
	if !preview.OK() {
		return nil, r.fail(StageRasterize, MsgConvertFailed, errors.New(preview.Err))
	}

	r.status(StatusUploadingImage)
	started = time.Now()
	imageUpload, err := d.Blobs.Upload(ctx, storage.Blob{
		Name:        preview.File.Name,
		ContentType: preview.File.ContentType,
		Data:        preview.File.Data,
	})
	d.Metrics.ObserveStage(string(StageUploadImage), started)
	if err != nil || imageUpload == nil {
		return nil, r.fail(StageUploadImage, MsgImageUploadFailed, err)
	}

	r.status(StatusPreparing)
	record := &model.UploadedResume{
		ID:         r.id,
		ResumePath: pdfUpload.Path,
		ImagePath:  imageUpload.Path,
	}
	if r.job != nil {
		record.CompanyName = r.job.CompanyName
		record.JobTitle = r.job.JobTitle
		record.JobDescription = r.job.JobDescription
	}
	started = time.Now()
	err = r.save(ctx, record)
	d.Metrics.ObserveStage(string(StagePersist), started)
	if err != nil {
		return nil, r.fail(StagePersist, MsgSaveFailed, err)
	}

	r.status(StatusAnalyzing)
	started = time.Now()
	resp, err := d.AI.Feedback(ctx, pdfUpload.Path, r.instructions())
	d.Metrics.ObserveStage(string(StageAnalyze), started)
	if err != nil || resp == nil {
		return nil, r.fail(StageAnalyze, MsgAIFailed, err)
	}

	text, _ := resp.Text()
	fb, err := feedback.Parse(text, r.variant)
	if err != nil {
		var schemaErr *feedback.SchemaError
		if errors.As(err, &schemaErr) {
			return nil, r.fail(StageParse, MsgSchemaFailed, err)
		}
		return nil, r.fail(StageParse, MsgParseFailed, err)
	}

	final := *record
	final.Feedback = fb
	started = time.Now()
	err = r.save(ctx, &final)
	d.Metrics.ObserveStage(string(StageFinalize), started)
	if err != nil {
		return nil, r.fail(StageFinalize, MsgSaveFailed, err)
	}

	r.status(StatusComplete)
	return &Outcome{
		ID:         r.id,
		Redirect:   ResultPath(r.id),
		Resume:     &final,
		PreviewURL: preview.ImageURL,
	}, nil
}

func (r *pipelineRun) instructions() string {
	if r.job == nil {
		return prompt.GeneralInstructions()
	}
	return prompt.JobMatchInstructions(r.job.JobTitle, r.job.JobDescription)
}

func (r *pipelineRun) save(ctx context.Context, record *model.UploadedResume) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.uc.deps.KV.Set(ctx, model.ResumeKey(record.ID), string(b))
}

// ResultPath is the navigation target for a finished run.
func ResultPath(id string) string {
	return "/resume/" + id
}
