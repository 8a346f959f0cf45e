package handler

import (
	"github.com/fadilmartias/resumind/internal/dto"
	"github.com/fadilmartias/resumind/internal/intake"
	"github.com/fadilmartias/resumind/internal/middleware"
	"github.com/fadilmartias/resumind/internal/usecase"
	"github.com/fadilmartias/resumind/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type ResumeHandler struct {
	ingestion *usecase.IngestionUsecase
	resumes   *usecase.ResumeUsecase
}

func NewResumeHandler(ingestion *usecase.IngestionUsecase, resumes *usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{ingestion: ingestion, resumes: resumes}
}

func (h *ResumeHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/resumes", h.Analyze)
	router.Get("/resumes", h.List)
	router.Get("/resumes/:id", h.Get)
	router.Get("/resumes/:id/preview", h.blob(usecase.BlobPreview))
	router.Get("/resumes/:id/file", h.blob(usecase.BlobResume))
	router.Delete("/resumes/:id", h.Delete)
	router.Get("/profile/stats", h.Stats)
}

// Analyze runs the ingestion pipeline on the multipart "file" field.
func (h *ResumeHandler) Analyze(c *fiber.Ctx) error {
	var form dto.AnalyzeResumeForm
	if err := bindAndValidate(c, &form, false); err != nil {
		return respondError(c, err)
	}

	var files []*intake.File
	if fh, err := c.FormFile("file"); err == nil {
		f, err := intake.FromFileHeader(fh)
		if err != nil {
			return respondError(c, err)
		}
		files = append(files, f)
	}

	var last string
	out, err := h.ingestion.Analyze(c.UserContext(), usecase.Submission{
		SessionID: middleware.SessionID(c),
		Files:     files,
		Job:       form.JobTarget(),
		OnStatus: func(s string) {
			last = s
			log.Debugf("resume pipeline: %s", s)
		},
	})
	if err != nil {
		return respondError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume analyzed",
		Data: dto.AnalyzeResponse{
			ID:         out.ID,
			Redirect:   out.Redirect,
			Status:     last,
			PreviewURL: out.PreviewURL,
			Resume:     out.Resume,
		},
	})
}

func (h *ResumeHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := bindAndValidate(c, &q, true); err != nil {
		return respondError(c, err)
	}
	items, pagination, err := h.resumes.List(c.UserContext(), q.Page, q.PageSize)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get resumes",
		Data:       items,
		Pagination: pagination,
	})
}

func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	r, err := h.resumes.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get resume",
		Data:    r,
	})
}

func (h *ResumeHandler) blob(kind usecase.BlobKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, contentType, err := h.resumes.ReadBlob(c.UserContext(), c.Params("id"), kind)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, contentType)
		c.Set(fiber.HeaderCacheControl, "private, max-age=3600")
		return c.Send(data)
	}
}

func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	if err := h.resumes.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Resume deleted"})
}

func (h *ResumeHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.resumes.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile stats",
		Data:    stats,
	})
}
