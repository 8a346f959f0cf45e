package handler

import (
	"github.com/fadilmartias/resumind/internal/dto"
	"github.com/fadilmartias/resumind/internal/usecase"
	"github.com/fadilmartias/resumind/internal/util"
	"github.com/gofiber/fiber/v2"
)

// JobHandler manages the curated job catalog.
type JobHandler struct {
	uc *usecase.CatalogUsecase
}

func NewJobHandler(uc *usecase.CatalogUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/admin/jobs", h.Create)
	router.Get("/admin/jobs", h.List)
	router.Delete("/admin/jobs/:id", h.Delete)
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := bindAndValidate(c, &req, false); err != nil {
		return respondError(c, err)
	}
	job := req.Job()
	if err := h.uc.Create(c.UserContext(), job); err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job created",
		Data:    job,
	})
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get jobs",
		Data:    jobs,
	})
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Job deleted"})
}
