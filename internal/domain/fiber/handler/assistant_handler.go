package handler

import (
	"github.com/fadilmartias/resumind/internal/dto"
	"github.com/fadilmartias/resumind/internal/usecase"
	"github.com/fadilmartias/resumind/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AssistantHandler struct {
	uc *usecase.AssistantUsecase
}

func NewAssistantHandler(uc *usecase.AssistantUsecase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

func (h *AssistantHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/resumes/:id/job-suggestions", h.JobSuggestions)
	router.Post("/resumes/:id/cover-letter", h.CoverLetter)
	router.Post("/resumes/:id/chat", h.Chat)
	router.Get("/jobs", h.SearchJobs)
}

func (h *AssistantHandler) JobSuggestions(c *fiber.Ctx) error {
	jobs, err := h.uc.SuggestJobs(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success suggest jobs",
		Data:    jobs,
	})
}

func (h *AssistantHandler) CoverLetter(c *fiber.Ctx) error {
	var req dto.CoverLetterRequest
	if len(c.Body()) > 0 {
		if err := bindAndValidate(c, &req, false); err != nil {
			return respondError(c, err)
		}
	}
	letter, err := h.uc.CoverLetter(c.UserContext(), c.Params("id"), usecase.CoverLetterRequest{
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success generate cover letter",
		Data:    dto.CoverLetterResponse{CoverLetter: letter},
	})
}

func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := bindAndValidate(c, &req, false); err != nil {
		return respondError(c, err)
	}
	reply, err := h.uc.Chat(c.UserContext(), c.Params("id"), req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success chat",
		Data:    dto.ChatResponse{Reply: reply},
	})
}

func (h *AssistantHandler) SearchJobs(c *fiber.Ctx) error {
	var q dto.JobSearchQuery
	if err := bindAndValidate(c, &q, true); err != nil {
		return respondError(c, err)
	}
	jobs, err := h.uc.SearchJobs(c.UserContext(), q.Query, q.Pages)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success search jobs",
		Data:    jobs,
	})
}
