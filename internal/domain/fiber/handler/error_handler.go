package handler

import (
	"errors"

	"github.com/fadilmartias/resumind/internal/intake"
	"github.com/fadilmartias/resumind/internal/service"
	"github.com/fadilmartias/resumind/internal/usecase"
	"github.com/fadilmartias/resumind/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// respondError maps domain errors onto the error envelope.
func respondError(c *fiber.Ctx, err error) error {
	var (
		rejection *intake.RejectionError
		pipeline  *usecase.PipelineError
		form      *util.FormError
	)

	switch {
	case errors.As(err, &rejection):
		code := fiber.StatusBadRequest
		switch rejection.Reason {
		case intake.ReasonTooLarge:
			code = fiber.StatusRequestEntityTooLarge
		case intake.ReasonFileType:
			code = fiber.StatusUnsupportedMediaType
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: "Please upload a single PDF file up to 20 MB.",
			Details: fiber.Map{"reason": rejection.Reason},
		}, err)

	case errors.As(err, &pipeline):
		code := fiber.StatusBadGateway
		if pipeline.Stage == usecase.StageParse {
			code = fiber.StatusUnprocessableEntity
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: pipeline.Status,
			Details: fiber.Map{"stage": pipeline.Stage},
		}, err)

	case errors.As(err, &form):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: form.Message,
			Details: form.Errors,
		})

	case errors.Is(err, usecase.ErrSubmissionInFlight):
		return simpleError(c, fiber.StatusConflict, "A résumé is already being analyzed for this session.", err)
	case errors.Is(err, usecase.ErrResumeNotFound), errors.Is(err, usecase.ErrInvalidID):
		return simpleError(c, fiber.StatusNotFound, "Resume not found.", err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return simpleError(c, fiber.StatusNotFound, "Job not found.", err)
	case errors.Is(err, usecase.ErrNotAnalyzed):
		return simpleError(c, fiber.StatusConflict, "Resume feedback is not ready yet.", err)
	case errors.Is(err, usecase.ErrMissingJobTarget):
		return simpleError(c, fiber.StatusBadRequest, "Company name and job title are required.", err)
	case errors.Is(err, usecase.ErrNoJobsFound):
		return simpleError(c, fiber.StatusNotFound, "No matching jobs found.", err)
	case errors.Is(err, usecase.ErrEmbeddingUnavailable):
		return simpleError(c, fiber.StatusServiceUnavailable, "Job catalog embeddings are not available.", err)
	case errors.Is(err, service.ErrJobSearchUnavailable):
		return simpleError(c, fiber.StatusServiceUnavailable, "Job search is not available.", err)
	case errors.Is(err, usecase.ErrEmptyAIResponse):
		return simpleError(c, fiber.StatusBadGateway, "AI returned an empty response.", err)
	}

	log.Errorw("request failed", "path", c.Path(), "error", err)
	return simpleError(c, fiber.StatusInternalServerError, "Something went wrong, please try again.", err)
}

func simpleError(c *fiber.Ctx, code int, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
}

// bindAndValidate parses the body or query into dst and runs its validate tags.
func bindAndValidate(c *fiber.Ctx, dst any, fromQuery bool) error {
	var err error
	if fromQuery {
		err = c.QueryParser(dst)
	} else {
		err = c.BodyParser(dst)
	}
	if err != nil {
		return util.NewFormError("invalid request body", map[string]string{"body": err.Error()})
	}
	return util.ValidateStruct(dst)
}
