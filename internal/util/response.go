package util

import (
	"runtime/debug"

	"github.com/fadilmartias/resumind/internal/config"
	"github.com/fadilmartias/resumind/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

// Field order is the order clients see.
type successEnvelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type errorEnvelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// SuccessResponse writes the success envelope. Code defaults to 200.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(successEnvelope{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	})
}

// ErrorResponse writes the error envelope. Code defaults to 500. Outside
// production the cause is echoed as dev_message, and server errors carry a
// stack trace.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	env := errorEnvelope{
		Message: params.Message,
		Details: params.Details,
	}

	if !config.LoadAppConfig().IsProduction() {
		env.DevMessage = params.DevMessage
		if env.DevMessage == "" && len(errs) > 0 && errs[0] != nil {
			env.DevMessage = errs[0].Error()
		}
		env.Trace = params.Trace
		if env.Trace == "" && code >= fiber.StatusInternalServerError && len(errs) > 0 {
			env.Trace = string(debug.Stack())
		}
	}
	return c.Status(code).JSON(env)
}
