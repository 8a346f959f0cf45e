package middleware

import (
	"time"

	"github.com/fadilmartias/resumind/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter allows max requests per session within a sliding window.
// Zero values fall back to 50 requests per minute.
func RateLimiter(max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 50
	}
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        window,
		KeyGenerator:      SessionID,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c *fiber.Ctx) error {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusTooManyRequests,
				Message: "Too many requests, please slow down",
				Details: fiber.Map{"session": SessionID(c)},
			})
		},
	})
}
