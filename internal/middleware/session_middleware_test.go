package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoSession(c *fiber.Ctx) error {
	return c.SendString(SessionID(c))
}

func TestSession(t *testing.T) {
	app := fiber.New()
	app.Use(Session())
	app.Get("/", echoSession)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "header", header: "browser-tab-0001", want: "browser-tab-0001"},
		{name: "too short falls back to ip", header: "abc", want: "ip:"},
		{name: "bad characters fall back to ip", header: "abc def ghi jkl", want: "ip:"},
		{name: "missing", want: "ip:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set(SessionHeader, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			if tt.want == "ip:" {
				assert.True(t, strings.HasPrefix(string(body), "ip:"), string(body))
				return
			}
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestRateLimiter_PerSession(t *testing.T) {
	app := fiber.New()
	app.Use(Session())
	app.Get("/", RateLimiter(1, time.Minute), echoSession)

	send := func(session string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(SessionHeader, session)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, send("session-aaaa"))
	assert.Equal(t, fiber.StatusTooManyRequests, send("session-aaaa"))
	assert.Equal(t, fiber.StatusOK, send("session-bbbb"))
}
