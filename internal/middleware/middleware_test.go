package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMiddleware(rate float64, burst int) Middleware {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return New(l, rate, burst)
}

func TestRequestIDMiddleware(t *testing.T) {
	m := testMiddleware(1, 1)
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	t.Run("generates an id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		id := resp.Header.Get(RequestIDKey)
		assert.Len(t, id, 26)
		assert.Equal(t, id, string(body))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDKey, "abc")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, "abc", resp.Header.Get(RequestIDKey))
	})

	t.Run("replaces an unusable id", func(t *testing.T) {
		for _, id := range []string{strings.Repeat("x", 65), "two words"} {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set(RequestIDKey, id)
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Len(t, resp.Header.Get(RequestIDKey), 26)
		}
	})
}

func TestRateLimiter(t *testing.T) {
	m := testMiddleware(0.001, 2)
	app := fiber.New()
	app.Post("/ask", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/ask", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)

	resp, err := app.Test(httptest.NewRequest("POST", "/ask", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Too many requests"}`, string(body))
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(1, 1)
	limiter.clock = func() time.Time { return now }

	first := limiter.GetLimiterFrom("10.0.0.1")
	limiter.GetLimiterFrom("10.0.0.2")
	assert.Equal(t, 2, limiter.size())
	assert.Same(t, first, limiter.GetLimiterFrom("10.0.0.1"))

	now = now.Add(visitorTTL + sweepEvery)
	limiter.GetLimiterFrom("10.0.0.3")
	assert.Equal(t, 1, limiter.size())
	assert.NotSame(t, first, limiter.GetLimiterFrom("10.0.0.1"))
}

func TestGetRequestIDUnknown(t *testing.T) {
	m := testMiddleware(1, 1)
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "unknown", string(body))
}

func TestSanitizeRequestBody(t *testing.T) {
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody([]byte("nope")))

	out := sanitizeRequestBody([]byte(`{"question":"hi","api_key":"k"}`))
	assert.Contains(t, out, `"question":"hi"`)
	assert.Contains(t, out, `"api_key":"[SECRET]"`)

	long := sanitizeRequestBody([]byte(`{"question":"` + strings.Repeat("a", 300) + `"}`))
	assert.Contains(t, long, strings.Repeat("a", 200)+"...")
	assert.NotContains(t, long, strings.Repeat("a", 201))

	accented := sanitizeRequestBody([]byte(`{"question":"` + strings.Repeat("é", 150) + `"}`))
	assert.Contains(t, accented, `"question":"`+strings.Repeat("é", 150)+`"`)

	cut := sanitizeRequestBody([]byte(`{"question":"` + strings.Repeat("é", 250) + `"}`))
	assert.Contains(t, cut, strings.Repeat("é", 200)+"...")
	assert.NotContains(t, cut, strings.Repeat("é", 201))
	assert.NotContains(t, cut, "\uFFFD")
	assert.NotContains(t, cut, `\uFFFD`)
	assert.True(t, utf8.ValidString(cut))
}
