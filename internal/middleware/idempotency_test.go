package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/urban-loft/urban_loft/internal/logging"
)

func setupIdempotencyApp(t *testing.T) (*fiber.App, *int, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	var handlerCalls int
	app.Post("/resource", func(c *fiber.Ctx) error {
		handlerCalls++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, &handlerCalls, cleanup
}

func TestIdempotencyIsOptIn(t *testing.T) {
	app, calls, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/resource", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("expected %d got %d", fiber.StatusCreated, resp.StatusCode)
		}
	}

	// Without a key every request reaches the handler.
	if *calls != 2 {
		t.Fatalf("expected 2 handler calls, got %d", *calls)
	}
}

func TestIdempotencyReturnsCachedResponse(t *testing.T) {
	app, calls, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	var bodies []string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/resource", strings.NewReader("{}"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(idempotencyKeyHeader, "abc123")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("request %d: expected %d got %d", i, fiber.StatusCreated, resp.StatusCode)
		}
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		resp.Body.Close()
		bodies = append(bodies, string(payload))
	}

	if *calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", *calls)
	}
	if bodies[0] != bodies[1] {
		t.Fatalf("expected replayed payload %s, got %s", bodies[0], bodies[1])
	}
}

func TestIdempotencyIgnoresGets(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))
	var calls int
	app.Get("/resource", func(c *fiber.Ctx) error {
		calls++
		return c.SendString("ok")
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(fiber.MethodGet, "/resource", nil)
		req.Header.Set(idempotencyKeyHeader, "abc123")
		if _, err := app.Test(req); err != nil {
			t.Fatalf("app.Test: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected GETs to bypass idempotency, handler ran %d times", calls)
	}
}
