package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	app := fiber.New()
	var seen string
	app.Get("/", RequestID(), func(c *fiber.Ctx) error {
		seen = RequestIDFrom(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if seen == "" {
		t.Fatal("expected a generated request id in locals")
	}
	if got := resp.Header.Get("X-Request-ID"); got != seen {
		t.Fatalf("response header %q does not match locals %q", got, seen)
	}
}

func TestRequestIDPreservesInbound(t *testing.T) {
	app := fiber.New()
	var seen string
	app.Get("/", RequestID(), func(c *fiber.Ctx) error {
		seen = RequestIDFrom(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if seen != "client-supplied" {
		t.Fatalf("expected inbound id to be kept, got %q", seen)
	}
	if got := resp.Header.Get("X-Request-ID"); got != "client-supplied" {
		t.Fatalf("expected inbound id echoed, got %q", got)
	}
}
