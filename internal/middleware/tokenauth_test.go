package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/urban-loft/urban_loft/internal/auth"
	"github.com/urban-loft/urban_loft/internal/config"
	"github.com/urban-loft/urban_loft/internal/user"
)

func TestTokenAuth(t *testing.T) {
	tokens := auth.NewService(config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour})

	app := fiber.New()
	app.Get("/me", TokenAuth(tokens), func(c *fiber.Ctx) error {
		email, _ := c.Locals("user_email").(string)
		return c.SendString(email)
	})

	token, _, err := tokens.Issue(user.User{ID: "user-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not.a.token",
	}
	for name, header := range cases {
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, resp.StatusCode)
		}
	}
}
