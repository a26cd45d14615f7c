package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/urban-loft/urban_loft/internal/user"
	"github.com/urban-loft/urban_loft/internal/validate"
)

// Handler exposes the registration, login and profile endpoints.
type Handler struct {
	users  *user.Service
	tokens *Service
	repo   user.Repository
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(users *user.Service, tokens *Service, repo user.Repository) *Handler {
	return &Handler{users: users, tokens: tokens, repo: repo}
}

type registerRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public view of a user; it never carries the hash.
type userResponse struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// Register handles user onboarding: validation, hashing and the
// transactional user+address write.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	_, err := h.users.Register(c.UserContext(), user.RegisterInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	})
	if err != nil {
		var verr *validate.Error
		switch {
		case errors.As(err, &verr):
			return c.Status(http.StatusBadRequest).JSON(verr.Result)
		case errors.Is(err, user.ErrEmailTaken):
			return c.Status(http.StatusBadRequest).JSON(validate.Result{Email: user.ErrEmailTaken.Error()})
		default:
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"general": "Insert failed"})
		}
	}

	return c.Status(http.StatusCreated).SendString("User registered successfully")
}

// Login verifies credentials and returns a signed session token. Unknown
// email and wrong password produce the same 401 payload.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	u, err := h.users.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrCredentialsRequired):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"general": "Email and password are required"})
		case errors.Is(err, user.ErrInvalidCredentials):
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"general": "Invalid email or password"})
		default:
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"general": "Login failed"})
		}
	}

	token, _, err := h.tokens.Issue(u)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"general": "Login failed"})
	}

	return c.Status(http.StatusOK).JSON(loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    userResponse{UserID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email},
	})
}

// Me returns the profile of the token's subject. The route sits behind the
// token verification middleware, which stores the verified claims.
func (h *Handler) Me(c *fiber.Ctx) error {
	email, _ := c.Locals("user_email").(string)
	if email == "" {
		return c.SendStatus(http.StatusUnauthorized)
	}

	u, err := h.repo.FindByEmail(c.UserContext(), email)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "user not found")
	}

	return c.JSON(userResponse{UserID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email})
}
