package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/urban-loft/urban_loft/internal/notification"
	"github.com/urban-loft/urban_loft/internal/validate"
)

var (
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrCredentialsRequired is returned when the login payload is incomplete.
	ErrCredentialsRequired = errors.New("email and password are required")
)

// Service manages the registration and credential-check lifecycle.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

// NewService creates a new user service. The notifier may be nil.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// RegisterInput captures the registration form payload.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// Register validates the payload, hashes the password and stores the user
// together with the registration address. Validation failures are returned
// as *validate.Error before anything is written.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	result := validate.Registration{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Password:     in.Password,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
	}.Validate()
	if !result.Valid() {
		return User{}, &validate.Error{Result: result}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	addr := Address{
		ID:         uuid.New().String(),
		UserID:     u.ID,
		Line1:      in.AddressLine1,
		Line2:      in.AddressLine2,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
	}

	if err := s.repo.CreateWithAddress(ctx, u, addr); err != nil {
		return User{}, err
	}

	if s.notifier != nil {
		// Best effort; a failed welcome message never fails registration.
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindWelcome,
			Destination: u.Email,
			Body:        fmt.Sprintf("Welcome to Urban Loft, %s!", u.FirstName),
		})
	}

	return u, nil
}

// Authenticate verifies the email/password pair against the stored hash.
// Unknown email and wrong password surface as the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if !(validate.Login{Email: email, Password: password}).Validate().Valid() {
		return User{}, ErrCredentialsRequired
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}
