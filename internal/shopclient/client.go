// Package shopclient is the storefront's API client: it talks to the REST
// service and keeps the issued token attached to authenticated calls.
package shopclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/urban-loft/urban_loft/internal/catalog"
	"github.com/urban-loft/urban_loft/internal/session"
)

// Client calls the storefront API. Session state lives in the Store so it
// survives process restarts.
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
}

// New builds a client for the API at baseURL using the given session store.
func New(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
}

// RegisterInput mirrors the registration form.
type RegisterInput struct {
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

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    session.User `json:"user"`
}

type listResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

type productResponse struct {
	Success bool            `json:"success"`
	Product catalog.Product `json:"product"`
}

// APIError carries the response status and the server's error fields.
type APIError struct {
	Status int
	Fields map[string]string
}

func (e *APIError) Error() string {
	if msg := e.Fields["general"]; msg != "" {
		return msg
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msg := range e.Fields {
			parts = append(parts, field+": "+msg)
		}
		return strings.Join(parts, "; ")
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Register creates an account. Field-level validation failures come back as
// an *APIError with one message per rejected field.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	resp, body, err := c.do(ctx, http.MethodPost, "/api/register", in, false)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return apiError(resp.StatusCode, body)
	}
	return nil
}

// Login authenticates and writes the token and user through to the session
// store on success.
func (c *Client) Login(ctx context.Context, email, password string) (session.User, error) {
	payload := map[string]string{"email": email, "password": password}
	resp, body, err := c.do(ctx, http.MethodPost, "/api/login", payload, false)
	if err != nil {
		return session.User{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return session.User{}, apiError(resp.StatusCode, body)
	}

	var out loginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return session.User{}, fmt.Errorf("decode login response: %w", err)
	}
	if err := c.store.Login(out.Token, out.User); err != nil {
		return session.User{}, fmt.Errorf("persist session: %w", err)
	}
	return out.User, nil
}

// Logout drops the local session. The token itself stays valid until expiry;
// the server keeps no session state to revoke.
func (c *Client) Logout() error {
	return c.store.Logout()
}

// Products lists available products.
func (c *Client) Products(ctx context.Context, limit, offset int) ([]catalog.Product, error) {
	path := fmt.Sprintf("/api/products?limit=%d&offset=%d", limit, offset)
	return c.fetchList(ctx, path)
}

// Featured lists available products with stock on hand.
func (c *Client) Featured(ctx context.Context, limit int) ([]catalog.Product, error) {
	return c.fetchList(ctx, fmt.Sprintf("/api/products/featured?limit=%d", limit))
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id int64) (catalog.Product, error) {
	resp, body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, false)
	if err != nil {
		return catalog.Product{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return catalog.Product{}, apiError(resp.StatusCode, body)
	}
	var out productResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return catalog.Product{}, fmt.Errorf("decode product response: %w", err)
	}
	return out.Product, nil
}

// Me fetches the profile for the held token.
func (c *Client) Me(ctx context.Context) (session.User, error) {
	resp, body, err := c.do(ctx, http.MethodGet, "/api/me", nil, true)
	if err != nil {
		return session.User{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return session.User{}, apiError(resp.StatusCode, body)
	}
	var out session.User
	if err := json.Unmarshal(body, &out); err != nil {
		return session.User{}, fmt.Errorf("decode profile response: %w", err)
	}
	return out, nil
}

func (c *Client) fetchList(ctx context.Context, path string) ([]catalog.Product, error) {
	resp, body, err := c.do(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}
	var out listResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}
	return out.Products, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, authed bool) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.store.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

func apiError(status int, body []byte) error {
	fields := map[string]string{}
	if err := json.Unmarshal(body, &fields); err != nil && len(body) > 0 {
		fields = map[string]string{"general": string(body)}
	}
	return &APIError{Status: status, Fields: fields}
}
