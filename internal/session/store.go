package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// User is the client-side view of the authenticated shopper, as returned by
// the login endpoint.
type User struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type state struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Store keeps the issued token and user durable across process restarts,
// the way the browser storefront keeps them across page reloads. A missing
// or corrupt session file is treated as logged out, never as an error.
type Store struct {
	path string

	mu    sync.Mutex
	token string
	user  *User
}

// Open loads the session at path. When the file is absent, unreadable or
// unparseable the store starts logged out and a corrupt file is removed.
func Open(path string) *Store {
	s := &Store{path: path}

	payload, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var st state
	if err := json.Unmarshal(payload, &st); err != nil || st.Token == "" || st.User == nil {
		// Half a session is no session.
		_ = os.Remove(path)
		return s
	}

	s.token = st.Token
	s.user = st.User
	return s
}

// Login stores the token and user and writes them through to disk.
func (s *Store) Login(token string, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = &user
	return s.save()
}

// Logout clears the session in memory and on disk.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Authenticated reports whether both a token and a user are held.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// Token returns the held token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the held user and whether one is present.
func (s *Store) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Store) save() error {
	payload, err := json.Marshal(state{Token: s.token, User: s.user})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, payload, 0o600)
}
