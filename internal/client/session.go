// Package client is a Go client for the drugforge auth API, mirroring the
// SPA's session store: current user, loading flags, and a cookie-backed
// session carried by the embedded HTTP client.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"

	"github.com/openmol/drugforge/internal/models"
)

// Store holds the client-side session state. Only User survives restarts;
// Loading and CheckingAuth always reset to their zero values.
type Store struct {
	User         *models.User
	Loading      bool
	CheckingAuth bool

	baseURL   string
	statePath string
	http      *http.Client
}

// SignupFields are the inputs to Signup.
type SignupFields struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// New creates a Store for the given API base URL (e.g. http://localhost:5000).
// The persisted user, if any, is reloaded from statePath; an unreadable state
// file is treated as logged out.
func New(baseURL, statePath string) (*Store, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	s := &Store{
		baseURL:   baseURL,
		statePath: statePath,
		http:      &http.Client{Jar: jar},
	}
	s.loadState()
	return s, nil
}

// Signup creates an account and replaces the current user on success.
func (s *Store) Signup(fields SignupFields) error {
	s.Loading = true
	defer func() { s.Loading = false }()

	resp, err := s.post("/api/auth/signup", fields)
	if err != nil {
		return err
	}
	s.setUser(resp.User)
	return nil
}

// Login starts a session and replaces the current user on success.
func (s *Store) Login(email, password string) error {
	s.Loading = true
	defer func() { s.Loading = false }()

	resp, err := s.post("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	s.setUser(resp.User)
	return nil
}

// Logout clears the session and the current user.
func (s *Store) Logout() error {
	_, err := s.post("/api/auth/logout", nil)
	s.setUser(nil)
	return err
}

// CheckAuth refreshes the current user from the profile endpoint. Any failure
// resets the user to nil; callers treat that as logged out.
func (s *Store) CheckAuth() error {
	s.CheckingAuth = true
	defer func() { s.CheckingAuth = false }()

	req, err := http.NewRequest(http.MethodGet, s.baseURL+"/api/auth/profile", nil)
	if err != nil {
		s.setUser(nil)
		return err
	}

	resp, err := s.do(req)
	if err != nil {
		s.setUser(nil)
		return err
	}
	s.setUser(resp.User)
	return nil
}

func (s *Store) post(path string, body any) (*authResponse, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.do(req)
}

func (s *Store) do(req *http.Request) (*authResponse, error) {
	httpResp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var decoded authResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		if decoded.Message != "" {
			return nil, fmt.Errorf("%s", decoded.Message)
		}
		return nil, fmt.Errorf("http %d", httpResp.StatusCode)
	}
	return &decoded, nil
}

// setUser replaces the user wholesale and persists it.
func (s *Store) setUser(user *models.User) {
	s.User = user
	s.saveState()
}

type persistedState struct {
	User *models.User `json:"user"`
}

func (s *Store) loadState() {
	if s.statePath == "" {
		return
	}
	raw, err := os.ReadFile(s.statePath)
	if err != nil {
		return
	}
	var state persistedState
	if err := json.Unmarshal(raw, &state); err != nil {
		return
	}
	s.User = state.User
}

func (s *Store) saveState() {
	if s.statePath == "" {
		return
	}
	raw, err := json.MarshalIndent(persistedState{User: s.User}, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.statePath), 0o755)
	_ = os.WriteFile(s.statePath, raw, 0o600)
}
