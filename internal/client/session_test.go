package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/openmol/drugforge/internal/client"
)

// fakeAPI serves the auth endpoints with canned responses and tracks the
// session cookie across calls the way the real server does.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := readJSON(r, &creds); err != nil || creds.Password != "secret1" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"message":"Invalid Credentials"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "session-1", Path: "/"})
		w.Write([]byte(`{"success":true,"message":"Logged in successfully","user":{"id":"u1","username":"ada","email":"ada@example.com"}}`))
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "", Path: "/", MaxAge: -1})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Logged out successfully"}`))
	})
	mux.HandleFunc("/api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value != "session-1" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"Unauthorized - No Token Provided"}`))
			return
		}
		w.Write([]byte(`{"success":true,"user":{"id":"u1","username":"ada","email":"ada@example.com"}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func readJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

func TestLoginStoresUserAndSession(t *testing.T) {
	api := fakeAPI(t)
	statePath := filepath.Join(t.TempDir(), "session.json")

	store, err := client.New(api.URL, statePath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if store.User != nil {
		t.Fatal("Expected fresh store to be logged out")
	}

	if err := store.Login("ada@example.com", "secret1"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if store.User == nil || store.User.Username != "ada" {
		t.Fatalf("Expected user after login, got %+v", store.User)
	}
	if store.Loading {
		t.Error("Loading flag not reset after login")
	}

	// The session cookie rides along on the next authenticated call.
	if err := store.CheckAuth(); err != nil {
		t.Fatalf("CheckAuth failed: %v", err)
	}
	if store.User == nil {
		t.Fatal("Expected user to survive CheckAuth")
	}
}

func TestLoginFailureSurfacesMessage(t *testing.T) {
	api := fakeAPI(t)

	store, err := client.New(api.URL, "")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	err = store.Login("ada@example.com", "wrong")
	if err == nil || err.Error() != "Invalid Credentials" {
		t.Errorf("Expected server message as error, got %v", err)
	}
	if store.User != nil {
		t.Error("Expected no user after failed login")
	}
}

func TestUserPersistsAcrossRestarts(t *testing.T) {
	api := fakeAPI(t)
	statePath := filepath.Join(t.TempDir(), "session.json")

	store, err := client.New(api.URL, statePath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Login("ada@example.com", "secret1"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// A fresh store from the same state file starts with the persisted user
	// but no session cookie, so CheckAuth resets it to logged out.
	reloaded, err := client.New(api.URL, statePath)
	if err != nil {
		t.Fatalf("Failed to reload store: %v", err)
	}
	if reloaded.User == nil || reloaded.User.Email != "ada@example.com" {
		t.Fatalf("Expected persisted user, got %+v", reloaded.User)
	}

	if err := reloaded.CheckAuth(); err == nil {
		t.Error("Expected CheckAuth to fail without a session cookie")
	}
	if reloaded.User != nil {
		t.Error("Expected failed CheckAuth to reset the user")
	}
}

func TestLogoutClearsUser(t *testing.T) {
	api := fakeAPI(t)
	statePath := filepath.Join(t.TempDir(), "session.json")

	store, err := client.New(api.URL, statePath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Login("ada@example.com", "secret1"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if store.User != nil {
		t.Error("Expected no user after logout")
	}

	// The cleared state also lands in the state file.
	reloaded, err := client.New(api.URL, statePath)
	if err != nil {
		t.Fatalf("Failed to reload store: %v", err)
	}
	if reloaded.User != nil {
		t.Error("Expected persisted state to be logged out")
	}
}
