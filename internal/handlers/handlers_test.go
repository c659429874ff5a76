package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/openmol/drugforge/internal/config"
	"github.com/openmol/drugforge/internal/handlers"
	"github.com/openmol/drugforge/internal/middleware"
	"github.com/openmol/drugforge/internal/models"
	"github.com/openmol/drugforge/internal/server"
	"github.com/openmol/drugforge/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the handlers under test into a bare Fiber app with the real
// error handler, an in-memory database, and an injectable upstream mock. The
// full assembly (metrics, swagger, health) is covered by the server package.
type testEnv struct {
	App    *fiber.App
	DB     *gorm.DB
	Tokens *services.TokenManager
}

func newTestEnv(t *testing.T, gemini services.Generator) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.GeneratedMolecule{},
		&models.DrugName{},
		&models.ResearchPaperBundle{},
		&models.GeneratedPaperBundle{},
		&models.TargetSearch{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		AppEnv:     "development",
		JWTSecret:  "handler-test-secret",
		SessionTTL: time.Hour,
	}
	tokens := services.NewTokenManager(cfg)
	protect := middleware.Protect(db, tokens)

	app := fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler})

	authHandler := &handlers.AuthHandler{DB: db, Tokens: tokens}
	moleculeHandler := &handlers.MoleculeHandler{DB: db, Gemini: gemini}
	drugNameHandler := &handlers.DrugNameHandler{DB: db, Gemini: gemini}
	paperHandler := &handlers.PaperHandler{DB: db}
	searchHandler := &handlers.SearchHandler{DB: db}
	proxyHandler := &handlers.ProxyHandler{Gemini: gemini}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/profile", protect, authHandler.Profile)

	protein := api.Group("/protein")
	protein.Get("/generatednewmolecule", protect, moleculeHandler.List)
	protein.Post("/generatenewmolecule/:id", protect, moleculeHandler.Generate)
	protein.Post("/generate-drug-name/:id", protect, drugNameHandler.Generate)
	protein.Get("/saved-drug-names", protect, drugNameHandler.List)
	protein.Get("/check-saved-drug-name", protect, drugNameHandler.CheckSaved)
	protein.Post("/save-research-papers", protect, paperHandler.SaveResearch)
	protein.Get("/saved-research-papers", protect, paperHandler.ListResearch)
	protein.Get("/check-saved-papers", protect, paperHandler.CheckResearch)
	protein.Post("/save-generated-research-paper", protect, paperHandler.SaveGenerated)
	protein.Get("/saved-generated-research-papers", protect, paperHandler.ListGenerated)
	protein.Get("/check-saved-generated-papers", protect, paperHandler.CheckGenerated)
	protein.Post("/convert-file-to-smiles", protect, searchHandler.ConvertFile)
	protein.Post("/rdkit-fingerprints", protect, searchHandler.Fingerprints)
	protein.Post("/docking", protect, searchHandler.Docking)
	protein.Post("/save-search", protect, searchHandler.Save)
	protein.Get("/saved-searches", protect, searchHandler.List)
	protein.Get("/check-saved-searches", protect, searchHandler.CheckSaved)
	protein.Post("/proxy/gemini", proxyHandler.ProxyGemini)

	return &testEnv{App: app, DB: db, Tokens: tokens}
}

// signupUser creates an account directly through the service layer and
// returns the user with a valid session cookie.
func (e *testEnv) signupUser(t *testing.T, username, email string) (*models.User, *http.Cookie) {
	t.Helper()
	user, err := services.CreateUser(e.DB, services.SignupInput{
		FirstName:       "Test",
		LastName:        "User",
		Username:        username,
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	token, err := e.Tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return user, &http.Cookie{Name: services.SessionCookie, Value: token}
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func (e *testEnv) request(t *testing.T, req *http.Request, cookie *http.Cookie) *http.Response {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := e.App.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}
