package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/openmol/drugforge/internal/config"
	"github.com/openmol/drugforge/internal/middleware"
	"github.com/openmol/drugforge/internal/models"
	"github.com/openmol/drugforge/internal/server"
	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/tests/helpers"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupProtected(t *testing.T) (*fiber.App, *gorm.DB, *services.TokenManager) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	tokens := services.NewTokenManager(&config.Config{
		JWTSecret:  "middleware-test-secret",
		SessionTTL: time.Hour,
	})

	app := fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler})
	app.Get("/whoami", middleware.Protect(db, tokens), func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		return c.JSON(fiber.Map{"username": user.Username})
	})

	return app, db, tokens
}

func request(t *testing.T, app *fiber.App, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func TestProtectNoCookie(t *testing.T) {
	app, _, _ := setupProtected(t)

	resp := request(t, app, nil)
	helpers.AssertStatus(t, resp, http.StatusUnauthorized)
	helpers.AssertErrorMessage(t, resp, "Unauthorized - No Token Provided")
}

func TestProtectInvalidToken(t *testing.T) {
	app, _, _ := setupProtected(t)

	resp := request(t, app, &http.Cookie{Name: services.SessionCookie, Value: "garbage"})
	helpers.AssertStatus(t, resp, http.StatusUnauthorized)
	helpers.AssertErrorMessage(t, resp, "Unauthorized - Invalid Token")
}

func TestProtectDeletedUser(t *testing.T) {
	app, _, tokens := setupProtected(t)

	// A valid token for a user that no longer exists.
	token, err := tokens.Issue("00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	resp := request(t, app, &http.Cookie{Name: services.SessionCookie, Value: token})
	helpers.AssertStatus(t, resp, http.StatusUnauthorized)
	helpers.AssertErrorMessage(t, resp, "Unauthorized - User Not Found")
}

func TestProtectLoadsUser(t *testing.T) {
	app, db, tokens := setupProtected(t)

	user, err := services.CreateUser(db, services.SignupInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	token, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	resp := request(t, app, &http.Cookie{Name: services.SessionCookie, Value: token})
	helpers.AssertStatus(t, resp, http.StatusOK)

	var body struct {
		Username string `json:"username"`
	}
	helpers.ParseJSON(t, resp, &body)
	if body.Username != "ada" {
		t.Errorf("Expected loaded user, got %+v", body)
	}
}
