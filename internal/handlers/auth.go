package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/openmol/drugforge/internal/middleware"
	"github.com/openmol/drugforge/internal/services"
	"github.com/openmol/drugforge/internal/types"
	"github.com/openmol/drugforge/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles account and session routes
type AuthHandler struct {
	DB     *gorm.DB
	Tokens *services.TokenManager
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup
// @Summary Create an account
// @Description Create a user account and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.SignupInput true "Signup fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in services.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return types.Validation("All fields are required")
	}

	user, err := services.CreateUser(h.DB, in)
	if err != nil {
		return err
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		log.Printf("Failed to issue session token: %v", err)
		return types.Storage(err)
	}
	h.Tokens.SetCookie(c, token)

	return utils.SuccessResponse(c, fiber.Map{
		"success": true,
		"message": "User created successfully",
		"user":    user,
	}, fiber.StatusCreated)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verify credentials and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return types.Validation("All fields are required")
	}
	if in.Email == "" || in.Password == "" {
		return types.Validation("All fields are required")
	}

	user, err := services.FindUserByEmail(h.DB, in.Email)
	if err != nil {
		return err
	}
	if user == nil || !services.VerifyPassword(in.Password, user.Password) {
		return types.Validation("Invalid Credentials")
	}

	if err := services.TouchLastLogin(h.DB, user.ID); err != nil {
		log.Printf("Failed to update last login for %s: %v", user.ID, err)
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		return types.Storage(err)
	}
	h.Tokens.SetCookie(c, token)

	return utils.SuccessResponse(c, fiber.Map{
		"success": true,
		"message": "Logged in successfully",
		"user":    user,
	}, fiber.StatusOK)
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.MessageResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.Tokens.ClearCookie(c)
	return utils.MessageResponse(c, "Logged out successfully")
}

// Profile handles GET /api/auth/profile
// @Summary Current user profile
// @Description Return the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return types.Authentication("Unauthorized - No Token Provided")
	}
	return utils.SuccessResponse(c, fiber.Map{
		"success": true,
		"user":    user,
	}, fiber.StatusOK)
}
