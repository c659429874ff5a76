package services

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openmol/drugforge/internal/models"
	"github.com/openmol/drugforge/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// SignupInput carries the fields required to create an account.
type SignupInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// CreateUser validates the signup input, enforces email/username uniqueness
// (email checked first for message priority), and stores the user with the
// password bcrypt-hashed.
func CreateUser(db *gorm.DB, in SignupInput) (*models.User, error) {
	if in.FirstName == "" || in.LastName == "" || in.Username == "" ||
		in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, types.Validation("All fields are required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	if !emailPattern.MatchString(email) {
		return nil, types.Validation("Please use a valid email address")
	}
	if len(username) < 3 {
		return nil, types.Validation("Username must be at least 3 characters long")
	}
	if len(in.Password) < 6 {
		return nil, types.Validation("Password must be at least 6 characters long")
	}

	var existing models.User
	err := db.Where("email = ? OR username = ?", email, username).First(&existing).Error
	if err == nil {
		if existing.Email == email {
			return nil, types.Conflict("Email already exists")
		}
		return nil, types.Conflict("Username already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.Storage(err)
	}

	if in.Password != in.ConfirmPassword {
		return nil, types.Validation("Passwords do not match.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, types.Storage(err)
	}

	user := models.User{
		ID:        uuid.New().String(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  username,
		Email:     email,
		Password:  string(hash),
		LastLogin: time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		// The unique indexes backstop the advisory lookup above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.Conflict("Email already exists")
		}
		return nil, types.Storage(err)
	}

	return &user, nil
}

// FindUserByEmail performs an exact-match lookup; returns nil when absent.
func FindUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, types.Storage(err)
	}
	return &user, nil
}

// FindUserByID resolves a session subject to its user record.
func FindUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, types.Storage(err)
	}
	return &user, nil
}

// VerifyPassword compares a plaintext candidate against the stored hash.
// bcrypt's comparison is constant-time over the hash output.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// TouchLastLogin sets the user's last-login timestamp to now.
func TouchLastLogin(db *gorm.DB, userID string) error {
	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_login", time.Now()).Error; err != nil {
		return types.Storage(err)
	}
	return nil
}
