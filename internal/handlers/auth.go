// Login and user administration. Accounts are created by an admin rather
// than self-registered — the Rowdy Cup roster is a couple dozen people who
// all know each other.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/config"
	"github.com/rowdycup/scoreboard/internal/middleware"
	"github.com/rowdycup/scoreboard/internal/models"
)

// LoginRequest is the JSON body for POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed session token plus the basics the client
// needs without a second round trip.
type LoginResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// CreateUserRequest is the JSON body for POST /api/v1/users (admin only).
type CreateUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	Role        string `json:"role"` // "admin" or "player"; defaults to player
}

// Login returns a handler for POST /api/v1/auth/login.
// Verifies the password against the stored bcrypt hash and issues a JWT.
func Login(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Username == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "username and password are required",
			})
		}

		var user models.User
		if err := db.First(&user, "username = ?", req.Username).Error; err != nil {
			// Same response for unknown user and wrong password — don't
			// leak which usernames exist.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid credentials",
			})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid credentials",
			})
		}

		token, err := middleware.IssueToken(cfg, &user)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to issue token",
			})
		}

		return c.JSON(LoginResponse{
			Token:       token,
			UserID:      user.ID.String(),
			DisplayName: user.DisplayName,
			Role:        string(user.Role),
		})
	}
}

// CreateUser returns a handler for POST /api/v1/users.
// Admin only (enforced by RequireRole on the route).
func CreateUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Username == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "username and password are required",
			})
		}

		role := models.UserRolePlayer
		if req.Role == string(models.UserRoleAdmin) {
			role = models.UserRoleAdmin
		}

		displayName := req.DisplayName
		if displayName == "" {
			displayName = req.Username
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to hash password",
			})
		}

		user := models.User{
			Username:     req.Username,
			DisplayName:  displayName,
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := db.Create(&user).Error; err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "username already taken",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":          user.ID.String(),
			"username":    user.Username,
			"displayName": user.DisplayName,
			"role":        string(user.Role),
		})
	}
}
