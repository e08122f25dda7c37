package middlewares

import (
	"database/sql"

	"github.com/BOVAGE/QuizBank/models"
	"github.com/BOVAGE/QuizBank/util"
	"github.com/gofiber/fiber/v2"
)

func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":  "error",
		"message": "The requested endpoint was not found on the server",
		"error":   "",
	})
}

const userQuery = `SELECT id, username, email, password, first_name, last_name, bio, avatar,
              is_verified, is_staff, is_superuser, password_changed_at, last_login, date_joined
          FROM users WHERE id = $1`

// LoadUser fetches the full user row for an authenticated request.
func LoadUser(id int) (models.User, error) {
	var user models.User
	row := util.DB.QueryRow(userQuery, id)
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Bio, &user.Avatar, &user.IsVerified, &user.IsStaff,
		&user.IsSuperuser, &user.PasswordChangedAt, &user.LastLogin, &user.DateJoined,
	)
	return user, err
}

// Protected resolves the bearer token into a user and stores it in the
// request context. Tokens issued before the user's last password change are
// rejected.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "No token provided",
				"error":   "",
			})
		}

		claims, err := util.VerifyAccessToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		userID, err := util.ClaimsUserID(claims)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid token payload",
				"error":   "",
			})
		}

		user, err := LoadUser(userID)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status":  "error",
					"message": "User not found",
					"error":   "",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Database error",
				"error":   err.Error(),
			})
		}

		if err := util.IsTokenValid(claims, user); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": err.Error(),
				"error":   "",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// StaffOnly rejects non-staff users. Must run after Protected.
func StaffOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.User)
		if !ok || !user.IsStaff {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "Only staff users can access this endpoint",
				"error":   "",
			})
		}
		return c.Next()
	}
}
