package controllers

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/BOVAGE/QuizBank/mailer"
	"github.com/BOVAGE/QuizBank/middlewares"
	"github.com/BOVAGE/QuizBank/models"
	"github.com/BOVAGE/QuizBank/util"
	"github.com/gofiber/fiber/v2"
)

func GetAllUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	search := c.Query("search")

	where := ""
	args := []interface{}{}
	if search != "" {
		where = "WHERE username ILIKE $1 OR email ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := util.DB.QueryRow("SELECT COUNT(*) FROM users "+where, args...).Scan(&total); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	query := fmt.Sprintf(
		`SELECT id, username, email, bio, avatar, is_verified, is_staff, is_superuser, date_joined
		 FROM users %s ORDER BY date_joined DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, (page-1)*limit)
	rows, err := util.DB.Query(query, args...)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	defer rows.Close()

	users := []fiber.Map{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Bio, &u.Avatar,
			&u.IsVerified, &u.IsStaff, &u.IsSuperuser, &u.DateJoined); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Database error",
				"error":   err.Error(),
			})
		}
		users = append(users, fiber.Map{
			"id":           u.ID,
			"username":     u.Username,
			"email":        u.Email,
			"bio":          u.Bio,
			"avatar":       u.Avatar,
			"is_verified":  u.IsVerified,
			"is_staff":     u.IsStaff,
			"is_superuser": u.IsSuperuser,
			"date_joined":  u.DateJoined,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "All users",
		"data": fiber.Map{
			"users": users,
			"pagination": fiber.Map{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}

func MakeStaff(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid user id",
			"error":   err.Error(),
		})
	}
	user, err := middlewares.LoadUser(id)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "User not found",
			"error":   "",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	if user.IsStaff {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "failed",
			"message": fmt.Sprintf("%s is a staff user", user.Username),
			"data":    []string{},
		})
	}

	if _, err := util.DB.Exec("UPDATE users SET is_staff = true WHERE id = $1", user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update user",
			"error":   err.Error(),
		})
	}
	mailer.Default.Send(mailer.TemplateNowStaff, user.Email, Cfg.BaseURL, Cfg.SiteName)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("%s has been made a staff and an email has been sent to %s", user.Username, user.Email),
		"data":    []string{},
	})
}

func RemoveStaff(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid user id",
			"error":   err.Error(),
		})
	}
	user, err := middlewares.LoadUser(id)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "User not found",
			"error":   "",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	if !user.IsStaff {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "failed",
			"message": fmt.Sprintf("%s is not a staff", user.Username),
			"data":    []string{},
		})
	}

	if _, err := util.DB.Exec("UPDATE users SET is_staff = false WHERE id = $1", user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update user",
			"error":   err.Error(),
		})
	}
	mailer.Default.Send(mailer.TemplateNoLongerStaff, user.Email, Cfg.BaseURL, Cfg.SiteName)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("%s is no longer a staff and an email has been sent to %s", user.Username, user.Email),
		"data":    []string{},
	})
}
