package controllers

import (
	"database/sql"
	"time"

	"github.com/BOVAGE/QuizBank/models"
	"github.com/BOVAGE/QuizBank/util"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const feedbackQuery = `
	SELECT f.id, f.question_id, f.issue, f.explanation, cu.username,
	       f.date_created, f.is_resolved, ru.username, f.date_resolved
	FROM feedback f
	JOIN users cu ON cu.id = f.created_by_id
	LEFT JOIN users ru ON ru.id = f.resolved_by_id`

func scanFeedback(row rowScanner) (fiber.Map, error) {
	var (
		id, questionID     int
		issue, explanation string
		createdBy          string
		dateCreated        time.Time
		isResolved         bool
		resolvedBy         *string
		dateResolved       *time.Time
	)
	err := row.Scan(&id, &questionID, &issue, &explanation, &createdBy,
		&dateCreated, &isResolved, &resolvedBy, &dateResolved)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"id":            id,
		"question":      questionID,
		"issue":         issue,
		"explanation":   explanation,
		"created_by":    createdBy,
		"date_created":  dateCreated,
		"is_resolved":   isResolved,
		"resolved_by":   resolvedBy,
		"date_resolved": dateResolved,
	}, nil
}

func CreateFeedback(c *fiber.Ctx) error {
	validate := validator.New()
	user := c.Locals("user").(models.User)

	var body struct {
		Question    int    `json:"question" validate:"required"`
		Issue       string `json:"issue" validate:"required"`
		Explanation string `json:"explanation" validate:"required"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to parse request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	var exists bool
	if err := util.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1)", body.Question,
	).Scan(&exists); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	if !exists {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   fiber.Map{"question": "Question does not exist"},
		})
	}

	var id int
	var dateCreated time.Time
	err := util.DB.QueryRow(
		`INSERT INTO feedback (question_id, issue, explanation, created_by_id)
		 VALUES ($1, $2, $3, $4) RETURNING id, date_created`,
		body.Question, body.Issue, body.Explanation, user.ID,
	).Scan(&id, &dateCreated)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create feedback",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Feedback submitted successfully",
		"data": fiber.Map{
			"id":           id,
			"question":     body.Question,
			"issue":        body.Issue,
			"explanation":  body.Explanation,
			"created_by":   user.Username,
			"date_created": dateCreated,
		},
	})
}

func GetAllFeedback(c *fiber.Ctx) error {
	rows, err := util.DB.Query(feedbackQuery + " ORDER BY f.date_created DESC")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	defer rows.Close()

	feedback := []fiber.Map{}
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Database error",
				"error":   err.Error(),
			})
		}
		feedback = append(feedback, f)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "All feedback",
		"data":    feedback,
	})
}

func GetFeedbackByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid feedback id",
			"error":   err.Error(),
		})
	}
	f, err := scanFeedback(util.DB.QueryRow(feedbackQuery+" WHERE f.id = $1", id))
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Feedback not found",
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
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Feedback details",
		"data":    f,
	})
}

func EditFeedback(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid feedback id",
			"error":   err.Error(),
		})
	}

	var body struct {
		Issue       *string `json:"issue"`
		Explanation *string `json:"explanation"`
		IsResolved  *bool   `json:"is_resolved"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to parse request body",
			"error":   err.Error(),
		})
	}

	var current models.Feedback
	err = util.DB.QueryRow(
		"SELECT id, issue, explanation, is_resolved, resolved_by_id, date_resolved FROM feedback WHERE id = $1",
		id,
	).Scan(&current.ID, &current.Issue, &current.Explanation, &current.IsResolved,
		&current.ResolvedByID, &current.DateResolved)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Feedback not found",
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

	if body.Issue != nil {
		current.Issue = *body.Issue
	}
	if body.Explanation != nil {
		current.Explanation = *body.Explanation
	}
	if body.IsResolved != nil && *body.IsResolved != current.IsResolved {
		if *body.IsResolved {
			now := time.Now()
			current.IsResolved = true
			current.ResolvedByID = &user.ID
			current.DateResolved = &now
		} else {
			current.IsResolved = false
			current.ResolvedByID = nil
			current.DateResolved = nil
		}
	}

	_, err = util.DB.Exec(
		`UPDATE feedback SET issue = $1, explanation = $2, is_resolved = $3,
		        resolved_by_id = $4, date_resolved = $5
		 WHERE id = $6`,
		current.Issue, current.Explanation, current.IsResolved,
		current.ResolvedByID, current.DateResolved, id,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update feedback",
			"error":   err.Error(),
		})
	}

	f, err := scanFeedback(util.DB.QueryRow(feedbackQuery+" WHERE f.id = $1", id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Feedback updated successfully",
		"data":    f,
	})
}

func DeleteFeedback(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid feedback id",
			"error":   err.Error(),
		})
	}
	res, err := util.DB.Exec("DELETE FROM feedback WHERE id = $1", id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete feedback",
			"error":   err.Error(),
		})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Feedback not found",
			"error":   "",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Feedback deleted successfully",
		"data":    []string{},
	})
}
