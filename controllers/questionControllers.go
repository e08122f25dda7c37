package controllers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/BOVAGE/QuizBank/models"
	"github.com/BOVAGE/QuizBank/util"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const publicQuestionQuery = `
	SELECT q.id, q.question, q.difficulty, q.type, c.slug, q.correct_answer,
	       q.explanation, q.image,
	       COALESCE(json_agg(ia.option ORDER BY ia.id) FILTER (WHERE ia.option IS NOT NULL), '[]')
	FROM questions q
	JOIN categories c ON c.id = q.category_id
	LEFT JOIN incorrect_answers ia ON ia.question_id = q.id`

const detailQuestionQuery = `
	SELECT q.id, q.question, q.difficulty, q.type, c.slug, q.correct_answer,
	       q.explanation, q.image, q.is_verified, q.verified_by_id, q.date_verified,
	       q.date_created, cu.username, vu.username,
	       COALESCE(json_agg(ia.option ORDER BY ia.id) FILTER (WHERE ia.option IS NOT NULL), '[]')
	FROM questions q
	JOIN categories c ON c.id = q.category_id
	LEFT JOIN users cu ON cu.id = q.created_by_id
	LEFT JOIN users vu ON vu.id = q.verified_by_id
	LEFT JOIN incorrect_answers ia ON ia.question_id = q.id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPublicQuestion(row rowScanner) (fiber.Map, error) {
	var (
		id                              int
		question, difficulty, qType     string
		categorySlug, correct, expl, im string
		optionsJSON                     []byte
	)
	err := row.Scan(&id, &question, &difficulty, &qType, &categorySlug,
		&correct, &expl, &im, &optionsJSON)
	if err != nil {
		return nil, err
	}
	options := []string{}
	if err := json.Unmarshal(optionsJSON, &options); err != nil {
		return nil, err
	}
	return fiber.Map{
		"id":                id,
		"question":          question,
		"difficulty":        difficulty,
		"type":              qType,
		"category":          categorySlug,
		"correct_answer":    correct,
		"incorrect_answers": options,
		"explanation":       expl,
		"image":             im,
	}, nil
}

func scanDetailQuestion(row rowScanner) (fiber.Map, error) {
	var (
		id                              int
		question, difficulty, qType     string
		categorySlug, correct, expl, im string
		isVerified                      bool
		verifiedByID                    *int
		dateVerified                    *time.Time
		dateCreated                     time.Time
		createdBy, verifiedBy           *string
		optionsJSON                     []byte
	)
	err := row.Scan(&id, &question, &difficulty, &qType, &categorySlug,
		&correct, &expl, &im, &isVerified, &verifiedByID, &dateVerified,
		&dateCreated, &createdBy, &verifiedBy, &optionsJSON)
	if err != nil {
		return nil, err
	}
	if _, err := models.NewVerification(isVerified, verifiedByID, dateVerified); err != nil {
		return nil, err
	}
	options := []string{}
	if err := json.Unmarshal(optionsJSON, &options); err != nil {
		return nil, err
	}
	return fiber.Map{
		"id":                id,
		"question":          question,
		"difficulty":        difficulty,
		"type":              qType,
		"category":          categorySlug,
		"correct_answer":    correct,
		"incorrect_answers": options,
		"explanation":       expl,
		"image":             im,
		"is_verified":       isVerified,
		"created_by":        createdBy,
		"verified_by":       verifiedBy,
		"date_verified":     dateVerified,
		"date_created":      dateCreated,
	}, nil
}

func collectQuestions(rows *sql.Rows, scan func(rowScanner) (fiber.Map, error)) ([]fiber.Map, error) {
	defer rows.Close()
	questions := []fiber.Map{}
	for rows.Next() {
		q, err := scan(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// incorrectAnswerFields mirrors the three option slots of the request body.
// Empty slots are skipped, order is preserved.
type incorrectAnswerFields struct {
	IncorrectAnswer1 string `json:"incorrect_answer_1"`
	IncorrectAnswer2 string `json:"incorrect_answer_2"`
	IncorrectAnswer3 string `json:"incorrect_answer_3"`
}

func (f incorrectAnswerFields) options() []string {
	options := []string{}
	for _, o := range []string{f.IncorrectAnswer1, f.IncorrectAnswer2, f.IncorrectAnswer3} {
		if strings.TrimSpace(o) != "" {
			options = append(options, o)
		}
	}
	return options
}

func categoryIDBySlug(slugValue string) (int, error) {
	var id int
	err := util.DB.QueryRow("SELECT id FROM categories WHERE slug = $1", slugValue).Scan(&id)
	return id, err
}

func GetPublicQuestions(c *fiber.Ctx) error {
	search := c.Query("search")

	var (
		rows *sql.Rows
		err  error
	)
	if search != "" {
		// Search overrides every other filter and keeps the default cap.
		query := publicQuestionQuery + `
			WHERE q.is_verified = true AND (q.question ILIKE $1 OR q.explanation ILIKE $1)
			GROUP BY q.id, c.slug
			LIMIT $2`
		rows, err = util.DB.Query(query, "%"+search+"%", models.PublicListCap)
	} else {
		where := []string{"q.is_verified = true"}
		args := []interface{}{}
		if category := c.Query("category"); category != "" {
			args = append(args, category)
			where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
		}
		if difficulty := c.Query("difficulty"); difficulty != "" {
			args = append(args, difficulty)
			where = append(where, fmt.Sprintf("q.difficulty = $%d", len(args)))
		}
		if qType := c.Query("type"); qType != "" {
			args = append(args, qType)
			where = append(where, fmt.Sprintf("q.type = $%d", len(args)))
		}
		args = append(args, models.CapLimit(c.Query("limit")))
		query := fmt.Sprintf("%s WHERE %s GROUP BY q.id, c.slug %s LIMIT $%d",
			publicQuestionQuery, strings.Join(where, " AND "),
			models.RandomOrderClause(), len(args))
		rows, err = util.DB.Query(query, args...)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	questions, err := collectQuestions(rows, scanPublicQuestion)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Questions",
		"data":    questions,
	})
}

func CreateQuestion(c *fiber.Ctx) error {
	validate := validator.New()
	user := c.Locals("user").(models.User)

	var body struct {
		Question              string                `json:"question" validate:"required"`
		Difficulty            string                `json:"difficulty" validate:"required,oneof=easy medium hard"`
		Type                  string                `json:"type" validate:"required"`
		Category              string                `json:"category" validate:"required"`
		CorrectAnswer         string                `json:"correct_answer" validate:"required"`
		IncorrectAnswerFields incorrectAnswerFields `json:"incorrect_answer_fields"`
		Explanation           string                `json:"explanation"`
		Image                 string                `json:"image"`
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
	if !models.ValidType(body.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   fiber.Map{"type": fmt.Sprintf("%q is not a valid choice.", body.Type)},
		})
	}

	options := body.IncorrectAnswerFields.options()
	if err := models.ValidateIncorrectAnswers(body.Type, options); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   fiber.Map{"incorrect_answer_fields": err.Error()},
		})
	}

	categoryID, err := categoryIDBySlug(body.Category)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   fiber.Map{"category": fmt.Sprintf("Category with slug %q does not exist", body.Category)},
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	tx, err := util.DB.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	defer tx.Rollback()

	var questionID int
	var dateCreated time.Time
	err = tx.QueryRow(
		`INSERT INTO questions (question, difficulty, type, category_id, correct_answer,
		                        explanation, image, created_by_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, date_created`,
		body.Question, body.Difficulty, body.Type, categoryID, body.CorrectAnswer,
		body.Explanation, body.Image, user.ID,
	).Scan(&questionID, &dateCreated)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create question",
			"error":   err.Error(),
		})
	}
	for _, option := range options {
		if _, err := tx.Exec(
			"INSERT INTO incorrect_answers (question_id, option) VALUES ($1, $2)",
			questionID, option,
		); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to create question",
				"error":   err.Error(),
			})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create question",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Question created successfully and pending verification",
		"data": fiber.Map{
			"id":                questionID,
			"question":          body.Question,
			"difficulty":        body.Difficulty,
			"type":              body.Type,
			"category":          body.Category,
			"correct_answer":    body.CorrectAnswer,
			"incorrect_answers": options,
			"explanation":       body.Explanation,
			"image":             body.Image,
			"date_created":      dateCreated,
		},
	})
}

func GetQuestionByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid question id",
			"error":   err.Error(),
		})
	}
	row := util.DB.QueryRow(publicQuestionQuery+" WHERE q.id = $1 GROUP BY q.id, c.slug", id)
	question, err := scanPublicQuestion(row)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Question not found",
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
		"message": "Question details",
		"data":    question,
	})
}

func EditQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid question id",
			"error":   err.Error(),
		})
	}

	var body struct {
		Question              *string                `json:"question"`
		Difficulty            *string                `json:"difficulty"`
		Type                  *string                `json:"type"`
		Category              *string                `json:"category"`
		CorrectAnswer         *string                `json:"correct_answer"`
		IncorrectAnswerFields *incorrectAnswerFields `json:"incorrect_answer_fields"`
		Explanation           *string                `json:"explanation"`
		Image                 *string                `json:"image"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to parse request body",
			"error":   err.Error(),
		})
	}
	if body.Difficulty != nil && !models.ValidDifficulty(*body.Difficulty) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   fiber.Map{"difficulty": fmt.Sprintf("%q is not a valid choice.", *body.Difficulty)},
		})
	}
	if body.Type != nil && !models.ValidType(*body.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   fiber.Map{"type": fmt.Sprintf("%q is not a valid choice.", *body.Type)},
		})
	}

	tx, err := util.DB.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	defer tx.Rollback()

	var current struct {
		question, difficulty, qType string
		categoryID                  int
		correct, expl, image        string
	}
	err = tx.QueryRow(
		`SELECT question, difficulty, type, category_id, correct_answer, explanation, image
		 FROM questions WHERE id = $1`, id,
	).Scan(&current.question, &current.difficulty, &current.qType, &current.categoryID,
		&current.correct, &current.expl, &current.image)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Question not found",
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

	if body.Question != nil {
		current.question = *body.Question
	}
	if body.Difficulty != nil {
		current.difficulty = *body.Difficulty
	}
	if body.Type != nil {
		current.qType = *body.Type
	}
	if body.Category != nil {
		categoryID, err := categoryIDBySlug(*body.Category)
		if err == sql.ErrNoRows {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Validation failed",
				"error":   fiber.Map{"category": fmt.Sprintf("Category with slug %q does not exist", *body.Category)},
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Database error",
				"error":   err.Error(),
			})
		}
		current.categoryID = categoryID
	}
	if body.CorrectAnswer != nil {
		current.correct = *body.CorrectAnswer
	}
	if body.Explanation != nil {
		current.expl = *body.Explanation
	}
	if body.Image != nil {
		current.image = *body.Image
	}

	_, err = tx.Exec(
		`UPDATE questions SET question = $1, difficulty = $2, type = $3, category_id = $4,
		        correct_answer = $5, explanation = $6, image = $7
		 WHERE id = $8`,
		current.question, current.difficulty, current.qType, current.categoryID,
		current.correct, current.expl, current.image, id,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update question",
			"error":   err.Error(),
		})
	}

	if body.IncorrectAnswerFields != nil {
		options := body.IncorrectAnswerFields.options()
		if err := models.ValidateIncorrectAnswers(current.qType, options); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Validation failed",
				"error":   fiber.Map{"incorrect_answer_fields": err.Error()},
			})
		}
		if _, err := tx.Exec("DELETE FROM incorrect_answers WHERE question_id = $1", id); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to update question",
				"error":   err.Error(),
			})
		}
		for _, option := range options {
			if _, err := tx.Exec(
				"INSERT INTO incorrect_answers (question_id, option) VALUES ($1, $2)",
				id, option,
			); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"status":  "error",
					"message": "Failed to update question",
					"error":   err.Error(),
				})
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update question",
			"error":   err.Error(),
		})
	}

	row := util.DB.QueryRow(detailQuestionQuery+" WHERE q.id = $1 GROUP BY q.id, c.slug, cu.username, vu.username", id)
	question, err := scanDetailQuestion(row)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Question updated successfully",
		"data":    question,
	})
}

func DeleteQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid question id",
			"error":   err.Error(),
		})
	}
	res, err := util.DB.Exec("DELETE FROM questions WHERE id = $1", id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete question",
			"error":   err.Error(),
		})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Question not found",
			"error":   "",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Question deleted successfully",
		"data":    []string{},
	})
}

func listDetailQuestions(c *fiber.Ctx, where string, args ...interface{}) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}

	countWhere := strings.ReplaceAll(where, "q.", "")
	var total int
	if err := util.DB.QueryRow("SELECT COUNT(*) FROM questions "+countWhere, args...).Scan(&total); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	query := fmt.Sprintf(
		`%s %s GROUP BY q.id, c.slug, cu.username, vu.username
		 ORDER BY q.date_created DESC LIMIT $%d OFFSET $%d`,
		detailQuestionQuery, where, len(args)+1, len(args)+2,
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
	questions, err := collectQuestions(rows, scanDetailQuestion)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Questions",
		"data": fiber.Map{
			"questions": questions,
			"pagination": fiber.Map{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}

func GetAllQuestions(c *fiber.Ctx) error {
	return listDetailQuestions(c, "")
}

func GetUnverifiedQuestions(c *fiber.Ctx) error {
	return listDetailQuestions(c, "WHERE q.is_verified = false")
}

func VerifyQuestion(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid question id",
			"error":   err.Error(),
		})
	}

	var question models.Question
	err = util.DB.QueryRow("SELECT id, question FROM questions WHERE id = $1", id).
		Scan(&question.ID, &question.Question)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Question not found",
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

	question.Verify(user.ID, time.Now())
	isVerified, byID, at := question.Verification.Columns()
	_, err = util.DB.Exec(
		"UPDATE questions SET is_verified = $1, verified_by_id = $2, date_verified = $3 WHERE id = $4",
		isVerified, byID, at, question.ID,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to verify question",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("%s verifies question-%d: %s", user.Username, question.ID, question.Question),
		"data":    []string{},
	})
}

func UnverifyQuestion(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid question id",
			"error":   err.Error(),
		})
	}

	var question models.Question
	err = util.DB.QueryRow("SELECT id, question FROM questions WHERE id = $1", id).
		Scan(&question.ID, &question.Question)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Question not found",
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

	question.Unverify()
	isVerified, byID, at := question.Verification.Columns()
	_, err = util.DB.Exec(
		"UPDATE questions SET is_verified = $1, verified_by_id = $2, date_verified = $3 WHERE id = $4",
		isVerified, byID, at, question.ID,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to unverify question",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("%s unverifies question-%d: %s", user.Username, question.ID, question.Question),
		"data":    []string{},
	})
}

func GetUserQuestions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid user id",
			"error":   err.Error(),
		})
	}
	var exists bool
	if err := util.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "User not found",
			"error":   "",
		})
	}
	return listDetailQuestions(c, "WHERE q.created_by_id = $1", id)
}

func GetUserQuestionStats(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid user id",
			"error":   err.Error(),
		})
	}
	var username string
	err = util.DB.QueryRow("SELECT username FROM users WHERE id = $1", id).Scan(&username)
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

	var all, verified int
	err = util.DB.QueryRow(
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_verified)
		 FROM questions WHERE created_by_id = $1`, id,
	).Scan(&all, &verified)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Question statistics for %s", username),
		"data": fiber.Map{
			"all":        all,
			"verified":   verified,
			"unverified": all - verified,
		},
	})
}
