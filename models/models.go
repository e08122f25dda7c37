package models

import (
	"errors"
	"time"

	"github.com/gosimple/slug"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	TypeMultipleChoice = "multiple-choice"
	TypeTrueFalse      = "True / False"

	// SentinelCategoryName is the permanent placeholder category that absorbs
	// questions whose own category gets deleted.
	SentinelCategoryName = "deleted"
)

var ErrTooManyIncorrectAnswers = errors.New("True/False questions can have only one incorrect answer")

// User model
type User struct {
	ID                int        `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Password          string     `json:"-"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Bio               string     `json:"bio"`
	Avatar            string     `json:"avatar"`
	IsVerified        bool       `json:"is_verified"`
	IsStaff           bool       `json:"is_staff"`
	IsSuperuser       bool       `json:"is_superuser"`
	PasswordChangedAt time.Time  `json:"-"`
	LastLogin         *time.Time `json:"-"`
	DateJoined        time.Time  `json:"date_joined"`
}

// Category model
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// EnsureSlug derives the slug from the name when it was not supplied.
// An existing slug is never rewritten.
func (c *Category) EnsureSlug() {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
}

// Question model
type Question struct {
	ID            int          `json:"id"`
	Question      string       `json:"question"`
	Difficulty    string       `json:"difficulty"`
	Type          string       `json:"type"`
	CreatedByID   *int         `json:"created_by_id"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
	Image         string       `json:"image"`
	CategoryID    int          `json:"category_id"`
	Verification  Verification `json:"-"`
	DateCreated   time.Time    `json:"date_created"`
}

// Verify marks the question reviewed by the given user. Re-verifying simply
// overwrites the reviewer and timestamp.
func (q *Question) Verify(userID int, at time.Time) {
	q.Verification = VerifiedBy(userID, at)
}

// Unverify clears the whole verification state.
func (q *Question) Unverify() {
	q.Verification = Verification{}
}

// IncorrectAnswer is one wrong option belonging to a question.
type IncorrectAnswer struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"question_id"`
	Option     string `json:"option"`
}

// ValidateIncorrectAnswers enforces the creation-time rule that a True/False
// question supplies exactly one incorrect answer. Rows that already exist are
// not re-checked on edit.
func ValidateIncorrectAnswers(questionType string, options []string) error {
	if len(options) == 0 {
		return errors.New("at least one incorrect answer is required")
	}
	if len(options) > 3 {
		return errors.New("a question can have at most three incorrect answers")
	}
	if questionType == TypeTrueFalse && len(options) > 1 {
		return ErrTooManyIncorrectAnswers
	}
	return nil
}

// Feedback model
type Feedback struct {
	ID           int        `json:"id"`
	QuestionID   int        `json:"question"`
	Issue        string     `json:"issue"`
	Explanation  string     `json:"explanation"`
	CreatedByID  int        `json:"created_by_id"`
	DateCreated  time.Time  `json:"date_created"`
	IsResolved   bool       `json:"is_resolved"`
	ResolvedByID *int       `json:"resolved_by_id"`
	DateResolved *time.Time `json:"date_resolved"`
}

func ValidDifficulty(s string) bool {
	return s == DifficultyEasy || s == DifficultyMedium || s == DifficultyHard
}

func ValidType(s string) bool {
	return s == TypeMultipleChoice || s == TypeTrueFalse
}
