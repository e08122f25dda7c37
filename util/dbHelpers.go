package util

import (
	"database/sql"
	"fmt"

	"github.com/BOVAGE/QuizBank/models"
)

func ddlStrings() []string {
	sqlStrings := []string{}
	sqlStrings = append(sqlStrings,
		`CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(150) UNIQUE NOT NULL,
    email VARCHAR(254) UNIQUE NOT NULL,
    password VARCHAR(512) NOT NULL,
    first_name VARCHAR(150) NOT NULL DEFAULT '',
    last_name VARCHAR(150) NOT NULL DEFAULT '',
    bio VARCHAR(200) NOT NULL DEFAULT '',
    avatar VARCHAR(255) NOT NULL DEFAULT 'avatar.jpg',
    is_verified BOOLEAN NOT NULL DEFAULT false,
    is_staff BOOLEAN NOT NULL DEFAULT false,
    is_superuser BOOLEAN NOT NULL DEFAULT false,
    password_changed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    last_login TIMESTAMP,
    date_joined TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		`CREATE TABLE IF NOT EXISTS categories (
    id SERIAL PRIMARY KEY,
    name VARCHAR(30) UNIQUE NOT NULL,
    slug VARCHAR(50) UNIQUE NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS questions (
    id SERIAL PRIMARY KEY,
    question TEXT NOT NULL,
    difficulty VARCHAR(10) NOT NULL CHECK (difficulty IN ('easy', 'medium', 'hard')),
    type VARCHAR(20) NOT NULL CHECK (type IN ('multiple-choice', 'True / False')),
    created_by_id INT REFERENCES users(id) ON DELETE SET NULL,
    correct_answer VARCHAR(200) NOT NULL,
    explanation VARCHAR(1000) NOT NULL DEFAULT '',
    image VARCHAR(255) NOT NULL DEFAULT '',
    category_id INT NOT NULL REFERENCES categories(id),
    is_verified BOOLEAN NOT NULL DEFAULT false,
    verified_by_id INT REFERENCES users(id),
    date_verified TIMESTAMP,
    date_created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT verification_consistent CHECK (
        (is_verified AND verified_by_id IS NOT NULL AND date_verified IS NOT NULL)
        OR (NOT is_verified AND verified_by_id IS NULL AND date_verified IS NULL)
    )
)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_difficulty ON questions(difficulty)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_type ON questions(type)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_date_created ON questions(date_created)`,
		`CREATE TABLE IF NOT EXISTS incorrect_answers (
    id SERIAL PRIMARY KEY,
    question_id INT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
    option VARCHAR(1000) NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS feedback (
    id SERIAL PRIMARY KEY,
    question_id INT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
    issue VARCHAR(1000) NOT NULL,
    explanation VARCHAR(1000) NOT NULL,
    created_by_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    date_created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    is_resolved BOOLEAN NOT NULL DEFAULT false,
    resolved_by_id INT REFERENCES users(id) ON DELETE SET NULL,
    date_resolved TIMESTAMP
)`)
	return sqlStrings
}

func CreateTableIfNotExists() error {
	sqlStrings := ddlStrings()
	for i, ddl := range sqlStrings {
		_, err := DB.Exec(ddl)
		if err != nil {
			return fmt.Errorf("error creating table %d: %w", i, err)
		}
	}
	return nil
}

// EnsureSentinelCategory creates the placeholder "deleted" category when it
// doesn't exist yet and returns its id.
func EnsureSentinelCategory() (int, error) {
	var id int
	err := DB.QueryRow("SELECT id FROM categories WHERE name = $1", models.SentinelCategoryName).Scan(&id)
	if err == sql.ErrNoRows {
		err = DB.QueryRow(
			"INSERT INTO categories (name, slug) VALUES ($1, $1) RETURNING id",
			models.SentinelCategoryName,
		).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("couldn't ensure sentinel category: %w", err)
	}
	return id, nil
}

func dropTables() []string {
	return []string{
		"DROP TABLE IF EXISTS feedback",
		"DROP TABLE IF EXISTS incorrect_answers",
		"DROP TABLE IF EXISTS questions",
		"DROP TABLE IF EXISTS categories",
		"DROP TABLE IF EXISTS users",
	}
}
