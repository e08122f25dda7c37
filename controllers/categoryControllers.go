package controllers

import (
	"database/sql"
	"fmt"

	"github.com/BOVAGE/QuizBank/models"
	"github.com/BOVAGE/QuizBank/util"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func GetCategories(c *fiber.Ctx) error {
	rows, err := util.DB.Query("SELECT id, name, slug FROM categories ORDER BY name")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Database error",
				"error":   err.Error(),
			})
		}
		categories = append(categories, cat)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "All categories",
		"data":    categories,
	})
}

func CreateCategory(c *fiber.Ctx) error {
	validate := validator.New()

	var body struct {
		Name string `json:"name" validate:"required,max=30"`
		Slug string `json:"slug" validate:"omitempty,max=30"`
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

	category := models.Category{Name: body.Name, Slug: body.Slug}
	category.EnsureSlug()

	var nameTaken, slugTaken bool
	err := util.DB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1),
		        EXISTS(SELECT 1 FROM categories WHERE slug = $2)`,
		category.Name, category.Slug,
	).Scan(&nameTaken, &slugTaken)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	if nameTaken || slugTaken {
		conflicts := fiber.Map{}
		if nameTaken {
			conflicts["name"] = "category with this name already exists."
		}
		if slugTaken {
			conflicts["slug"] = "category with this slug already exists."
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   conflicts,
		})
	}

	err = util.DB.QueryRow(
		"INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id",
		category.Name, category.Slug,
	).Scan(&category.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create category",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Category - %s created successfully", category.Name),
		"data":    category,
	})
}

func findCategoryBySlug(slugValue string) (models.Category, error) {
	var category models.Category
	err := util.DB.QueryRow(
		"SELECT id, name, slug FROM categories WHERE slug = $1", slugValue,
	).Scan(&category.ID, &category.Name, &category.Slug)
	return category, err
}

func GetCategoryBySlug(c *fiber.Ctx) error {
	category, err := findCategoryBySlug(c.Params("slug"))
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Category not found",
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
		"message": "Category details",
		"data":    category,
	})
}

// EditCategory renames a category. The slug stays as it is so question
// links built on it keep working.
func EditCategory(c *fiber.Ctx) error {
	validate := validator.New()

	category, err := findCategoryBySlug(c.Params("slug"))
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Category not found",
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

	var body struct {
		Name string `json:"name" validate:"required,max=30"`
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

	var nameTaken bool
	err = util.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)",
		body.Name, category.ID,
	).Scan(&nameTaken)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	if nameTaken {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   fiber.Map{"name": "category with this name already exists."},
		})
	}

	category.Name = body.Name
	if _, err := util.DB.Exec("UPDATE categories SET name = $1 WHERE id = $2", category.Name, category.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update category",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DeleteCategory removes a category after moving its questions to the
// sentinel "deleted" category, so no question is ever orphaned.
func DeleteCategory(c *fiber.Ctx) error {
	category, err := findCategoryBySlug(c.Params("slug"))
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Category not found",
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
	if category.Name == models.SentinelCategoryName {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "failed",
			"message": fmt.Sprintf("The %s category cannot be deleted", models.SentinelCategoryName),
			"data":    []string{},
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

	var sentinelID int
	err = tx.QueryRow("SELECT id FROM categories WHERE name = $1", models.SentinelCategoryName).Scan(&sentinelID)
	if err == sql.ErrNoRows {
		sentinel := models.Category{Name: models.SentinelCategoryName}
		sentinel.EnsureSlug()
		err = tx.QueryRow(
			"INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id",
			sentinel.Name, sentinel.Slug,
		).Scan(&sentinelID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	if _, err := tx.Exec(
		"UPDATE questions SET category_id = $1 WHERE category_id = $2",
		sentinelID, category.ID,
	); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete category",
			"error":   err.Error(),
		})
	}
	if _, err := tx.Exec("DELETE FROM categories WHERE id = $1", category.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete category",
			"error":   err.Error(),
		})
	}
	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete category",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Category deleted successfully",
		"data":    []string{},
	})
}
