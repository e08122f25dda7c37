package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/BOVAGE/QuizBank/util"
	"github.com/gofiber/fiber/v2"
)

// statisticsSections is the set of values the "on" query param may narrow
// the report to.
var statisticsSections = []string{"category", "difficulty", "question", "users", "activity"}

func questionStatistics() (fiber.Map, error) {
	var all, verified int
	err := util.DB.QueryRow(
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE is_verified) FROM questions",
	).Scan(&all, &verified)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"all":        all,
		"verified":   verified,
		"unverified": all - verified,
	}, nil
}

func difficultyStatistics() (fiber.Map, error) {
	var easy, medium, hard int
	err := util.DB.QueryRow(
		`SELECT COUNT(*) FILTER (WHERE difficulty = 'easy'),
		        COUNT(*) FILTER (WHERE difficulty = 'medium'),
		        COUNT(*) FILTER (WHERE difficulty = 'hard')
		 FROM questions`,
	).Scan(&easy, &medium, &hard)
	if err != nil {
		return nil, err
	}
	return fiber.Map{"easy": easy, "medium": medium, "hard": hard}, nil
}

func categoryStatistics() (fiber.Map, error) {
	rows, err := util.DB.Query(
		`SELECT c.name, COUNT(q.id)
		 FROM categories c
		 LEFT JOIN questions q ON q.category_id = c.id
		 GROUP BY c.name ORDER BY c.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perCategory := fiber.Map{}
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		perCategory[name] = count
	}
	return perCategory, rows.Err()
}

func userStatistics() (fiber.Map, error) {
	var all, verified, staff int
	err := util.DB.QueryRow(
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE is_verified),
		        COUNT(*) FILTER (WHERE is_staff)
		 FROM users`,
	).Scan(&all, &verified, &staff)
	if err != nil {
		return nil, err
	}
	return fiber.Map{"all": all, "verified": verified, "staff": staff}, nil
}

func activityStatistics() (fiber.Map, error) {
	var lastCreated, lastVerified *time.Time
	err := util.DB.QueryRow(
		"SELECT MAX(date_created), MAX(date_verified) FROM questions",
	).Scan(&lastCreated, &lastVerified)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"last_created":  lastCreated,
		"last_verified": lastVerified,
	}, nil
}

func GetStatistics(c *fiber.Ctx) error {
	sections := map[string]func() (fiber.Map, error){
		"question":   questionStatistics,
		"difficulty": difficultyStatistics,
		"category":   categoryStatistics,
		"users":      userStatistics,
		"activity":   activityStatistics,
	}

	on := c.Query("on")
	if on != "" {
		compute, ok := sections[on]
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Validation failed",
				"error": fiber.Map{
					"on": fmt.Sprintf("%q is not a valid choice. Choices are: %s",
						on, strings.Join(statisticsSections, ", ")),
				},
			})
		}
		section, err := compute()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Database error",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "Statistics",
			"data":    fiber.Map{on: section},
		})
	}

	data := fiber.Map{}
	for _, name := range statisticsSections {
		section, err := sections[name]()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Database error",
				"error":   err.Error(),
			})
		}
		data[name] = section
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Statistics",
		"data":    data,
	})
}
