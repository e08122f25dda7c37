package routers

import (
	"time"

	"github.com/BOVAGE/QuizBank/controllers"
	"github.com/BOVAGE/QuizBank/middlewares"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status":  "error",
				"message": "Too many requests. Please try again later.",
				"error":   "",
			})
		},
	}))
	auth.Post("/login", controllers.LoginUser)
	auth.Post("/register", controllers.RegisterUser)
	auth.Get("/email-verify", controllers.VerifyUserEmail)
	auth.Post("/resend-email-token", controllers.ResendVerificationEmail)
	auth.Post("/change-password", middlewares.Protected(), controllers.ChangePassword)
	auth.Get("/user-profile", middlewares.Protected(), controllers.GetUserProfile)
	auth.Patch("/user-profile", middlewares.Protected(), controllers.EditUserProfile)
	auth.Post("/reset-password", controllers.RequestPasswordReset)
	auth.Get("/reset-password/:uidb64/:token", controllers.ValidateResetToken)
	auth.Post("/reset-password/set", controllers.SetNewPassword)
	auth.Post("/refresh-token", controllers.RefreshAccessToken)
	auth.Get("/users", middlewares.Protected(), middlewares.StaffOnly(), controllers.GetAllUsers)
	auth.Post("/users/:id/staff", middlewares.Protected(), middlewares.StaffOnly(), controllers.MakeStaff)
	auth.Delete("/users/:id/staff", middlewares.Protected(), middlewares.StaffOnly(), controllers.RemoveStaff)

	questions := api.Group("/questions")
	questions.Get("/", controllers.GetPublicQuestions)
	questions.Post("/", middlewares.Protected(), controllers.CreateQuestion)
	questions.Get("/full", middlewares.Protected(), middlewares.StaffOnly(), controllers.GetAllQuestions)
	questions.Get("/unverified", middlewares.Protected(), middlewares.StaffOnly(), controllers.GetUnverifiedQuestions)
	questions.Get("/:id", middlewares.Protected(), middlewares.StaffOnly(), controllers.GetQuestionByID)
	questions.Put("/:id", middlewares.Protected(), middlewares.StaffOnly(), controllers.EditQuestion)
	questions.Delete("/:id", middlewares.Protected(), middlewares.StaffOnly(), controllers.DeleteQuestion)
	questions.Post("/:id/verification", middlewares.Protected(), middlewares.StaffOnly(), controllers.VerifyQuestion)
	questions.Delete("/:id/verification", middlewares.Protected(), middlewares.StaffOnly(), controllers.UnverifyQuestion)

	categories := api.Group("/categories")
	categories.Get("/", controllers.GetCategories)
	categories.Post("/", middlewares.Protected(), middlewares.StaffOnly(), controllers.CreateCategory)
	categories.Get("/:slug", controllers.GetCategoryBySlug)
	categories.Put("/:slug", middlewares.Protected(), middlewares.StaffOnly(), controllers.EditCategory)
	categories.Delete("/:slug", middlewares.Protected(), middlewares.StaffOnly(), controllers.DeleteCategory)

	feedback := api.Group("/feedback")
	feedback.Get("/", middlewares.Protected(), middlewares.StaffOnly(), controllers.GetAllFeedback)
	feedback.Post("/", middlewares.Protected(), controllers.CreateFeedback)
	feedback.Get("/:id", middlewares.Protected(), middlewares.StaffOnly(), controllers.GetFeedbackByID)
	feedback.Put("/:id", middlewares.Protected(), middlewares.StaffOnly(), controllers.EditFeedback)
	feedback.Delete("/:id", middlewares.Protected(), middlewares.StaffOnly(), controllers.DeleteFeedback)

	api.Get("/statistics", controllers.GetStatistics)
	api.Get("/users/:id/questions", middlewares.Protected(), controllers.GetUserQuestions)
	api.Get("/users/:id/questions-stat", controllers.GetUserQuestionStats)
}
