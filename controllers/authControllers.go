package controllers

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/BOVAGE/QuizBank/config"
	"github.com/BOVAGE/QuizBank/mailer"
	"github.com/BOVAGE/QuizBank/middlewares"
	"github.com/BOVAGE/QuizBank/models"
	"github.com/BOVAGE/QuizBank/util"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Cfg is the application configuration, installed by main before routes are
// served.
var Cfg *config.Config

func profileFields(user models.User) fiber.Map {
	return fiber.Map{
		"id":         user.ID,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"bio":        user.Bio,
		"avatar":     user.Avatar,
	}
}

// uniqueConflictFields names exactly the colliding fields so the error
// payload lists only what actually conflicts.
func uniqueConflictFields(usernameTaken, emailTaken bool) map[string]string {
	conflicts := map[string]string{}
	if usernameTaken {
		conflicts["username"] = "A user with that username already exists."
	}
	if emailTaken {
		conflicts["email"] = "A user with that email already exists."
	}
	return conflicts
}

func findUserByEmail(email string) (models.User, error) {
	var id int
	err := util.DB.QueryRow("SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err != nil {
		return models.User{}, err
	}
	return middlewares.LoadUser(id)
}

func activationLink(user models.User) (string, error) {
	token, err := util.JwtGenerateAccess(user)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/v1/auth/email-verify?token=%s", Cfg.BaseURL, token), nil
}

func RegisterUser(c *fiber.Ctx) error {
	validate := validator.New()

	var body struct {
		Username  string `json:"username" validate:"required,min=3,max=150"`
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=6"`
		Password2 string `json:"password2" validate:"required,min=6"`
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
	if body.Password != body.Password2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   "Password must match",
		})
	}

	var usernameTaken, emailTaken bool
	err := util.DB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1),
		        EXISTS(SELECT 1 FROM users WHERE email = $2)`,
		body.Username, body.Email,
	).Scan(&usernameTaken, &emailTaken)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	if usernameTaken || emailTaken {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   uniqueConflictFields(usernameTaken, emailTaken),
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to hash password",
			"error":   err.Error(),
		})
	}

	var user models.User
	user.Username = body.Username
	user.Email = body.Email
	err = util.DB.QueryRow(
		`INSERT INTO users (username, email, password) VALUES ($1, $2, $3)
		 RETURNING id, date_joined`,
		body.Username, body.Email, string(hash),
	).Scan(&user.ID, &user.DateJoined)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create user",
			"error":   err.Error(),
		})
	}

	link, err := activationLink(user)
	if err != nil {
		util.Log.Errorw("couldn't build activation link", "user_id", user.ID, "error", err)
	} else {
		mailer.Default.Send(mailer.TemplateActivate, user.Email, link, Cfg.SiteName)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "An email activation link has been sent to your email address",
		"data": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func LoginUser(c *fiber.Ctx) error {
	validate := validator.New()

	var body struct {
		Username string `json:"username" validate:"required,min=3"`
		Password string `json:"password" validate:"required,min=6"`
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

	var id int
	err := util.DB.QueryRow("SELECT id FROM users WHERE username = $1", body.Username).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	invalidCredentials := func() error {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   "Invalid Credentials or details",
		})
	}
	if err == sql.ErrNoRows {
		return invalidCredentials()
	}

	user, err := middlewares.LoadUser(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)) != nil {
		return invalidCredentials()
	}
	if !user.IsVerified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   "Email verification required.",
		})
	}

	access, refresh, err := util.JwtGeneratePair(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to issue tokens",
			"error":   err.Error(),
		})
	}

	if _, err := util.DB.Exec("UPDATE users SET last_login = $1 WHERE id = $2", time.Now(), user.ID); err != nil {
		util.Log.Warnw("couldn't record last login", "user_id", user.ID, "error", err)
	}

	data := profileFields(user)
	data["access"] = access
	data["refresh"] = refresh
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Login credentials are valid",
		"data":    data,
	})
}

func RefreshAccessToken(c *fiber.Ctx) error {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&body); err != nil || body.Refresh == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Refresh token is required",
			"error":   "",
		})
	}

	claims, err := util.VerifyRefreshToken(body.Refresh)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Token is invalid or expired",
			"error":   err.Error(),
		})
	}
	userID, err := util.ClaimsUserID(claims)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Token is invalid or expired",
			"error":   "",
		})
	}
	user, err := middlewares.LoadUser(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Token is invalid or expired",
			"error":   "",
		})
	}
	if err := util.IsTokenValid(claims, user); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
			"error":   "",
		})
	}

	access, err := util.JwtGenerateAccess(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to issue token",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "New access token",
		"data":    fiber.Map{"access": access},
	})
}

func VerifyUserEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	claims, err := util.VerifyJwtToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Your token is invalid or has expired",
			"error":   err.Error(),
		})
	}
	userID, err := util.ClaimsUserID(claims)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Your token is invalid",
			"error":   "",
		})
	}
	user, err := middlewares.LoadUser(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Your token is invalid",
			"error":   "",
		})
	}

	if user.IsVerified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "failed",
			"message": "Account has been verified previously",
			"data":    []string{},
		})
	}

	if _, err := util.DB.Exec("UPDATE users SET is_verified = true WHERE id = $1", user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to verify account",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Account has been verified successfully",
		"data":    []string{},
	})
}

// resendOutcome distinguishes a real send from the silent no-op on an
// already verified account.
type resendOutcome int

const (
	resendSent resendOutcome = iota
	resendAlreadyVerified
)

func resendVerification(user models.User) (resendOutcome, error) {
	if user.IsVerified {
		return resendAlreadyVerified, nil
	}
	link, err := activationLink(user)
	if err != nil {
		return resendSent, err
	}
	mailer.Default.Send(mailer.TemplateActivate, user.Email, link, Cfg.SiteName)
	return resendSent, nil
}

func ResendVerificationEmail(c *fiber.Ctx) error {
	validate := validator.New()

	var body struct {
		Email string `json:"email" validate:"required,email"`
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

	user, err := findUserByEmail(body.Email)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   fiber.Map{"email": "User with this email does not exist"},
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	outcome, err := resendVerification(user)
	if err != nil {
		util.Log.Errorw("couldn't build activation link", "user_id", user.ID, "error", err)
	}
	if outcome == resendAlreadyVerified {
		util.Log.Infow("verification resend skipped, account already verified", "user_id", user.ID)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Email account verification mail sent",
		"data":    fiber.Map{"email": body.Email},
	})
}

func ChangePassword(c *fiber.Ctx) error {
	validate := validator.New()
	user := c.Locals("user").(models.User)

	var body struct {
		OldPassword string `json:"old_password" validate:"required,min=6"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
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

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.OldPassword)) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   fiber.Map{"old_password": "Old password is wrong"},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to hash password",
			"error":   err.Error(),
		})
	}
	_, err = util.DB.Exec(
		"UPDATE users SET password = $1, password_changed_at = $2 WHERE id = $3",
		string(hash), time.Now(), user.ID,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update password",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Password Updated Successfully",
		"data":    []string{},
	})
}

func GetUserProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Authenticated User Profile",
		"data":    profileFields(user),
	})
}

func EditUserProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var body struct {
		Username  *string `json:"username"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Bio       *string `json:"bio"`
		Avatar    *string `json:"avatar"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to parse request body",
			"error":   err.Error(),
		})
	}

	if body.Username != nil && *body.Username != user.Username {
		if len(*body.Username) < 3 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Validation failed",
				"error":   fiber.Map{"username": "Username must be at least 3 characters"},
			})
		}
		var taken bool
		if err := util.DB.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $2)",
			*body.Username, user.ID,
		).Scan(&taken); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Database error",
				"error":   err.Error(),
			})
		}
		if taken {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Validation failed",
				"error":   uniqueConflictFields(true, false),
			})
		}
		user.Username = *body.Username
	}
	if body.FirstName != nil {
		user.FirstName = *body.FirstName
	}
	if body.LastName != nil {
		user.LastName = *body.LastName
	}
	if body.Bio != nil {
		user.Bio = *body.Bio
	}
	if body.Avatar != nil {
		user.Avatar = *body.Avatar
	}

	_, err := util.DB.Exec(
		`UPDATE users SET username = $1, first_name = $2, last_name = $3, bio = $4, avatar = $5
		 WHERE id = $6`,
		user.Username, user.FirstName, user.LastName, user.Bio, user.Avatar, user.ID,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update profile",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Profile Updated Successfully",
		"data":    profileFields(user),
	})
}

func RequestPasswordReset(c *fiber.Ctx) error {
	validate := validator.New()

	var body struct {
		Email string `json:"email" validate:"required,email"`
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

	user, err := findUserByEmail(body.Email)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   fiber.Map{"email": "User with this email does not exist"},
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	// Reset mails only go out to verified accounts; an unverified account is
	// a silent no-op.
	if user.IsVerified {
		uidb64 := util.EncodeUID(user.ID)
		token := util.MakeResetToken(user, time.Now())
		link := fmt.Sprintf("%s/api/v1/auth/reset-password/%s/%s", Cfg.BaseURL, uidb64, token)
		mailer.Default.Send(mailer.TemplateResetPassword, user.Email, link, Cfg.SiteName)
	} else {
		util.Log.Infow("password reset skipped, account unverified", "user_id", user.ID)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Password reset mail sent",
		"data":    fiber.Map{"email": body.Email},
	})
}

// resolveResetUser maps the uidb64/token pair to a user, distinguishing a
// malformed id, an unknown user and a stale token.
func resolveResetUser(c *fiber.Ctx, uidb64, token string) (models.User, bool) {
	id, err := util.DecodeUID(uidb64)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "failed",
			"message": "This token is invalid",
			"data":    []string{},
		})
		return models.User{}, false
	}
	user, err := middlewares.LoadUser(id)
	if err == sql.ErrNoRows {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "failed",
			"message": "User does not exist",
			"data":    []string{},
		})
		return models.User{}, false
	}
	if err != nil {
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"error":   err.Error(),
		})
		return models.User{}, false
	}
	if err := util.CheckResetToken(user, token, time.Now()); err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "failed",
			"message": "This token is invalid",
			"data":    []string{},
		})
		return models.User{}, false
	}
	return user, true
}

func ValidateResetToken(c *fiber.Ctx) error {
	uidb64 := c.Params("uidb64")
	token := c.Params("token")
	if _, ok := resolveResetUser(c, uidb64, token); !ok {
		return nil
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Token is valid",
		"data": fiber.Map{
			"token":  token,
			"uidb64": uidb64,
		},
	})
}

func SetNewPassword(c *fiber.Ctx) error {
	validate := validator.New()

	var body struct {
		NewPassword1 string `json:"new_password1" validate:"required,min=6"`
		NewPassword2 string `json:"new_password2" validate:"required,min=6"`
		Token        string `json:"token" validate:"required"`
		UIDB64       string `json:"uidb64" validate:"required"`
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
	if body.NewPassword1 != body.NewPassword2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"error":   "Password must match",
		})
	}

	user, ok := resolveResetUser(c, body.UIDB64, body.Token)
	if !ok {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to hash password",
			"error":   err.Error(),
		})
	}
	// Rewriting the password hash also burns the reset token and every
	// access token issued before now.
	_, err = util.DB.Exec(
		"UPDATE users SET password = $1, password_changed_at = $2 WHERE id = $3",
		string(hash), time.Now(), user.ID,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update password",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Password Reset Done successfully",
		"data":    []string{},
	})
}
