package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-app/lunara/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input, err := parseRegisterInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "please enter all fields")
	}

	exists, err := handler.repositories.Users.ExistsByNormalizedEmail(input.Email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}
	if exists {
		return apiError(c, fiber.StatusConflict, "user already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now(),
	}
	if err := handler.repositories.Users.Create(&user); err != nil {
		// Unique email index: a concurrent registration lost the race.
		return apiError(c, fiber.StatusConflict, "user already exists")
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"token": token,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input, err := parseLoginInput(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	key := limiterKey(c)
	now := time.Now()
	if handler.loginLimiter.tooManyRecent(key, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts, try again later")
	}

	user, err := handler.repositories.Users.FindByNormalizedEmail(input.Email)
	if err != nil {
		handler.loginLimiter.addFailure(key, now)
		return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		handler.loginLimiter.addFailure(key, now)
		return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	handler.loginLimiter.reset(key)

	token, err := handler.buildToken(&user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"token": token,
	})
}

func (handler *Handler) Profile(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}
