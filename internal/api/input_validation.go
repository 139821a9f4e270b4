package api

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type chatInput struct {
	Message string `json:"message"`
}

type periodInput struct {
	StartDate string `json:"startDate"`
	Duration  int    `json:"duration"`
	Notes     string `json:"notes"`
}

func parseRegisterInput(c *fiber.Ctx) (registerInput, error) {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return registerInput{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Password = strings.TrimSpace(input.Password)

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return registerInput{}, errors.New("missing fields")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return registerInput{}, errors.New("invalid email")
	}

	return input, nil
}

func parseLoginInput(c *fiber.Ctx) (loginInput, error) {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return loginInput{}, err
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Password = strings.TrimSpace(input.Password)

	if input.Email == "" || input.Password == "" {
		return loginInput{}, errors.New("missing credentials")
	}

	return input, nil
}

var startDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseStartDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing start date")
	}
	for _, layout := range startDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("unparseable start date")
}
