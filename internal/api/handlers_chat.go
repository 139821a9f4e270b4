package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-app/lunara/internal/services"
)

func (handler *Handler) Chat(c *fiber.Ctx) error {
	input := chatInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "No message provided")
	}

	reply, err := handler.chatService.HandleTextTurn(c.UserContext(), currentUser(c).ID, input.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			return apiError(c, fiber.StatusBadRequest, "No message provided")
		}
		return apiError(c, fiber.StatusInternalServerError, "Server error processing chat")
	}

	return c.JSON(fiber.Map{"reply": reply})
}

func (handler *Handler) ChatHistory(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	messages, err := handler.chatService.History(currentUser(c).ID, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Error fetching history")
	}

	return c.JSON(toMessageViews(messages))
}
