package api

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-app/lunara/internal/services"
)

// ChatVoice accepts a multipart "audio" upload, forwards it to the generator
// with the caller's cycle context, and persists the turn. The uploaded bytes
// live in a temp file only for the duration of the call; the deferred remove
// runs on every exit path.
func (handler *Handler) ChatVoice(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "No audio file uploaded")
	}

	temp, err := os.CreateTemp("", "lunara-voice-*")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Voice error")
	}
	tempPath := temp.Name()
	defer os.Remove(tempPath)
	if err := temp.Close(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Voice error")
	}

	if err := c.SaveFile(file, tempPath); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Voice error")
	}

	audio, err := os.ReadFile(tempPath)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Voice error")
	}

	mimeType := file.Header.Get(fiber.HeaderContentType)

	reply, err := handler.chatService.HandleVoiceTurn(c.UserContext(), currentUser(c).ID, audio, mimeType)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			return apiError(c, fiber.StatusBadRequest, "No audio file uploaded")
		}
		return apiError(c, fiber.StatusInternalServerError, "Voice error")
	}

	return c.JSON(fiber.Map{"reply": reply})
}
