package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-app/lunara/internal/services"
)

func (handler *Handler) LogPeriod(c *fiber.Ctx) error {
	input := periodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Start date is required")
	}

	startDate, err := parseStartDate(input.StartDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Start date is required")
	}

	entry, err := handler.cycleService.LogCycleStart(currentUser(c).ID, startDate, input.Duration, input.Notes)
	if err != nil {
		if errors.Is(err, services.ErrMissingStartDate) {
			return apiError(c, fiber.StatusBadRequest, "Start date is required")
		}
		return apiError(c, fiber.StatusInternalServerError, "Server error adding period")
	}

	return c.Status(fiber.StatusCreated).JSON(toCycleEntryView(entry, false))
}

func (handler *Handler) LatestPeriod(c *fiber.Ctx) error {
	entry, found, err := handler.cycleService.Latest(currentUser(c).ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Error fetching period data")
	}
	if !found {
		return c.JSON(fiber.Map{"message": "No period data found"})
	}

	return c.JSON(toCycleEntryView(entry, true))
}

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	entries, err := handler.cycleService.List(currentUser(c).ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Error fetching period data")
	}
	return c.JSON(toCycleEntryViews(entries))
}
