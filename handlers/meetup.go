// handlers/meetup.go
package handlers

import (
	"errors"

	"minniemissions/middleware"
	"minniemissions/services"
	"minniemissions/store"

	"github.com/gofiber/fiber/v2"
)

func SetupMeetupRoutes(app *fiber.App, meetupService *services.MeetupService, st *store.Store) {
	app.Get("/meetups", func(c *fiber.Ctx) error {
		return c.JSON(st.Meetups())
	})

	app.Get("/meetups/:id", func(c *fiber.Ctx) error {
		meetup, err := st.MeetupByID(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "meetup not found"})
		}
		return c.JSON(fiber.Map{
			"meetup":   meetup,
			"progress": meetup.Progress(),
		})
	})

	userCtx := middleware.UserContextMiddleware()

	app.Post("/meetups", userCtx, func(c *fiber.Ctx) error {
		sessionID := c.Locals("user_id").(string)

		var in services.CreateMeetupInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		meetup, err := meetupService.CreateMeetup(c.Context(), sessionID, in)
		if err != nil {
			if errors.Is(err, services.ErrNotVerified) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error":                 "identity verification required",
					"verification_required": true,
				})
			}
			return walletError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(meetup)
	})

	app.Post("/meetups/:id/stake", userCtx, func(c *fiber.Ctx) error {
		sessionID := c.Locals("user_id").(string)

		var req struct {
			Amount int `json:"amount"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		meetup, err := meetupService.Stake(c.Context(), sessionID, c.Params("id"), req.Amount)
		if err != nil {
			if errors.Is(err, store.ErrMeetupNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "meetup not found"})
			}
			return walletError(c, err)
		}
		return c.JSON(fiber.Map{
			"meetup":   meetup,
			"progress": meetup.Progress(),
		})
	})
}
