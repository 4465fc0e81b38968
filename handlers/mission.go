// handlers/mission.go
package handlers

import (
	"errors"

	"minniemissions/middleware"
	"minniemissions/services"
	"minniemissions/store"

	"github.com/gofiber/fiber/v2"
)

func SetupMissionRoutes(app *fiber.App, missionService *services.MissionService) {
	st := missionService.Store
	userCtx := middleware.UserContextMiddleware()

	// 🔓 Public routes — no user context, but still behind Gateway auth
	app.Get("/missions", func(c *fiber.Ctx) error {
		return c.JSON(st.ActiveMissions())
	})

	app.Get("/missions/featured", func(c *fiber.Ctx) error {
		return c.JSON(st.FeaturedMissions(store.FeaturedMissionCount))
	})

	// 🔐 Registered before /missions/:id so the param route can't swallow it
	app.Get("/missions/mine", userCtx, func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		return c.JSON(st.UserMissions(userID))
	})

	app.Get("/missions/:id", func(c *fiber.Ctx) error {
		mission, err := st.MissionByID(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "mission not found"})
		}
		return c.JSON(mission)
	})

	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		return c.JSON(st.Leaderboard())
	})

	app.Get("/leaderboard/stream", missionService.StreamLeaderboardSSE)

	app.Post("/missions/:id/complete", userCtx, func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		missionID := c.Params("id")

		if err := missionService.CompleteMission(userID, missionID); err != nil {
			status := fiber.StatusUnprocessableEntity
			if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrMissionNotFound) {
				status = fiber.StatusNotFound
			}
			return c.Status(status).JSON(fiber.Map{
				"completed": false,
				"error":     err.Error(),
			})
		}

		user, err := st.UserByID(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to reload user"})
		}
		return c.JSON(fiber.Map{
			"completed":   true,
			"vibe_points": user.VibePoints,
		})
	})
}
