// handlers/referral.go
package handlers

import (
	"errors"

	"minniemissions/middleware"
	"minniemissions/store"
	"minniemissions/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupReferralRoutes(app *fiber.App, st *store.Store) {
	// Visiting a QR link records the scan without touching referral counts;
	// crediting happens when the referred user completes their first mission.
	trackScan := func(c *fiber.Ctx) error {
		userID := c.Params("userId")
		missionID := c.Params("missionId", "")

		scan, err := st.RecordReferralScan(userID, missionID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid referral code"})
			}
			if errors.Is(err, store.ErrMissionNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "mission not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process referral"})
		}

		return c.JSON(fiber.Map{
			"recorded": true,
			"scan":     scan,
		})
	}

	app.Get("/qr/:userId", trackScan)
	app.Get("/qr/:userId/:missionId", trackScan)

	userCtx := middleware.UserContextMiddleware()

	// Returns the payload the frontend encodes as a QR image.
	app.Get("/referral/payload", userCtx, func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if _, err := st.UserByID(userID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}

		origin := c.Get("Origin")
		if origin == "" {
			origin = c.BaseURL()
		}
		return c.JSON(fiber.Map{
			"url": utils.BuildReferralURL(origin, userID, c.Query("mission_id")),
		})
	})

	app.Get("/referral/scans", userCtx, func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		return c.JSON(fiber.Map{
			"scans":   st.ReferralScans(userID),
			"credits": st.ReferralCredits(userID),
		})
	})
}
