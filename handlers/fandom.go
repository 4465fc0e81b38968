// handlers/fandom.go
package handlers

import (
	"errors"
	"log"

	"minniemissions/services"
	"minniemissions/store"

	"github.com/gofiber/fiber/v2"
)

func SetupFandomRoutes(app *fiber.App, aiService *services.FandomAIService, st *store.Store) {
	app.Get("/fandoms", func(c *fiber.Ctx) error {
		return c.JSON(st.Fandoms())
	})

	app.Post("/fandoms/ai", func(c *fiber.Ctx) error {
		var req struct {
			Fandom   string `json:"fandom"`
			Question string `json:"question"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		fandom, err := st.FandomByName(req.Fandom)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "fandom not found"})
		}
		if req.Question == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please enter a question about the fandom"})
		}

		answer, err := aiService.Ask(c.Context(), fandom, req.Question)
		if err != nil {
			log.Printf("❌ [FANDOM_AI] question about %s failed: %v", fandom.Fanbase, err)
			if errors.Is(err, services.ErrQuotaExceeded) {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "The AI service is over quota right now. Please try again later.",
				})
			}
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Failed to generate response. Please try again.",
			})
		}
		return c.JSON(fiber.Map{"response": answer})
	})
}
