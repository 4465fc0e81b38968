// handlers/profile.go
package handlers

import (
	"minniemissions/middleware"
	"minniemissions/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, profileService *services.ProfileService) {
	userCtx := middleware.UserContextMiddleware()

	app.Get("/profile", userCtx, profileService.GetProfile)
	app.Put("/profile", userCtx, profileService.UpdateProfile)
	app.Post("/profile/avatar", userCtx, profileService.UploadAvatar)
}
