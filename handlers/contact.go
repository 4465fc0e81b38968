// handlers/contact.go
package handlers

import (
	"minniemissions/services"

	"github.com/gofiber/fiber/v2"
)

func SetupContactRoutes(app *fiber.App, contactService *services.ContactService) {
	app.Post("/contact", contactService.SubmitContact)
}
