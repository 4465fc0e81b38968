// services/contact_service.go
package services

import (
	"log"
	"net/mail"
	"strings"

	"minniemissions/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactService struct {
	DB *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{DB: db}
}

// SubmitContact appends a contact form submission to the persisted store.
// Insert-only; there is no read path.
func (s *ContactService) SubmitContact(c *fiber.Ctx) error {
	var req struct {
		Name         string  `json:"name"`
		Email        string  `json:"email"`
		Fandom       string  `json:"fandom"`
		University   *string `json:"university"`
		FavoriteTeam *string `json:"favorite_team"`
		Message      string  `json:"message"`
		Feedback     *string `json:"feedback"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Fandom = strings.TrimSpace(req.Fandom)
	req.Message = strings.TrimSpace(req.Message)

	if len(req.Name) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name must be at least 2 characters."})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email address."})
	}
	if len(req.Fandom) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please specify your fandom."})
	}
	if len(req.Message) < 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message must be at least 10 characters."})
	}

	sub := models.ContactSubmission{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Fandom:       req.Fandom,
		University:   req.University,
		FavoriteTeam: req.FavoriteTeam,
		Message:      req.Message,
		Feedback:     req.Feedback,
	}
	if err := s.DB.Create(&sub).Error; err != nil {
		log.Printf("❌ [CONTACT] failed to store submission from %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "There was a problem submitting your message. Please try again.",
		})
	}

	log.Printf("📬 [CONTACT] submission stored from %s (%s)", req.Name, req.Fandom)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your message has been submitted successfully.",
	})
}
