// services/profile_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"minniemissions/models"
	"minniemissions/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Avatar upload limits: a small set of image types under a fixed ceiling.
const MaxAvatarSizeBytes = 2 * 1024 * 1024

var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// GetByAddress returns the stored profile for a wallet address.
func (s *ProfileService) GetByAddress(address string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.Where("address = ?", address).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or updates the profile keyed by address.
func (s *ProfileService) Upsert(address string, displayName string, bio, favoriteArtist *string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.Where("address = ?", address).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			ID:      uuid.NewString(),
			Address: address,
		}
	} else if err != nil {
		return nil, err
	}

	if displayName != "" {
		profile.DisplayName = displayName
	}
	if bio != nil {
		profile.Bio = bio
	}
	if favoriteArtist != nil {
		profile.FavoriteArtist = favoriteArtist
	}

	if err := s.DB.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChangedSince returns profiles updated after the given cursor; used by the
// roster sync worker.
func (s *ProfileService) ChangedSince(since time.Time) ([]models.Profile, error) {
	var profiles []models.Profile
	err := s.DB.Where("updated_at > ?", since).Find(&profiles).Error
	return profiles, err
}

// GetProfile handles GET /profile for the session's wallet address.
func (s *ProfileService) GetProfile(c *fiber.Ctx) error {
	address := c.Query("address")
	if address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "address is required"})
	}
	profile, err := s.GetByAddress(address)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error fetching profile", "cause": err.Error()})
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /profile.
func (s *ProfileService) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Address        string  `json:"address"`
		DisplayName    string  `json:"display_name"`
		Bio            *string `json:"bio"`
		FavoriteArtist *string `json:"favorite_artist"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "address is required"})
	}
	if strings.TrimSpace(req.DisplayName) == "" && req.Bio == nil && req.FavoriteArtist == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "nothing to update"})
	}

	profile, err := s.Upsert(req.Address, strings.TrimSpace(req.DisplayName), req.Bio, req.FavoriteArtist)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile", "cause": err.Error()})
	}
	return c.JSON(profile)
}

// UploadAvatar handles POST /profile/avatar: validates type and size, pushes
// the file to R2 and stores the public URL on the profile.
func (s *ProfileService) UploadAvatar(c *fiber.Ctx) error {
	address := c.FormValue("address")
	if address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "address is required"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}
	if fileHeader.Size > MaxAvatarSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("avatar must be under %d bytes", MaxAvatarSizeBytes),
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, ok := allowedAvatarTypes[contentType]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "avatar must be a JPEG, PNG, GIF or WebP image",
		})
	}

	key := filepath.Join("avatars", uuid.NewString()+ext)
	var url string
	if utils.R2Enabled() {
		url, err = utils.UploadFileToR2(fileHeader, key)
	} else {
		err = utils.SaveFile(fileHeader, utils.GetUploadPath(key))
		url = "/uploads/" + filepath.ToSlash(key)
	}
	if err != nil {
		log.Printf("❌ [PROFILE] avatar upload failed for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload avatar"})
	}

	var profile models.Profile
	err = s.DB.Where("address = ?", address).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{ID: uuid.NewString(), Address: address, DisplayName: address}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error fetching profile", "cause": err.Error()})
	}
	profile.AvatarURL = &url
	if err := s.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save profile", "cause": err.Error()})
	}

	log.Printf("🖼️  [PROFILE] avatar updated for %s", address)
	return c.JSON(profile)
}
