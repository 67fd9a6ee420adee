package server

import (
	"devconnect/internal/models"
	"devconnect/internal/service"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetProfiles handles GET /api/profiles
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.ListProfiles(c.Context())
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(profiles)
}

// GetProfileByHandle handles GET /api/profiles/handle/:handle
func (s *Server) GetProfileByHandle(c *fiber.Ctx) error {
	handle := c.Params("handle")
	if handle == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Handle is required"))
	}

	profile, err := s.profileService.GetProfileByHandle(c.Context(), handle)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// GetMyProfile handles GET /api/profiles/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.GetOwnProfile(c.Context(), userID)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profiles
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req validation.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if fieldErrors, ok := validation.ValidateProfileInput(req); !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(fieldErrors))
	}

	profile, err := s.profileService.UpsertProfile(c.Context(), service.UpsertProfileInput{
		UserID:         userID,
		Handle:         req.Handle,
		Bio:            req.Bio,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		GithubUsername: req.GithubUsername,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// DeleteProfile handles DELETE /api/profiles
func (s *Server) DeleteProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.profileService.DeleteProfile(c.Context(), userID); err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
