package service

import (
	"context"
	"errors"
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// ProfileService implements developer profile rules: one profile per user,
// unique handle, upsert semantics.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// UpsertProfileInput carries the authenticated user and profile fields.
type UpsertProfileInput struct {
	UserID         uint
	Handle         string
	Bio            string
	Skills         []string
	Company        string
	Website        string
	Location       string
	GithubUsername string
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// UpsertProfile creates the caller's profile or updates it in place.
// The handle must not belong to another user.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	handle := strings.TrimSpace(in.Handle)

	if existing, err := s.profileRepo.GetByHandle(ctx, handle); err == nil {
		if existing.UserID != in.UserID {
			return nil, models.NewValidationError("That handle is already taken")
		}
	} else if !isNotFound(err) {
		return nil, err
	}

	profile := &models.Profile{
		UserID:         in.UserID,
		Handle:         handle,
		Bio:            in.Bio,
		Skills:         trimSkills(in.Skills),
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		GithubUsername: in.GithubUsername,
	}

	// Keep the primary key stable when the profile already exists so Save
	// updates instead of inserting.
	if current, err := s.profileRepo.GetByUserID(ctx, in.UserID); err == nil {
		profile.ID = current.ID
		profile.CreatedAt = current.CreatedAt
	} else if !isNotFound(err) {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// GetOwnProfile returns the caller's profile.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// GetProfileByHandle returns the profile with the given handle.
func (s *ProfileService) GetProfileByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return s.profileRepo.GetByHandle(ctx, handle)
}

// ListProfiles returns all profiles, newest first.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// DeleteProfile removes the caller's profile.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID uint) error {
	return s.profileRepo.DeleteByUserID(ctx, userID)
}

func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}

func trimSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
