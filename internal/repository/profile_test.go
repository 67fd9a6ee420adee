package repository

import (
	"context"
	"errors"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_SaveAndGet(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	user := createTestUser(t, db, "Ada", "ada@example.com")

	profile := &models.Profile{
		UserID: user.ID,
		Handle: "ada",
		Bio:    "Analytical engine enthusiast",
		Skills: []string{"Go", "Fortran"},
	}
	require.NoError(t, repo.Save(context.Background(), profile))

	byUser, err := repo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", byUser.Handle)
	assert.Equal(t, []string{"Go", "Fortran"}, byUser.Skills)
	assert.Equal(t, "Ada", byUser.User.Name, "owner must be preloaded")

	byHandle, err := repo.GetByHandle(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, byHandle.ID)
}

func TestProfileRepository_Save_Upsert(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	user := createTestUser(t, db, "Ada", "ada@example.com")

	profile := &models.Profile{UserID: user.ID, Handle: "ada", Bio: "v1"}
	require.NoError(t, repo.Save(context.Background(), profile))
	firstID := profile.ID

	profile.Bio = "v2"
	profile.Skills = []string{"Go"}
	require.NoError(t, repo.Save(context.Background(), profile))

	reloaded, err := repo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, firstID, reloaded.ID, "update must keep the same row")
	assert.Equal(t, "v2", reloaded.Bio)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProfileRepository_GetByHandle_NotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewProfileRepository(db)

	_, err := repo.GetByHandle(context.Background(), "nobody")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestProfileRepository_DeleteByUserID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	user := createTestUser(t, db, "Ada", "ada@example.com")

	require.NoError(t, repo.Save(context.Background(), &models.Profile{
		UserID: user.ID,
		Handle: "ada",
	}))
	require.NoError(t, repo.DeleteByUserID(context.Background(), user.ID))

	_, err := repo.GetByUserID(context.Background(), user.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	err = repo.DeleteByUserID(context.Background(), user.ID)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	createTestUser(t, db, "Ada", "ada@example.com")

	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada", user.Name)

	missing, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing, "absent email is not an error")
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	createTestUser(t, db, "Ada", "ada@example.com")

	err := repo.Create(context.Background(), &models.User{
		Name:     "Imposter",
		Email:    "ada@example.com",
		Password: "hashed",
	})
	assert.Error(t, err)
}
