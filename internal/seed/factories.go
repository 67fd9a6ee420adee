// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"devconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a hashed demo password.
func (f *Factory) CreateUser() (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile persists a developer profile for the given user.
func (f *Factory) CreateProfile(user *models.User) (*models.Profile, error) {
	skills := make([]string, 0, 4)
	for i := 0; i < 2+f.rnd.Intn(3); i++ {
		skills = append(skills, gofakeit.ProgrammingLanguage())
	}

	profile := &models.Profile{
		UserID:         user.ID,
		Handle:         gofakeit.Username(),
		Bio:            gofakeit.Sentence(12),
		Skills:         skills,
		Company:        gofakeit.Company(),
		Location:       gofakeit.City(),
		Website:        gofakeit.URL(),
		GithubUsername: gofakeit.Username(),
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreatePost persists a post authored by the given user, spread over the
// last maxDays for a realistic feed.
func (f *Factory) CreatePost(user *models.User, maxDays int) (*models.Post, error) {
	if maxDays <= 0 {
		maxDays = 90
	}

	post := &models.Post{
		Text:         gofakeit.Paragraph(1, 2, 8, " "),
		AuthorName:   user.Name,
		AuthorAvatar: user.Name,
		UserID:       user.ID,
	}
	post.CreatedAt = time.Now().
		Add(-time.Duration(f.rnd.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(f.rnd.Intn(24)) * time.Hour).
		Add(-time.Duration(f.rnd.Intn(60)) * time.Minute)

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// LikePost records a like if the user has not liked the post yet.
func (f *Factory) LikePost(user *models.User, post *models.Post) error {
	var count int64
	if err := f.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return f.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}
