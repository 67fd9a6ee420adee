// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devconnect/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// Likes are always loaded newest-first.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error
	AddLike(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withLikes(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("post", id)
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withLikes(r.db.WithContext(ctx)).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	for _, p := range posts {
		if p.Likes == nil {
			p.Likes = []models.Like{}
		}
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete post %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("post", id)
	}
	return nil
}

func (r *postRepository) AddLike(ctx context.Context, userID, postID uint) error {
	like := &models.Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		// The unique (post_id, user_id) index backstops the service-level
		// duplicate check against concurrent like requests.
		if isUniqueViolation(err) {
			return models.NewDuplicateLikeError()
		}
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

// withLikes preloads likes newest-first; within one timestamp the row id
// preserves insertion order.
func (r *postRepository) withLikes(db *gorm.DB) *gorm.DB {
	return db.Preload("Likes", func(db *gorm.DB) *gorm.DB {
		return db.Order("likes.created_at DESC, likes.id DESC")
	})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
