// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"errors"

	"devconnect/internal/models"
	"devconnect/internal/observability"
	"devconnect/internal/repository"
)

// PostService implements the post, like, and ownership rules. It relies on
// the repository for all persistence; input shape validation happens upstream
// in the handler via the validation package.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the authenticated author and the creation payload.
type CreatePostInput struct {
	UserID uint
	Text   string
	// Name is the author display name from the payload. It also populates
	// the avatar field; the client sends no separate avatar value.
	Name string
}

// DeletePostInput identifies the post to delete and the requesting user.
type DeletePostInput struct {
	UserID uint
	PostID uint
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost persists a new post owned by the caller. Repeated identical
// posts are allowed; there is no dedup or rate constraint here.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Text:         in.Text,
		AuthorName:   in.Name,
		AuthorAvatar: in.Name,
		UserID:       in.UserID,
		Likes:        []models.Like{},
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsCreated.Inc()
	return post, nil
}

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost returns a single post by id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes a post permanently. Only the post's author may delete it.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		observability.OwnershipRejections.Inc()
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return err
	}

	observability.PostsDeleted.Inc()
	return nil
}

// LikePost records a like by the requesting user and returns the updated
// post. A user may like a given post at most once; a second attempt fails
// with DUPLICATE_LIKE and changes nothing.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	for _, like := range post.Likes {
		if like.UserID == userID {
			observability.DuplicateLikeRejections.Inc()
			return nil, models.NewDuplicateLikeError()
		}
	}

	if err := s.postRepo.AddLike(ctx, userID, postID); err != nil {
		// A concurrent request may have inserted the like between the read
		// above and this write; the store's unique index reports it here.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeDuplicateLike {
			observability.DuplicateLikeRejections.Inc()
		}
		return nil, err
	}

	observability.LikesRecorded.Inc()
	return s.postRepo.GetByID(ctx, postID)
}
