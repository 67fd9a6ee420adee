package seed

import (
	"fmt"
	"log/slog"

	"devconnect/internal/middleware"
	"devconnect/internal/models"

	"gorm.io/gorm"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users        int
	PostsPerUser int
	MaxDays      int
}

// DefaultOptions returns a small but representative dataset.
func DefaultOptions() Options {
	return Options{Users: 10, PostsPerUser: 3, MaxDays: 90}
}

// Run populates the database with demo users, profiles, posts, and likes.
func Run(db *gorm.DB, opts Options) error {
	if opts.Users <= 0 {
		opts = DefaultOptions()
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.Users)
	posts := make([]*models.Post, 0, opts.Users*opts.PostsPerUser)

	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)

		if _, err := f.CreateProfile(user); err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}

		for j := 0; j < opts.PostsPerUser; j++ {
			post, err := f.CreatePost(user, opts.MaxDays)
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			posts = append(posts, post)
		}
	}

	// Roughly a third of user/post pairs get a like.
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID {
				continue
			}
			if f.rnd.Intn(3) == 0 {
				if err := f.LikePost(user, post); err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
		}
	}

	middleware.Logger.Info("Seed complete",
		slog.Int("users", len(users)),
		slog.Int("posts", len(posts)),
	)
	return nil
}
