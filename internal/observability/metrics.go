// Package observability holds tracing setup and domain-level Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts posts successfully persisted.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devconnect_posts_created_total",
		Help: "Total number of posts created",
	})

	// PostsDeleted counts posts removed by their owners.
	PostsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devconnect_posts_deleted_total",
		Help: "Total number of posts deleted",
	})

	// LikesRecorded counts likes successfully persisted.
	LikesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devconnect_likes_recorded_total",
		Help: "Total number of likes recorded",
	})

	// DuplicateLikeRejections counts like requests rejected because the user
	// had already liked the post.
	DuplicateLikeRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devconnect_duplicate_like_rejections_total",
		Help: "Total number of like requests rejected as duplicates",
	})

	// OwnershipRejections counts delete requests rejected because the
	// requester did not own the post.
	OwnershipRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devconnect_ownership_rejections_total",
		Help: "Total number of delete requests rejected for non-owners",
	})
)
