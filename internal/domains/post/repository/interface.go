package repository

import (
	"context"

	"blog-backend/internal/domains/post/model"
)

// RepositoryInterface defines the data access operations for posts.
// Implementations: MongoDB (primary), PostgreSQL JSONB, in-memory.
type RepositoryInterface interface {
	// FindAll returns posts in insertion order.
	FindAll(ctx context.Context) ([]*model.Post, error)

	// FindByID returns model.ErrPostNotFound when absent or when id is not a
	// valid identifier for the backend.
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// Create assigns ids to the post and its comments.
	Create(ctx context.Context, post *model.Post) (*model.Post, error)

	// UpdateByID applies the update and returns the document as it is after
	// the write. An empty update returns the current document.
	// Errors: model.ErrPostNotFound
	UpdateByID(ctx context.Context, id string, update model.PostUpdate) (*model.Post, error)

	// DeleteByID is a no-op when the post does not exist.
	DeleteByID(ctx context.Context, id string) error

	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}
